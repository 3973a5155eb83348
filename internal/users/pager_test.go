package users

import (
	"context"
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/talentlayer/talentlayer-client/internal/paging"
	"github.com/talentlayer/talentlayer-client/internal/subgraph"
)

type fakeSource struct {
	total   int
	queries []subgraph.UsersQuery
	failAt  int
}

func (f *fakeSource) Users(_ context.Context, q subgraph.UsersQuery) ([]subgraph.User, error) {
	f.queries = append(f.queries, q)
	if f.failAt > 0 && len(f.queries) == f.failAt {
		return nil, errors.New("indexer lagging")
	}

	out := []subgraph.User{}
	for i := q.Skip; i < f.total && (q.First == 0 || i < q.Skip+q.First); i++ {
		out = append(out, subgraph.User{ID: fmt.Sprint(i + 1), Handle: fmt.Sprintf("%suser%d", q.Search, i)})
	}
	return out, nil
}

func TestNewPagerMapsQuery(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{total: 5}
	p := NewPager(src, Options{PageSize: 2, Search: "al"})

	p.Start(ctx)
	p.LoadMore(ctx)

	require.Equal(t, []subgraph.UsersQuery{
		{First: 2, Skip: 0, Search: "al"},
		{First: 2, Skip: 2, Search: "al"},
	}, src.queries)

	s := p.Snapshot()
	require.Len(t, s.Items, 4)
	require.Equal(t, "aluser3", s.Items[3].Handle)
}

func TestCollect(t *testing.T) {
	ctx := context.Background()

	src := &fakeSource{total: 5}
	s := Collect(ctx, src, Options{PageSize: 2}, 10)
	require.Len(t, s.Items, 5)
	require.False(t, s.HasMore)
	require.Len(t, src.queries, 3)

	src = &fakeSource{total: 5}
	s = Collect(ctx, src, Options{PageSize: 2}, 2)
	require.Len(t, s.Items, 4)
	require.True(t, s.HasMore)

	src = &fakeSource{total: 5}
	s = Collect(ctx, src, Options{}, 3)
	require.Len(t, s.Items, 5)
	require.Len(t, src.queries, 1)

	src = &fakeSource{total: 5, failAt: 2}
	s = Collect(ctx, src, Options{PageSize: 2}, 3)
	require.Equal(t, paging.StatusError, s.Status)
	require.Error(t, s.Err)
	require.Len(t, s.Items, 2)
	require.Len(t, src.queries, 2)
}
