package paging

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

// fakeSource serves ids 0..total-1 filtered by prefix.
type fakeSource struct {
	mu      sync.Mutex
	total   int
	queries []Query
	fail    error
}

func (s *fakeSource) fetch(_ context.Context, q Query) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queries = append(s.queries, q)
	if s.fail != nil {
		return nil, s.fail
	}

	var all []string
	for i := 0; i < s.total; i++ {
		id := fmt.Sprintf("%s%d", q.Search, i)
		all = append(all, id)
	}
	if q.PageSize == 0 {
		return all, nil
	}
	if q.Offset >= len(all) {
		return []string{}, nil
	}
	end := q.Offset + q.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[q.Offset:end], nil
}

func TestInitialState(t *testing.T) {
	src := &fakeSource{total: 3}
	p := New(src.fetch, Options{PageSize: 2})

	s := p.Snapshot()
	require.True(t, s.HasMore)
	require.Equal(t, StatusIdle, s.Status)
	require.Empty(t, s.Items)
	require.Empty(t, src.queries)
}

func TestLoadMoreAccumulates(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{total: 5}
	p := New(src.fetch, Options{PageSize: 2})

	p.Start(ctx)
	s := p.Snapshot()
	require.Equal(t, []string{"0", "1"}, s.Items)
	require.True(t, s.HasMore)
	require.Equal(t, StatusIdle, s.Status)

	p.LoadMore(ctx)
	s = p.Snapshot()
	require.Equal(t, []string{"0", "1", "2", "3"}, s.Items)
	require.Equal(t, 2, s.Offset)
	require.True(t, s.HasMore)

	p.LoadMore(ctx)
	s = p.Snapshot()
	require.Equal(t, []string{"0", "1", "2", "3", "4"}, s.Items)
	require.False(t, s.HasMore)

	require.Equal(t, []Query{
		{PageSize: 2, Offset: 0},
		{PageSize: 2, Offset: 2},
		{PageSize: 2, Offset: 4},
	}, src.queries)
}

func TestExactMultipleNeedsEmptyPage(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{total: 4}
	p := New(src.fetch, Options{PageSize: 2})

	p.Start(ctx)
	p.LoadMore(ctx)
	require.True(t, p.Snapshot().HasMore)

	p.LoadMore(ctx)
	s := p.Snapshot()
	require.False(t, s.HasMore)
	require.Len(t, s.Items, 4)
}

func TestWithoutPageSize(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{total: 3}
	p := New(src.fetch, Options{})

	p.Start(ctx)
	s := p.Snapshot()
	require.Len(t, s.Items, 3)
	require.True(t, s.HasMore)

	p.LoadMore(ctx)
	require.Len(t, src.queries, 1)
	require.Equal(t, s, p.Snapshot())
}

func TestSetFilterResets(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{total: 5}
	entered := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context, q Query) ([]string, error) {
		if q.Search == "bob" {
			close(entered)
			<-release
		}
		return src.fetch(ctx, q)
	}
	p := New(fetch, Options{PageSize: 2})

	p.Start(ctx)
	p.LoadMore(ctx)
	require.Len(t, p.Snapshot().Items, 4)

	done := make(chan struct{})
	go func() {
		p.SetFilter(ctx, "bob")
		close(done)
	}()

	<-entered
	s := p.Snapshot()
	require.Equal(t, StatusLoading, s.Status)
	require.Empty(t, s.Items)
	require.Equal(t, 0, s.Offset)
	require.Equal(t, "bob", s.Search)

	close(release)
	<-done

	s = p.Snapshot()
	require.Equal(t, []string{"bob0", "bob1"}, s.Items)
	require.Equal(t, 0, s.Offset)
	require.Equal(t, Query{PageSize: 2, Offset: 0, Search: "bob"}, src.queries[len(src.queries)-1])

	// unchanged filter does nothing
	n := len(src.queries)
	p.SetFilter(ctx, "bob")
	require.Len(t, src.queries, n)
}

func TestSetPageSizeRefetches(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{total: 10}
	p := New(src.fetch, Options{PageSize: 2})

	p.Start(ctx)
	p.SetPageSize(ctx, 5)
	s := p.Snapshot()
	require.Equal(t, 5, s.PageSize)
	require.Len(t, s.Items, 5)
	require.Equal(t, Query{PageSize: 5, Offset: 0}, src.queries[1])

	p.SetPageSize(ctx, 5)
	require.Len(t, src.queries, 2)
}

func TestFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{total: 5}
	p := New(src.fetch, Options{PageSize: 2})

	p.Start(ctx)
	before := p.Snapshot()

	boom := errors.New("subgraph unavailable")
	src.fail = boom
	p.Refresh(ctx)

	s := p.Snapshot()
	require.Equal(t, StatusError, s.Status)
	require.True(t, errors.Is(s.Err, boom))
	require.Equal(t, before.Items, s.Items)
	require.Equal(t, before.Offset, s.Offset)
	require.Equal(t, before.HasMore, s.HasMore)

	// next success clears the error
	src.fail = nil
	p.LoadMore(ctx)
	s = p.Snapshot()
	require.Equal(t, StatusIdle, s.Status)
	require.NoError(t, s.Err)
	require.Len(t, s.Items, 4)
}

func TestRefreshReplacesAtOffsetZero(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{total: 5}
	p := New(src.fetch, Options{PageSize: 2})

	p.Start(ctx)
	p.Refresh(ctx)
	require.Equal(t, []string{"0", "1"}, p.Snapshot().Items)
}

func TestRefreshReplacesCurrentPage(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{total: 5}
	p := New(src.fetch, Options{PageSize: 2})

	p.Start(ctx)
	p.LoadMore(ctx)
	p.Refresh(ctx)

	s := p.Snapshot()
	require.Equal(t, []string{"0", "1", "2", "3"}, s.Items)
	require.Equal(t, 2, s.Offset)
	require.Equal(t, Query{PageSize: 2, Offset: 2}, src.queries[len(src.queries)-1])
}

func TestOverlappingLoadMoreKeepsEveryPage(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{total: 7}
	entered := make(chan struct{})
	release := make(chan struct{})
	var gated sync.Once
	fetch := func(ctx context.Context, q Query) ([]string, error) {
		if q.Offset == 2 {
			gated.Do(func() {
				close(entered)
				<-release
			})
		}
		return src.fetch(ctx, q)
	}
	p := New(fetch, Options{PageSize: 2})
	p.Start(ctx)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		p.LoadMore(ctx)
	}()
	<-entered
	go func() {
		defer wg.Done()
		p.LoadMore(ctx)
	}()
	close(release)
	wg.Wait()

	s := p.Snapshot()
	require.Equal(t, []string{"0", "1", "2", "3", "4", "5"}, s.Items)
	require.Equal(t, 4, s.Offset)
	require.True(t, s.HasMore)
	require.Equal(t, StatusIdle, s.Status)
	require.Equal(t, []Query{
		{PageSize: 2, Offset: 0},
		{PageSize: 2, Offset: 2},
		{PageSize: 2, Offset: 4},
	}, src.queries)
}

func TestSupersededResponseIsDiscarded(t *testing.T) {
	ctx := context.Background()
	entered := make(chan struct{})

	fetch := func(ctx context.Context, q Query) ([]string, error) {
		if q.Search == "" {
			close(entered)
			// held until the filter change cancels it
			<-ctx.Done()
			return []string{"stale"}, ctx.Err()
		}
		return []string{"fresh"}, nil
	}
	p := New(fetch, Options{PageSize: 10})

	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()

	<-entered
	require.Equal(t, StatusLoading, p.Snapshot().Status)

	p.SetFilter(ctx, "x")
	<-done

	s := p.Snapshot()
	require.Equal(t, []string{"fresh"}, s.Items)
	require.Equal(t, StatusIdle, s.Status)
	require.NoError(t, s.Err)
	require.False(t, s.HasMore)
}

func TestSnapshotIsCopy(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{total: 3}
	p := New(src.fetch, Options{PageSize: 3})
	p.Start(ctx)

	s := p.Snapshot()
	s.Items[0] = "mutated"
	require.Equal(t, "0", p.Snapshot().Items[0])
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "idle", StatusIdle.String())
	require.Equal(t, "loading", StatusLoading.String())
	require.Equal(t, "error", StatusError.String())
	require.Equal(t, "unknown", Status(9).String())
}
