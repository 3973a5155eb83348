// Package users binds the generic pager to the subgraph users query.
package users

import (
	"context"

	"github.com/talentlayer/talentlayer-client/internal/paging"
	"github.com/talentlayer/talentlayer-client/internal/subgraph"
)

type Source interface {
	Users(ctx context.Context, q subgraph.UsersQuery) ([]subgraph.User, error)
}

type Pager = paging.Pager[subgraph.User]

type Options = paging.Options

func NewPager(src Source, opts Options) *Pager {
	return paging.New(func(ctx context.Context, q paging.Query) ([]subgraph.User, error) {
		return src.Users(ctx, subgraph.UsersQuery{First: q.PageSize, Skip: q.Offset, Search: q.Search})
	}, opts)
}

// Collect starts a pager and loads up to pages pages, stopping early when the
// source runs dry or a fetch fails.
func Collect(ctx context.Context, src Source, opts Options, pages int) paging.Snapshot[subgraph.User] {
	p := NewPager(src, opts)
	p.Start(ctx)

	for i := 1; i < pages; i++ {
		s := p.Snapshot()
		if s.Status == paging.StatusError || !s.HasMore || s.PageSize == 0 {
			break
		}
		p.LoadMore(ctx)
	}
	return p.Snapshot()
}
