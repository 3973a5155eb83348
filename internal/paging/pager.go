// Package paging accumulates offset-paged query results behind explicit
// commands (Start, SetFilter, SetPageSize, LoadMore, Refresh).
package paging

import (
	"context"
	"sync"

	"github.com/quantumauth-io/quantum-go-utils/log"
)

type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Query is one page request. PageSize 0 means unbounded.
type Query struct {
	PageSize int
	Offset   int
	Search   string
}

type FetchFunc[T any] func(ctx context.Context, q Query) ([]T, error)

type Options struct {
	PageSize int
	Search   string
}

type Snapshot[T any] struct {
	Items    []T
	Offset   int
	HasMore  bool
	Status   Status
	Err      error
	PageSize int
	Search   string
}

// Pager is safe for concurrent use. Fetches run one at a time, in the order
// their commands arrive. Start, SetFilter and SetPageSize open a new
// generation: the fetch in flight is cancelled and its response dropped.
type Pager[T any] struct {
	fetch FetchFunc[T]

	// held across a fetch
	cmd sync.Mutex

	mu       sync.Mutex
	pageSize int
	search   string
	items    []T
	offset   int
	hasMore  bool
	status   Status
	err      error
	gen      uint64
	cancel   context.CancelFunc
}

func New[T any](fetch FetchFunc[T], opts Options) *Pager[T] {
	pageSize := opts.PageSize
	if pageSize < 0 {
		pageSize = 0
	}
	return &Pager[T]{
		fetch:    fetch,
		pageSize: pageSize,
		search:   opts.Search,
		hasMore:  true,
	}
}

// Start issues the first fetch.
func (p *Pager[T]) Start(ctx context.Context) {
	p.mu.Lock()
	gen := p.supersedeLocked()
	p.mu.Unlock()

	p.run(ctx, p.ifCurrent(gen))
}

// Refresh re-fetches the page at the current offset and replaces it.
func (p *Pager[T]) Refresh(ctx context.Context) {
	p.run(ctx, func() (Query, bool) {
		return p.queryLocked(), true
	})
}

// SetFilter resets items and offset and fetches the first page, unless the
// filter is unchanged.
func (p *Pager[T]) SetFilter(ctx context.Context, search string) {
	p.mu.Lock()
	if search == p.search {
		p.mu.Unlock()
		return
	}
	p.search = search
	p.items = nil
	p.offset = 0
	gen := p.supersedeLocked()
	p.mu.Unlock()

	p.run(ctx, p.ifCurrent(gen))
}

// SetPageSize re-fetches at the current offset with the new size.
func (p *Pager[T]) SetPageSize(ctx context.Context, n int) {
	if n < 0 {
		n = 0
	}
	p.mu.Lock()
	if n == p.pageSize {
		p.mu.Unlock()
		return
	}
	p.pageSize = n
	gen := p.supersedeLocked()
	p.mu.Unlock()

	p.run(ctx, p.ifCurrent(gen))
}

// LoadMore advances the offset by one page and fetches it. Without a page
// size it does nothing. Overlapping calls load consecutive pages.
func (p *Pager[T]) LoadMore(ctx context.Context) {
	p.run(ctx, func() (Query, bool) {
		if p.pageSize == 0 {
			return Query{}, false
		}
		p.offset += p.pageSize
		return p.queryLocked(), true
	})
}

func (p *Pager[T]) Snapshot() Snapshot[T] {
	p.mu.Lock()
	defer p.mu.Unlock()

	items := make([]T, len(p.items))
	copy(items, p.items)
	return Snapshot[T]{
		Items:    items,
		Offset:   p.offset,
		HasMore:  p.hasMore,
		Status:   p.status,
		Err:      p.err,
		PageSize: p.pageSize,
		Search:   p.search,
	}
}

// supersedeLocked opens a new generation and aborts the fetch in flight.
func (p *Pager[T]) supersedeLocked() uint64 {
	p.gen++
	p.status = StatusLoading
	if p.cancel != nil {
		p.cancel()
	}
	return p.gen
}

// ifCurrent fetches the current page unless a newer generation was opened
// while waiting for the turn.
func (p *Pager[T]) ifCurrent(gen uint64) func() (Query, bool) {
	return func() (Query, bool) {
		return p.queryLocked(), gen == p.gen
	}
}

func (p *Pager[T]) queryLocked() Query {
	return Query{PageSize: p.pageSize, Offset: p.offset, Search: p.search}
}

// run waits for its turn, builds the query with next (under mu; false skips
// the fetch) and applies the page unless its generation was superseded.
func (p *Pager[T]) run(ctx context.Context, next func() (Query, bool)) {
	p.cmd.Lock()
	defer p.cmd.Unlock()

	p.mu.Lock()
	q, ok := next()
	if !ok {
		p.mu.Unlock()
		return
	}
	gen := p.gen
	p.status = StatusLoading
	fetchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	page, err := p.fetch(fetchCtx, q)
	cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancel = nil

	if gen != p.gen {
		return // superseded
	}

	if err != nil {
		log.Warn("page fetch failed", "offset", q.Offset, "pageSize", q.PageSize, "error", err)
		p.err = err
		p.status = StatusError
		return
	}

	// the page owns everything from its offset on
	keep := min(q.Offset, len(p.items))
	p.items = append(p.items[:keep:keep], page...)
	p.hasMore = !(q.PageSize > 0 && len(page) < q.PageSize)
	p.err = nil
	p.status = StatusIdle
}
