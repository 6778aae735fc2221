package listing

import (
	"context"
	"fmt"
	"iter"
	"sync"

	"github.com/heartmarshall/crudkit/internal/domain"
)

// Paginator is one page of a list query. Nothing runs until Total, Items or
// All is called; Items re-runs the window query on every iteration.
type Paginator struct {
	query domain.Query
	page  int
	limit int

	mu    sync.Mutex
	total *int
}

func newPaginator(q domain.Query, page, limit int) *Paginator {
	return &Paginator{query: q, page: page, limit: limit}
}

func (p *Paginator) Page() int   { return p.page }
func (p *Paginator) Limit() int  { return p.limit }
func (p *Paginator) Offset() int { return domain.Offset(p.page, p.limit) }

// Query returns the underlying query.
func (p *Paginator) Query() domain.Query { return p.query }

// Total returns the number of rows matching the query across all pages.
// The first successful count is cached.
func (p *Paginator) Total(ctx context.Context) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.total != nil {
		return *p.total, nil
	}
	n, err := p.query.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", p.query.EntityClass(), err)
	}
	p.total = &n
	return n, nil
}

// Items yields the entities of this page. A fetch error is yielded once with
// a nil entity and ends the sequence.
func (p *Paginator) Items(ctx context.Context) iter.Seq2[domain.Entity, error] {
	return func(yield func(domain.Entity, error) bool) {
		items, err := p.fetch(ctx)
		if err != nil {
			yield(nil, err)
			return
		}
		for _, e := range items {
			if !yield(e, nil) {
				return
			}
		}
	}
}

// All returns the entities of this page.
func (p *Paginator) All(ctx context.Context) ([]domain.Entity, error) {
	return p.fetch(ctx)
}

// Window returns the display window of this page.
func (p *Paginator) Window(ctx context.Context) (domain.PageWindow, error) {
	total, err := p.Total(ctx)
	if err != nil {
		return domain.PageWindow{}, err
	}
	return domain.NewPageWindow(p.page, p.limit, total), nil
}

func (p *Paginator) fetch(ctx context.Context) ([]domain.Entity, error) {
	items, err := p.query.Fetch(ctx, p.Offset(), p.limit)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", p.query.EntityClass(), err)
	}
	return items, nil
}
