package listing

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/heartmarshall/crudkit/internal/domain"
	"github.com/heartmarshall/crudkit/internal/event"
)

// Request is one list fetch. SortBy must already be validated against the
// list configuration; an empty SortBy leaves ordering to the backend.
type Request struct {
	EntityClass   string
	Filters       map[string]any
	SearchFields  []string
	SortBy        string
	SortDirection domain.SortDirection
	Page          int
	Limit         int
}

// Provider turns a Request into a lazily evaluated page of entities.
// It holds no per-request state.
type Provider struct {
	queries querySource
	events  eventDispatcher
}

// NewProvider creates a Provider.
func NewProvider(queries querySource, events eventDispatcher) *Provider {
	return &Provider{queries: queries, events: events}
}

// FetchPage builds the query for req and returns its paginator.
//
// The list-query event is dispatched before the search and ordering clauses
// are added, so listeners can add predicates and rewrite the search term.
func (p *Provider) FetchPage(ctx context.Context, req Request) (*Paginator, error) {
	if req.Limit < 1 {
		return nil, domain.NewValidationError("limit", "must be at least 1")
	}
	page := max(req.Page, 1)

	q, err := p.queries.NewQuery(ctx, req.EntityClass)
	if err != nil {
		return nil, fmt.Errorf("new query: %w", err)
	}

	dispatched, err := p.events.Dispatch(ctx, event.NewListQueryEvent(q, req.EntityClass, maps.Clone(req.Filters), slices.Clone(req.SearchFields)))
	if err != nil {
		return nil, err
	}
	evt, ok := dispatched.(*event.ListQueryEvent)
	if !ok {
		return nil, fmt.Errorf("list query: dispatcher returned %T: %w", dispatched, domain.ErrConfiguration)
	}
	if evt.Query != nil {
		q = evt.Query
	}

	if term := searchTerm(evt.Filters); term != "" && len(evt.SearchFields) > 0 {
		preds := make([]domain.Predicate, len(evt.SearchFields))
		for i, field := range evt.SearchFields {
			preds[i] = domain.Contains(field, term)
		}
		q.WhereAny(preds...)
	}

	if req.SortBy != "" {
		q.OrderBy(req.SortBy, domain.NormalizeDirection(string(req.SortDirection)))
	}

	return newPaginator(q, page, req.Limit), nil
}

// searchTerm extracts the free-text term. Only string-like values count.
func searchTerm(filters map[string]any) string {
	switch v := filters[SearchFilterKey].(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}
