// Package listing builds filtered, searched, sorted and paginated list
// queries and holds the per-session list state that drives them.
package listing

import (
	"context"

	"github.com/heartmarshall/crudkit/internal/domain"
	"github.com/heartmarshall/crudkit/internal/event"
)

type querySource interface {
	NewQuery(ctx context.Context, class string) (domain.Query, error)
}

type eventDispatcher interface {
	Dispatch(ctx context.Context, evt event.Event) (event.Event, error)
}

type pageFetcher interface {
	FetchPage(ctx context.Context, req Request) (*Paginator, error)
}

const (
	// SearchFilterKey is the filters key holding the free-text search term.
	SearchFilterKey = "q"

	DefaultLimit = 25
)
