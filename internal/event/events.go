// Package event defines the CRUD lifecycle and list-query events and the
// synchronous in-process dispatcher that delivers them.
package event

import (
	"net/http"

	"github.com/heartmarshall/crudkit/internal/domain"
)

// Name identifies an extension point.
type Name string

const (
	PrePersist  Name = "crud.pre_persist"
	PostPersist Name = "crud.post_persist"
	PreUpdate   Name = "crud.pre_update"
	PostUpdate  Name = "crud.post_update"
	PreDelete   Name = "crud.pre_delete"
	PostDelete  Name = "crud.post_delete"
	ListQuery   Name = "crud.list_query"
)

func (n Name) String() string { return string(n) }

// IsLifecycle reports whether n is one of the six persist/update/delete points.
func (n Name) IsLifecycle() bool {
	switch n {
	case PrePersist, PostPersist, PreUpdate, PostUpdate, PreDelete, PostDelete:
		return true
	}
	return false
}

// Names returns every extension point in a stable order.
func Names() []Name {
	return []Name{PrePersist, PostPersist, PreUpdate, PostUpdate, PreDelete, PostDelete, ListQuery}
}

// Event is the closed set of dispatchable events: *CrudEvent and *ListQueryEvent.
type Event interface {
	EventName() Name
	sealed()
}

// CrudEvent is dispatched around a single persist, update or delete.
// Entity, Form and Request are live references: listeners of a pre-event may
// mutate them and the change is seen by the storage mutation.
type CrudEvent struct {
	Name    Name
	Entity  domain.Entity
	Form    *domain.Form  // nil for deletes
	Request *http.Request // nil outside HTTP
	Extra   map[string]any
}

// NewCrudEvent creates a lifecycle event. name must satisfy IsLifecycle.
func NewCrudEvent(name Name, entity domain.Entity, form *domain.Form, req *http.Request) *CrudEvent {
	return &CrudEvent{
		Name:    name,
		Entity:  entity,
		Form:    form,
		Request: req,
		Extra:   make(map[string]any),
	}
}

func (e *CrudEvent) EventName() Name { return e.Name }
func (*CrudEvent) sealed()           {}

// ListQueryEvent is dispatched once per list fetch, after the query is
// created and before the provider applies search and ordering. Listeners may
// add predicates to Query and rewrite Filters (including the "q" term).
type ListQueryEvent struct {
	Query        domain.Query
	EntityClass  string
	Filters      map[string]any
	SearchFields []string
	Extra        map[string]any
}

// NewListQueryEvent creates a list-query event.
func NewListQueryEvent(q domain.Query, class string, filters map[string]any, searchFields []string) *ListQueryEvent {
	if filters == nil {
		filters = make(map[string]any)
	}
	return &ListQueryEvent{
		Query:        q,
		EntityClass:  class,
		Filters:      filters,
		SearchFields: searchFields,
		Extra:        make(map[string]any),
	}
}

func (*ListQueryEvent) EventName() Name { return ListQuery }
func (*ListQueryEvent) sealed()         {}
