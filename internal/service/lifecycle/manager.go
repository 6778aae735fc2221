// Package lifecycle runs storage mutations wrapped in pre/post events.
package lifecycle

import (
	"context"
	"net/http"

	"github.com/heartmarshall/crudkit/internal/domain"
	"github.com/heartmarshall/crudkit/internal/event"
)

type persistenceHandler interface {
	Persist(ctx context.Context, e domain.Entity) error
	Update(ctx context.Context, e domain.Entity) error
	Delete(ctx context.Context, e domain.Entity) error
	Flush(ctx context.Context) error
}

type eventDispatcher interface {
	Dispatch(ctx context.Context, evt event.Event) (event.Event, error)
}

// Manager runs each mutation as a fixed sequence: pre-event, mutation, flush,
// post-event. The first failure is returned unmodified and the remaining
// steps are skipped. Nothing is retried or compensated.
//
// A Manager is bound to one persistence handler; with a per-request unit of
// work, build one Manager per request.
type Manager struct {
	storage persistenceHandler
	events  eventDispatcher
}

// NewManager creates a Manager.
func NewManager(storage persistenceHandler, events eventDispatcher) *Manager {
	return &Manager{storage: storage, events: events}
}

// Create persists a new entity.
func (m *Manager) Create(ctx context.Context, e domain.Entity, form *domain.Form, req *http.Request) error {
	return m.run(ctx, event.PrePersist, event.PostPersist, e, form, req, m.storage.Persist)
}

// Update persists changes to an existing entity.
func (m *Manager) Update(ctx context.Context, e domain.Entity, form *domain.Form, req *http.Request) error {
	return m.run(ctx, event.PreUpdate, event.PostUpdate, e, form, req, m.storage.Update)
}

// Delete removes an entity.
func (m *Manager) Delete(ctx context.Context, e domain.Entity, req *http.Request) error {
	return m.run(ctx, event.PreDelete, event.PostDelete, e, nil, req, m.storage.Delete)
}

func (m *Manager) run(
	ctx context.Context,
	pre, post event.Name,
	e domain.Entity,
	form *domain.Form,
	req *http.Request,
	mutate func(context.Context, domain.Entity) error,
) error {
	if _, err := m.events.Dispatch(ctx, event.NewCrudEvent(pre, e, form, req)); err != nil {
		return err
	}
	if err := mutate(ctx, e); err != nil {
		return err
	}
	if err := m.storage.Flush(ctx); err != nil {
		return err
	}
	_, err := m.events.Dispatch(ctx, event.NewCrudEvent(post, e, form, req))
	return err
}
