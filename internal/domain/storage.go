package domain

import "context"

// PersistenceHandler is the storage mutation capability. Implementations are
// units of work: Persist, Update and Delete stage changes, Flush commits them.
//
// Update may be a no-op on backends that track changes implicitly; callers must
// not rely on any observable effect before Flush.
type PersistenceHandler interface {
	Persist(ctx context.Context, e Entity) error
	Update(ctx context.Context, e Entity) error
	Delete(ctx context.Context, e Entity) error
	Flush(ctx context.Context) error
}
