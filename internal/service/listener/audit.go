package listener

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/crudkit/internal/domain"
	"github.com/heartmarshall/crudkit/internal/event"
	"github.com/heartmarshall/crudkit/pkg/ctxutil"
)

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

// Audit appends an audit record for every post-event. A failing audit write
// fails the dispatch, and so the request, even though the mutation is
// already committed.
type Audit struct {
	logger auditLogger
	now    func() time.Time
}

// NewAudit creates an Audit listener.
func NewAudit(logger auditLogger) *Audit {
	return &Audit{logger: logger, now: time.Now}
}

func (a *Audit) HandleEvent(ctx context.Context, evt event.Event) error {
	e, ok := evt.(*event.CrudEvent)
	if !ok {
		return nil
	}

	var action domain.AuditAction
	switch e.Name {
	case event.PostPersist:
		action = domain.AuditActionCreate
	case event.PostUpdate:
		action = domain.AuditActionUpdate
	case event.PostDelete:
		action = domain.AuditActionDelete
	default:
		return nil
	}

	id, err := domain.EntityIDOf(e.Entity)
	if err != nil {
		return fmt.Errorf("audit %s: %w", e.Name, err)
	}

	record := domain.AuditRecord{
		ID:          uuid.New(),
		EntityClass: e.Entity.EntityClass(),
		EntityID:    fmt.Sprint(id),
		Action:      action,
		RequestID:   ctxutil.RequestIDFromCtx(ctx),
		CreatedAt:   a.now().UTC(),
	}
	if actor, ok := ctxutil.ActorFromCtx(ctx); ok {
		record.Actor = actor
	}
	if e.Form != nil && action != domain.AuditActionDelete {
		record.Changes = maps.Clone(e.Form.Values)
	}

	if err := a.logger.Log(ctx, record); err != nil {
		return fmt.Errorf("audit %s %s: %w", record.EntityClass, record.EntityID, err)
	}
	return nil
}
