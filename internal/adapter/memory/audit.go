package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/crudkit/internal/domain"
)

// AuditLog is an in-memory append-only audit log.
type AuditLog struct {
	mu      sync.RWMutex
	records []domain.AuditRecord
}

// NewAuditLog creates an empty AuditLog.
func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

func (l *AuditLog) Log(_ context.Context, record domain.AuditRecord) error {
	if record.EntityClass == "" || record.EntityID == "" {
		return domain.NewValidationError("entity", "entity class and id are required")
	}
	if !record.Action.IsValid() {
		return domain.NewValidationError("action", "invalid action")
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record)
	return nil
}

// ListByEntity returns the change history of one entity, newest first.
func (l *AuditLog) ListByEntity(_ context.Context, class, entityID string, limit int) ([]domain.AuditRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []domain.AuditRecord
	for _, r := range slices.Backward(l.records) {
		if r.EntityClass != class || r.EntityID != entityID {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
