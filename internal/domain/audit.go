package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete:
		return true
	}
	return false
}

// AuditRecord is one append-only audit log entry.
type AuditRecord struct {
	ID          uuid.UUID
	EntityClass string
	EntityID    string
	Action      AuditAction
	RequestID   string
	Actor       string
	Changes     map[string]any
	CreatedAt   time.Time
}
