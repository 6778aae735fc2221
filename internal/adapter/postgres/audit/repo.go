// Package audit implements the append-only audit log using PostgreSQL.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/crudkit/internal/adapter/postgres"
	"github.com/heartmarshall/crudkit/internal/domain"
)

const table = "audit_log"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID          uuid.UUID `db:"id"`
	EntityClass string    `db:"entity_class"`
	EntityID    string    `db:"entity_id"`
	Action      string    `db:"action"`
	RequestID   string    `db:"request_id"`
	Actor       string    `db:"actor"`
	Changes     []byte    `db:"changes"`
	CreatedAt   time.Time `db:"created_at"`
}

// Log appends a record. A zero ID or CreatedAt is filled in.
// Runs inside the caller's transaction when ctx carries one.
func (r *Repo) Log(ctx context.Context, record domain.AuditRecord) error {
	if record.EntityClass == "" || record.EntityID == "" {
		return domain.NewValidationError("entity", "entity class and id are required")
	}
	if !record.Action.IsValid() {
		return domain.NewValidationError("action", fmt.Sprintf("invalid action %q", record.Action))
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	var changes []byte
	if record.Changes != nil {
		var err error
		if changes, err = json.Marshal(record.Changes); err != nil {
			return fmt.Errorf("audit_record marshal changes: %w", err)
		}
	}

	sql, args, err := psql.Insert(table).
		Columns("id", "entity_class", "entity_id", "action", "request_id", "actor", "changes", "created_at").
		Values(record.ID, record.EntityClass, record.EntityID, string(record.Action), record.RequestID, record.Actor, changes, record.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build audit insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "audit_record", record.ID)
	}
	return nil
}

// ListByEntity returns the change history of one entity, newest first.
func (r *Repo) ListByEntity(ctx context.Context, class, entityID string, limit int) ([]domain.AuditRecord, error) {
	sql, args, err := psql.
		Select("id", "entity_class", "entity_id", "action", "request_id", "actor", "changes", "created_at").
		From(table).
		Where(sq.Eq{"entity_class": class, "entity_id": entityID}).
		OrderBy("created_at DESC").
		Limit(uint64(max(limit, 0))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit select: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list audit_records of %s %s: %w", class, entityID, err)
	}

	records := make([]domain.AuditRecord, len(rows))
	for i, rr := range rows {
		rec, err := toDomain(rr)
		if err != nil {
			return nil, err
		}
		records[i] = rec
	}
	return records, nil
}

func toDomain(r row) (domain.AuditRecord, error) {
	record := domain.AuditRecord{
		ID:          r.ID,
		EntityClass: r.EntityClass,
		EntityID:    r.EntityID,
		Action:      domain.AuditAction(r.Action),
		RequestID:   r.RequestID,
		Actor:       r.Actor,
		CreatedAt:   r.CreatedAt,
	}
	if len(r.Changes) > 0 {
		changes := make(map[string]any)
		if err := json.Unmarshal(r.Changes, &changes); err != nil {
			return domain.AuditRecord{}, fmt.Errorf("audit_record %s unmarshal changes: %w", r.ID, err)
		}
		record.Changes = changes
	}
	return record, nil
}
