package crud

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/crudkit/internal/adapter/postgres"
	"github.com/heartmarshall/crudkit/internal/domain"
)

type opKind int

const (
	opInsert opKind = iota
	opUpdate
	opDelete
)

type stagedOp struct {
	kind   opKind
	source domain.FieldSource
	et     domain.EntityType
}

// UnitOfWork stages mutations and executes them in a single transaction on
// Flush. It implements domain.PersistenceHandler; use one per request.
type UnitOfWork struct {
	store  *Store
	staged []stagedOp
}

func (u *UnitOfWork) Persist(_ context.Context, e domain.Entity) error {
	return u.stage(opInsert, e)
}

// Update stages a full-row update of the entity's non-key fields.
func (u *UnitOfWork) Update(_ context.Context, e domain.Entity) error {
	return u.stage(opUpdate, e)
}

func (u *UnitOfWork) Delete(_ context.Context, e domain.Entity) error {
	return u.stage(opDelete, e)
}

// Pending returns the number of staged operations.
func (u *UnitOfWork) Pending() int { return len(u.staged) }

// Flush executes the staged operations in order inside one transaction.
// Generated primary keys are written back to inserted entities after commit.
// The staging list is cleared whether or not the flush succeeds.
func (u *UnitOfWork) Flush(ctx context.Context) error {
	staged := u.staged
	u.staged = nil
	if len(staged) == 0 {
		return nil
	}

	ids := make([]any, len(staged))
	err := u.store.tx.RunInTx(ctx, func(ctx context.Context) error {
		db := postgres.QuerierFromCtx(ctx, u.store.db)
		for i, op := range staged {
			var err error
			switch op.kind {
			case opInsert:
				ids[i], err = insertRow(ctx, db, op)
			case opUpdate:
				err = updateRow(ctx, db, op)
			case opDelete:
				err = deleteRow(ctx, db, op)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for i, op := range staged {
		if op.kind == opInsert {
			op.source.SetFieldValue(op.et.PrimaryKey, ids[i])
		}
	}
	return nil
}

func (u *UnitOfWork) stage(kind opKind, e domain.Entity) error {
	et, err := u.store.registry.Lookup(e.EntityClass())
	if err != nil {
		return err
	}
	src, ok := e.(domain.FieldSource)
	if !ok {
		return fmt.Errorf("entity of class %q does not expose its fields: %w", e.EntityClass(), domain.ErrConfiguration)
	}
	for name := range src.FieldValues() {
		if !et.HasColumn(name) {
			return fmt.Errorf("field %q of %s: %w", name, et.Class, domain.ErrUnknownField)
		}
	}
	if kind != opInsert && src.FieldValues()[et.PrimaryKey] == nil {
		return fmt.Errorf("entity of class %q: nil id: %w", et.Class, domain.ErrMissingIdentity)
	}
	u.staged = append(u.staged, stagedOp{kind: kind, source: src, et: et})
	return nil
}

func insertRow(ctx context.Context, db postgres.Querier, op stagedOp) (any, error) {
	pk := quoteIdent(op.et.PrimaryKey)
	values := make(map[string]any)
	for name, v := range op.source.FieldValues() {
		if name == op.et.PrimaryKey && v == nil {
			continue
		}
		values[quoteIdent(name)] = v
	}

	var (
		sql  string
		args []any
		err  error
	)
	if len(values) == 0 {
		sql = fmt.Sprintf("INSERT INTO %s DEFAULT VALUES RETURNING %s", quoteTable(op.et.Table), pk)
	} else {
		sql, args, err = psql.Insert(quoteTable(op.et.Table)).
			SetMap(values).
			Suffix("RETURNING " + pk).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build insert %s: %w", op.et.Class, err)
		}
	}

	var id any
	if err := db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return nil, postgres.MapError(err, op.et.Class, "insert")
	}
	return id, nil
}

func updateRow(ctx context.Context, db postgres.Querier, op stagedOp) error {
	fields := op.source.FieldValues()
	id := fields[op.et.PrimaryKey]

	values := make(map[string]any)
	for name, v := range fields {
		if name != op.et.PrimaryKey {
			values[quoteIdent(name)] = v
		}
	}
	if len(values) == 0 {
		return nil
	}

	sql, args, err := psql.Update(quoteTable(op.et.Table)).
		SetMap(values).
		Where(sq.Eq{quoteIdent(op.et.PrimaryKey): id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update %s: %w", op.et.Class, err)
	}

	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, op.et.Class, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %v: %w", op.et.Class, id, domain.ErrNotFound)
	}
	return nil
}

func deleteRow(ctx context.Context, db postgres.Querier, op stagedOp) error {
	id := op.source.FieldValues()[op.et.PrimaryKey]

	sql, args, err := psql.Delete(quoteTable(op.et.Table)).
		Where(sq.Eq{quoteIdent(op.et.PrimaryKey): id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", op.et.Class, err)
	}

	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, op.et.Class, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %v: %w", op.et.Class, id, domain.ErrNotFound)
	}
	return nil
}
