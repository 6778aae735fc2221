package memory

import (
	"context"
	"fmt"
	"maps"
	"math"

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

// UnitOfWork stages mutations and applies them atomically on Flush.
// It implements domain.PersistenceHandler and is not safe for concurrent use.
type UnitOfWork struct {
	store  *Store
	staged []stagedOp
}

func (u *UnitOfWork) Persist(_ context.Context, e domain.Entity) error {
	return u.stage(opInsert, e)
}

func (u *UnitOfWork) Update(_ context.Context, e domain.Entity) error {
	return u.stage(opUpdate, e)
}

func (u *UnitOfWork) Delete(_ context.Context, e domain.Entity) error {
	return u.stage(opDelete, e)
}

// Flush applies every staged operation or none of them. Inserted entities get
// their generated id written back. The staging list is cleared either way.
func (u *UnitOfWork) Flush(_ context.Context) error {
	staged := u.staged
	u.staged = nil
	if len(staged) == 0 {
		return nil
	}

	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	work := make(map[string]*table)
	tableFor := func(class string) *table {
		if t, ok := work[class]; ok {
			return t
		}
		t := s.tables[class].clone()
		work[class] = t
		return t
	}

	var assigned []func()
	for _, op := range staged {
		t := tableFor(op.et.Class)
		pk := op.et.PrimaryKey
		fields := op.source.FieldValues()

		switch op.kind {
		case opInsert:
			row := maps.Clone(fields)
			if row == nil {
				row = make(map[string]any)
			}
			if row[pk] == nil {
				id := t.generateID(pk)
				row[pk] = id
				src := op.source
				assigned = append(assigned, func() { src.SetFieldValue(pk, id) })
			} else if t.indexOf(pk, row[pk]) >= 0 {
				return fmt.Errorf("insert %s %v: %w", op.et.Class, row[pk], domain.ErrAlreadyExists)
			} else if n, ok := integerID(row[pk]); ok && n > t.nextID {
				t.nextID = n
			}
			t.rows = append(t.rows, row)

		case opUpdate:
			i := t.indexOf(pk, fields[pk])
			if i < 0 {
				return fmt.Errorf("update %s %v: %w", op.et.Class, fields[pk], domain.ErrNotFound)
			}
			for k, v := range fields {
				if k != pk {
					t.rows[i][k] = v
				}
			}

		case opDelete:
			i := t.indexOf(pk, fields[pk])
			if i < 0 {
				return fmt.Errorf("delete %s %v: %w", op.et.Class, fields[pk], domain.ErrNotFound)
			}
			t.rows = append(t.rows[:i], t.rows[i+1:]...)
		}
	}

	maps.Copy(s.tables, work)
	for _, fn := range assigned {
		fn()
	}
	return nil
}

// generateID returns the next free sequence value, skipping ids already
// taken by explicitly keyed rows.
func (t *table) generateID(pk string) int64 {
	for {
		t.nextID++
		if t.indexOf(pk, t.nextID) < 0 {
			return t.nextID
		}
	}
}

// integerID reports the integral value of an explicit key of any numeric kind
// or numeric string.
func integerID(v any) (int64, bool) {
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// Pending returns the number of staged operations.
func (u *UnitOfWork) Pending() int { return len(u.staged) }

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
