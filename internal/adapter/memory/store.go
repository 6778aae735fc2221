// Package memory is an in-process storage backend implementing the query and
// unit-of-work capabilities. Intended for demos and tests; no Postgres needed.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/heartmarshall/crudkit/internal/domain"
)

// Store holds rows per entity class. Rows are kept in insertion order.
type Store struct {
	registry *domain.Registry

	mu     sync.RWMutex
	tables map[string]*table
}

type table struct {
	rows   []map[string]any
	nextID int64
}

func (t *table) clone() *table {
	c := &table{rows: make([]map[string]any, len(t.rows)), nextID: t.nextID}
	for i, r := range t.rows {
		c.rows[i] = maps.Clone(r)
	}
	return c
}

func (t *table) indexOf(pk string, id any) int {
	key := fmt.Sprint(id)
	return slices.IndexFunc(t.rows, func(r map[string]any) bool {
		return r[pk] != nil && fmt.Sprint(r[pk]) == key
	})
}

// NewStore creates an empty Store for the classes in registry.
func NewStore(registry *domain.Registry) *Store {
	s := &Store{registry: registry, tables: make(map[string]*table)}
	for _, class := range registry.Classes() {
		s.tables[class] = &table{}
	}
	return s
}

// NewQuery implements domain.QuerySource.
func (s *Store) NewQuery(_ context.Context, class string) (domain.Query, error) {
	et, err := s.registry.Lookup(class)
	if err != nil {
		return nil, err
	}
	return &query{store: s, entity: et}, nil
}

// NewUnitOfWork starts a unit of work against the store.
func (s *Store) NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{store: s}
}

// Seed inserts rows directly, assigning ids to rows without one.
func (s *Store) Seed(ctx context.Context, class string, rows ...map[string]any) error {
	uow := s.NewUnitOfWork()
	for _, r := range rows {
		if err := uow.Persist(ctx, domain.NewRecord(class, r)); err != nil {
			return err
		}
	}
	return uow.Flush(ctx)
}

// snapshot returns copies of the rows of class.
func (s *Store) snapshot(class string) []map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t := s.tables[class]
	if t == nil {
		return nil
	}
	rows := make([]map[string]any, len(t.rows))
	for i, r := range t.rows {
		rows[i] = maps.Clone(r)
	}
	return rows
}
