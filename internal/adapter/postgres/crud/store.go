// Package crud implements the list query and unit-of-work capabilities on
// PostgreSQL. SQL is built with squirrel; rows are scanned with scany into
// field maps. Every table and column name is checked against the entity
// registry and quoted before it reaches SQL text; values are always bound.
package crud

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/crudkit/internal/adapter/postgres"
	"github.com/heartmarshall/crudkit/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store creates queries and units of work against PostgreSQL.
type Store struct {
	db       postgres.Querier
	tx       txRunner
	registry *domain.Registry
}

// NewStore creates a Store. db is usually the pool; inside a transaction the
// tx from context is used instead.
func NewStore(db postgres.Querier, tx txRunner, registry *domain.Registry) *Store {
	return &Store{db: db, tx: tx, registry: registry}
}

// NewQuery implements domain.QuerySource.
func (s *Store) NewQuery(_ context.Context, class string) (domain.Query, error) {
	et, err := s.registry.Lookup(class)
	if err != nil {
		return nil, err
	}
	return &query{db: s.db, entity: et}, nil
}

// NewUnitOfWork starts a unit of work. Flush commits it in one transaction.
func (s *Store) NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{store: s}
}

func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// quoteTable quotes an optionally schema-qualified table name.
func quoteTable(name string) string {
	return pgx.Identifier(strings.Split(name, ".")).Sanitize()
}
