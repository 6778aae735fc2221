package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/crudkit/migrations"
)

// NewMigrator returns a goose provider over the embedded migrations that
// talks to the database through pool. Call the returned close func when done.
func NewMigrator(pool *pgxpool.Pool) (*goose.Provider, func() error, error) {
	db := stdlib.OpenDBFromPool(pool)
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("goose new provider: %w", err)
	}
	return provider, db.Close, nil
}

// Migrate applies every pending migration and returns how many ran.
func Migrate(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	provider, closeDB, err := NewMigrator(pool)
	if err != nil {
		return 0, err
	}
	defer closeDB() //nolint:errcheck

	results, err := provider.Up(ctx)
	if err != nil {
		return len(results), fmt.Errorf("goose up: %w", err)
	}
	return len(results), nil
}
