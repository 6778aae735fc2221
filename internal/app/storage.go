package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/heartmarshall/crudkit/internal/adapter/memory"
	"github.com/heartmarshall/crudkit/internal/adapter/postgres"
	"github.com/heartmarshall/crudkit/internal/adapter/postgres/audit"
	"github.com/heartmarshall/crudkit/internal/adapter/postgres/crud"
	"github.com/heartmarshall/crudkit/internal/config"
	"github.com/heartmarshall/crudkit/internal/domain"
	"github.com/heartmarshall/crudkit/internal/service/admin"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

// storage is the persistence backend selected by config.
type storage struct {
	name    string
	queries domain.QuerySource
	newUoW  admin.UnitOfWorkFactory
	audit   auditLogger
	// db is nil for backends without a connection to check.
	db pinger
	// collector exports backend statistics; nil when there are none.
	collector prometheus.Collector
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config, registry *domain.Registry, log *slog.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		store := memory.NewStore(registry)
		return &storage{
			name:    config.DriverMemory,
			queries: store,
			newUoW:  func() domain.PersistenceHandler { return store.NewUnitOfWork() },
			audit:   memory.NewAuditLog(),
			close:   func() {},
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if cfg.Database.MigrateOnStart {
			n, err := postgres.Migrate(ctx, pool)
			if err != nil {
				pool.Close()
				return nil, err
			}
			log.InfoContext(ctx, "migrations applied", slog.Int("count", n))
		}

		store := crud.NewStore(pool, postgres.NewTxManager(pool), registry)
		return &storage{
			name:      "database",
			queries:   store,
			newUoW:    func() domain.PersistenceHandler { return store.NewUnitOfWork() },
			audit:     audit.New(pool),
			db:        pool,
			collector: postgres.NewPoolCollector(pool),
			close:     pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
