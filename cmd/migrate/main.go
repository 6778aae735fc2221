// Command migrate applies or inspects the embedded database migrations.
//
// Usage:
//
//	migrate [up|down|status|version]
//
// The database DSN comes from the regular application config.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/crudkit/internal/adapter/postgres"
	"github.com/heartmarshall/crudkit/internal/app"
	"github.com/heartmarshall/crudkit/internal/config"
)

func main() {
	configFlag := flag.String("config", "", "path to config file (default: $CONFIG_PATH or ./config.yaml)")
	timeoutFlag := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	path := *configFlag
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.LoadPath(path, path != "")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.Storage.Driver != config.DriverPostgres {
		log.Fatalf("migrate: storage.driver is %q, nothing to migrate", cfg.Storage.Driver)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	if err := run(ctx, cfg, logger, command); err != nil {
		logger.Error("migrate failed", slog.String("command", command), slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, command string) error {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	provider, closeDB, err := postgres.NewMigrator(pool)
	if err != nil {
		return err
	}
	defer closeDB() //nolint:errcheck

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		logResults(logger, results)
		return err
	case "down":
		result, err := provider.Down(ctx)
		if result != nil {
			logResults(logger, []*goose.MigrationResult{result})
		}
		return err
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			logger.Info("migration",
				slog.Int64("version", s.Source.Version),
				slog.String("file", s.Source.Path),
				slog.String("state", string(s.State)),
			)
		}
		return nil
	case "version":
		v, err := provider.GetDBVersion(ctx)
		if err != nil {
			return err
		}
		logger.Info("database version", slog.Int64("version", v))
		return nil
	}
	return fmt.Errorf("unknown command %q", command)
}

func logResults(logger *slog.Logger, results []*goose.MigrationResult) {
	for _, r := range results {
		logger.Info("migration applied",
			slog.Int64("version", r.Source.Version),
			slog.String("direction", r.Direction),
			slog.Duration("duration", r.Duration),
		)
	}
}
