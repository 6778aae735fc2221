package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/heartmarshall/crudkit/internal/config"
)

// applicationName tags crudkit sessions in pg_stat_activity unless the DSN
// already names one.
const applicationName = "crudkit"

// NewPool creates a PostgreSQL connection pool configured from DatabaseConfig
// and pings it so a bad DSN fails at startup rather than on the first request.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

func poolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse database DSN: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MinConns = cfg.MinConns
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if _, ok := poolCfg.ConnConfig.RuntimeParams["application_name"]; !ok {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName
	}

	return poolCfg, nil
}

// PoolCollector exports pgxpool statistics as Prometheus gauges.
type PoolCollector struct {
	pool *pgxpool.Pool

	total    *prometheus.Desc
	acquired *prometheus.Desc
	idle     *prometheus.Desc
	max      *prometheus.Desc
	waits    *prometheus.Desc
}

// NewPoolCollector returns a collector reading pool.Stat on every scrape.
func NewPoolCollector(pool *pgxpool.Pool) *PoolCollector {
	return &PoolCollector{
		pool:     pool,
		total:    prometheus.NewDesc("crudkit_db_pool_total_conns", "Connections currently in the pool.", nil, nil),
		acquired: prometheus.NewDesc("crudkit_db_pool_acquired_conns", "Connections currently checked out.", nil, nil),
		idle:     prometheus.NewDesc("crudkit_db_pool_idle_conns", "Idle connections in the pool.", nil, nil),
		max:      prometheus.NewDesc("crudkit_db_pool_max_conns", "Configured pool size.", nil, nil),
		waits:    prometheus.NewDesc("crudkit_db_pool_empty_acquire_total", "Acquires that had to wait for a connection.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *PoolCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.total
	ch <- c.acquired
	ch <- c.idle
	ch <- c.max
	ch <- c.waits
}

// Collect implements prometheus.Collector.
func (c *PoolCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.pool.Stat()
	ch <- prometheus.MustNewConstMetric(c.total, prometheus.GaugeValue, float64(s.TotalConns()))
	ch <- prometheus.MustNewConstMetric(c.acquired, prometheus.GaugeValue, float64(s.AcquiredConns()))
	ch <- prometheus.MustNewConstMetric(c.idle, prometheus.GaugeValue, float64(s.IdleConns()))
	ch <- prometheus.MustNewConstMetric(c.max, prometheus.GaugeValue, float64(s.MaxConns()))
	ch <- prometheus.MustNewConstMetric(c.waits, prometheus.CounterValue, float64(s.EmptyAcquireCount()))
}
