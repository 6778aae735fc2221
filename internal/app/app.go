package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/heartmarshall/crudkit/internal/config"
	"github.com/heartmarshall/crudkit/internal/domain"
	"github.com/heartmarshall/crudkit/internal/event"
	"github.com/heartmarshall/crudkit/internal/service/admin"
	"github.com/heartmarshall/crudkit/internal/service/listener"
	"github.com/heartmarshall/crudkit/internal/transport/middleware"
	"github.com/heartmarshall/crudkit/internal/transport/rest"
)

// App is the assembled service: storage, listeners, admin resources and the
// HTTP handler in front of them.
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	storage *storage
	limiter *middleware.RateLimiter
	handler http.Handler
}

// New wires every component from cfg. Close releases what New opened.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	registry, err := BuildRegistry(cfg.Resources)
	if err != nil {
		return nil, err
	}

	st, err := openStorage(ctx, cfg, registry, log)
	if err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, log: log, storage: st}

	if err := a.build(registry); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) build(registry *domain.Registry) error {
	cfg := a.cfg

	metricsReg := prometheus.NewRegistry()
	metricsReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if a.storage.collector != nil {
		if err := metricsReg.Register(a.storage.collector); err != nil {
			return fmt.Errorf("register storage metrics: %w", err)
		}
	}

	events := event.NewDispatcher()
	if err := a.subscribeListeners(events, metricsReg); err != nil {
		return err
	}

	handlers := make([]*rest.ResourceHandler, 0, len(cfg.Resources))
	for _, rc := range cfg.Resources {
		res, err := BuildResource(rc)
		if err != nil {
			return err
		}
		svc, err := admin.NewService(a.log, res, registry, a.storage.queries, events, a.storage.newUoW,
			admin.WithLimits(cfg.List.DefaultLimit, cfg.List.MaxLimit),
		)
		if err != nil {
			return err
		}
		handlers = append(handlers, rest.NewResourceHandler(svc, a.log))
	}

	mws := []middleware.Middleware{
		middleware.RequestID(),
		middleware.Actor(cfg.Server.ActorHeader),
		middleware.Logger(a.log),
		middleware.Recovery(a.log),
		middleware.CORS(cfg.CORS),
	}
	routerCfg := rest.RouterConfig{
		Health:    rest.NewHealthHandler(a.storage.db, a.storage.name, BuildVersion()),
		Resources: handlers,
	}
	if cfg.Metrics.Enabled {
		httpMetrics, err := middleware.NewHTTPMetrics(metricsReg)
		if err != nil {
			return err
		}
		mws = append(mws, httpMetrics.Middleware())
		routerCfg.Gatherer = metricsReg
		routerCfg.MetricsPath = cfg.Metrics.Path
	}
	if cfg.Server.WriteRateLimit > 0 {
		a.limiter = middleware.NewRateLimiter(time.Minute)
		mws = append(mws, a.limiter.LimitWrites(cfg.Server.WriteRateLimit))
	}
	routerCfg.Middleware = mws

	a.handler = rest.NewRouter(routerCfg)
	return nil
}

func (a *App) subscribeListeners(events *event.Dispatcher, reg prometheus.Registerer) error {
	listener.SubscribeAll(events, "logging", listener.Logging(a.log), event.Names()...)
	events.Subscribe(event.ListQuery, "exact_match", listener.ExactMatch(filterFieldsByClass(a.cfg.Resources)))

	if a.cfg.Metrics.Enabled {
		m, err := listener.NewMetrics(reg)
		if err != nil {
			return err
		}
		listener.SubscribeAll(events, "metrics", m, event.Names()...)
	}
	if a.cfg.Audit.Enabled {
		listener.SubscribeAll(events, "audit", listener.NewAudit(a.storage.audit), listener.PostEvents...)
	}
	return nil
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler { return a.handler }

// Close releases the storage connection and background workers.
func (a *App) Close() {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	a.storage.close()
}

// Run is the application entry point. It loads configuration, wires the
// service and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("storage", cfg.Storage.Driver),
		slog.Int("resources", len(cfg.Resources)),
	)

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer a.Close()

	return a.Serve(ctx)
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// within the configured timeout.
func (a *App) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         a.cfg.Server.Addr(),
		Handler:      a.handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return <-errCh
}
