package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/crudkit/internal/service/admin"
	"github.com/heartmarshall/crudkit/internal/transport/middleware"
)

// RouterConfig is everything the HTTP router mounts.
type RouterConfig struct {
	Health    *HealthHandler
	Resources []*ResourceHandler
	// Middleware wraps every route, outermost first.
	Middleware []middleware.Middleware
	// Gatherer exposes metrics at MetricsPath when non-nil.
	Gatherer    prometheus.Gatherer
	MetricsPath string
}

// NewRouter builds the HTTP handler: health probes, metrics and one
// /admin/{prefix} subtree per resource.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	for _, mw := range cfg.Middleware {
		r.Use(mw)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	if cfg.Health != nil {
		r.Get("/health", cfg.Health.Health)
		r.Get("/health/live", cfg.Health.Live)
		r.Get("/health/ready", cfg.Health.Ready)
	}

	if cfg.Gatherer != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/admin", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, resourceIndex(cfg.Resources))
		})
		for _, h := range cfg.Resources {
			r.Mount("/"+h.svc.Resource().RoutePrefix, h.Routes())
		}
	})

	return r
}

type resourceEntry struct {
	Class  string            `json:"class"`
	Prefix string            `json:"route_prefix"`
	Routes map[string]string `json:"routes"`
}

func resourceIndex(handlers []*ResourceHandler) []resourceEntry {
	out := make([]resourceEntry, 0, len(handlers))
	for _, h := range handlers {
		res := h.svc.Resource()
		out = append(out, resourceEntry{
			Class:  res.Class,
			Prefix: res.RoutePrefix,
			Routes: map[string]string{
				res.RouteName(admin.ActionList):   "GET /admin/" + res.RoutePrefix,
				res.RouteName(admin.ActionCreate): "POST /admin/" + res.RoutePrefix,
				res.RouteName(admin.ActionShow):   "GET /admin/" + res.RoutePrefix + "/{id}",
				res.RouteName(admin.ActionEdit):   "PUT /admin/" + res.RoutePrefix + "/{id}",
				res.RouteName(admin.ActionDelete): "DELETE /admin/" + res.RoutePrefix + "/{id}",
			},
		})
	}
	return out
}
