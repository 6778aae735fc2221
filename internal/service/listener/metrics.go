package listener

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/heartmarshall/crudkit/internal/event"
)

// Metrics counts dispatched events. Subscribe it to every event name.
type Metrics struct {
	lifecycle   *prometheus.CounterVec
	listQueries *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		lifecycle: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "crudkit",
				Name:      "lifecycle_events_total",
				Help:      "Total number of dispatched lifecycle events.",
			},
			[]string{"event", "entity_class"},
		),
		listQueries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "crudkit",
				Name:      "list_queries_total",
				Help:      "Total number of list queries built.",
			},
			[]string{"entity_class"},
		),
	}

	for _, c := range []prometheus.Collector{m.lifecycle, m.listQueries} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register listener metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) HandleEvent(_ context.Context, evt event.Event) error {
	switch e := evt.(type) {
	case *event.CrudEvent:
		m.lifecycle.WithLabelValues(e.Name.String(), e.Entity.EntityClass()).Inc()
	case *event.ListQueryEvent:
		m.listQueries.WithLabelValues(e.EntityClass).Inc()
	}
	return nil
}
