package listener

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/crudkit/internal/domain"
	"github.com/heartmarshall/crudkit/internal/event"
	"github.com/heartmarshall/crudkit/pkg/ctxutil"
)

// Logging returns a listener that logs lifecycle events at info level and
// list queries at debug level.
func Logging(log *slog.Logger) event.Listener {
	log = log.With("listener", "logging")

	return event.ListenerFunc(func(ctx context.Context, evt event.Event) error {
		switch e := evt.(type) {
		case *event.CrudEvent:
			attrs := []any{
				slog.String("event", e.Name.String()),
				slog.String("entity_class", e.Entity.EntityClass()),
				slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
			}
			if id, err := domain.EntityIDOf(e.Entity); err == nil {
				attrs = append(attrs, slog.Any("entity_id", id))
			}
			log.InfoContext(ctx, "crud event", attrs...)

		case *event.ListQueryEvent:
			log.DebugContext(ctx, "list query",
				slog.String("entity_class", e.EntityClass),
				slog.Any("filters", e.Filters),
				slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
			)
		}
		return nil
	})
}
