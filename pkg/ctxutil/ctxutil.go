package ctxutil

import "context"

type ctxKey string

const (
	actorKey     ctxKey = "actor"
	requestIDKey ctxKey = "request_id"
)

// WithActor stores the name of the acting user in the context.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromCtx extracts the acting user from the context.
// Returns "" and false if the value is missing, empty, or wrong type.
func ActorFromCtx(ctx context.Context) (string, bool) {
	actor, ok := ctx.Value(actorKey).(string)
	if !ok || actor == "" {
		return "", false
	}
	return actor, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
