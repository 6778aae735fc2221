package middleware

import (
	"net/http"
	"strings"

	"github.com/heartmarshall/crudkit/pkg/ctxutil"
)

// DefaultActorHeader names the header the acting user is read from.
const DefaultActorHeader = "X-Actor"

// Actor returns middleware that copies the acting user from header into the
// context. The value is trusted as-is; authentication happens upstream.
func Actor(header string) Middleware {
	if header == "" {
		header = DefaultActorHeader
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := strings.TrimSpace(r.Header.Get(header))
			if actor == "" {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctxutil.WithActor(r.Context(), actor)))
		})
	}
}
