// Package middleware holds the HTTP middleware wrapped around the admin router.
package middleware

import "net/http"

// Middleware is a function that wraps an http.Handler. The router applies a
// list of them outermost first.
type Middleware func(http.Handler) http.Handler
