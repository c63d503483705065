// Package requesttime pins one clock reading per HTTP request so every
// timestamp a response carries agrees.
package requesttime

import (
	"net/http"
	"time"

	"govassets/pkg/requestcontext"
)

// Middleware stamps the request context with the time the request arrived.
// A time already present in the context is kept.
func Middleware(next http.Handler) http.Handler {
	return MiddlewareWithClock(time.Now)(next)
}

// MiddlewareWithClock is Middleware with an injectable clock.
func MiddlewareWithClock(now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if _, ok := ctx.Value(requestcontext.ContextKeyRequestTime).(time.Time); !ok {
				ctx = requestcontext.WithTime(ctx, now().UTC())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
