// Package version tags requests with the API version of the route group
// that served them.
package version

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	id "govassets/pkg/domain"
	"govassets/pkg/requestcontext"
)

// Header echoes the served version on every versioned response.
const Header = "X-API-Version"

// Mount registers a route group under v's prefix with the version tag applied.
func Mount(r chi.Router, v id.APIVersion, register func(chi.Router)) {
	r.Route(v.Prefix(), func(sub chi.Router) {
		sub.Use(Tag(v))
		register(sub)
	})
}

// Tag records v in the request context and the response headers.
func Tag(v id.APIVersion) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(Header, v.String())
			next.ServeHTTP(w, r.WithContext(requestcontext.WithAPIVersion(r.Context(), v)))
		})
	}
}
