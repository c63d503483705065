// Package admin guards the routes that trigger chain fan-out.
package admin

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	dErrors "govassets/pkg/domain-errors"
	"govassets/pkg/platform/httputil"
	request "govassets/pkg/platform/middleware/request"
)

// HeaderName carries the operator token. A bearer Authorization header is
// accepted as well.
const HeaderName = "X-Admin-Token"

// RequireAdminToken rejects requests whose token does not match expected.
// With no expected token configured every request is rejected.
func RequireAdminToken(expected string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		want := []byte(expected)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if expected != "" && subtle.ConstantTimeCompare([]byte(presentedToken(r)), want) == 1 {
				next.ServeHTTP(w, r)
				return
			}
			ctx := r.Context()
			logger.WarnContext(ctx, "admin token rejected",
				"request_id", request.GetRequestID(ctx),
				"path", r.URL.Path,
			)
			httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "admin token required"))
		})
	}
}

func presentedToken(r *http.Request) string {
	if tok := r.Header.Get(HeaderName); tok != "" {
		return tok
	}
	if tok, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(tok)
	}
	return ""
}
