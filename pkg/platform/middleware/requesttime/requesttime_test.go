package requesttime

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"govassets/pkg/requestcontext"
)

func TestMiddleware(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var seen time.Time
	h := MiddlewareWithClock(func() time.Time { return fixed })(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = requestcontext.Now(r.Context())
	}))

	t.Run("stamps the request", func(t *testing.T) {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, fixed, seen)
	})

	t.Run("keeps an existing time", func(t *testing.T) {
		earlier := fixed.Add(-time.Hour)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(requestcontext.WithTime(req.Context(), earlier))
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, earlier, seen)
	})
}
