package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"govassets/internal/platform/metrics"
	id "govassets/pkg/domain"
	"govassets/pkg/platform/httputil"
	"govassets/pkg/platform/middleware/request"
	"govassets/pkg/platform/middleware/requesttime"
	"govassets/pkg/platform/middleware/version"
)

const healthTimeout = 3 * time.Second

// Registrar is implemented by every feature handler.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a dependency is usable.
type HealthCheck func(ctx context.Context) error

type RouterConfig struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	// Health maps a dependency name to its health check.
	Health map[string]HealthCheck
}

// NewRouter mounts the feature handlers under /v1 next to the health and
// metrics endpoints.
func NewRouter(cfg RouterConfig, handlers ...Registrar) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(cfg.Metrics.Middleware)

	r.Get("/healthz", healthHandler(cfg.Health, cfg.Logger))
	r.Handle("/metrics", promhttp.Handler())

	version.Mount(r, id.APIVersionV1, func(v1 chi.Router) {
		for _, h := range handlers {
			h.Register(v1)
		}
	})
	return otelhttp.NewHandler(r, "govassets")
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func healthHandler(checks map[string]HealthCheck, logger *slog.Logger) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok", Checks: make(map[string]string, len(names))}
		status := http.StatusOK
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				logger.WarnContext(ctx, "health check failed", "check", name, "request_id", request.GetRequestID(ctx), "error", err)
				resp.Checks[name] = "unavailable"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		httputil.WriteJSON(w, status, resp)
	}
}
