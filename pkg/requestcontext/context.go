// Package requestcontext carries request-scoped values between middleware
// and services without either side importing net/http.
package requestcontext

import (
	"context"
	"time"

	id "govassets/pkg/domain"
)

type (
	requestIDKey   struct{}
	requestTimeKey struct{}
	apiVersionKey  struct{}
)

// Keys are exported so tests can seed a context directly.
var (
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
	ContextKeyAPIVersion  = apiVersionKey{}
)

func value[T any](ctx context.Context, key any) (T, bool) {
	v, ok := ctx.Value(key).(T)
	return v, ok
}

// RequestID is empty outside an HTTP request.
func RequestID(ctx context.Context) string {
	v, _ := value[string](ctx, ContextKeyRequestID)
	return v
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now is the time the request arrived. CLI runs and background work get the
// wall clock.
func Now(ctx context.Context) time.Time {
	if t, ok := value[time.Time](ctx, ContextKeyRequestTime); ok {
		return t
	}
	return time.Now().UTC()
}

func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}

// APIVersion is the version of the route group serving the request.
func APIVersion(ctx context.Context) id.APIVersion {
	v, _ := value[id.APIVersion](ctx, ContextKeyAPIVersion)
	return v
}

func WithAPIVersion(ctx context.Context, v id.APIVersion) context.Context {
	return context.WithValue(ctx, ContextKeyAPIVersion, v)
}
