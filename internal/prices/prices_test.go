package prices

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	mintUSDC = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	mintMNGO = "MangoCzJ36AjZyKwVj3VnYU4GTonjfVEnJmvvWaxLac"
)

func newTestService(t *testing.T, handler http.HandlerFunc, opts ...Option) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	svc, err := New(server.URL+"/", opts...)
	require.NoError(t, err)
	return svc
}

func TestNew(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
}

func TestFetchTokenPrices(t *testing.T) {
	var requests atomic.Int32
	var lastIDs atomic.Value
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "/price", r.URL.Path)
		lastIDs.Store(r.URL.Query().Get("ids"))
		_, _ = io.WriteString(w, `{"data":{"`+mintUSDC+`":{"id":"`+mintUSDC+`","price":1.0001}}}`)
	})

	err := svc.FetchTokenPrices(context.Background(), []string{mintUSDC, " " + mintUSDC, mintMNGO, ""})
	require.NoError(t, err)
	assert.Equal(t, int32(1), requests.Load())
	assert.Equal(t, mintUSDC+","+mintMNGO, lastIDs.Load())

	t.Run("priced mint is cached", func(t *testing.T) {
		price, ok := svc.Price(mintUSDC)
		assert.True(t, ok)
		assert.InDelta(t, 1.0001, price, 1e-9)
	})

	t.Run("unpriced mint is unknown", func(t *testing.T) {
		_, ok := svc.Price(mintMNGO)
		assert.False(t, ok)
	})

	t.Run("cached mints are not requested again", func(t *testing.T) {
		require.NoError(t, svc.FetchTokenPrices(context.Background(), []string{mintUSDC}))
		assert.Equal(t, int32(1), requests.Load())
	})
}

func TestFetchTokenPricesChunksIDs(t *testing.T) {
	var requests atomic.Int32
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		ids := strings.Split(r.URL.Query().Get("ids"), ",")
		assert.LessOrEqual(t, len(ids), 2)
		_, _ = io.WriteString(w, `{"data":{}}`)
	})
	svc.idsLimit = 2

	require.NoError(t, svc.FetchTokenPrices(context.Background(), []string{"a", "b", "c", "d", "e"}))
	assert.Equal(t, int32(3), requests.Load())
}

func TestFetchTokenPricesErrors(t *testing.T) {
	t.Run("non 200 status", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		err := svc.FetchTokenPrices(context.Background(), []string{mintUSDC})
		assert.ErrorContains(t, err, "503")
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `not json`)
		})
		assert.Error(t, svc.FetchTokenPrices(context.Background(), []string{mintUSDC}))
	})
}

func TestPriceExpires(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"`+mintUSDC+`":{"price":2}}}`)
	}, WithTTL(20*time.Millisecond))

	require.NoError(t, svc.FetchTokenPrices(context.Background(), []string{mintUSDC}))
	_, ok := svc.Price(mintUSDC)
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok := svc.Price(mintUSDC)
		return !ok
	}, time.Second, 10*time.Millisecond)
}
