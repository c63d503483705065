// Package rpc is a batching JSON-RPC client for a Solana-compatible endpoint.
//
// Every typed call is sent as a JSON array batch. Batches larger than the
// configured size are split into chunks that run concurrently, each chunk
// waiting on the shared rate limiter and the endpoint circuit breaker.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"govassets/pkg/platform/circuit"
)

const (
	defaultBatchSize   = 100
	defaultConcurrency = 4
	defaultMaxRetries  = 2
	defaultRetryDelay  = 200 * time.Millisecond
	maxResponseBytes   = 64 << 20
)

// Client talks to one JSON-RPC endpoint.
type Client struct {
	endpoint    string
	http        *http.Client
	commitment  Commitment
	batchSize   int
	concurrency int
	maxRetries  int
	retryDelay  time.Duration
	limiter     *rate.Limiter
	breaker     *circuit.Breaker
	metrics     *Metrics
	logger      *slog.Logger
	tracer      trace.Tracer
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

func WithCommitment(c Commitment) Option {
	return func(cl *Client) {
		if c != "" {
			cl.commitment = c
		}
	}
}

// WithBatchSize caps the number of calls per HTTP request.
func WithBatchSize(n int) Option {
	return func(cl *Client) {
		if n > 0 {
			cl.batchSize = n
		}
	}
}

// WithConcurrency caps concurrent HTTP requests per batch.
func WithConcurrency(n int) Option {
	return func(cl *Client) {
		if n > 0 {
			cl.concurrency = n
		}
	}
}

// WithRateLimit paces HTTP requests. rps <= 0 disables pacing.
func WithRateLimit(rps float64, burst int) Option {
	return func(cl *Client) {
		if rps <= 0 {
			cl.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		cl.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithRetries(max int, delay time.Duration) Option {
	return func(cl *Client) {
		if max >= 0 {
			cl.maxRetries = max
		}
		if delay > 0 {
			cl.retryDelay = delay
		}
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(cl *Client) {
		cl.breaker = b
	}
}

func WithMetrics(m *Metrics) Option {
	return func(cl *Client) {
		cl.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		if logger != nil {
			cl.logger = logger
		}
	}
}

// New creates a client for endpoint.
func New(endpoint string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("rpc endpoint is required")
	}
	c := &Client{
		endpoint:    endpoint,
		http:        &http.Client{Timeout: 30 * time.Second},
		commitment:  CommitmentConfirmed,
		batchSize:   defaultBatchSize,
		concurrency: defaultConcurrency,
		maxRetries:  defaultMaxRetries,
		retryDelay:  defaultRetryDelay,
		logger:      slog.Default(),
		tracer:      otel.Tracer("govassets/internal/chain/rpc"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Commitment returns the commitment sent with every call.
func (c *Client) Commitment() Commitment {
	return c.commitment
}

// Batch sends reqs and returns responses in request order. Request ids are
// assigned by the client. Per-call node errors are left in Response.Error.
func (c *Client) Batch(ctx context.Context, reqs []Request) ([]Response, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	method := batchMethod(reqs)
	ctx, span := c.tracer.Start(ctx, "rpc.batch", trace.WithAttributes(
		attribute.String("rpc.method", method),
		attribute.Int("rpc.batch_size", len(reqs)),
	))
	defer span.End()

	out := make([]Response, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for start := 0; start < len(reqs); start += c.batchSize {
		end := min(start+c.batchSize, len(reqs))
		chunk := make([]Request, end-start)
		copy(chunk, reqs[start:end])
		for i := range chunk {
			chunk[i].JSONRPC = "2.0"
			chunk[i].ID = i
		}
		dst := out[start:end]
		g.Go(func() error {
			resps, err := c.sendWithRetry(gctx, method, chunk)
			if err != nil {
				return err
			}
			copy(dst, resps)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(GetCategory(err)))
		return nil, err
	}
	return out, nil
}

func (c *Client) sendWithRetry(ctx context.Context, method string, chunk []Request) ([]Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := c.retryDelay << (attempt - 1)
			c.logger.DebugContext(ctx, "retrying rpc batch",
				"method", method,
				"attempt", attempt,
				"delay_ms", delay.Milliseconds(),
				"error", lastErr,
			)
			select {
			case <-ctx.Done():
				return nil, classifyTransport(method, ctx.Err())
			case <-time.After(delay):
			}
		}
		resps, err := c.send(ctx, method, chunk)
		if err == nil {
			return resps, nil
		}
		c.metrics.IncrementError(string(GetCategory(err)))
		lastErr = err
		if !IsRetryable(err) {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) send(ctx context.Context, method string, chunk []Request) ([]Response, error) {
	if c.breaker != nil && !c.breaker.Allow() {
		return nil, NewError(ErrorOutage, method, "endpoint breaker open", ErrCircuitOpen)
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, classifyTransport(method, err)
		}
	}

	start := time.Now()
	resps, err := c.post(ctx, method, chunk)
	c.metrics.ObserveRequest(method, len(chunk), time.Since(start))
	c.recordBreaker(ctx, err)
	return resps, err
}

func (c *Client) recordBreaker(ctx context.Context, err error) {
	if c.breaker == nil {
		return
	}
	// only endpoint health trips the breaker
	if err != nil && GetCategory(err) != ErrorOutage && GetCategory(err) != ErrorTimeout {
		return
	}
	if err != nil {
		if _, change := c.breaker.RecordFailure(); change.Opened {
			c.logger.WarnContext(ctx, "rpc circuit opened", "endpoint", c.breaker.Name(), "error", err)
			c.metrics.SetBreakerOpen(true)
		}
		return
	}
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "rpc circuit closed", "endpoint", c.breaker.Name())
		c.metrics.SetBreakerOpen(false)
	}
}

func (c *Client) post(ctx context.Context, method string, chunk []Request) ([]Response, error) {
	body, err := json.Marshal(chunk)
	if err != nil {
		return nil, NewError(ErrorInternal, method, "encode batch", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, NewError(ErrorInternal, method, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyTransport(method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, classifyTransport(method, err)
	}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewError(ErrorRateLimited, method, "endpoint rate limited", nil)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, NewError(ErrorOutage, method, fmt.Sprintf("endpoint returned %d", resp.StatusCode), nil)
	case resp.StatusCode != http.StatusOK:
		return nil, NewError(ErrorNodeError, method, fmt.Sprintf("endpoint returned %d", resp.StatusCode), nil)
	}
	return decodeBatch(method, raw, len(chunk))
}

// decodeBatch maps replies back to request positions by id. A single error
// object instead of an array fails the whole chunk.
func decodeBatch(method string, raw []byte, n int) ([]Response, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var single Response
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, NewError(ErrorBadData, method, "decode response", err)
		}
		if single.Error != nil {
			return nil, nodeError(method, single.Error)
		}
		return nil, NewError(ErrorBadData, method, "expected batch response", nil)
	}

	var resps []Response
	if err := json.Unmarshal(trimmed, &resps); err != nil {
		return nil, NewError(ErrorBadData, method, "decode batch response", err)
	}
	if len(resps) != n {
		return nil, NewError(ErrorBadData, method, fmt.Sprintf("got %d responses for %d requests", len(resps), n), nil)
	}
	ordered := make([]Response, n)
	seen := make([]bool, n)
	for _, r := range resps {
		idx, err := strconv.Atoi(string(bytes.TrimSpace(r.ID)))
		if err != nil || idx < 0 || idx >= n || seen[idx] {
			return nil, NewError(ErrorBadData, method, fmt.Sprintf("unexpected response id %s", r.ID), err)
		}
		seen[idx] = true
		ordered[idx] = r
	}
	return ordered, nil
}

func nodeError(method string, ne *NodeError) *Error {
	e := NewError(ErrorNodeError, method, ne.Message, nil)
	e.Code = ne.Code
	// -32005: node unhealthy / behind
	if ne.Code == -32005 {
		e.Category = ErrorOutage
		e.Retryable = true
	}
	return e
}

func batchMethod(reqs []Request) string {
	method := reqs[0].Method
	for _, r := range reqs[1:] {
		if r.Method != method {
			return "mixed"
		}
	}
	return method
}

// decodeResult unmarshals a single reply, converting node errors.
func decodeResult(method string, resp Response, out any) error {
	if resp.Error != nil {
		return nodeError(method, resp.Error)
	}
	if err := json.Unmarshal(resp.Result, out); err != nil {
		return NewError(ErrorBadData, method, "decode result", err)
	}
	return nil
}
