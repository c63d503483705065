// Package prices looks up USD token prices from an HTTP price service and
// keeps them in an expiring in-memory cache.
package prices

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	platformstrings "govassets/pkg/platform/strings"
)

const (
	defaultTTL      = 5 * time.Minute
	defaultIDsLimit = 100
)

// Service fetches prices by mint address.
type Service struct {
	baseURL  string
	http     *http.Client
	cache    *cache.Cache
	idsLimit int
	logger   *slog.Logger
}

type Option func(*Service)

func WithHTTPClient(c *http.Client) Option {
	return func(s *Service) {
		if c != nil {
			s.http = c
		}
	}
}

// WithTTL sets how long a fetched price is served from cache.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cache = cache.New(ttl, 2*ttl)
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(baseURL string, opts ...Option) (*Service, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("price service url is required")
	}
	s := &Service{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 10 * time.Second},
		cache:    cache.New(defaultTTL, 2*defaultTTL),
		idsLimit: defaultIDsLimit,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

type priceResponse struct {
	Data map[string]struct {
		ID    string  `json:"id"`
		Price float64 `json:"price"`
	} `json:"data"`
}

// FetchTokenPrices warms the cache for mints that are not cached yet.
func (s *Service) FetchTokenPrices(ctx context.Context, mints []string) error {
	var missing []string
	for _, mint := range platformstrings.DedupeAndTrim(mints) {
		if _, ok := s.cache.Get(mint); !ok {
			missing = append(missing, mint)
		}
	}
	for _, ids := range platformstrings.Chunk(missing, s.idsLimit) {
		if err := s.fetch(ctx, ids); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) fetch(ctx context.Context, ids []string) error {
	u := s.baseURL + "/price?ids=" + url.QueryEscape(strings.Join(ids, ","))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build price request: %w", err)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("price request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("price service returned %d", resp.StatusCode)
	}

	var body priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode price response: %w", err)
	}
	for mint, p := range body.Data {
		s.cache.SetDefault(mint, p.Price)
	}
	s.logger.DebugContext(ctx, "token prices fetched", "requested", len(ids), "priced", len(body.Data))
	return nil
}

// Price returns the cached USD price of mint.
func (s *Service) Price(mint string) (float64, bool) {
	v, ok := s.cache.Get(mint)
	if !ok {
		return 0, false
	}
	return v.(float64), true
}
