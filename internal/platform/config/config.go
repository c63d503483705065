// Package config reads service configuration from GOVASSETS_* environment
// variables and an optional treasury YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const envPrefix = "GOVASSETS_"

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	AdminToken      string
	ShutdownTimeout time.Duration
}

// Chain configures the JSON-RPC client.
type Chain struct {
	Endpoint          string
	Commitment        string
	BatchSize         int
	Concurrency       int
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
	RetryDelay        time.Duration
	Timeout           time.Duration
	BreakerThreshold  int
	BreakerCooldown   time.Duration
}

// Prices configures the token price client. An empty endpoint disables
// price warming.
type Prices struct {
	Endpoint string
	CacheTTL time.Duration
	Timeout  time.Duration
}

// RedisConfig configures the snapshot cache. An empty URL keeps snapshots in
// memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Config struct {
	Server       Server
	Chain        Chain
	Prices       Prices
	Redis        RedisConfig
	SnapshotTTL  time.Duration
	LogLevel     string
	TreasuryFile string
}

// FromEnv builds a Config from environment variables so main stays lean.
// Every malformed value is reported, not just the first.
func FromEnv() (Config, error) {
	e := &env{lookup: os.LookupEnv}
	cfg := Config{
		Server: Server{
			Addr:            e.str("ADDR", ":8080"),
			AdminToken:      e.str("ADMIN_TOKEN", ""),
			ShutdownTimeout: e.duration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Chain: Chain{
			Endpoint:          e.str("RPC_ENDPOINT", "https://api.mainnet-beta.solana.com"),
			Commitment:        e.str("RPC_COMMITMENT", "confirmed"),
			BatchSize:         e.integer("RPC_BATCH_SIZE", 100),
			Concurrency:       e.integer("RPC_CONCURRENCY", 4),
			RequestsPerSecond: e.float("RPC_REQUESTS_PER_SECOND", 10),
			Burst:             e.integer("RPC_BURST", 5),
			MaxRetries:        e.integer("RPC_MAX_RETRIES", 2),
			RetryDelay:        e.duration("RPC_RETRY_DELAY", 200*time.Millisecond),
			Timeout:           e.duration("RPC_TIMEOUT", 30*time.Second),
			BreakerThreshold:  e.integer("RPC_BREAKER_THRESHOLD", 5),
			BreakerCooldown:   e.duration("RPC_BREAKER_COOLDOWN", 30*time.Second),
		},
		Prices: Prices{
			Endpoint: e.str("PRICE_ENDPOINT", ""),
			CacheTTL: e.duration("PRICE_CACHE_TTL", 5*time.Minute),
			Timeout:  e.duration("PRICE_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			URL:          e.str("REDIS_URL", ""),
			PoolSize:     e.integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: e.integer("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  e.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  e.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: e.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		SnapshotTTL:  e.duration("SNAPSHOT_TTL", 10*time.Minute),
		LogLevel:     e.str("LOG_LEVEL", "info"),
		TreasuryFile: e.str("TREASURY_FILE", ""),
	}
	switch cfg.Chain.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		e.errs = append(e.errs, fmt.Errorf("%sRPC_COMMITMENT must be processed, confirmed or finalized", envPrefix))
	}
	if cfg.Chain.BatchSize > 100 {
		e.errs = append(e.errs, fmt.Errorf("%sRPC_BATCH_SIZE must not exceed 100", envPrefix))
	}
	return cfg, errors.Join(e.errs...)
}

type env struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *env) str(key, def string) string {
	if v, ok := e.lookup(envPrefix + key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (e *env) integer(key string, def int) int {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s%s: %w", envPrefix, key, err))
		return def
	}
	return v
}

func (e *env) float(key string, def float64) float64 {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s%s: %w", envPrefix, key, err))
		return def
	}
	return v
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s%s: %w", envPrefix, key, err))
		return def
	}
	return v
}
