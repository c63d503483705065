// Package app builds the service graph shared by the HTTP server and the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	assetshandler "govassets/internal/assets/handler"
	assetsmetrics "govassets/internal/assets/metrics"
	assetsservice "govassets/internal/assets/service"
	"govassets/internal/assets/store"
	"govassets/internal/chain/rpc"
	"govassets/internal/governance"
	"govassets/internal/permissions"
	permissionshandler "govassets/internal/permissions/handler"
	"govassets/internal/platform/config"
	"govassets/internal/platform/metrics"
	"govassets/internal/platform/redis"
	"govassets/internal/prices"
	httptransport "govassets/internal/transport/http"
	"govassets/pkg/platform/circuit"
)

// App owns every long lived component.
type App struct {
	Config      config.Config
	RPC         *rpc.Client
	Loader      *governance.Loader
	Assets      *assetsservice.Service
	Permissions *permissions.Service

	redis  *redis.Client
	logger *slog.Logger
}

// New wires the components described by cfg and treasury. It connects to
// Redis when configured; the caller must Close the App.
func New(ctx context.Context, cfg config.Config, treasury config.Treasury, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{Config: cfg, logger: logger}

	breaker := circuit.New("rpc",
		circuit.WithFailureThreshold(cfg.Chain.BreakerThreshold),
		circuit.WithCooldown(cfg.Chain.BreakerCooldown),
	)
	client, err := rpc.New(cfg.Chain.Endpoint,
		rpc.WithHTTPClient(&http.Client{Timeout: cfg.Chain.Timeout}),
		rpc.WithCommitment(rpc.Commitment(cfg.Chain.Commitment)),
		rpc.WithBatchSize(cfg.Chain.BatchSize),
		rpc.WithConcurrency(cfg.Chain.Concurrency),
		rpc.WithRateLimit(cfg.Chain.RequestsPerSecond, cfg.Chain.Burst),
		rpc.WithRetries(cfg.Chain.MaxRetries, cfg.Chain.RetryDelay),
		rpc.WithBreaker(breaker),
		rpc.WithMetrics(rpc.NewMetrics()),
		rpc.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("rpc client: %w", err)
	}
	a.RPC = client

	if a.Loader, err = governance.NewLoader(client, governance.WithLogger(logger)); err != nil {
		return nil, fmt.Errorf("governance loader: %w", err)
	}

	snapshots, err := a.newStore(ctx)
	if err != nil {
		return nil, err
	}

	opts := []assetsservice.Option{
		assetsservice.WithTreasury(assetTreasury(treasury)),
		assetsservice.WithMetrics(assetsmetrics.New()),
		assetsservice.WithLogger(logger),
	}
	if cfg.Prices.Endpoint != "" {
		priceService, err := prices.New(cfg.Prices.Endpoint,
			prices.WithHTTPClient(&http.Client{Timeout: cfg.Prices.Timeout}),
			prices.WithTTL(cfg.Prices.CacheTTL),
			prices.WithLogger(logger),
		)
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("price service: %w", err)
		}
		opts = append(opts, assetsservice.WithPrices(priceService))
	} else {
		logger.WarnContext(ctx, "price endpoint not configured, price warming disabled")
	}
	if cfg.Server.AdminToken == "" {
		logger.WarnContext(ctx, "admin token not configured, load and refetch routes will refuse every request")
	}
	if a.Assets, err = assetsservice.New(client, a.Loader, snapshots, opts...); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("asset service: %w", err)
	}

	permOpts := []permissions.Option{
		permissions.WithSymbols(treasury.RealmSymbols),
		permissions.WithLogger(logger),
	}
	if len(treasury.VSRPlugins) > 0 {
		permOpts = append(permOpts, permissions.WithVSRPlugins(treasury.VSRPlugins))
	}
	if a.Permissions, err = permissions.New(a.Assets, a.Loader, permOpts...); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("permission service: %w", err)
	}
	return a, nil
}

// newStore picks Redis when a URL is configured and memory otherwise.
func (a *App) newStore(ctx context.Context) (assetsservice.Store, error) {
	client, err := redis.New(ctx, a.Config.Redis)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	if client == nil {
		a.logger.InfoContext(ctx, "snapshots kept in memory")
		return store.NewInMemory(), nil
	}
	a.redis = client
	a.logger.InfoContext(ctx, "snapshots kept in redis", "ttl", a.Config.SnapshotTTL.String())
	return store.NewRedis(client.Client, store.WithTTL(a.Config.SnapshotTTL)), nil
}

func assetTreasury(t config.Treasury) assetsservice.Treasury {
	out := assetsservice.DefaultTreasury()
	if t.HiddenGovernances != nil {
		out.HiddenGovernances = t.HiddenGovernances
	}
	if t.HiddenTreasuries != nil {
		out.HiddenTreasuries = t.HiddenTreasuries
	}
	if t.NFTTreasuryMint != nil {
		out.NFTTreasuryMint = *t.NFTTreasuryMint
	}
	if t.NativeSolTreasuryMint != nil {
		out.NativeSolTreasuryMint = *t.NativeSolTreasuryMint
	}
	return out
}

// Handler builds the HTTP router over the services.
func (a *App) Handler(reg prometheus.Registerer) http.Handler {
	health := map[string]httptransport.HealthCheck{
		"rpc": a.RPC.Health,
	}
	if a.redis != nil {
		health["redis"] = a.redis.Health
	}
	return httptransport.NewRouter(httptransport.RouterConfig{
		Logger:  a.logger,
		Metrics: metrics.New(reg),
		Health:  health,
	},
		assetshandler.New(a.Assets, a.Config.Server.AdminToken, a.logger),
		permissionshandler.New(a.Permissions, a.logger),
	)
}

// Close releases the Redis connection, if any.
func (a *App) Close() error {
	if a.redis == nil {
		return nil
	}
	err := a.redis.Close()
	a.redis = nil
	if err != nil {
		return fmt.Errorf("close redis: %w", err)
	}
	return nil
}
