// Package service discovers and caches the assets governed by a realm's
// governances.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"govassets/internal/assets/metrics"
	"govassets/internal/assets/models"
	"govassets/internal/chain/rpc"
	"govassets/internal/governance"
	id "govassets/pkg/domain"
	dErrors "govassets/pkg/domain-errors"
)

const (
	operationLoad    = "load"
	operationRefetch = "refetch"
)

// Service owns the per-realm asset snapshot. Loads for the same realm are
// collapsed and every mutation of a realm's snapshot is serialized.
type Service struct {
	chain    ChainReader
	loader   GovernanceLoader
	store    Store
	prices   PriceFetcher
	treasury Treasury
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   trace.Tracer
	now      func() time.Time

	flights     singleflight.Group
	locks       sync.Map // id.PublicKey -> *sync.Mutex
	generations sync.Map // id.PublicKey -> *atomic.Uint64, bumped by SetGovernances
}

type Option func(*Service)

func WithPrices(p PriceFetcher) Option {
	return func(s *Service) {
		s.prices = p
	}
}

func WithTreasury(t Treasury) Option {
	return func(s *Service) {
		s.treasury = t
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(chain ChainReader, loader GovernanceLoader, store Store, opts ...Option) (*Service, error) {
	if chain == nil {
		return nil, errors.New("chain reader is required")
	}
	if loader == nil {
		return nil, errors.New("governance loader is required")
	}
	if store == nil {
		return nil, errors.New("state store is required")
	}
	s := &Service{
		chain:    chain,
		loader:   loader,
		store:    store,
		treasury: DefaultTreasury(),
		logger:   slog.Default(),
		tracer:   otel.Tracer("govassets/internal/assets/service"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) lock(realm id.PublicKey) func() {
	v, _ := s.locks.LoadOrStore(realm, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *Service) generation(realm id.PublicKey) *atomic.Uint64 {
	v, _ := s.generations.LoadOrStore(realm, new(atomic.Uint64))
	return v.(*atomic.Uint64)
}

// loadKey names the load flight of the realm's current governance set, so a
// load started after SetGovernances never joins a flight of the previous set.
func (s *Service) loadKey(realm id.PublicKey) string {
	return fmt.Sprintf("load:%s:%d", realm, s.generation(realm).Load())
}

// shared runs fn once per key for every concurrent caller. fn runs detached
// from the caller's cancellation so one caller leaving does not fail the
// others; each caller still stops waiting when its own ctx ends.
func (s *Service) shared(ctx context.Context, key string, fn func(context.Context) (*models.State, error)) (*models.State, error) {
	detached := context.WithoutCancel(ctx)
	ch := s.flights.DoChan(key, func() (any, error) {
		return fn(detached)
	})
	select {
	case <-ctx.Done():
		return nil, translateError(ctx.Err(), "wait for "+key)
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.logger.DebugContext(ctx, "collapsed into in-flight run", "flight", key)
		}
		return res.Val.(*models.State), nil
	}
}

// LoadRealm reads realm and its governances from chain and discovers their
// assets.
func (s *Service) LoadRealm(ctx context.Context, realm id.PublicKey) (*models.State, error) {
	return s.shared(ctx, "realm:"+realm.String(), func(ctx context.Context) (*models.State, error) {
		r, err := s.loader.LoadRealm(ctx, realm)
		if err != nil {
			return nil, translateError(err, "load realm")
		}
		governances, err := s.loader.LoadGovernances(ctx, r.Owner, r.Pubkey)
		if err != nil {
			return nil, translateError(err, "load governances")
		}
		return s.SetGovernances(ctx, r, governances)
	})
}

// SetGovernances replaces the governances of realm, dropping hidden ones, and
// reloads the governed accounts.
func (s *Service) SetGovernances(ctx context.Context, realm governance.Realm, governances map[string]governance.Governance) (*models.State, error) {
	keys := make([]string, 0, len(governances))
	for k := range governances {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	filtered := make([]governance.Governance, 0, len(keys))
	for _, k := range keys {
		g := governances[k]
		if s.treasury.HiddenGovernances.Has(g.Pubkey) {
			continue
		}
		filtered = append(filtered, g)
	}

	unlock := s.lock(realm.Pubkey)
	err := s.store.Save(ctx, &models.State{
		Realm:       realm,
		Governances: filtered,
		UpdatedAt:   s.now(),
	})
	if err == nil {
		s.generation(realm.Pubkey).Add(1)
	}
	unlock()
	if err != nil {
		return nil, translateError(err, "save governances")
	}
	s.logger.InfoContext(ctx, "governances set",
		"realm", realm.Pubkey.String(),
		"governances", len(filtered),
		"hidden", len(governances)-len(filtered),
	)
	return s.LoadGovernedAccounts(ctx, realm.Pubkey)
}

// LoadGovernedAccounts rediscovers every governed account of the realm's
// stored governances.
func (s *Service) LoadGovernedAccounts(ctx context.Context, realm id.PublicKey) (*models.State, error) {
	return s.shared(ctx, s.loadKey(realm), func(ctx context.Context) (*models.State, error) {
		return s.loadGovernedAccounts(ctx, realm)
	})
}

func (s *Service) loadGovernedAccounts(ctx context.Context, realm id.PublicKey) (*models.State, error) {
	unlock := s.lock(realm)
	defer unlock()

	state, err := s.store.Get(ctx, realm)
	if err != nil {
		return nil, translateError(err, "realm not loaded")
	}
	state.Loading = true
	state.AssetAccounts = nil
	state.GovernedTokenAccounts = nil
	if err := s.store.Save(ctx, state); err != nil {
		return nil, translateError(err, "save loading state")
	}

	start := s.now()
	var accounts []models.AssetAccount
	if len(state.Governances) > 0 {
		accounts, err = s.discover(ctx, state.Realm, state.Governances)
	}
	duration := s.now().Sub(start)
	state.Loading = false
	if err != nil {
		s.metrics.IncrementLoadFailure(operationLoad)
		s.logger.ErrorContext(ctx, "governed account discovery failed",
			"realm", realm.String(),
			"duration_ms", duration.Milliseconds(),
			"error", err,
		)
		if saveErr := s.store.Save(context.WithoutCancel(ctx), state); saveErr != nil {
			s.logger.ErrorContext(ctx, "failed to clear loading state", "realm", realm.String(), "error", saveErr)
		}
		return nil, translateError(err, "discover governed accounts")
	}

	state.AssetAccounts = s.treasury.filterVisible(accounts, false)
	state.GovernedTokenAccounts = s.treasury.filterVisible(accounts, true)
	state.UpdatedAt = s.now()
	if err := s.store.Save(ctx, state); err != nil {
		return nil, translateError(err, "save governed accounts")
	}
	s.observe(operationLoad, duration, state.AssetAccounts)
	s.logger.InfoContext(ctx, "governed accounts loaded",
		"realm", realm.String(),
		"accounts", len(state.AssetAccounts),
		"treasury_accounts", len(state.GovernedTokenAccounts),
		"duration_ms", duration.Milliseconds(),
	)
	return state, nil
}

// RefetchGovernanceAccounts rediscovers the accounts of one governance and
// keeps every other governance's accounts as they were.
func (s *Service) RefetchGovernanceAccounts(ctx context.Context, realm, governancePk id.PublicKey) (*models.State, error) {
	unlock := s.lock(realm)
	defer unlock()

	state, err := s.store.Get(ctx, realm)
	if err != nil {
		return nil, translateError(err, "realm not loaded")
	}
	var target []governance.Governance
	for _, g := range state.Governances {
		if g.Pubkey == governancePk {
			target = append(target, g)
		}
	}
	if len(target) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, fmt.Sprintf("governance %s not found in realm", governancePk))
	}

	start := s.now()
	accounts, err := s.discover(ctx, state.Realm, target)
	duration := s.now().Sub(start)
	if err != nil {
		s.metrics.IncrementLoadFailure(operationRefetch)
		s.logger.ErrorContext(ctx, "governance refetch failed",
			"realm", realm.String(),
			"governance", governancePk.String(),
			"error", err,
		)
		return nil, translateError(err, "refetch governance accounts")
	}

	combined := make([]models.AssetAccount, 0, len(state.AssetAccounts)+len(accounts))
	for _, a := range state.AssetAccounts {
		if a.Governance.Pubkey != governancePk {
			combined = append(combined, a)
		}
	}
	combined = append(combined, accounts...)

	state.Loading = false
	state.AssetAccounts = s.treasury.filterVisible(combined, false)
	state.GovernedTokenAccounts = s.treasury.filterVisible(combined, true)
	state.UpdatedAt = s.now()
	if err := s.store.Save(ctx, state); err != nil {
		return nil, translateError(err, "save governed accounts")
	}
	s.observe(operationRefetch, duration, accounts)
	s.logger.InfoContext(ctx, "governance accounts refetched",
		"realm", realm.String(),
		"governance", governancePk.String(),
		"accounts", len(accounts),
		"duration_ms", duration.Milliseconds(),
	)
	return state, nil
}

// State returns the current snapshot of realm.
func (s *Service) State(ctx context.Context, realm id.PublicKey) (*models.State, error) {
	state, err := s.store.Get(ctx, realm)
	if err != nil {
		return nil, translateError(err, "realm not loaded")
	}
	return state, nil
}

func (s *Service) observe(operation string, d time.Duration, accounts []models.AssetAccount) {
	s.metrics.ObserveDiscovery(operation, d)
	counts := make(map[models.AccountType]int)
	for _, a := range accounts {
		counts[a.Type]++
	}
	for t, n := range counts {
		s.metrics.AddDiscovered(string(t), n)
	}
}

// translateError maps store and chain failures to domain errors.
func translateError(err error, msg string) error {
	return rpc.ToDomainError(err, msg)
}
