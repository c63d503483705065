package permissions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"govassets/internal/assets/models"
	"govassets/internal/chain/rpc"
	"govassets/internal/governance"
	id "govassets/pkg/domain"
	"govassets/pkg/requestcontext"
)

// DefaultVSRPlugins are the voter stake registry program ids that unlock the
// grant and clawback instructions.
var DefaultVSRPlugins = []string{
	"4Q6WW2ouZ6V3iaNm56MTd5n2tnTm4C5fiH8miFHnAFHo",
	"vsr2nfGVNHmSY8uxoBGqq8AQbwz3JwaEaHqGbsTPXqQ",
}

// AssetState reads the asset snapshot of a loaded realm.
type AssetState interface {
	State(ctx context.Context, realm id.PublicKey) (*models.State, error)
}

// GovernanceReader loads the per-voter governance accounts of a realm.
type GovernanceReader interface {
	LoadGovernances(ctx context.Context, program, realm id.PublicKey) (map[string]governance.Governance, error)
	LoadRealmConfig(ctx context.Context, realm governance.Realm) (*governance.RealmConfigAccount, error)
	LoadTokenOwnerRecords(ctx context.Context, realm governance.Realm, wallet id.PublicKey) (governance.OwnerRecords, error)
}

// Service evaluates a wallet's permissions against a loaded realm.
type Service struct {
	assets     AssetState
	governance GovernanceReader
	vsrPlugins id.PublicKeySet
	symbols    map[id.PublicKey]string
	logger     *slog.Logger
}

type Option func(*Service)

func WithVSRPlugins(plugins id.PublicKeySet) Option {
	return func(s *Service) {
		if plugins != nil {
			s.vsrPlugins = plugins
		}
	}
}

// WithSymbols sets realm display symbols. Realms without one use their name.
func WithSymbols(symbols map[id.PublicKey]string) Option {
	return func(s *Service) {
		s.symbols = symbols
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func New(assets AssetState, gov GovernanceReader, opts ...Option) (*Service, error) {
	if assets == nil {
		return nil, errors.New("asset state reader is required")
	}
	if gov == nil {
		return nil, errors.New("governance reader is required")
	}
	s := &Service{
		assets:     assets,
		governance: gov,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.vsrPlugins == nil {
		plugins, err := id.NewPublicKeySet(DefaultVSRPlugins...)
		if err != nil {
			return nil, fmt.Errorf("default vsr plugins: %w", err)
		}
		s.vsrPlugins = plugins
	}
	return s, nil
}

// Result is a wallet's evaluated permissions in one realm.
type Result struct {
	Realm        id.PublicKey        `json:"realm"`
	Wallet       id.PublicKey        `json:"wallet"`
	Symbol       string              `json:"symbol"`
	Flags        Flags               `json:"flags"`
	Instructions []InstructionOption `json:"instructions"`
	SnapshotAt   time.Time           `json:"snapshot_at"`
	EvaluatedAt  time.Time           `json:"evaluated_at"`
}

// Evaluate reads the realm snapshot, fetches the realm config account, the
// wallet's token owner records and the full governance list in parallel, and
// derives the wallet's flags.
func (s *Service) Evaluate(ctx context.Context, realm, wallet id.PublicKey) (*Result, error) {
	state, err := s.assets.State(ctx, realm)
	if err != nil {
		return nil, err
	}

	var (
		config  *governance.RealmConfigAccount
		records governance.OwnerRecords
		all     map[string]governance.Governance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		config, err = s.governance.LoadRealmConfig(gctx, state.Realm)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = s.governance.LoadTokenOwnerRecords(gctx, state.Realm, wallet)
		return err
	})
	g.Go(func() error {
		var err error
		all, err = s.governance.LoadGovernances(gctx, state.Realm.Owner, state.Realm.Pubkey)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "failed to load voter accounts", "realm", realm.String(), "wallet", wallet.String(), "error", err)
		return nil, rpc.ToDomainError(err, "load voter accounts")
	}

	symbol, ok := s.symbols[realm]
	if !ok {
		symbol = state.Realm.Name
	}
	r := state.Realm
	eval := NewEvaluator(Input{
		Realm:                 &r,
		RealmConfig:           config,
		Symbol:                symbol,
		Governances:           state.Governances,
		AllGovernances:        sortedGovernances(all),
		GovernedTokenAccounts: state.GovernedTokenAccounts,
		VoterWeight:           NewTokenOwnerVoterWeight(records),
		VSRPlugins:            s.vsrPlugins,
	})
	return &Result{
		Realm:        realm,
		Wallet:       wallet,
		Symbol:       symbol,
		Flags:        eval.Flags(),
		Instructions: eval.GetAvailableInstructions(),
		SnapshotAt:   state.UpdatedAt,
		EvaluatedAt:  requestcontext.Now(ctx),
	}, nil
}

func sortedGovernances(m map[string]governance.Governance) []governance.Governance {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]governance.Governance, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
