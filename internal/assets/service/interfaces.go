package service

import (
	"context"

	"govassets/internal/assets/models"
	"govassets/internal/chain/rpc"
	"govassets/internal/governance"
	id "govassets/pkg/domain"
)

// ChainReader is the batched chain access discovery runs on.
type ChainReader interface {
	GetMultipleAccounts(ctx context.Context, keys []id.PublicKey) ([]*rpc.AccountInfo, error)
	GetAccountInfoBatch(ctx context.Context, keys []id.PublicKey) ([]*rpc.AccountInfo, error)
	GetProgramAccountsBatch(ctx context.Context, program id.PublicKey, filterSets [][]rpc.Filter) ([][]rpc.KeyedAccount, error)
	GetTokenAccountsByOwner(ctx context.Context, owner, tokenProgram id.PublicKey) ([]rpc.KeyedAccount, error)
	GetMinimumBalanceForRentExemption(ctx context.Context, size uint64) (uint64, error)
}

// GovernanceLoader reads a realm and its governances from chain.
type GovernanceLoader interface {
	LoadRealm(ctx context.Context, realm id.PublicKey) (governance.Realm, error)
	LoadGovernances(ctx context.Context, program, realm id.PublicKey) (map[string]governance.Governance, error)
}

// PriceFetcher warms and serves USD prices by mint.
type PriceFetcher interface {
	FetchTokenPrices(ctx context.Context, mints []string) error
	Price(mint string) (float64, bool)
}

// Store keeps the last snapshot per realm.
type Store interface {
	Get(ctx context.Context, realm id.PublicKey) (*models.State, error)
	Save(ctx context.Context, state *models.State) error
}
