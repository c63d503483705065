package governance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"govassets/internal/chain/rpc"
	id "govassets/pkg/domain"
	"govassets/pkg/platform/sentinel"
)

// AccountReader is the slice of the chain client the loader needs.
type AccountReader interface {
	GetAccountInfoBatch(ctx context.Context, keys []id.PublicKey) ([]*rpc.AccountInfo, error)
	GetProgramAccountsBatch(ctx context.Context, program id.PublicKey, filterSets [][]rpc.Filter) ([][]rpc.KeyedAccount, error)
}

// realmOffset is where every governance account stores its realm.
const realmOffset = 1

var governanceTypes = []AccountType{
	AccountTypeGovernanceV1, AccountTypeGovernanceV2,
	AccountTypeProgramGovernanceV1, AccountTypeProgramGovernanceV2,
	AccountTypeMintGovernanceV1, AccountTypeMintGovernanceV2,
	AccountTypeTokenGovernanceV1, AccountTypeTokenGovernanceV2,
}

// Loader reads governance program accounts from chain.
type Loader struct {
	reader AccountReader
	logger *slog.Logger
}

type Option func(*Loader)

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

func NewLoader(reader AccountReader, opts ...Option) (*Loader, error) {
	if reader == nil {
		return nil, errors.New("account reader is required")
	}
	l := &Loader{reader: reader, logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// LoadRealm fetches and decodes the realm account. The realm's owner is the
// governance program it belongs to.
func (l *Loader) LoadRealm(ctx context.Context, realm id.PublicKey) (Realm, error) {
	infos, err := l.reader.GetAccountInfoBatch(ctx, []id.PublicKey{realm})
	if err != nil {
		return Realm{}, fmt.Errorf("fetch realm %s: %w", realm, err)
	}
	if len(infos) == 0 || infos[0] == nil {
		return Realm{}, fmt.Errorf("realm %s: %w", realm, sentinel.ErrNotFound)
	}
	return DecodeRealm(realm, infos[0].Owner, infos[0].Data)
}

// LoadGovernances returns every governance of realm under program, keyed by
// base58 address. One filter set per governance tag goes out in a single batch.
func (l *Loader) LoadGovernances(ctx context.Context, program, realm id.PublicKey) (map[string]Governance, error) {
	filterSets := make([][]rpc.Filter, len(governanceTypes))
	for i, t := range governanceTypes {
		filterSets[i] = []rpc.Filter{
			rpc.MemcmpFilter(0, []byte{byte(t)}),
			rpc.MemcmpFilter(realmOffset, realm[:]),
		}
	}
	results, err := l.reader.GetProgramAccountsBatch(ctx, program, filterSets)
	if err != nil {
		return nil, fmt.Errorf("fetch governances of %s: %w", realm, err)
	}

	out := make(map[string]Governance)
	for _, accounts := range results {
		for _, acc := range accounts {
			if acc.Account == nil {
				continue
			}
			g, err := DecodeGovernance(acc.Pubkey, acc.Account.Owner, acc.Account.Data)
			if err != nil {
				return nil, err
			}
			out[acc.Pubkey.String()] = g
		}
	}
	l.logger.DebugContext(ctx, "governances loaded", "realm", realm.String(), "count", len(out))
	return out, nil
}

// LoadRealmConfig returns the realm config account, or nil when the realm has
// never configured plugins.
func (l *Loader) LoadRealmConfig(ctx context.Context, realm Realm) (*RealmConfigAccount, error) {
	addr, err := RealmConfigAddress(realm.Owner, realm.Pubkey)
	if err != nil {
		return nil, err
	}
	infos, err := l.reader.GetAccountInfoBatch(ctx, []id.PublicKey{addr})
	if err != nil {
		return nil, fmt.Errorf("fetch realm config %s: %w", addr, err)
	}
	if len(infos) == 0 || infos[0] == nil {
		return nil, nil
	}
	cfg, err := DecodeRealmConfigAccount(addr, infos[0].Data)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// OwnerRecords holds a wallet's deposit records for the two governing mints.
type OwnerRecords struct {
	Community *TokenOwnerRecord
	Council   *TokenOwnerRecord
}

// LoadTokenOwnerRecords fetches the community and council records of wallet.
// Missing records are nil.
func (l *Loader) LoadTokenOwnerRecords(ctx context.Context, realm Realm, wallet id.PublicKey) (OwnerRecords, error) {
	mints := []id.PublicKey{realm.CommunityMint}
	if realm.Config.CouncilMint != nil {
		mints = append(mints, *realm.Config.CouncilMint)
	}
	keys := make([]id.PublicKey, len(mints))
	for i, mint := range mints {
		addr, err := TokenOwnerRecordAddress(realm.Owner, realm.Pubkey, mint, wallet)
		if err != nil {
			return OwnerRecords{}, err
		}
		keys[i] = addr
	}
	infos, err := l.reader.GetAccountInfoBatch(ctx, keys)
	if err != nil {
		return OwnerRecords{}, fmt.Errorf("fetch token owner records of %s: %w", wallet, err)
	}

	var records OwnerRecords
	for i, info := range infos {
		if info == nil {
			continue
		}
		rec, err := DecodeTokenOwnerRecord(keys[i], info.Data)
		if err != nil {
			return OwnerRecords{}, err
		}
		if i == 0 {
			records.Community = &rec
		} else {
			records.Council = &rec
		}
	}
	return records, nil
}
