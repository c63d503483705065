package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"govassets/internal/assets/models"
	"govassets/internal/chain"
	"govassets/internal/chain/rpc"
	"govassets/internal/governance"
	id "govassets/pkg/domain"
)

// ownerConcurrency caps the per-treasury getTokenAccountsByOwner calls.
const ownerConcurrency = 4

type keyedToken struct {
	pubkey  id.PublicKey
	account chain.TokenAccount
}

type nativeTreasury struct {
	gov     governance.Governance
	address id.PublicKey
	account *rpc.AccountInfo
}

// discovered carries the independent fetches of one discovery run.
type discovered struct {
	mintAccounts    []models.AssetAccount
	ownedTokens     [][]keyedToken
	mints           mintInfo
	nativeTreasures []nativeTreasury
}

// discover returns every governed asset of governances in display order:
// mints, programs, then token, NFT and SOL accounts.
func (s *Service) discover(ctx context.Context, realm governance.Realm, governances []governance.Governance) ([]models.AssetAccount, error) {
	ctx, span := s.tracer.Start(ctx, "assets.discover", trace.WithAttributes(
		attribute.String("realm", realm.Pubkey.String()),
		attribute.Int("governances", len(governances)),
	))
	defer span.End()

	var mintGovs, programGovs []governance.Governance
	for _, g := range governances {
		switch {
		case g.HasType(governance.MintGovernanceTypes...):
			mintGovs = append(mintGovs, g)
		case g.HasType(governance.ProgramGovernanceTypes...):
			programGovs = append(programGovs, g)
		}
	}

	d := &discovered{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		accounts, err := s.mintAccounts(gctx, mintGovs)
		d.mintAccounts = accounts
		return err
	})
	g.Go(func() error {
		owned, mints, err := s.governanceTokenAccounts(gctx, governances)
		d.ownedTokens, d.mints = owned, mints
		return err
	})
	g.Go(func() error {
		treasuries, err := s.nativeTreasuries(gctx, realm, governances)
		d.nativeTreasures = treasuries
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	var treasuryAccounts []models.AssetAccount
	for i, tokens := range d.ownedTokens {
		for _, t := range tokens {
			if acc, ok := s.treasury.classify(t.pubkey, t.account, d.mints, governances[i]); ok {
				treasuryAccounts = append(treasuryAccounts, acc)
			}
		}
	}
	solOwned, solAccounts, err := s.solAccounts(ctx, d.nativeTreasures, d.mints[chain.WrappedSOLMint])
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	treasuryAccounts = append(treasuryAccounts, solOwned...)
	treasuryAccounts = append(treasuryAccounts, solAccounts...)

	s.warmPrices(ctx, treasuryAccounts)

	out := make([]models.AssetAccount, 0, len(d.mintAccounts)+len(programGovs)+len(treasuryAccounts))
	out = append(out, d.mintAccounts...)
	for _, pg := range programGovs {
		out = append(out, models.NewProgramAccount(pg))
	}
	out = append(out, treasuryAccounts...)
	return out, nil
}

// mintAccounts loads the mints governed by mint governances. Every governed
// mint must exist.
func (s *Service) mintAccounts(ctx context.Context, mintGovs []governance.Governance) ([]models.AssetAccount, error) {
	if len(mintGovs) == 0 {
		return nil, nil
	}
	keys := make([]id.PublicKey, len(mintGovs))
	for i, g := range mintGovs {
		keys[i] = g.GovernedAccount
	}
	infos, err := s.chain.GetMultipleAccounts(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch governed mints: %w", err)
	}
	out := make([]models.AssetAccount, 0, len(mintGovs))
	for i, info := range infos {
		if info == nil {
			return nil, fmt.Errorf("missing mint account info for %s", mintGovs[i].Pubkey)
		}
		mint, err := chain.ParseMint(info.Data)
		if err != nil {
			return nil, fmt.Errorf("governed mint of %s: %w", mintGovs[i].Pubkey, err)
		}
		out = append(out, models.NewMintAccount(mintGovs[i], mint))
	}
	return out, nil
}

// governanceTokenAccounts fetches the token accounts owned by each governance
// in one batch, then the mints they hold plus wrapped SOL.
func (s *Service) governanceTokenAccounts(ctx context.Context, governances []governance.Governance) ([][]keyedToken, mintInfo, error) {
	filterSets := make([][]rpc.Filter, len(governances))
	for i, g := range governances {
		filterSets[i] = []rpc.Filter{
			rpc.DataSizeFilter(chain.TokenAccountSize),
			rpc.MemcmpFilter(chain.TokenAccountOwnerOffset, g.Pubkey[:]),
		}
	}
	results, err := s.chain.GetProgramAccountsBatch(ctx, chain.TokenProgramID, filterSets)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch governance token accounts: %w", err)
	}

	owned := make([][]keyedToken, len(governances))
	var mintKeys []id.PublicKey
	for i, accounts := range results {
		tokens, err := parseTokenAccounts(accounts)
		if err != nil {
			return nil, nil, err
		}
		owned[i] = tokens
		for _, t := range tokens {
			mintKeys = append(mintKeys, t.account.Mint)
		}
	}
	// wrapped SOL prices the native treasuries
	mintKeys = append(mintKeys, chain.WrappedSOLMint)

	mints, err := s.fetchMints(ctx, mintKeys)
	if err != nil {
		return nil, nil, err
	}
	return owned, mints, nil
}

func parseTokenAccounts(accounts []rpc.KeyedAccount) ([]keyedToken, error) {
	out := make([]keyedToken, 0, len(accounts))
	for _, acc := range accounts {
		if acc.Account == nil {
			continue
		}
		token, err := chain.ParseTokenAccount(acc.Account.Data)
		if err != nil {
			return nil, fmt.Errorf("token account %s: %w", acc.Pubkey, err)
		}
		out = append(out, keyedToken{pubkey: acc.Pubkey, account: token})
	}
	return out, nil
}

// fetchMints resolves unique mint keys with one batched getAccountInfo. Missing
// or unparseable mints are left out of the result.
func (s *Service) fetchMints(ctx context.Context, keys []id.PublicKey) (mintInfo, error) {
	unique := uniqueKeys(keys)
	out := make(mintInfo, len(unique))
	if len(unique) == 0 {
		return out, nil
	}
	infos, err := s.chain.GetAccountInfoBatch(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("fetch mint accounts: %w", err)
	}
	for i, info := range infos {
		if info == nil {
			continue
		}
		mint, err := chain.ParseMint(info.Data)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping unparseable mint", "mint", unique[i].String(), "error", err)
			continue
		}
		out[unique[i]] = &models.MintExtension{Pubkey: unique[i], Account: mint}
	}
	return out, nil
}

// nativeTreasuries derives the SOL treasury of every governance and keeps the
// ones that exist on chain.
func (s *Service) nativeTreasuries(ctx context.Context, realm governance.Realm, governances []governance.Governance) ([]nativeTreasury, error) {
	addresses := make([]id.PublicKey, len(governances))
	for i, g := range governances {
		addr, err := chain.NativeTreasuryAddress(realm.Owner, g.Pubkey)
		if err != nil {
			return nil, err
		}
		addresses[i] = addr
	}
	infos, err := s.chain.GetAccountInfoBatch(ctx, addresses)
	if err != nil {
		return nil, fmt.Errorf("fetch native treasuries: %w", err)
	}
	var out []nativeTreasury
	for i, info := range infos {
		if info == nil {
			continue
		}
		out = append(out, nativeTreasury{gov: governances[i], address: addresses[i], account: info})
	}
	return out, nil
}

// solAccounts classifies the token accounts held by each native treasury and
// builds the SOL accounts with the zero-byte rent minimum subtracted.
func (s *Service) solAccounts(ctx context.Context, treasuries []nativeTreasury, wsol *models.MintExtension) ([]models.AssetAccount, []models.AssetAccount, error) {
	if len(treasuries) == 0 {
		return nil, nil, nil
	}

	owned := make([][]models.AssetAccount, len(treasuries))
	var rent uint64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ownerConcurrency)
	g.Go(func() error {
		var err error
		rent, err = s.chain.GetMinimumBalanceForRentExemption(gctx, 0)
		if err != nil {
			return fmt.Errorf("fetch rent exemption minimum: %w", err)
		}
		return nil
	})
	for i, t := range treasuries {
		g.Go(func() error {
			accounts, err := s.chain.GetTokenAccountsByOwner(gctx, t.address, chain.TokenProgramID)
			if err != nil {
				return fmt.Errorf("fetch token accounts of native treasury %s: %w", t.address, err)
			}
			tokens, err := parseTokenAccounts(accounts)
			if err != nil {
				return err
			}
			mintKeys := make([]id.PublicKey, len(tokens))
			for j, tok := range tokens {
				mintKeys[j] = tok.account.Mint
			}
			mints, err := s.fetchMints(gctx, mintKeys)
			if err != nil {
				return err
			}
			for _, tok := range tokens {
				if acc, ok := s.treasury.classify(tok.pubkey, tok.account, mints, t.gov); ok {
					owned[i] = append(owned[i], acc)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var tokens, sols []models.AssetAccount
	for i, t := range treasuries {
		tokens = append(tokens, owned[i]...)
		lamports := t.account.Lamports
		if lamports != 0 {
			lamports = saturatingSub(lamports, rent)
		}
		sols = append(sols, models.NewSolAccount(wsol, t.address, models.SolAccount{
			Lamports: lamports,
			Owner:    t.account.Owner,
		}, t.gov))
	}
	return tokens, sols, nil
}

// warmPrices fetches prices for the mints of treasury accounts and attaches
// the known ones. A price failure never fails discovery.
func (s *Service) warmPrices(ctx context.Context, accounts []models.AssetAccount) {
	if s.prices == nil {
		return
	}
	var mints []string
	for _, a := range accounts {
		if a.Extensions.Mint != nil {
			mints = append(mints, a.Extensions.Mint.Pubkey.String())
		}
	}
	if len(mints) == 0 {
		return
	}
	if err := s.prices.FetchTokenPrices(ctx, mints); err != nil {
		s.metrics.IncrementPriceFailure()
		s.logger.WarnContext(ctx, "token price fetch failed", "mints", len(mints), "error", err)
	}
	for i := range accounts {
		mint := accounts[i].Extensions.Mint
		if mint == nil {
			continue
		}
		if price, ok := s.prices.Price(mint.Pubkey.String()); ok {
			accounts[i].Extensions.USDPrice = &price
		}
	}
}

func uniqueKeys(keys []id.PublicKey) []id.PublicKey {
	seen := make(map[id.PublicKey]struct{}, len(keys))
	out := make([]id.PublicKey, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
