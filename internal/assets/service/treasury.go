package service

import (
	"govassets/internal/assets/models"
	"govassets/internal/chain"
	"govassets/internal/governance"
	id "govassets/pkg/domain"
)

var (
	// DefaultNFTTreasuryMint marks token accounts that hold NFTs for a governance.
	DefaultNFTTreasuryMint = id.MustParsePublicKey("GNFTm5rz1Kzvq94G7DJkcrEUnCypeQYf7Ya8arPoHWvw")
	// DefaultNativeSolTreasuryMint marks legacy SOL treasury token accounts.
	DefaultNativeSolTreasuryMint = id.MustParsePublicKey("GSoLvSToqaUmMyqP12GffzcirPAickrpZmVUFtek6x5u")
)

// Treasury holds the lists that steer classification and visibility.
type Treasury struct {
	HiddenGovernances     id.PublicKeySet
	HiddenTreasuries      id.PublicKeySet
	NFTTreasuryMint       id.PublicKey
	NativeSolTreasuryMint id.PublicKey
}

func DefaultTreasury() Treasury {
	return Treasury{
		HiddenGovernances:     id.PublicKeySet{},
		HiddenTreasuries:      id.PublicKeySet{},
		NFTTreasuryMint:       DefaultNFTTreasuryMint,
		NativeSolTreasuryMint: DefaultNativeSolTreasuryMint,
	}
}

// Visible drops hidden treasuries and accounts whose token account is frozen.
func (t Treasury) Visible(a models.AssetAccount) bool {
	return !t.HiddenTreasuries.Has(a.Pubkey) && !a.IsFrozen()
}

func (t Treasury) filterVisible(accounts []models.AssetAccount, treasuryOnly bool) []models.AssetAccount {
	out := make([]models.AssetAccount, 0, len(accounts))
	for _, a := range accounts {
		if treasuryOnly && !a.Type.IsTreasury() {
			continue
		}
		if t.Visible(a) {
			out = append(out, a)
		}
	}
	return out
}

// mintInfo is a parsed mint keyed by its address.
type mintInfo map[id.PublicKey]*models.MintExtension

// classify tags a token account owned by gov. Accounts that are neither an NFT
// nor a fungible token with a known mint are dropped.
func (t Treasury) classify(pubkey id.PublicKey, token chain.TokenAccount, mints mintInfo, gov governance.Governance) (models.AssetAccount, bool) {
	mint := mints[token.Mint]
	if token.Mint == t.NFTTreasuryMint {
		return models.NewNFTAccount(pubkey, token, mint, gov), true
	}
	if mint != nil && mint.Account.Supply != 1 && mint.Pubkey != t.NativeSolTreasuryMint {
		return models.NewTokenAccount(pubkey, token, mint, gov), true
	}
	return models.AssetAccount{}, false
}
