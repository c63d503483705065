package models

import (
	"time"

	"govassets/internal/chain"
	"govassets/internal/governance"
	id "govassets/pkg/domain"
	dErrors "govassets/pkg/domain-errors"
)

// AccountType tags a governed asset.
type AccountType string

const (
	AccountTypeToken   AccountType = "token"
	AccountTypeNFT     AccountType = "nft"
	AccountTypeSol     AccountType = "sol"
	AccountTypeMint    AccountType = "mint"
	AccountTypeProgram AccountType = "program"
)

// ParseAccountType validates a tag received from a client.
func ParseAccountType(s string) (AccountType, error) {
	switch t := AccountType(s); t {
	case AccountTypeToken, AccountTypeNFT, AccountTypeSol, AccountTypeMint, AccountTypeProgram:
		return t, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "unknown account type "+s)
}

// IsTreasury reports whether the tag holds transferable funds (token, NFT or SOL).
func (t AccountType) IsTreasury() bool {
	return t == AccountTypeToken || t == AccountTypeNFT || t == AccountTypeSol
}

type TokenExtension struct {
	Pubkey  id.PublicKey       `json:"pubkey"`
	Account chain.TokenAccount `json:"account"`
}

type MintExtension struct {
	Pubkey  id.PublicKey `json:"pubkey"`
	Account chain.Mint   `json:"account"`
}

// SolAccount is the native treasury balance after the rent adjustment.
type SolAccount struct {
	Lamports uint64       `json:"lamports"`
	Owner    id.PublicKey `json:"owner"`
}

type Extensions struct {
	Token           *TokenExtension `json:"token,omitempty"`
	Mint            *MintExtension  `json:"mint,omitempty"`
	TransferAddress *id.PublicKey   `json:"transfer_address,omitempty"`
	Amount          *uint64         `json:"amount,omitempty"`
	SolAccount      *SolAccount     `json:"sol_account,omitempty"`
	USDPrice        *float64        `json:"usd_price,omitempty"`
}

// AssetAccount is an on-chain account controlled by a governance.
type AssetAccount struct {
	Type       AccountType           `json:"type"`
	Pubkey     id.PublicKey          `json:"pubkey"`
	Governance governance.Governance `json:"governance"`
	Extensions Extensions            `json:"extensions"`
}

func NewTokenAccount(tokenPubkey id.PublicKey, token chain.TokenAccount, mint *MintExtension, gov governance.Governance) AssetAccount {
	transfer := tokenPubkey
	amount := token.Amount
	return AssetAccount{
		Type:       AccountTypeToken,
		Pubkey:     tokenPubkey,
		Governance: gov,
		Extensions: Extensions{
			Token:           &TokenExtension{Pubkey: tokenPubkey, Account: token},
			Mint:            mint,
			TransferAddress: &transfer,
			Amount:          &amount,
		},
	}
}

// NewNFTAccount transfers to the token account owner; NFTs are moved per token
// account, not per treasury.
func NewNFTAccount(tokenPubkey id.PublicKey, token chain.TokenAccount, mint *MintExtension, gov governance.Governance) AssetAccount {
	transfer := token.Owner
	amount := token.Amount
	return AssetAccount{
		Type:       AccountTypeNFT,
		Pubkey:     tokenPubkey,
		Governance: gov,
		Extensions: Extensions{
			Token:           &TokenExtension{Pubkey: tokenPubkey, Account: token},
			Mint:            mint,
			TransferAddress: &transfer,
			Amount:          &amount,
		},
	}
}

// NewSolAccount builds the native treasury asset. lamports must already be
// rent adjusted.
func NewSolAccount(wsol *MintExtension, treasury id.PublicKey, sol SolAccount, gov governance.Governance) AssetAccount {
	transfer := treasury
	amount := sol.Lamports
	return AssetAccount{
		Type:       AccountTypeSol,
		Pubkey:     treasury,
		Governance: gov,
		Extensions: Extensions{
			Mint:            wsol,
			TransferAddress: &transfer,
			Amount:          &amount,
			SolAccount:      &sol,
		},
	}
}

func NewMintAccount(gov governance.Governance, mint chain.Mint) AssetAccount {
	return AssetAccount{
		Type:       AccountTypeMint,
		Pubkey:     gov.GovernedAccount,
		Governance: gov,
		Extensions: Extensions{
			Mint: &MintExtension{Pubkey: gov.GovernedAccount, Account: mint},
		},
	}
}

func NewProgramAccount(gov governance.Governance) AssetAccount {
	return AssetAccount{
		Type:       AccountTypeProgram,
		Pubkey:     gov.GovernedAccount,
		Governance: gov,
	}
}

// IsFrozen reports whether the account carries a frozen token account.
func (a AssetAccount) IsFrozen() bool {
	return a.Extensions.Token != nil && a.Extensions.Token.Account.IsFrozen()
}

// State is the per-realm snapshot of discovered assets.
type State struct {
	Realm                 governance.Realm        `json:"realm"`
	Governances           []governance.Governance `json:"governances"`
	AssetAccounts         []AssetAccount          `json:"asset_accounts"`
	GovernedTokenAccounts []AssetAccount          `json:"governed_token_accounts"`
	Loading               bool                    `json:"loading"`
	UpdatedAt             time.Time               `json:"updated_at"`
}

// FilterByType returns the asset accounts tagged t.
func (s State) FilterByType(t AccountType) []AssetAccount {
	return OfType(s.AssetAccounts, t)
}

// OfType returns the accounts tagged t. The result is never nil.
func OfType(accounts []AssetAccount, t AccountType) []AssetAccount {
	out := make([]AssetAccount, 0, len(accounts))
	for _, a := range accounts {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}
