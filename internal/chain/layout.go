package chain

import (
	"encoding/binary"
	"errors"
	"fmt"

	id "govassets/pkg/domain"
)

const (
	// TokenAccountSize is the span of a classic SPL token account.
	TokenAccountSize = 165
	// MintSize is the span of a classic SPL mint.
	MintSize = 82
	// TokenAccountOwnerOffset is where the owner key starts in a token account.
	TokenAccountOwnerOffset = 32
)

var ErrInvalidAccountData = errors.New("invalid account data")

// AccountState is the SPL token account state byte.
type AccountState uint8

const (
	AccountStateUninitialized AccountState = iota
	AccountStateInitialized
	AccountStateFrozen
)

// TokenAccount is a decoded SPL token account.
type TokenAccount struct {
	Mint              id.PublicKey  `json:"mint"`
	Owner             id.PublicKey  `json:"owner"`
	Amount            uint64        `json:"amount"`
	Delegate          *id.PublicKey `json:"delegate,omitempty"`
	State             AccountState  `json:"state"`
	IsNative          bool          `json:"is_native"`
	RentExemptReserve *uint64       `json:"rent_exempt_reserve,omitempty"`
	DelegatedAmount   uint64        `json:"delegated_amount"`
	CloseAuthority    *id.PublicKey `json:"close_authority,omitempty"`
}

func (t TokenAccount) IsInitialized() bool {
	return t.State != AccountStateUninitialized
}

func (t TokenAccount) IsFrozen() bool {
	return t.State == AccountStateFrozen
}

// Mint is a decoded SPL mint.
type Mint struct {
	MintAuthority   *id.PublicKey `json:"mint_authority,omitempty"`
	Supply          uint64        `json:"supply"`
	Decimals        uint8         `json:"decimals"`
	IsInitialized   bool          `json:"is_initialized"`
	FreezeAuthority *id.PublicKey `json:"freeze_authority,omitempty"`
}

// ParseTokenAccount decodes the classic token account layout. Trailing bytes
// (token extensions) are ignored.
func ParseTokenAccount(data []byte) (TokenAccount, error) {
	if len(data) < TokenAccountSize {
		return TokenAccount{}, fmt.Errorf("%w: token account is %d bytes, want %d", ErrInvalidAccountData, len(data), TokenAccountSize)
	}
	var acc TokenAccount
	copy(acc.Mint[:], data[0:32])
	copy(acc.Owner[:], data[32:64])
	acc.Amount = binary.LittleEndian.Uint64(data[64:72])
	acc.Delegate = optionalKey(data[72:108])
	acc.State = AccountState(data[108])
	if binary.LittleEndian.Uint32(data[109:113]) == 1 {
		reserve := binary.LittleEndian.Uint64(data[113:121])
		acc.IsNative = true
		acc.RentExemptReserve = &reserve
	}
	acc.DelegatedAmount = binary.LittleEndian.Uint64(data[121:129])
	if acc.Delegate == nil {
		acc.DelegatedAmount = 0
	}
	acc.CloseAuthority = optionalKey(data[129:165])
	return acc, nil
}

// ParseMint decodes the classic mint layout.
func ParseMint(data []byte) (Mint, error) {
	if len(data) < MintSize {
		return Mint{}, fmt.Errorf("%w: mint is %d bytes, want %d", ErrInvalidAccountData, len(data), MintSize)
	}
	return Mint{
		MintAuthority:   optionalKey(data[0:36]),
		Supply:          binary.LittleEndian.Uint64(data[36:44]),
		Decimals:        data[44],
		IsInitialized:   data[45] != 0,
		FreezeAuthority: optionalKey(data[46:82]),
	}, nil
}

// optionalKey decodes a COption<Pubkey>: a u32 tag followed by 32 bytes.
func optionalKey(b []byte) *id.PublicKey {
	if binary.LittleEndian.Uint32(b[0:4]) == 0 {
		return nil
	}
	var pk id.PublicKey
	copy(pk[:], b[4:36])
	return &pk
}
