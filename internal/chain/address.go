// Package chain holds the on-chain primitives the asset discovery depends on:
// well-known program ids, program derived addresses and SPL token layouts.
package chain

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"filippo.io/edwards25519"

	id "govassets/pkg/domain"
)

const (
	maxSeeds      = 16
	maxSeedLength = 32
)

var pdaMarker = []byte("ProgramDerivedAddress")

var (
	TokenProgramID  = id.MustParsePublicKey("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	SystemProgramID = id.MustParsePublicKey("11111111111111111111111111111111")
	// WrappedSOLMint is used as the mint of native treasuries to compute amounts.
	WrappedSOLMint = id.MustParsePublicKey("So11111111111111111111111111111111111111112")
	// DefaultGovernanceProgramID is the canonical SPL governance deployment.
	DefaultGovernanceProgramID = id.MustParsePublicKey("GovER5Lthms3bLBqWub97yVrMmEogzX7xNjdXpPPCVZw")
)

var (
	ErrMaxSeedLengthExceeded = errors.New("max seed length exceeded")
	ErrInvalidSeeds          = errors.New("provided seeds do not result in a valid address")
	ErrNoViableBump          = errors.New("unable to find a viable program address bump seed")
)

// CreateProgramAddress derives the address for seeds under program. The derived
// address must not lie on the ed25519 curve.
func CreateProgramAddress(seeds [][]byte, program id.PublicKey) (id.PublicKey, error) {
	if len(seeds) > maxSeeds {
		return id.PublicKey{}, ErrMaxSeedLengthExceeded
	}
	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > maxSeedLength {
			return id.PublicKey{}, ErrMaxSeedLengthExceeded
		}
		h.Write(seed)
	}
	h.Write(program[:])
	h.Write(pdaMarker)
	sum := h.Sum(nil)
	if IsOnCurve(sum) {
		return id.PublicKey{}, ErrInvalidSeeds
	}
	return id.PublicKeyFromBytes(sum)
}

// FindProgramAddress searches bump seeds from 255 down and returns the first
// off-curve address together with its bump.
func FindProgramAddress(seeds [][]byte, program id.PublicKey) (id.PublicKey, uint8, error) {
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{byte(bump)}
		addr, err := CreateProgramAddress(withBump, program)
		if err == nil {
			return addr, uint8(bump), nil
		}
		if !errors.Is(err, ErrInvalidSeeds) {
			return id.PublicKey{}, 0, err
		}
	}
	return id.PublicKey{}, 0, ErrNoViableBump
}

// IsOnCurve reports whether b is a valid compressed ed25519 point.
func IsOnCurve(b []byte) bool {
	if len(b) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

// NativeTreasuryAddress derives the SOL treasury owned by a governance.
func NativeTreasuryAddress(programID, governance id.PublicKey) (id.PublicKey, error) {
	addr, _, err := FindProgramAddress([][]byte{[]byte("native-treasury"), governance[:]}, programID)
	if err != nil {
		return id.PublicKey{}, fmt.Errorf("derive native treasury for %s: %w", governance, err)
	}
	return addr, nil
}
