package domain

import (
	"bytes"

	"github.com/mr-tron/base58"

	dErrors "govassets/pkg/domain-errors"
)

// PublicKeyLength is the size of an ed25519 public key / account address.
const PublicKeyLength = 32

// PublicKey is an on-chain account address.
// This is a domain primitive that enforces validity at parse time.
type PublicKey [PublicKeyLength]byte

// ParsePublicKey decodes a base58 account address.
func ParsePublicKey(s string) (PublicKey, error) {
	if s == "" {
		return PublicKey{}, dErrors.New(dErrors.CodeInvalidInput, "public key is required")
	}
	// 32 bytes never encode to more than 44 base58 characters
	if len(s) > 44 {
		return PublicKey{}, dErrors.New(dErrors.CodeInvalidInput, "public key is too long")
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return PublicKey{}, dErrors.Wrap(err, dErrors.CodeInvalidInput, "public key is not valid base58")
	}
	return PublicKeyFromBytes(raw)
}

// MustParsePublicKey is ParsePublicKey for compile-time constants.
func MustParsePublicKey(s string) PublicKey {
	pk, err := ParsePublicKey(s)
	if err != nil {
		panic(err)
	}
	return pk
}

// PublicKeyFromBytes copies a 32-byte slice into a PublicKey.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var pk PublicKey
	if len(b) != PublicKeyLength {
		return pk, dErrors.New(dErrors.CodeInvalidInput, "public key must be 32 bytes")
	}
	copy(pk[:], b)
	return pk, nil
}

// String returns the base58 representation.
func (p PublicKey) String() string {
	return base58.Encode(p[:])
}

// IsZero reports whether p is the all-zero key (also the system program id).
func (p PublicKey) IsZero() bool {
	return p == PublicKey{}
}

func (p PublicKey) Equals(other PublicKey) bool {
	return bytes.Equal(p[:], other[:])
}

func (p PublicKey) Bytes() []byte {
	return p[:]
}

func (p PublicKey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePublicKey(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// PublicKeySet is a lookup set keyed by address.
type PublicKeySet map[PublicKey]struct{}

// NewPublicKeySet parses base58 keys into a set. Invalid entries are returned as an error.
func NewPublicKeySet(keys ...string) (PublicKeySet, error) {
	set := make(PublicKeySet, len(keys))
	for _, k := range keys {
		pk, err := ParsePublicKey(k)
		if err != nil {
			return nil, err
		}
		set[pk] = struct{}{}
	}
	return set, nil
}

func (s PublicKeySet) Has(pk PublicKey) bool {
	_, ok := s[pk]
	return ok
}
