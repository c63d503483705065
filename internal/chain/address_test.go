package chain

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "govassets/pkg/domain"
)

func TestIsOnCurve(t *testing.T) {
	t.Run("ed25519 public keys are on the curve", func(t *testing.T) {
		pub, _, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)
		assert.True(t, IsOnCurve(pub))
	})

	t.Run("wrong length is never on the curve", func(t *testing.T) {
		assert.False(t, IsOnCurve([]byte{1, 2, 3}))
	})
}

func TestFindProgramAddress(t *testing.T) {
	governance := id.MustParsePublicKey("So11111111111111111111111111111111111111112")
	seeds := [][]byte{[]byte("native-treasury"), governance[:]}

	addr, bump, err := FindProgramAddress(seeds, DefaultGovernanceProgramID)
	require.NoError(t, err)

	t.Run("derived address is off curve", func(t *testing.T) {
		assert.False(t, IsOnCurve(addr[:]))
	})

	t.Run("bump reproduces the address", func(t *testing.T) {
		again, err := CreateProgramAddress(append(seeds, []byte{bump}), DefaultGovernanceProgramID)
		require.NoError(t, err)
		assert.Equal(t, addr, again)
	})

	t.Run("derivation is deterministic and program scoped", func(t *testing.T) {
		again, againBump, err := FindProgramAddress(seeds, DefaultGovernanceProgramID)
		require.NoError(t, err)
		assert.Equal(t, addr, again)
		assert.Equal(t, bump, againBump)

		other, _, err := FindProgramAddress(seeds, TokenProgramID)
		require.NoError(t, err)
		assert.NotEqual(t, addr, other)
	})

	t.Run("caller seeds are not mutated", func(t *testing.T) {
		assert.Len(t, seeds, 2)
	})

	t.Run("native treasury uses the same seeds", func(t *testing.T) {
		treasury, err := NativeTreasuryAddress(DefaultGovernanceProgramID, governance)
		require.NoError(t, err)
		assert.Equal(t, addr, treasury)
	})
}

func TestCreateProgramAddress_SeedLimits(t *testing.T) {
	t.Run("rejects long seeds", func(t *testing.T) {
		_, err := CreateProgramAddress([][]byte{bytes.Repeat([]byte{1}, 33)}, TokenProgramID)
		assert.ErrorIs(t, err, ErrMaxSeedLengthExceeded)
	})

	t.Run("rejects too many seeds", func(t *testing.T) {
		seeds := make([][]byte, 17)
		for i := range seeds {
			seeds[i] = []byte{byte(i)}
		}
		_, err := CreateProgramAddress(seeds, TokenProgramID)
		assert.ErrorIs(t, err, ErrMaxSeedLengthExceeded)
	})
}
