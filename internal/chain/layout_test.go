package chain

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "govassets/pkg/domain"
)

func tokenAccountBytes(mint, owner id.PublicKey, amount uint64, state AccountState, delegate *id.PublicKey) []byte {
	data := make([]byte, TokenAccountSize)
	copy(data[0:32], mint[:])
	copy(data[32:64], owner[:])
	binary.LittleEndian.PutUint64(data[64:72], amount)
	if delegate != nil {
		binary.LittleEndian.PutUint32(data[72:76], 1)
		copy(data[76:108], delegate[:])
	}
	data[108] = byte(state)
	binary.LittleEndian.PutUint64(data[121:129], 7)
	return data
}

func mintBytes(supply uint64, decimals uint8, authority *id.PublicKey) []byte {
	data := make([]byte, MintSize)
	if authority != nil {
		binary.LittleEndian.PutUint32(data[0:4], 1)
		copy(data[4:36], authority[:])
	}
	binary.LittleEndian.PutUint64(data[36:44], supply)
	data[44] = decimals
	data[45] = 1
	return data
}

func TestParseTokenAccount(t *testing.T) {
	mint := WrappedSOLMint
	owner := DefaultGovernanceProgramID

	t.Run("decodes the classic layout", func(t *testing.T) {
		acc, err := ParseTokenAccount(tokenAccountBytes(mint, owner, 42, AccountStateInitialized, nil))
		require.NoError(t, err)
		assert.Equal(t, mint, acc.Mint)
		assert.Equal(t, owner, acc.Owner)
		assert.Equal(t, uint64(42), acc.Amount)
		assert.True(t, acc.IsInitialized())
		assert.False(t, acc.IsFrozen())
		assert.Nil(t, acc.Delegate)
		assert.Zero(t, acc.DelegatedAmount, "delegated amount is cleared without a delegate")
		assert.False(t, acc.IsNative)
	})

	t.Run("keeps delegate and delegated amount", func(t *testing.T) {
		delegate := TokenProgramID
		acc, err := ParseTokenAccount(tokenAccountBytes(mint, owner, 1, AccountStateFrozen, &delegate))
		require.NoError(t, err)
		require.NotNil(t, acc.Delegate)
		assert.Equal(t, delegate, *acc.Delegate)
		assert.Equal(t, uint64(7), acc.DelegatedAmount)
		assert.True(t, acc.IsFrozen())
	})

	t.Run("decodes native reserve", func(t *testing.T) {
		data := tokenAccountBytes(mint, owner, 1, AccountStateInitialized, nil)
		binary.LittleEndian.PutUint32(data[109:113], 1)
		binary.LittleEndian.PutUint64(data[113:121], 2039280)
		acc, err := ParseTokenAccount(data)
		require.NoError(t, err)
		assert.True(t, acc.IsNative)
		require.NotNil(t, acc.RentExemptReserve)
		assert.Equal(t, uint64(2039280), *acc.RentExemptReserve)
	})

	t.Run("rejects short data", func(t *testing.T) {
		_, err := ParseTokenAccount(make([]byte, 100))
		assert.ErrorIs(t, err, ErrInvalidAccountData)
	})
}

func TestParseMint(t *testing.T) {
	t.Run("decodes supply and authorities", func(t *testing.T) {
		authority := TokenProgramID
		m, err := ParseMint(mintBytes(1_000_000, 6, &authority))
		require.NoError(t, err)
		assert.Equal(t, uint64(1_000_000), m.Supply)
		assert.Equal(t, uint8(6), m.Decimals)
		assert.True(t, m.IsInitialized)
		require.NotNil(t, m.MintAuthority)
		assert.Equal(t, authority, *m.MintAuthority)
		assert.Nil(t, m.FreezeAuthority)
	})

	t.Run("rejects short data", func(t *testing.T) {
		_, err := ParseMint(make([]byte, 81))
		assert.ErrorIs(t, err, ErrInvalidAccountData)
	})
}
