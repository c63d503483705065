package governance

import (
	"fmt"

	"govassets/internal/chain"
	id "govassets/pkg/domain"
)

// RealmConfigAddress derives the realm config account of realm.
func RealmConfigAddress(program, realm id.PublicKey) (id.PublicKey, error) {
	addr, _, err := chain.FindProgramAddress([][]byte{[]byte("realm-config"), realm[:]}, program)
	if err != nil {
		return id.PublicKey{}, fmt.Errorf("derive realm config for %s: %w", realm, err)
	}
	return addr, nil
}

// TokenOwnerRecordAddress derives the deposit record of owner for mint in realm.
func TokenOwnerRecordAddress(program, realm, mint, owner id.PublicKey) (id.PublicKey, error) {
	addr, _, err := chain.FindProgramAddress([][]byte{
		[]byte("governance"), realm[:], mint[:], owner[:],
	}, program)
	if err != nil {
		return id.PublicKey{}, fmt.Errorf("derive token owner record for %s: %w", owner, err)
	}
	return addr, nil
}
