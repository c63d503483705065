// Package store keeps the last discovery snapshot per realm.
package store

import (
	"context"
	"fmt"
	"sync"

	"govassets/internal/assets/models"
	id "govassets/pkg/domain"
	"govassets/pkg/platform/sentinel"
)

// InMemoryStore holds snapshots in process memory.
type InMemoryStore struct {
	mu     sync.RWMutex
	states map[id.PublicKey]models.State
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{states: make(map[id.PublicKey]models.State)}
}

func (s *InMemoryStore) Get(_ context.Context, realm id.PublicKey) (*models.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[realm]
	if !ok {
		return nil, fmt.Errorf("state for realm %s: %w", realm, sentinel.ErrNotFound)
	}
	return cloneState(state), nil
}

func (s *InMemoryStore) Save(_ context.Context, state *models.State) error {
	if state == nil {
		return fmt.Errorf("state is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.Realm.Pubkey] = *cloneState(*state)
	return nil
}

// cloneState copies the slices so callers cannot mutate stored snapshots.
func cloneState(state models.State) *models.State {
	out := state
	out.Governances = append(out.Governances[:0:0], state.Governances...)
	out.AssetAccounts = append(out.AssetAccounts[:0:0], state.AssetAccounts...)
	out.GovernedTokenAccounts = append(out.GovernedTokenAccounts[:0:0], state.GovernedTokenAccounts...)
	return &out
}
