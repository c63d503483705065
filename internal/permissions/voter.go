// Package permissions derives which proposal instructions a wallet may use in
// a realm from its deposits and the realm's governed assets.
package permissions

import "govassets/internal/governance"

// VoterWeight decides whether a voter meets a governance's proposal threshold.
type VoterWeight interface {
	CanCreateProposal(config governance.Config) bool
}

// TokenOwnerVoterWeight weighs a voter by the deposits in their token owner
// records. Either record may be nil.
type TokenOwnerVoterWeight struct {
	Community *governance.TokenOwnerRecord
	Council   *governance.TokenOwnerRecord
}

func NewTokenOwnerVoterWeight(records governance.OwnerRecords) TokenOwnerVoterWeight {
	return TokenOwnerVoterWeight{Community: records.Community, Council: records.Council}
}

func (w TokenOwnerVoterWeight) CanCreateProposal(config governance.Config) bool {
	if w.Community != nil && w.Community.GoverningTokenDepositAmount >= config.MinCommunityTokensToCreateProposal {
		return true
	}
	return w.Council != nil && w.Council.GoverningTokenDepositAmount >= config.MinCouncilTokensToCreateProposal
}
