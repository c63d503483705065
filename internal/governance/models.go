// Package governance decodes SPL governance program accounts and loads them
// from chain.
package governance

import (
	id "govassets/pkg/domain"
)

// AccountType is the tag stored in byte 0 of every governance program account.
type AccountType uint8

const (
	AccountTypeUninitialized AccountType = iota
	AccountTypeRealmV1
	AccountTypeTokenOwnerRecordV1
	AccountTypeGovernanceV1
	AccountTypeProgramGovernanceV1
	AccountTypeProposalV1
	AccountTypeSignatoryRecordV1
	AccountTypeVoteRecordV1
	AccountTypeProposalInstructionV1
	AccountTypeMintGovernanceV1
	AccountTypeTokenGovernanceV1
	AccountTypeRealmConfig
	AccountTypeVoteRecordV2
	AccountTypeProposalTransactionV2
	AccountTypeProposalV2
	AccountTypeProgramMetadata
	AccountTypeRealmV2
	AccountTypeTokenOwnerRecordV2
	AccountTypeGovernanceV2
	AccountTypeProgramGovernanceV2
	AccountTypeMintGovernanceV2
	AccountTypeTokenGovernanceV2
	AccountTypeSignatoryRecordV2
)

var accountTypeNames = map[AccountType]string{
	AccountTypeUninitialized:         "Uninitialized",
	AccountTypeRealmV1:               "RealmV1",
	AccountTypeTokenOwnerRecordV1:    "TokenOwnerRecordV1",
	AccountTypeGovernanceV1:          "GovernanceV1",
	AccountTypeProgramGovernanceV1:   "ProgramGovernanceV1",
	AccountTypeProposalV1:            "ProposalV1",
	AccountTypeSignatoryRecordV1:     "SignatoryRecordV1",
	AccountTypeVoteRecordV1:          "VoteRecordV1",
	AccountTypeProposalInstructionV1: "ProposalInstructionV1",
	AccountTypeMintGovernanceV1:      "MintGovernanceV1",
	AccountTypeTokenGovernanceV1:     "TokenGovernanceV1",
	AccountTypeRealmConfig:           "RealmConfig",
	AccountTypeVoteRecordV2:          "VoteRecordV2",
	AccountTypeProposalTransactionV2: "ProposalTransactionV2",
	AccountTypeProposalV2:            "ProposalV2",
	AccountTypeProgramMetadata:       "ProgramMetadata",
	AccountTypeRealmV2:               "RealmV2",
	AccountTypeTokenOwnerRecordV2:    "TokenOwnerRecordV2",
	AccountTypeGovernanceV2:          "GovernanceV2",
	AccountTypeProgramGovernanceV2:   "ProgramGovernanceV2",
	AccountTypeMintGovernanceV2:      "MintGovernanceV2",
	AccountTypeTokenGovernanceV2:     "TokenGovernanceV2",
	AccountTypeSignatoryRecordV2:     "SignatoryRecordV2",
}

func (t AccountType) String() string {
	if name, ok := accountTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// MintGovernanceTypes, ProgramGovernanceTypes and TokenGovernanceTypes group the
// versioned tags of each governance kind.
var (
	MintGovernanceTypes    = []AccountType{AccountTypeMintGovernanceV1, AccountTypeMintGovernanceV2}
	ProgramGovernanceTypes = []AccountType{AccountTypeProgramGovernanceV1, AccountTypeProgramGovernanceV2}
	TokenGovernanceTypes   = []AccountType{AccountTypeTokenGovernanceV1, AccountTypeTokenGovernanceV2}
	GenericGovernanceTypes = []AccountType{AccountTypeGovernanceV1, AccountTypeGovernanceV2}
)

// IsGovernance reports whether t tags any kind of governance account.
func (t AccountType) IsGovernance() bool {
	switch t {
	case AccountTypeGovernanceV1, AccountTypeGovernanceV2,
		AccountTypeProgramGovernanceV1, AccountTypeProgramGovernanceV2,
		AccountTypeMintGovernanceV1, AccountTypeMintGovernanceV2,
		AccountTypeTokenGovernanceV1, AccountTypeTokenGovernanceV2:
		return true
	}
	return false
}

func (t AccountType) IsRealm() bool {
	return t == AccountTypeRealmV1 || t == AccountTypeRealmV2
}

func (t AccountType) IsTokenOwnerRecord() bool {
	return t == AccountTypeTokenOwnerRecordV1 || t == AccountTypeTokenOwnerRecordV2
}

// VoteThresholdType selects how VoteThreshold.Value is interpreted.
type VoteThresholdType uint8

const (
	VoteThresholdYesVote VoteThresholdType = iota
	VoteThresholdQuorum
	VoteThresholdDisabled
)

type VoteThreshold struct {
	Type  VoteThresholdType `json:"type"`
	Value uint8             `json:"value"`
}

type VoteTipping uint8

const (
	VoteTippingStrict VoteTipping = iota
	VoteTippingEarly
	VoteTippingDisabled
)

// Config holds the voting rules of a governance.
type Config struct {
	VoteThreshold                      VoteThreshold `json:"vote_threshold"`
	MinCommunityTokensToCreateProposal uint64        `json:"min_community_tokens_to_create_proposal"`
	MinInstructionHoldUpTime           uint32        `json:"min_instruction_hold_up_time"`
	MaxVotingTime                      uint32        `json:"max_voting_time"`
	VoteTipping                        VoteTipping   `json:"vote_tipping"`
	ProposalCoolOffTime                uint32        `json:"proposal_cool_off_time"`
	MinCouncilTokensToCreateProposal   uint64        `json:"min_council_tokens_to_create_proposal"`
}

// Governance is a decoded governance account.
type Governance struct {
	Pubkey          id.PublicKey `json:"pubkey"`
	Owner           id.PublicKey `json:"owner"`
	AccountType     AccountType  `json:"account_type"`
	Realm           id.PublicKey `json:"realm"`
	GovernedAccount id.PublicKey `json:"governed_account"`
	ProposalsCount  uint32       `json:"proposals_count"`
	Config          Config       `json:"config"`
}

// HasType reports whether the governance carries one of types.
func (g Governance) HasType(types ...AccountType) bool {
	for _, t := range types {
		if g.AccountType == t {
			return true
		}
	}
	return false
}

type MintMaxVoteWeightSourceType uint8

const (
	MintMaxVoteWeightSupplyFraction MintMaxVoteWeightSourceType = iota
	MintMaxVoteWeightAbsolute
)

type MintMaxVoteWeightSource struct {
	Type  MintMaxVoteWeightSourceType `json:"type"`
	Value uint64                      `json:"value"`
}

type RealmConfig struct {
	UseCommunityVoterWeightAddin         bool                    `json:"use_community_voter_weight_addin"`
	UseMaxCommunityVoterWeightAddin      bool                    `json:"use_max_community_voter_weight_addin"`
	MinCommunityTokensToCreateGovernance uint64                  `json:"min_community_tokens_to_create_governance"`
	CommunityMintMaxVoteWeightSource     MintMaxVoteWeightSource `json:"community_mint_max_vote_weight_source"`
	CouncilMint                          *id.PublicKey           `json:"council_mint,omitempty"`
}

// Realm is a decoded realm account.
type Realm struct {
	Pubkey              id.PublicKey  `json:"pubkey"`
	Owner               id.PublicKey  `json:"owner"`
	AccountType         AccountType   `json:"account_type"`
	CommunityMint       id.PublicKey  `json:"community_mint"`
	Config              RealmConfig   `json:"config"`
	VotingProposalCount uint16        `json:"voting_proposal_count"`
	Authority           *id.PublicKey `json:"authority,omitempty"`
	Name                string        `json:"name"`
}

// RealmConfigAccount carries the voter weight plugins of a realm.
type RealmConfigAccount struct {
	Pubkey                       id.PublicKey  `json:"pubkey"`
	Realm                        id.PublicKey  `json:"realm"`
	CommunityVoterWeightAddin    *id.PublicKey `json:"community_voter_weight_addin,omitempty"`
	MaxCommunityVoterWeightAddin *id.PublicKey `json:"max_community_voter_weight_addin,omitempty"`
}

// TokenOwnerRecord is a wallet's deposit for one governing mint of a realm.
type TokenOwnerRecord struct {
	Pubkey                      id.PublicKey  `json:"pubkey"`
	AccountType                 AccountType   `json:"account_type"`
	Realm                       id.PublicKey  `json:"realm"`
	GoverningTokenMint          id.PublicKey  `json:"governing_token_mint"`
	GoverningTokenOwner         id.PublicKey  `json:"governing_token_owner"`
	GoverningTokenDepositAmount uint64        `json:"governing_token_deposit_amount"`
	UnrelinquishedVotesCount    uint32        `json:"unrelinquished_votes_count"`
	TotalVotesCount             uint32        `json:"total_votes_count"`
	OutstandingProposalCount    uint8         `json:"outstanding_proposal_count"`
	GovernanceDelegate          *id.PublicKey `json:"governance_delegate,omitempty"`
}
