package governance

import (
	"encoding/binary"
	"errors"
	"fmt"

	id "govassets/pkg/domain"
)

var (
	ErrShortBuffer        = errors.New("account data too short")
	ErrUnexpectedType     = errors.New("unexpected account type")
	ErrInvalidOptionTag   = errors.New("invalid option tag")
	ErrInvalidEnumVariant = errors.New("invalid enum variant")
)

// reader walks a borsh encoded buffer. The first failure sticks.
type reader struct {
	buf []byte
	off int
	err error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.buf)-r.off < n {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrShortBuffer, n, r.off, len(r.buf))
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) u8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) bool() bool {
	return r.u8() != 0
}

func (r *reader) u16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *reader) u32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *reader) u64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *reader) pubkey() id.PublicKey {
	var pk id.PublicKey
	if b := r.take(32); b != nil {
		copy(pk[:], b)
	}
	return pk
}

func (r *reader) optionalPubkey() *id.PublicKey {
	switch tag := r.u8(); tag {
	case 0:
		return nil
	case 1:
		pk := r.pubkey()
		if r.err != nil {
			return nil
		}
		return &pk
	default:
		if r.err == nil {
			r.err = fmt.Errorf("%w %d at offset %d", ErrInvalidOptionTag, tag, r.off-1)
		}
		return nil
	}
}

func (r *reader) string() string {
	n := r.u32()
	b := r.take(int(n))
	return string(b)
}

func (r *reader) skip(n int) {
	r.take(n)
}

func (r *reader) accountType(allowed ...AccountType) AccountType {
	t := AccountType(r.u8())
	if r.err != nil {
		return t
	}
	for _, a := range allowed {
		if t == a {
			return t
		}
	}
	r.err = fmt.Errorf("%w: %s (%d)", ErrUnexpectedType, t, uint8(t))
	return t
}

// DecodeGovernance decodes any governance kind (generic, program, mint, token).
func DecodeGovernance(pubkey, owner id.PublicKey, data []byte) (Governance, error) {
	r := &reader{buf: data}
	g := Governance{Pubkey: pubkey, Owner: owner}
	g.AccountType = r.accountType(
		AccountTypeGovernanceV1, AccountTypeGovernanceV2,
		AccountTypeProgramGovernanceV1, AccountTypeProgramGovernanceV2,
		AccountTypeMintGovernanceV1, AccountTypeMintGovernanceV2,
		AccountTypeTokenGovernanceV1, AccountTypeTokenGovernanceV2,
	)
	g.Realm = r.pubkey()
	g.GovernedAccount = r.pubkey()
	g.ProposalsCount = r.u32()
	g.Config = r.governanceConfig()
	if r.err != nil {
		return Governance{}, fmt.Errorf("decode governance %s: %w", pubkey, r.err)
	}
	return g, nil
}

func (r *reader) governanceConfig() Config {
	var c Config
	c.VoteThreshold.Type = VoteThresholdType(r.u8())
	switch c.VoteThreshold.Type {
	case VoteThresholdYesVote, VoteThresholdQuorum:
		c.VoteThreshold.Value = r.u8()
	case VoteThresholdDisabled:
	default:
		if r.err == nil {
			r.err = fmt.Errorf("%w: vote threshold %d", ErrInvalidEnumVariant, c.VoteThreshold.Type)
		}
	}
	c.MinCommunityTokensToCreateProposal = r.u64()
	c.MinInstructionHoldUpTime = r.u32()
	c.MaxVotingTime = r.u32()
	c.VoteTipping = VoteTipping(r.u8())
	c.ProposalCoolOffTime = r.u32()
	c.MinCouncilTokensToCreateProposal = r.u64()
	return c
}

// DecodeRealm decodes a V1 or V2 realm account.
func DecodeRealm(pubkey, owner id.PublicKey, data []byte) (Realm, error) {
	r := &reader{buf: data}
	realm := Realm{Pubkey: pubkey, Owner: owner}
	realm.AccountType = r.accountType(AccountTypeRealmV1, AccountTypeRealmV2)
	realm.CommunityMint = r.pubkey()

	realm.Config.UseCommunityVoterWeightAddin = r.bool()
	realm.Config.UseMaxCommunityVoterWeightAddin = r.bool()
	r.skip(6)
	realm.Config.MinCommunityTokensToCreateGovernance = r.u64()
	realm.Config.CommunityMintMaxVoteWeightSource = MintMaxVoteWeightSource{
		Type:  MintMaxVoteWeightSourceType(r.u8()),
		Value: r.u64(),
	}
	realm.Config.CouncilMint = r.optionalPubkey()

	r.skip(6)
	realm.VotingProposalCount = r.u16()
	realm.Authority = r.optionalPubkey()
	realm.Name = r.string()
	if r.err != nil {
		return Realm{}, fmt.Errorf("decode realm %s: %w", pubkey, r.err)
	}
	return realm, nil
}

// DecodeRealmConfigAccount decodes the realm config PDA.
func DecodeRealmConfigAccount(pubkey id.PublicKey, data []byte) (RealmConfigAccount, error) {
	r := &reader{buf: data}
	r.accountType(AccountTypeRealmConfig)
	cfg := RealmConfigAccount{Pubkey: pubkey}
	cfg.Realm = r.pubkey()
	cfg.CommunityVoterWeightAddin = r.optionalPubkey()
	cfg.MaxCommunityVoterWeightAddin = r.optionalPubkey()
	if r.err != nil {
		return RealmConfigAccount{}, fmt.Errorf("decode realm config %s: %w", pubkey, r.err)
	}
	return cfg, nil
}

// DecodeTokenOwnerRecord decodes a V1 or V2 token owner record.
func DecodeTokenOwnerRecord(pubkey id.PublicKey, data []byte) (TokenOwnerRecord, error) {
	r := &reader{buf: data}
	rec := TokenOwnerRecord{Pubkey: pubkey}
	rec.AccountType = r.accountType(AccountTypeTokenOwnerRecordV1, AccountTypeTokenOwnerRecordV2)
	rec.Realm = r.pubkey()
	rec.GoverningTokenMint = r.pubkey()
	rec.GoverningTokenOwner = r.pubkey()
	rec.GoverningTokenDepositAmount = r.u64()
	rec.UnrelinquishedVotesCount = r.u32()
	rec.TotalVotesCount = r.u32()
	rec.OutstandingProposalCount = r.u8()
	r.skip(7)
	rec.GovernanceDelegate = r.optionalPubkey()
	if r.err != nil {
		return TokenOwnerRecord{}, fmt.Errorf("decode token owner record %s: %w", pubkey, r.err)
	}
	return rec, nil
}
