package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"govassets/internal/assets/models"
	"govassets/internal/chain"
	"govassets/internal/governance"
	id "govassets/pkg/domain"
	"govassets/pkg/testutil"
)

var (
	realmKey     = id.MustParsePublicKey("DPiH3H3c7t47BMxqTxLsuPQpEC6Kne8GA9VXbxpnZxFE")
	communityKey = id.MustParsePublicKey("MangoCzJ36AjZyKwVj3VnYU4GTonjfVEnJmvvWaxLac")
	councilKey   = id.MustParsePublicKey("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")
	tokenGovKey  = id.MustParsePublicKey("So11111111111111111111111111111111111111112")
	mintGovKey   = id.MustParsePublicKey("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	progGovKey   = id.MustParsePublicKey("GovER5Lthms3bLBqWub97yVrMmEogzX7xNjdXpPPCVZw")
	hiddenGovKey = id.MustParsePublicKey("GNFTm5rz1Kzvq94G7DJkcrEUnCypeQYf7Ya8arPoHWvw")
	vsrKey       = id.MustParsePublicKey(DefaultVSRPlugins[0])
)

func config(minCommunity, minCouncil uint64) governance.Config {
	return governance.Config{MinCommunityTokensToCreateProposal: minCommunity, MinCouncilTokensToCreateProposal: minCouncil}
}

func deposit(amount uint64) *governance.TokenOwnerRecord {
	return &governance.TokenOwnerRecord{GoverningTokenDepositAmount: amount}
}

type fixture struct {
	realm    governance.Realm
	tokenGov governance.Governance
	mintGov  governance.Governance
	progGov  governance.Governance
	hidden   governance.Governance
}

func newFixture() fixture {
	council := councilKey
	authority := progGovKey
	return fixture{
		realm: governance.Realm{
			Pubkey:        realmKey,
			Name:          "Mango DAO",
			CommunityMint: communityKey,
			Config:        governance.RealmConfig{CouncilMint: &council},
			Authority:     &authority,
		},
		tokenGov: governance.Governance{Pubkey: tokenGovKey, AccountType: governance.AccountTypeTokenGovernanceV2, Config: config(100, 1)},
		mintGov:  governance.Governance{Pubkey: mintGovKey, AccountType: governance.AccountTypeMintGovernanceV2, GovernedAccount: communityKey, Config: config(100, 1)},
		progGov:  governance.Governance{Pubkey: progGovKey, AccountType: governance.AccountTypeProgramGovernanceV1, Config: config(1000, 5)},
		hidden:   governance.Governance{Pubkey: hiddenGovKey, AccountType: governance.AccountTypeGovernanceV2, Config: config(1, 1)},
	}
}

func (f fixture) input(weight VoterWeight) Input {
	realm := f.realm
	token := chain.TokenAccount{Mint: chain.WrappedSOLMint, Owner: tokenGovKey, Amount: 10}
	return Input{
		Realm:          &realm,
		Governances:    []governance.Governance{f.tokenGov, f.mintGov, f.progGov},
		AllGovernances: []governance.Governance{f.tokenGov, f.mintGov, f.progGov, f.hidden},
		GovernedTokenAccounts: []models.AssetAccount{
			models.NewTokenAccount(communityKey, token, nil, f.tokenGov),
			models.NewNFTAccount(councilKey, token, nil, f.tokenGov),
			models.NewSolAccount(nil, mintGovKey, models.SolAccount{Lamports: 5, Owner: mintGovKey}, f.tokenGov),
		},
		VoterWeight: weight,
		VSRPlugins:  id.PublicKeySet{vsrKey: {}},
	}
}

func visibleIDs(opts []InstructionOption) []Instruction {
	out := make([]Instruction, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.ID)
	}
	return out
}

func TestTokenOwnerVoterWeight(t *testing.T) {
	cfg := config(100, 2)
	testutil.Given(t, "no deposits", func(t *testing.T) {
		assert.False(t, TokenOwnerVoterWeight{}.CanCreateProposal(cfg))
	})
	testutil.Given(t, "a community deposit at the threshold", func(t *testing.T) {
		assert.True(t, TokenOwnerVoterWeight{Community: deposit(100)}.CanCreateProposal(cfg))
	})
	testutil.Given(t, "a community deposit below and a council deposit above", func(t *testing.T) {
		w := TokenOwnerVoterWeight{Community: deposit(99), Council: deposit(2)}
		assert.True(t, w.CanCreateProposal(cfg))
	})
	testutil.Given(t, "both deposits below their thresholds", func(t *testing.T) {
		w := TokenOwnerVoterWeight{Community: deposit(99), Council: deposit(1)}
		assert.False(t, w.CanCreateProposal(cfg))
	})
}

func TestEvaluatorFlags(t *testing.T) {
	f := newFixture()

	testutil.Given(t, "no realm", func(t *testing.T) {
		in := f.input(TokenOwnerVoterWeight{Community: deposit(1 << 20)})
		in.Realm = nil
		e := NewEvaluator(in)
		testutil.Then(t, "every realm dependent flag is false", func(t *testing.T) {
			flags := e.Flags()
			flags.CanUseTokenTransferInstruction = false
			assert.Equal(t, Flags{}, flags)
		})
		testutil.Then(t, "token transfer still follows the treasury governances", func(t *testing.T) {
			assert.True(t, e.CanUseTokenTransferInstruction())
		})
	})

	testutil.Given(t, "a community holder with 100 tokens", func(t *testing.T) {
		e := NewEvaluator(f.input(TokenOwnerVoterWeight{Community: deposit(100)}))
		flags := e.Flags()
		testutil.Then(t, "token and mint governances pass but the program governance does not", func(t *testing.T) {
			assert.True(t, flags.CanUseTransferInstruction)
			assert.True(t, flags.CanUseMintInstruction)
			assert.False(t, flags.CanUseProgramUpgradeInstruction)
			assert.True(t, flags.CanUseAnyInstruction)
			assert.True(t, flags.CanUseTokenTransferInstruction)
		})
		testutil.Then(t, "the realm authority governance is out of reach", func(t *testing.T) {
			assert.False(t, flags.CanUseAuthorityInstruction)
		})
		testutil.Then(t, "only the community mint is governed", func(t *testing.T) {
			assert.True(t, flags.CanMintRealmCommunityToken)
			assert.False(t, flags.CanMintRealmCouncilToken)
		})
	})

	testutil.Given(t, "a council member with 5 tokens", func(t *testing.T) {
		e := NewEvaluator(f.input(TokenOwnerVoterWeight{Council: deposit(5)}))
		testutil.Then(t, "the program governance is the realm authority and passes", func(t *testing.T) {
			assert.True(t, e.CanUseProgramUpgradeInstruction())
			assert.True(t, e.CanUseAuthorityInstruction())
		})
	})

	testutil.Given(t, "a wallet without deposits", func(t *testing.T) {
		e := NewEvaluator(f.input(TokenOwnerVoterWeight{}))
		testutil.Then(t, "nothing passes", func(t *testing.T) {
			assert.False(t, e.CanUseAnyInstruction())
			assert.False(t, e.CanUseTokenTransferInstruction())
		})
		testutil.Then(t, "mint governance flags do not depend on the voter", func(t *testing.T) {
			assert.True(t, e.CanMintRealmCommunityToken())
		})
	})

	testutil.Given(t, "a nil voter weight", func(t *testing.T) {
		e := NewEvaluator(f.input(nil))
		assert.False(t, e.CanUseAnyInstruction())
	})
}

func TestEvaluatorTokenTransfer(t *testing.T) {
	f := newFixture()
	weight := TokenOwnerVoterWeight{Community: deposit(100)}

	testutil.Given(t, "only NFT accounts are governed", func(t *testing.T) {
		in := f.input(weight)
		in.GovernedTokenAccounts = in.GovernedTokenAccounts[1:2]
		assert.False(t, NewEvaluator(in).CanUseTokenTransferInstruction())
	})

	testutil.Given(t, "the account governance is not in the visible array", func(t *testing.T) {
		in := f.input(weight)
		in.Governances = []governance.Governance{f.mintGov, f.progGov}
		assert.False(t, NewEvaluator(in).CanUseTokenTransferInstruction())
	})
}

func TestEvaluatorAccountSplits(t *testing.T) {
	e := NewEvaluator(newFixture().input(nil))

	withoutNfts := e.GovernedTokenAccountsWithoutNfts()
	assert.Len(t, withoutNfts, 2)
	for _, acc := range withoutNfts {
		assert.NotEqual(t, models.AccountTypeNFT, acc.Type)
	}

	nfts := e.NftsGovernedTokenAccounts()
	if assert.Len(t, nfts, 2) {
		assert.Equal(t, models.AccountTypeNFT, nfts[0].Type)
		assert.Equal(t, models.AccountTypeSol, nfts[1].Type)
	}
}

func TestEvaluatorGovernancesByAccountType(t *testing.T) {
	f := newFixture()
	e := NewEvaluator(f.input(nil))

	assert.Equal(t, []governance.Governance{f.mintGov}, e.GovernancesByAccountType(governance.AccountTypeMintGovernanceV2))
	assert.Empty(t, e.GovernancesByAccountType(governance.AccountTypeMintGovernanceV1))
	assert.Equal(t, []governance.Governance{f.tokenGov, f.progGov},
		e.GovernancesByAccountTypes(append(governance.TokenGovernanceTypes, governance.ProgramGovernanceTypes...)...))
}

func TestEvaluatorInstructions(t *testing.T) {
	f := newFixture()

	testutil.Given(t, "any evaluator", func(t *testing.T) {
		all := NewEvaluator(f.input(nil)).AvailableInstructions()
		testutil.Then(t, "the catalogue is complete and starts with transfer", func(t *testing.T) {
			assert.Len(t, all, 28)
			assert.Equal(t, InstructionTransfer, all[0].ID)
			assert.Equal(t, "Transfer Tokens", all[0].Name)
			assert.Equal(t, InstructionNone, all[len(all)-1].ID)
		})
		testutil.Then(t, "mango instructions carry their display names", func(t *testing.T) {
			names := make(map[Instruction]string, len(all))
			for _, o := range all {
				names[o.ID] = o.Name
			}
			assert.Equal(t, "Mango: Change Perp Market", names[InstructionMangoChangePerpMarket])
			assert.Equal(t, "Mango: Add Oracle", names[InstructionMangoAddOracle])
			assert.Equal(t, "Mango: Create Perp Market", names[InstructionMangoCreatePerpMarket])
		})
	})

	testutil.Given(t, "a community holder in a realm without plugins", func(t *testing.T) {
		ids := visibleIDs(NewEvaluator(f.input(TokenOwnerVoterWeight{Community: deposit(100)})).GetAvailableInstructions())
		testutil.Then(t, "transfer, mint, generic and close instructions are visible", func(t *testing.T) {
			assert.Contains(t, ids, InstructionTransfer)
			assert.Contains(t, ids, InstructionMint)
			assert.Contains(t, ids, InstructionBase64)
			assert.Contains(t, ids, InstructionSolendDeposit)
			assert.Contains(t, ids, InstructionCloseTokenAccount)
			assert.Contains(t, ids, InstructionNone)
		})
		testutil.Then(t, "grant, upgrade, mango and authority instructions are hidden", func(t *testing.T) {
			assert.NotContains(t, ids, InstructionGrant)
			assert.NotContains(t, ids, InstructionProgramUpgrade)
			assert.NotContains(t, ids, InstructionMangoAddOracle)
			assert.NotContains(t, ids, InstructionRealmConfig)
		})
	})

	testutil.Given(t, "a realm using a voter stake registry plugin", func(t *testing.T) {
		in := f.input(TokenOwnerVoterWeight{Community: deposit(100)})
		plugin := vsrKey
		in.RealmConfig = &governance.RealmConfigAccount{CommunityVoterWeightAddin: &plugin}
		ids := visibleIDs(NewEvaluator(in).GetAvailableInstructions())
		assert.Contains(t, ids, InstructionGrant)
		assert.Contains(t, ids, InstructionClawback)
	})

	testutil.Given(t, "an unknown voter weight plugin", func(t *testing.T) {
		in := f.input(TokenOwnerVoterWeight{Community: deposit(100)})
		plugin := communityKey
		in.RealmConfig = &governance.RealmConfigAccount{CommunityVoterWeightAddin: &plugin}
		assert.NotContains(t, visibleIDs(NewEvaluator(in).GetAvailableInstructions()), InstructionGrant)
	})

	testutil.Given(t, "a council member of the MNGO realm", func(t *testing.T) {
		in := f.input(TokenOwnerVoterWeight{Council: deposit(5)})
		in.Symbol = "MNGO"
		ids := visibleIDs(NewEvaluator(in).GetAvailableInstructions())
		testutil.Then(t, "mango and authority instructions are visible", func(t *testing.T) {
			assert.Contains(t, ids, InstructionMangoChangePerpMarket)
			assert.Contains(t, ids, InstructionMangoCreatePerpMarket)
			assert.Contains(t, ids, InstructionProgramUpgrade)
			assert.Contains(t, ids, InstructionCreateNftPluginRegistrar)
			assert.Contains(t, ids, InstructionCreateNftPluginMaxVoterWeight)
		})
	})

	testutil.Given(t, "a voter who only passes a hidden governance", func(t *testing.T) {
		in := f.input(TokenOwnerVoterWeight{Community: deposit(1)})
		ids := visibleIDs(NewEvaluator(in).GetAvailableInstructions())
		testutil.Then(t, "only None is offered", func(t *testing.T) {
			assert.Equal(t, []Instruction{InstructionNone}, ids)
		})
	})
}
