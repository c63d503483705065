package permissions

import (
	"govassets/internal/assets/models"
	"govassets/internal/governance"
	id "govassets/pkg/domain"
)

// Input is everything the evaluator needs about a realm and a voter.
type Input struct {
	// Realm is nil while the realm is not loaded; every flag except token
	// transfer is then false.
	Realm       *governance.Realm
	RealmConfig *governance.RealmConfigAccount
	Symbol      string
	// Governances is the visible governance array of the asset snapshot.
	Governances []governance.Governance
	// AllGovernances is every governance of the realm, hidden ones included.
	AllGovernances        []governance.Governance
	GovernedTokenAccounts []models.AssetAccount
	VoterWeight           VoterWeight
	VSRPlugins            id.PublicKeySet
}

// Evaluator derives permission flags and the instruction catalogue.
type Evaluator struct {
	in Input
}

func NewEvaluator(in Input) *Evaluator {
	return &Evaluator{in: in}
}

func (e *Evaluator) canCreate(g governance.Governance) bool {
	return e.in.VoterWeight != nil && e.in.VoterWeight.CanCreateProposal(g.Config)
}

func (e *Evaluator) anyCanCreate(govs []governance.Governance) bool {
	if e.in.Realm == nil {
		return false
	}
	for _, g := range govs {
		if e.canCreate(g) {
			return true
		}
	}
	return false
}

// GovernancesByAccountType returns the governances tagged t.
func (e *Evaluator) GovernancesByAccountType(t governance.AccountType) []governance.Governance {
	return e.GovernancesByAccountTypes(t)
}

// GovernancesByAccountTypes returns the governances carrying any of types.
func (e *Evaluator) GovernancesByAccountTypes(types ...governance.AccountType) []governance.Governance {
	var out []governance.Governance
	for _, g := range e.in.Governances {
		if g.HasType(types...) {
			out = append(out, g)
		}
	}
	return out
}

func (e *Evaluator) canUseGovernanceForInstruction(types []governance.AccountType) bool {
	return e.anyCanCreate(e.GovernancesByAccountTypes(types...))
}

func (e *Evaluator) CanUseTransferInstruction() bool {
	return e.canUseGovernanceForInstruction(governance.TokenGovernanceTypes)
}

func (e *Evaluator) CanUseProgramUpgradeInstruction() bool {
	return e.canUseGovernanceForInstruction(governance.ProgramGovernanceTypes)
}

func (e *Evaluator) CanUseMintInstruction() bool {
	return e.canUseGovernanceForInstruction(governance.MintGovernanceTypes)
}

// CanUseAnyInstruction reports whether the voter can propose through any
// visible governance.
func (e *Evaluator) CanUseAnyInstruction() bool {
	return e.anyCanCreate(e.in.Governances)
}

// CanUseAuthorityInstruction reports whether the realm authority is a
// governance the voter can propose through.
func (e *Evaluator) CanUseAuthorityInstruction() bool {
	if e.in.Realm == nil || e.in.Realm.Authority == nil {
		return false
	}
	for _, g := range e.in.Governances {
		if g.Pubkey == *e.in.Realm.Authority {
			return e.canCreate(g)
		}
	}
	return false
}

// CanUseTokenTransferInstruction reports whether some fungible treasury is
// controlled by a governance the voter can propose through. Unlike the other
// flags it does not need the realm.
func (e *Evaluator) CanUseTokenTransferInstruction() bool {
	byKey := make(map[id.PublicKey]governance.Governance, len(e.in.Governances))
	for _, g := range e.in.Governances {
		byKey[g.Pubkey] = g
	}
	for _, acc := range e.GovernedTokenAccountsWithoutNfts() {
		if g, ok := byKey[acc.Governance.Pubkey]; ok && e.canCreate(g) {
			return true
		}
	}
	return false
}

func (e *Evaluator) CanMintRealmCommunityToken() bool {
	if e.in.Realm == nil {
		return false
	}
	return e.governsMint(e.in.Realm.CommunityMint)
}

func (e *Evaluator) CanMintRealmCouncilToken() bool {
	if e.in.Realm == nil || e.in.Realm.Config.CouncilMint == nil {
		return false
	}
	return e.governsMint(*e.in.Realm.Config.CouncilMint)
}

func (e *Evaluator) governsMint(mint id.PublicKey) bool {
	for _, g := range e.GovernancesByAccountTypes(governance.MintGovernanceTypes...) {
		if g.GovernedAccount == mint {
			return true
		}
	}
	return false
}

// GovernedTokenAccountsWithoutNfts drops NFT accounts.
func (e *Evaluator) GovernedTokenAccountsWithoutNfts() []models.AssetAccount {
	var out []models.AssetAccount
	for _, acc := range e.in.GovernedTokenAccounts {
		if acc.Type != models.AccountTypeNFT {
			out = append(out, acc)
		}
	}
	return out
}

// NftsGovernedTokenAccounts keeps NFT accounts and the SOL treasuries that
// can hold NFTs.
func (e *Evaluator) NftsGovernedTokenAccounts() []models.AssetAccount {
	var out []models.AssetAccount
	for _, acc := range e.in.GovernedTokenAccounts {
		if acc.Type == models.AccountTypeNFT || acc.Type == models.AccountTypeSol {
			out = append(out, acc)
		}
	}
	return out
}

func (e *Evaluator) usesVSR() bool {
	addin := e.in.RealmConfig
	return addin != nil && addin.CommunityVoterWeightAddin != nil && e.in.VSRPlugins.Has(*addin.CommunityVoterWeightAddin)
}

// AvailableInstructions returns the whole catalogue with visibility resolved.
func (e *Evaluator) AvailableInstructions() []InstructionOption {
	tokenTransfer := e.CanUseTokenTransferInstruction()
	programUpgrade := e.CanUseProgramUpgradeInstruction()
	mango := programUpgrade && e.in.Symbol == mangoSymbol
	anyInstruction := e.CanUseAnyInstruction()
	authority := e.CanUseAuthorityInstruction()
	vsr := tokenTransfer && e.usesVSR()

	return []InstructionOption{
		{ID: InstructionTransfer, Name: "Transfer Tokens", IsVisible: tokenTransfer},
		{ID: InstructionGrant, Name: "Grant", IsVisible: vsr},
		{ID: InstructionClawback, Name: "Clawback", IsVisible: vsr},
		{ID: InstructionMangoChangePerpMarket, Name: "Mango: Change Perp Market", IsVisible: mango},
		{ID: InstructionMangoChangeSpotMarket, Name: "Mango: Change Spot Market", IsVisible: mango},
		{ID: InstructionMangoChangeReferralFeeParams, Name: "Mango: Change Referral Fee Params", IsVisible: mango},
		{ID: InstructionMangoChangeMaxAccounts, Name: "Mango: Change Max Accounts", IsVisible: mango},
		{ID: InstructionMangoAddOracle, Name: "Mango: Add Oracle", IsVisible: mango},
		{ID: InstructionMangoAddSpotMarket, Name: "Mango: Add Spot Market", IsVisible: mango},
		{ID: InstructionMangoCreatePerpMarket, Name: "Mango: Create Perp Market", IsVisible: mango},
		{ID: InstructionMint, Name: "Mint Tokens", IsVisible: e.CanUseMintInstruction()},
		{ID: InstructionCreateAssociatedTokenAccount, Name: "Create Associated Token Account", IsVisible: anyInstruction},
		{ID: InstructionBase64, Name: "Execute Custom Instruction", IsVisible: anyInstruction},
		{ID: InstructionDepositIntoVolt, Name: "Friktion: Deposit into Volt", IsVisible: anyInstruction},
		{ID: InstructionWithdrawFromVolt, Name: "Friktion: Withdraw from Volt", IsVisible: anyInstruction},
		{ID: InstructionCreateSolendObligation, Name: "Solend: Create Obligation Account", IsVisible: anyInstruction},
		{ID: InstructionInitSolendObligation, Name: "Solend: Init Obligation Account", IsVisible: anyInstruction},
		{ID: InstructionSolendDeposit, Name: "Solend: Deposit Funds", IsVisible: anyInstruction},
		{ID: InstructionRefreshSolendReserve, Name: "Solend: Refresh Reserve", IsVisible: anyInstruction},
		{ID: InstructionRefreshSolendObligation, Name: "Solend: Refresh Obligation", IsVisible: anyInstruction},
		{ID: InstructionSolendWithdraw, Name: "Solend: Withdraw Funds", IsVisible: anyInstruction},
		{ID: InstructionProgramUpgrade, Name: "Upgrade Program", IsVisible: programUpgrade},
		{ID: InstructionCreateNftPluginRegistrar, Name: "Create NFT plugin registrar", IsVisible: authority},
		{ID: InstructionConfigureNftPluginCollection, Name: "Configure NFT plugin collection", IsVisible: authority},
		{ID: InstructionRealmConfig, Name: "Realm config", IsVisible: authority},
		{ID: InstructionCreateNftPluginMaxVoterWeight, Name: "Create NFT plugin max voter weight", IsVisible: authority},
		{ID: InstructionCloseTokenAccount, Name: "Close token account", IsVisible: e.CanUseTransferInstruction()},
		{ID: InstructionNone, Name: "None", IsVisible: e.anyCanCreate(e.in.AllGovernances)},
	}
}

// GetAvailableInstructions returns only the visible catalogue entries.
func (e *Evaluator) GetAvailableInstructions() []InstructionOption {
	all := e.AvailableInstructions()
	out := make([]InstructionOption, 0, len(all))
	for _, opt := range all {
		if opt.IsVisible {
			out = append(out, opt)
		}
	}
	return out
}

// Flags is the serializable summary of every permission.
type Flags struct {
	CanUseTransferInstruction       bool `json:"can_use_transfer_instruction"`
	CanUseProgramUpgradeInstruction bool `json:"can_use_program_upgrade_instruction"`
	CanUseMintInstruction           bool `json:"can_use_mint_instruction"`
	CanUseAnyInstruction            bool `json:"can_use_any_instruction"`
	CanUseAuthorityInstruction      bool `json:"can_use_authority_instruction"`
	CanUseTokenTransferInstruction  bool `json:"can_use_token_transfer_instruction"`
	CanMintRealmCommunityToken      bool `json:"can_mint_realm_community_token"`
	CanMintRealmCouncilToken        bool `json:"can_mint_realm_council_token"`
}

func (e *Evaluator) Flags() Flags {
	return Flags{
		CanUseTransferInstruction:       e.CanUseTransferInstruction(),
		CanUseProgramUpgradeInstruction: e.CanUseProgramUpgradeInstruction(),
		CanUseMintInstruction:           e.CanUseMintInstruction(),
		CanUseAnyInstruction:            e.CanUseAnyInstruction(),
		CanUseAuthorityInstruction:      e.CanUseAuthorityInstruction(),
		CanUseTokenTransferInstruction:  e.CanUseTokenTransferInstruction(),
		CanMintRealmCommunityToken:      e.CanMintRealmCommunityToken(),
		CanMintRealmCouncilToken:        e.CanMintRealmCouncilToken(),
	}
}
