package permissions

// Instruction identifies a proposal instruction offered to the voter.
type Instruction string

const (
	InstructionTransfer                      Instruction = "transfer"
	InstructionGrant                         Instruction = "grant"
	InstructionClawback                      Instruction = "clawback"
	InstructionMangoChangePerpMarket         Instruction = "mango_change_perp_market"
	InstructionMangoChangeSpotMarket         Instruction = "mango_change_spot_market"
	InstructionMangoChangeReferralFeeParams  Instruction = "mango_change_referral_fee_params"
	InstructionMangoChangeMaxAccounts        Instruction = "mango_change_max_accounts"
	InstructionMangoAddOracle                Instruction = "mango_add_oracle"
	InstructionMangoAddSpotMarket            Instruction = "mango_add_spot_market"
	InstructionMangoCreatePerpMarket         Instruction = "mango_create_perp_market"
	InstructionMint                          Instruction = "mint"
	InstructionCreateAssociatedTokenAccount  Instruction = "create_associated_token_account"
	InstructionBase64                        Instruction = "base64"
	InstructionDepositIntoVolt               Instruction = "deposit_into_volt"
	InstructionWithdrawFromVolt              Instruction = "withdraw_from_volt"
	InstructionCreateSolendObligation        Instruction = "create_solend_obligation_account"
	InstructionInitSolendObligation          Instruction = "init_solend_obligation_account"
	InstructionSolendDeposit                 Instruction = "deposit_reserve_liquidity_and_obligation_collateral"
	InstructionRefreshSolendReserve          Instruction = "refresh_solend_reserve"
	InstructionRefreshSolendObligation       Instruction = "refresh_solend_obligation"
	InstructionSolendWithdraw                Instruction = "withdraw_obligation_collateral_and_redeem_reserve_liquidity"
	InstructionProgramUpgrade                Instruction = "program_upgrade"
	InstructionCreateNftPluginRegistrar      Instruction = "create_nft_plugin_registrar"
	InstructionConfigureNftPluginCollection  Instruction = "configure_nft_plugin_collection"
	InstructionRealmConfig                   Instruction = "realm_config"
	InstructionCreateNftPluginMaxVoterWeight Instruction = "create_nft_plugin_max_voter_weight"
	InstructionCloseTokenAccount             Instruction = "close_token_account"
	InstructionNone                          Instruction = "none"
)

// mangoSymbol is the realm symbol that unlocks the Mango market instructions.
const mangoSymbol = "MNGO"

// InstructionOption is one entry of the instruction catalogue.
type InstructionOption struct {
	ID        Instruction `json:"id"`
	Name      string      `json:"name"`
	IsVisible bool        `json:"is_visible"`
}
