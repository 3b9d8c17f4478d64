package ledger

import "strconv"

// Address identifies an account (donor, NGO or the ledger owner). The
// surrounding boundary resolves and authenticates it; the ledger only
// compares it.
type Address string

// IsZero reports whether the address is the null identifier.
func (a Address) IsZero() bool { return a == "" }

// String unwraps the account string for keys, logs and events.
func (a Address) String() string { return string(a) }

// Amount is an integer value unit. All fee, weight and reward math is
// integer math with truncation toward zero.
type Amount int64

// AssetKind discriminates the two supported donation asset families.
type AssetKind uint8

const (
	AssetNative AssetKind = 0
	AssetToken  AssetKind = 1
)

// Asset is a tagged union over the chain's native asset and fungible
// tokens. A project is configured with exactly one asset and every value
// movement on it uses that asset.
type Asset struct {
	Kind  AssetKind `json:"kind"`
	Token string    `json:"token,omitempty"`
}

// NativeAsset builds the native-asset tag.
func NativeAsset() Asset { return Asset{Kind: AssetNative} }

// TokenAsset builds a fungible-token tag for the given token identifier.
func TokenAsset(id string) Asset { return Asset{Kind: AssetToken, Token: id} }

// IsNative reports whether the asset is the chain's native asset.
func (a Asset) IsNative() bool { return a.Kind == AssetNative }

// String serializes the asset for keys and event fields.
func (a Asset) String() string {
	if a.Kind == AssetNative {
		return "native"
	}
	return "token:" + a.Token
}

// Tier classifies a donor by lifetime contribution. Higher tiers earn a
// larger reward multiplier and voting boost.
type Tier uint8

const (
	TierBronze   Tier = 0
	TierSilver   Tier = 1
	TierGold     Tier = 2
	TierPlatinum Tier = 3

	tierCount = 4
)

// String prints the tier as lower-case text for events and logs.
func (t Tier) String() string {
	switch t {
	case TierSilver:
		return "silver"
	case TierGold:
		return "gold"
	case TierPlatinum:
		return "platinum"
	default:
		return "bronze"
	}
}

// TierConfig holds one tier row: the lifetime-contribution threshold that
// earns it, the reward multiplier in basis points and the voting boost in
// percent.
type TierConfig struct {
	MinContribution     Amount `json:"min_contribution"`
	RewardMultiplierBps int64  `json:"reward_multiplier_bps"`
	VotingBoostPct      int64  `json:"voting_boost_pct"`
}

// TierTable is the full four-row tier configuration, indexed by Tier.
type TierTable [tierCount]TierConfig

// DefaultTierTable seeds a fresh ledger. The owner can overwrite single
// rows later; changes apply prospectively only.
func DefaultTierTable() TierTable {
	return TierTable{
		TierBronze:   {MinContribution: 0, RewardMultiplierBps: 50, VotingBoostPct: 0},
		TierSilver:   {MinContribution: 1_000, RewardMultiplierBps: 100, VotingBoostPct: 5},
		TierGold:     {MinContribution: 10_000, RewardMultiplierBps: 200, VotingBoostPct: 10},
		TierPlatinum: {MinContribution: 100_000, RewardMultiplierBps: 400, VotingBoostPct: 20},
	}
}

// Classify returns the highest tier whose threshold the lifetime total
// meets. A total exactly on a threshold qualifies for that tier.
func (tt TierTable) Classify(total Amount) Tier {
	tier := TierBronze
	for t := TierBronze; t < tierCount; t++ {
		if total >= tt[t].MinContribution {
			tier = t
		}
	}
	return tier
}

// NGORecord tracks verification of a project-owning organization. Records
// are never deleted; revocation only clears the flag so the name stays
// around for audit.
type NGORecord struct {
	Account  Address `json:"account"`
	Name     string  `json:"name"`
	Verified bool    `json:"verified"`
}

// Project is the top-level escrow entity. Balance always equals
// TotalDonated minus the sum of released milestone amounts.
type Project struct {
	ID               uint64  `json:"id"`
	NGO              Address `json:"ngo"`
	Asset            Asset   `json:"asset"`
	Goal             Amount  `json:"goal"`
	TotalDonated     Amount  `json:"total_donated"`
	Balance          Amount  `json:"balance"`
	CurrentMilestone int     `json:"current_milestone"`
	MilestoneCount   int     `json:"milestone_count"`
	IsActive         bool    `json:"is_active"`
	IsCompleted      bool    `json:"is_completed"`
	CreatedAt        int64   `json:"created_at"`
}

// Milestone is one tranche of a project's goal, addressed by (project,
// index). Approved and FundsReleased flip together, exactly once, in a
// release. Snapshot is the project's total-donated value frozen at the
// first vote; VoteWeight accumulates boosted weights.
type Milestone struct {
	Description     string `json:"description"`
	AmountRequested Amount `json:"amount_requested"`
	Deadline        int64  `json:"deadline"`
	MinFunding      Amount `json:"min_funding"`
	Approved        bool   `json:"approved"`
	FundsReleased   bool   `json:"funds_released"`
	Snapshot        Amount `json:"snapshot"`
	VoteWeight      Amount `json:"vote_weight"`
}

// DonorProfile aggregates a donor across all projects. Tier is recomputed
// after every donation from TotalContributed.
type DonorProfile struct {
	Account          Address `json:"account"`
	TotalContributed Amount  `json:"total_contributed"`
	TotalRewarded    Amount  `json:"total_rewarded"`
	Tier             Tier    `json:"tier"`
	LastUpdate       int64   `json:"last_update"`
}

// VoteReceipt marks that a donor voted on a milestone. Set once, never
// cleared.
type VoteReceipt struct {
	Weight  Amount `json:"weight"`
	VotedAt int64  `json:"voted_at"`
}

// ledgerConfig is the singleton governance record: owner, pause flag and
// the protocol fee skimmed off every donation.
type ledgerConfig struct {
	Owner  Address `json:"owner"`
	Paused bool    `json:"paused"`
	FeeBps int64   `json:"fee_bps"`
}

// uint64ToString turns an id into decimal text for keys, logs and events.
func uint64ToString(v uint64) string {
	return strconv.FormatUint(v, 10)
}
