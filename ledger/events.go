package ledger

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Structured events, one emitter per state flip, so watchers can replay
// the ledger from its log alone. Every event carries a fresh event id.

func (l *Ledger) emit(event string) *zerolog.Event {
	return l.log.Info().
		Str("event", event).
		Str("event_id", uuid.NewString())
}

func (l *Ledger) emitNGORegistered(account Address, name string) {
	l.emit("ngo_registered").
		Str("account", account.String()).
		Str("name", name).
		Send()
}

func (l *Ledger) emitNGORevoked(account Address) {
	l.emit("ngo_revoked").
		Str("account", account.String()).
		Send()
}

func (l *Ledger) emitProjectCreated(prj *Project) {
	l.emit("project_created").
		Uint64("project", prj.ID).
		Str("ngo", prj.NGO.String()).
		Str("asset", prj.Asset.String()).
		Int64("goal", int64(prj.Goal)).
		Int("milestones", prj.MilestoneCount).
		Send()
}

// emitDonation carries the donor's resulting tier so indexers see tier
// promotions without a second lookup.
func (l *Ledger) emitDonation(projectID uint64, donor Address, gross, fee, net Amount, tier Tier) {
	l.emit("donation").
		Uint64("project", projectID).
		Str("donor", donor.String()).
		Int64("gross", int64(gross)).
		Int64("fee", int64(fee)).
		Int64("net", int64(net)).
		Str("tier", tier.String()).
		Send()
}

// emitVote includes snapshot and raw weight so quorum math can be
// replayed from the log alone.
func (l *Ledger) emitVote(projectID uint64, index int, donor Address, weight, snapshot, total Amount) {
	l.emit("vote").
		Uint64("project", projectID).
		Int("milestone", index).
		Str("donor", donor.String()).
		Int64("weight", int64(weight)).
		Int64("snapshot", int64(snapshot)).
		Int64("vote_weight", int64(total)).
		Send()
}

func (l *Ledger) emitRelease(projectID uint64, index int, ngo Address, amount Amount, completed bool) {
	l.emit("milestone_released").
		Uint64("project", projectID).
		Int("milestone", index).
		Str("ngo", ngo.String()).
		Int64("amount", int64(amount)).
		Bool("project_completed", completed).
		Send()
}

func (l *Ledger) emitClaim(projectID uint64, donor Address, reward Amount, tier Tier) {
	l.emit("rewards_claimed").
		Uint64("project", projectID).
		Str("donor", donor.String()).
		Int64("reward", int64(reward)).
		Str("tier", tier.String()).
		Send()
}

func (l *Ledger) emitPauseFlip(paused bool) {
	l.emit("pause_flipped").
		Bool("paused", paused).
		Send()
}

func (l *Ledger) emitFeeUpdated(oldBps, newBps int64) {
	l.emit("protocol_fee_updated").
		Int64("old_bps", oldBps).
		Int64("new_bps", newBps).
		Send()
}

func (l *Ledger) emitTierUpdated(tier Tier, cfg TierConfig) {
	l.emit("tier_updated").
		Str("tier", tier.String()).
		Int64("min_contribution", int64(cfg.MinContribution)).
		Int64("reward_multiplier_bps", cfg.RewardMultiplierBps).
		Int64("voting_boost_pct", cfg.VotingBoostPct).
		Send()
}

func (l *Ledger) emitMilestoneEdited(projectID uint64, index int, field string, value int64) {
	l.emit("milestone_edited").
		Uint64("project", projectID).
		Int("milestone", index).
		Str("field", field).
		Int64("value", value).
		Send()
}

func (l *Ledger) emitPoolWithdrawn(owner Address, amount Amount) {
	l.emit("reward_pool_withdrawn").
		Str("owner", owner.String()).
		Int64("amount", int64(amount)).
		Send()
}

func (l *Ledger) emitEmergencyWithdraw(projectID uint64, owner Address, amount Amount) {
	l.emit("emergency_withdraw").
		Uint64("project", projectID).
		Str("owner", owner.String()).
		Int64("amount", int64(amount)).
		Send()
}
