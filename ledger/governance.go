package ledger

// Governance surface. Everything here is owner-only; the pause flag gates
// the value-moving operations elsewhere in the ledger, and emergency
// withdrawal is the one operation that requires the paused state instead.

// Pause sets the global pause flag. Value-moving operations fail while it
// is set; votes, project creation and reads keep working.
func (l *Ledger) Pause(caller Address) error {
	return l.setPaused(caller, true)
}

// Unpause clears the global pause flag.
func (l *Ledger) Unpause(caller Address) error {
	return l.setPaused(caller, false)
}

func (l *Ledger) setPaused(caller Address, paused bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := loadConfig(l.state)
	if err != nil {
		return l.fail(err)
	}
	if err := requireOwner(cfg, caller); err != nil {
		return l.fail(err)
	}
	if cfg.Paused == paused {
		return l.fail(errConflictf("ledger already in that pause state"))
	}
	cfg.Paused = paused
	ov := newOverlay(l.state)
	if err := saveConfig(ov, cfg); err != nil {
		return l.fail(err)
	}
	if err := ov.commit(); err != nil {
		return l.fail(err)
	}
	l.emitPauseFlip(paused)
	return nil
}

// SetProtocolFee updates the donation skim. Capped at MaxFeeBps (10%).
func (l *Ledger) SetProtocolFee(caller Address, bps int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := loadConfig(l.state)
	if err != nil {
		return l.fail(err)
	}
	if err := requireOwner(cfg, caller); err != nil {
		return l.fail(err)
	}
	if bps < 0 || bps > MaxFeeBps {
		return l.fail(errInputf("fee must be between 0 and %d bps", MaxFeeBps))
	}
	old := cfg.FeeBps
	cfg.FeeBps = bps
	ov := newOverlay(l.state)
	if err := saveConfig(ov, cfg); err != nil {
		return l.fail(err)
	}
	if err := ov.commit(); err != nil {
		return l.fail(err)
	}
	l.emitFeeUpdated(old, bps)
	return nil
}

// UpdateTierConfig overwrites one tier row wholesale. The change applies
// prospectively: weights and rewards already computed stay as they are.
func (l *Ledger) UpdateTierConfig(caller Address, tier Tier, cfg TierConfig) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	lc, err := loadConfig(l.state)
	if err != nil {
		return l.fail(err)
	}
	if err := requireOwner(lc, caller); err != nil {
		return l.fail(err)
	}
	if tier >= tierCount {
		return l.fail(errInputf("unknown tier %d", tier))
	}
	if cfg.MinContribution < 0 || cfg.RewardMultiplierBps < 0 || cfg.VotingBoostPct < 0 {
		return l.fail(errInputf("tier configuration values must be non-negative"))
	}
	tiers, err := loadTiers(l.state)
	if err != nil {
		return l.fail(err)
	}
	tiers[tier] = cfg
	ov := newOverlay(l.state)
	if err := saveTiers(ov, tiers); err != nil {
		return l.fail(err)
	}
	if err := ov.commit(); err != nil {
		return l.fail(err)
	}
	l.emitTierUpdated(tier, cfg)
	return nil
}

// ExtendMilestoneDeadline moves a milestone deadline; the new value must
// be strictly in the future. Deadlines stay advisory data either way.
func (l *Ledger) ExtendMilestoneDeadline(caller Address, projectID uint64, index int, deadline int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := loadConfig(l.state)
	if err != nil {
		return l.fail(err)
	}
	if err := requireOwner(cfg, caller); err != nil {
		return l.fail(err)
	}
	ms, err := loadMilestone(l.state, projectID, index)
	if err != nil {
		return l.fail(err)
	}
	if deadline <= l.now() {
		return l.fail(errInputf("new deadline must be in the future"))
	}
	ms.Deadline = deadline
	ov := newOverlay(l.state)
	if err := saveMilestone(ov, projectID, index, ms); err != nil {
		return l.fail(err)
	}
	if err := ov.commit(); err != nil {
		return l.fail(err)
	}
	l.emitMilestoneEdited(projectID, index, "deadline", deadline)
	return nil
}

// UpdateMilestoneMinFunding edits a milestone's funding floor; the floor
// can never exceed the milestone's requested amount.
func (l *Ledger) UpdateMilestoneMinFunding(caller Address, projectID uint64, index int, floor Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := loadConfig(l.state)
	if err != nil {
		return l.fail(err)
	}
	if err := requireOwner(cfg, caller); err != nil {
		return l.fail(err)
	}
	ms, err := loadMilestone(l.state, projectID, index)
	if err != nil {
		return l.fail(err)
	}
	if floor < 0 || floor > ms.AmountRequested {
		return l.fail(errInputf("minimum funding exceeds the milestone amount"))
	}
	ms.MinFunding = floor
	ov := newOverlay(l.state)
	if err := saveMilestone(ov, projectID, index, ms); err != nil {
		return l.fail(err)
	}
	if err := ov.commit(); err != nil {
		return l.fail(err)
	}
	l.emitMilestoneEdited(projectID, index, "min_funding", int64(floor))
	return nil
}

// WithdrawRewardPool sweeps the entire pool to the owner in the native
// asset and zeroes it. Gated by the pause flag like every other
// value-moving operation.
func (l *Ledger) WithdrawRewardPool(caller Address) (Amount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := loadConfig(l.state)
	if err != nil {
		return 0, l.fail(err)
	}
	if err := requireOwner(cfg, caller); err != nil {
		return 0, l.fail(err)
	}
	if err := requireNotPaused(cfg); err != nil {
		return 0, l.fail(err)
	}
	pool, err := getAmount(l.state, keyRewardPool)
	if err != nil {
		return 0, l.fail(err)
	}
	if pool <= 0 {
		return 0, l.fail(errScarcef("reward pool is empty"))
	}
	ov := newOverlay(l.state)
	if err := putAmount(ov, keyRewardPool, 0); err != nil {
		return 0, l.fail(err)
	}
	if err := ov.commit(); err != nil {
		return 0, l.fail(err)
	}
	if err := l.bank.Transfer(cfg.Owner, pool, NativeAsset()); err != nil {
		return 0, l.fail(bankErr("transfer", err))
	}
	l.emitPoolWithdrawn(cfg.Owner, pool)
	return pool, nil
}

// EmergencyWithdrawProject sweeps a project's balance to the owner. It
// only works while the ledger is paused and leaves the project inactive.
func (l *Ledger) EmergencyWithdrawProject(caller Address, projectID uint64) (Amount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := loadConfig(l.state)
	if err != nil {
		return 0, l.fail(err)
	}
	if err := requireOwner(cfg, caller); err != nil {
		return 0, l.fail(err)
	}
	if !cfg.Paused {
		return 0, l.fail(errPausedf("emergency withdrawal requires the paused state"))
	}
	prj, err := loadProject(l.state, projectID)
	if err != nil {
		return 0, l.fail(err)
	}
	if prj.Balance <= 0 {
		return 0, l.fail(errScarcef("project %d has no balance to withdraw", projectID))
	}

	amount := prj.Balance
	prj.Balance = 0
	prj.IsActive = false
	ov := newOverlay(l.state)
	if err := saveProject(ov, prj); err != nil {
		return 0, l.fail(err)
	}
	if err := ov.commit(); err != nil {
		return 0, l.fail(err)
	}
	if err := l.bank.Transfer(cfg.Owner, amount, prj.Asset); err != nil {
		return 0, l.fail(bankErr("transfer", err))
	}
	l.emitEmergencyWithdraw(projectID, cfg.Owner, amount)
	return amount, nil
}
