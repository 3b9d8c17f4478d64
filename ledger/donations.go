package ledger

// Donate contributes the chain's native asset to a project. The protocol
// fee is skimmed off the gross amount into the reward pool; the net
// remainder is credited to the donor's contribution and the project's
// totals, and the donor's tier is recomputed from their lifetime giving.
// Returns the net amount credited.
func (l *Ledger) Donate(caller Address, projectID uint64, gross Amount) (Amount, error) {
	return l.donate(caller, projectID, gross, AssetNative)
}

// DonateAsset contributes a project's fungible token. The caller must
// hold the amount and have pre-authorized its transfer; the draw into
// custody happens before any balance is updated, and a failed draw fails
// the whole operation with no state change.
func (l *Ledger) DonateAsset(caller Address, projectID uint64, gross Amount) (Amount, error) {
	return l.donate(caller, projectID, gross, AssetToken)
}

func (l *Ledger) donate(caller Address, projectID uint64, gross Amount, kind AssetKind) (Amount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := loadConfig(l.state)
	if err != nil {
		return 0, l.fail(err)
	}
	if err := requireNotPaused(cfg); err != nil {
		return 0, l.fail(err)
	}
	prj, err := loadProject(l.state, projectID)
	if err != nil {
		return 0, l.fail(err)
	}
	if !prj.IsActive {
		return 0, l.fail(errConflictf("project %d is not active", projectID))
	}
	if prj.IsCompleted {
		return 0, l.fail(errConflictf("project %d is already completed", projectID))
	}
	if gross <= 0 {
		return 0, l.fail(errInputf("donation amount must be positive"))
	}
	if prj.Asset.Kind != kind {
		return 0, l.fail(errConflictf("project %d takes %s donations", projectID, prj.Asset))
	}

	fee, err := feeFor(gross, cfg.FeeBps)
	if err != nil {
		return 0, l.fail(err)
	}
	net := gross - fee

	ov := newOverlay(l.state)

	contribution, err := getAmount(ov, contributionKey(projectID, caller))
	if err != nil {
		return 0, l.fail(err)
	}
	if contribution, err = addAmount(contribution, net); err != nil {
		return 0, l.fail(err)
	}
	if err := putAmount(ov, contributionKey(projectID, caller), contribution); err != nil {
		return 0, l.fail(err)
	}

	if prj.TotalDonated, err = addAmount(prj.TotalDonated, net); err != nil {
		return 0, l.fail(err)
	}
	if prj.Balance, err = addAmount(prj.Balance, net); err != nil {
		return 0, l.fail(err)
	}
	if err := saveProject(ov, prj); err != nil {
		return 0, l.fail(err)
	}

	pool, err := getAmount(ov, keyRewardPool)
	if err != nil {
		return 0, l.fail(err)
	}
	if pool, err = addAmount(pool, fee); err != nil {
		return 0, l.fail(err)
	}
	if err := putAmount(ov, keyRewardPool, pool); err != nil {
		return 0, l.fail(err)
	}

	tiers, err := loadTiers(ov)
	if err != nil {
		return 0, l.fail(err)
	}
	donor, err := loadDonor(ov, caller)
	if err != nil {
		return 0, l.fail(err)
	}
	if donor.TotalContributed, err = addAmount(donor.TotalContributed, net); err != nil {
		return 0, l.fail(err)
	}
	donor.Tier = tiers.Classify(donor.TotalContributed)
	donor.LastUpdate = l.now()
	if err := saveDonor(ov, donor); err != nil {
		return 0, l.fail(err)
	}

	// Custody first: the draw must land before any balance becomes
	// visible. The staged writes above only commit after it succeeds.
	if err := l.bank.Draw(caller, gross, prj.Asset); err != nil {
		return 0, l.fail(bankErr("draw", err))
	}
	if err := ov.commit(); err != nil {
		return 0, l.fail(err)
	}

	l.emitDonation(projectID, caller, gross, fee, net, donor.Tier)
	l.metrics.donations.Inc()
	l.metrics.donatedTotal.Add(float64(net))
	l.metrics.feesTotal.Add(float64(fee))
	return net, nil
}
