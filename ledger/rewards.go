package ledger

// ClaimTierRewards pays the caller a tier-scaled reward against their
// contribution to one project: contribution × tier multiplier / 10000,
// debited from the single global pool and paid in the project's asset.
// Claims against different projects are independent. Returns the reward
// paid.
func (l *Ledger) ClaimTierRewards(caller Address, projectID uint64) (Amount, error) {
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
	contribution, err := getAmount(l.state, contributionKey(projectID, caller))
	if err != nil {
		return 0, l.fail(err)
	}
	if contribution <= 0 {
		return 0, l.fail(errScarcef("caller %s has no contribution to project %d", caller, projectID))
	}

	tiers, err := loadTiers(l.state)
	if err != nil {
		return 0, l.fail(err)
	}
	donor, err := loadDonor(l.state, caller)
	if err != nil {
		return 0, l.fail(err)
	}
	reward, err := rewardFor(contribution, tiers[donor.Tier].RewardMultiplierBps)
	if err != nil {
		return 0, l.fail(err)
	}
	pool, err := getAmount(l.state, keyRewardPool)
	if err != nil {
		return 0, l.fail(err)
	}
	if pool < reward {
		return 0, l.fail(errScarcef("reward pool holds %d, claim needs %d", pool, reward))
	}

	ov := newOverlay(l.state)
	if err := putAmount(ov, keyRewardPool, pool-reward); err != nil {
		return 0, l.fail(err)
	}
	if donor.TotalRewarded, err = addAmount(donor.TotalRewarded, reward); err != nil {
		return 0, l.fail(err)
	}
	donor.LastUpdate = l.now()
	if err := saveDonor(ov, donor); err != nil {
		return 0, l.fail(err)
	}
	if err := ov.commit(); err != nil {
		return 0, l.fail(err)
	}

	if err := l.bank.Transfer(caller, reward, prj.Asset); err != nil {
		return 0, l.fail(bankErr("transfer", err))
	}
	l.emitClaim(projectID, caller, reward, donor.Tier)
	l.metrics.claims.Inc()
	l.metrics.rewardedTotal.Add(float64(reward))
	return reward, nil
}
