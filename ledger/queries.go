package ledger

// Read surface. Queries take the same lock as mutations so they always
// see a fully committed state, and they return copies.

// GetProject returns a project by id.
func (l *Ledger) GetProject(id uint64) (Project, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	prj, err := loadProject(l.state, id)
	if err != nil {
		return Project{}, err
	}
	return *prj, nil
}

// GetMilestone returns one milestone by (project, index).
func (l *Ledger) GetMilestone(id uint64, index int) (Milestone, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := loadProject(l.state, id); err != nil {
		return Milestone{}, err
	}
	ms, err := loadMilestone(l.state, id, index)
	if err != nil {
		return Milestone{}, err
	}
	return *ms, nil
}

// GetContribution returns the donor's cumulative net contribution to a
// project; zero if they never donated.
func (l *Ledger) GetContribution(id uint64, donor Address) (Amount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := loadProject(l.state, id); err != nil {
		return 0, err
	}
	return getAmount(l.state, contributionKey(id, donor))
}

// GetDonorProfile returns a donor's cross-project profile. Unknown donors
// come back as a fresh bronze profile.
func (l *Ledger) GetDonorProfile(donor Address) (DonorProfile, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	prof, err := loadDonor(l.state, donor)
	if err != nil {
		return DonorProfile{}, err
	}
	return *prof, nil
}

// HasVoted reports whether the donor already voted on (project, index).
func (l *Ledger) HasVoted(id uint64, index int, donor Address) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, err := getJSON[VoteReceipt](l.state, voteKey(id, index, donor))
	if err != nil {
		return false, err
	}
	return rec != nil, nil
}

// IsVerifiedNGO reports whether the account is currently verified.
func (l *Ledger) IsVerifiedNGO(account Address) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, err := loadNGO(l.state, account)
	if err != nil {
		return false, err
	}
	return rec != nil && rec.Verified, nil
}

// GetNGO returns the registry record for an account, verified or not.
func (l *Ledger) GetNGO(account Address) (NGORecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, err := loadNGO(l.state, account)
	if err != nil {
		return NGORecord{}, err
	}
	if rec == nil {
		return NGORecord{}, errNotFoundf("no registry record for %s", account)
	}
	return *rec, nil
}

// ListProjectIDs returns every project id in creation order.
func (l *Ledger) ListProjectIDs() ([]uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return loadProjectIndex(l.state)
}

// Paused reports the global pause flag.
func (l *Ledger) Paused() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cfg, err := loadConfig(l.state)
	if err != nil {
		return false, err
	}
	return cfg.Paused, nil
}

// ProtocolFeeBps reports the current donation skim.
func (l *Ledger) ProtocolFeeBps() (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cfg, err := loadConfig(l.state)
	if err != nil {
		return 0, err
	}
	return cfg.FeeBps, nil
}

// Owner reports the governing account.
func (l *Ledger) Owner() (Address, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cfg, err := loadConfig(l.state)
	if err != nil {
		return "", err
	}
	return cfg.Owner, nil
}

// RewardPoolBalance reports the global fee accumulator.
func (l *Ledger) RewardPoolBalance() (Amount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return getAmount(l.state, keyRewardPool)
}

// TierConfigFor returns one tier row.
func (l *Ledger) TierConfigFor(tier Tier) (TierConfig, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if tier >= tierCount {
		return TierConfig{}, errInputf("unknown tier %d", tier)
	}
	tiers, err := loadTiers(l.state)
	if err != nil {
		return TierConfig{}, err
	}
	return tiers[tier], nil
}
