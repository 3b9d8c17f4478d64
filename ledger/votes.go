package ledger

// Voting always targets a project's current milestone; there is no
// arbitrary-index voting on purpose (out-of-order approval would need the
// quorum-snapshot semantics re-derived). The first vote on a milestone
// freezes the project's total-donated value as the quorum denominator, so
// later donations do not enlarge it.

type voteOutcome struct {
	projectID uint64
	index     int
	weight    Amount
	snapshot  Amount
	total     Amount
}

// VoteMilestone records the caller's one-time, tier-boosted vote on the
// project's current milestone.
func (l *Ledger) VoteMilestone(caller Address, projectID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ov := newOverlay(l.state)
	out, err := l.voteOne(ov, caller, projectID)
	if err != nil {
		return l.fail(err)
	}
	if err := ov.commit(); err != nil {
		return l.fail(err)
	}
	l.emitVote(out.projectID, out.index, caller, out.weight, out.snapshot, out.total)
	l.metrics.votes.Inc()
	return nil
}

// VoteMilestoneBatch applies VoteMilestone to each project id in caller
// order as one atomic sequence: any failure aborts the whole batch and no
// partial batch effects survive.
func (l *Ledger) VoteMilestoneBatch(caller Address, projectIDs []uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(projectIDs) == 0 {
		return l.fail(errInputf("empty project list"))
	}
	ov := newOverlay(l.state)
	outs := make([]voteOutcome, 0, len(projectIDs))
	for _, id := range projectIDs {
		out, err := l.voteOne(ov, caller, id)
		if err != nil {
			return l.fail(err)
		}
		outs = append(outs, out)
	}
	if err := ov.commit(); err != nil {
		return l.fail(err)
	}
	for _, out := range outs {
		l.emitVote(out.projectID, out.index, caller, out.weight, out.snapshot, out.total)
		l.metrics.votes.Inc()
	}
	return nil
}

// voteOne stages a single vote against the given overlay.
func (l *Ledger) voteOne(ov *overlay, caller Address, projectID uint64) (voteOutcome, error) {
	var out voteOutcome

	prj, err := loadProject(ov, projectID)
	if err != nil {
		return out, err
	}
	index := prj.CurrentMilestone
	if index >= prj.MilestoneCount {
		return out, errNotFoundf("project %d has no current milestone", projectID)
	}
	ms, err := loadMilestone(ov, projectID, index)
	if err != nil {
		return out, err
	}
	if ms.Approved {
		return out, errConflictf("milestone %d of project %d already approved", index, projectID)
	}
	contribution, err := getAmount(ov, contributionKey(projectID, caller))
	if err != nil {
		return out, err
	}
	if contribution <= 0 {
		return out, errScarcef("caller %s has no contribution to project %d", caller, projectID)
	}
	receipt, err := getJSON[VoteReceipt](ov, voteKey(projectID, index, caller))
	if err != nil {
		return out, err
	}
	if receipt != nil {
		return out, errConflictf("caller %s already voted on milestone %d of project %d", caller, index, projectID)
	}

	// First vote freezes the quorum denominator.
	if ms.Snapshot == 0 {
		ms.Snapshot = prj.TotalDonated
	}

	tiers, err := loadTiers(ov)
	if err != nil {
		return out, err
	}
	donor, err := loadDonor(ov, caller)
	if err != nil {
		return out, err
	}
	weight, err := boostedWeight(contribution, tiers[donor.Tier].VotingBoostPct)
	if err != nil {
		return out, err
	}
	if ms.VoteWeight, err = addAmount(ms.VoteWeight, weight); err != nil {
		return out, err
	}
	if err := saveMilestone(ov, projectID, index, ms); err != nil {
		return out, err
	}
	rec := &VoteReceipt{Weight: weight, VotedAt: l.now()}
	if err := putJSON(ov, voteKey(projectID, index, caller), rec); err != nil {
		return out, err
	}

	return voteOutcome{
		projectID: projectID,
		index:     index,
		weight:    weight,
		snapshot:  ms.Snapshot,
		total:     ms.VoteWeight,
	}, nil
}
