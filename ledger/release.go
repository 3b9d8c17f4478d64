package ledger

// Release state machine. A milestone moves Pending → Released exactly
// once, only here: quorum, funding floor and balance are validated, then
// in one commit the milestone is approved and released, the project is
// debited, the current-milestone cursor advances, and the project
// completes when its last milestone releases. The payout to the NGO runs
// after the bookkeeping committed, as the operation's last step.

type releaseOutcome struct {
	projectID uint64
	index     int
	ngo       Address
	asset     Asset
	amount    Amount
	completed bool
}

// ReleaseFunds releases the current milestone of the caller's project and
// returns the amount paid out.
func (l *Ledger) ReleaseFunds(caller Address, projectID uint64) (Amount, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := loadConfig(l.state)
	if err != nil {
		return 0, l.fail(err)
	}
	if err := requireNotPaused(cfg); err != nil {
		return 0, l.fail(err)
	}

	ov := newOverlay(l.state)
	out, err := l.releaseOne(ov, caller, projectID)
	if err != nil {
		return 0, l.fail(err)
	}
	if err := ov.commit(); err != nil {
		return 0, l.fail(err)
	}
	if err := l.bank.Transfer(out.ngo, out.amount, out.asset); err != nil {
		return 0, l.fail(bankErr("transfer", err))
	}
	l.emitRelease(out.projectID, out.index, out.ngo, out.amount, out.completed)
	l.metrics.releases.Inc()
	l.metrics.releasedTotal.Add(float64(out.amount))
	return out.amount, nil
}

// ReleaseFundsBatch releases the current milestone of each listed project
// with the same all-or-nothing semantics as batch voting. Transfers run
// only after the whole batch committed.
func (l *Ledger) ReleaseFundsBatch(caller Address, projectIDs []uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := loadConfig(l.state)
	if err != nil {
		return l.fail(err)
	}
	if err := requireNotPaused(cfg); err != nil {
		return l.fail(err)
	}
	if len(projectIDs) == 0 {
		return l.fail(errInputf("empty project list"))
	}

	ov := newOverlay(l.state)
	outs := make([]releaseOutcome, 0, len(projectIDs))
	for _, id := range projectIDs {
		out, err := l.releaseOne(ov, caller, id)
		if err != nil {
			return l.fail(err)
		}
		outs = append(outs, out)
	}
	if err := ov.commit(); err != nil {
		return l.fail(err)
	}
	for _, out := range outs {
		if err := l.bank.Transfer(out.ngo, out.amount, out.asset); err != nil {
			return l.fail(bankErr("transfer", err))
		}
		l.emitRelease(out.projectID, out.index, out.ngo, out.amount, out.completed)
		l.metrics.releases.Inc()
		l.metrics.releasedTotal.Add(float64(out.amount))
	}
	return nil
}

// releaseOne stages a single release against the given overlay.
func (l *Ledger) releaseOne(ov *overlay, caller Address, projectID uint64) (releaseOutcome, error) {
	var out releaseOutcome

	prj, err := loadProject(ov, projectID)
	if err != nil {
		return out, err
	}
	if caller != prj.NGO {
		return out, errAuthf("caller %s is not the NGO of project %d", caller, projectID)
	}
	if !prj.IsActive {
		return out, errConflictf("project %d is not active", projectID)
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
	if ms.FundsReleased {
		return out, errConflictf("milestone %d of project %d already released", index, projectID)
	}
	if !quorumMet(ms.Snapshot, ms.VoteWeight) {
		return out, errScarcef("quorum not met on milestone %d of project %d", index, projectID)
	}
	if prj.Balance < ms.MinFunding {
		return out, errScarcef("minimum funding for milestone %d of project %d not reached", index, projectID)
	}
	if prj.Balance < ms.AmountRequested {
		return out, errScarcef("project %d balance below milestone amount", projectID)
	}

	ms.Approved = true
	ms.FundsReleased = true
	if err := saveMilestone(ov, projectID, index, ms); err != nil {
		return out, err
	}
	if prj.Balance, err = subAmount(prj.Balance, ms.AmountRequested); err != nil {
		return out, err
	}
	prj.CurrentMilestone = index + 1
	if prj.CurrentMilestone == prj.MilestoneCount {
		prj.IsCompleted = true
		prj.IsActive = false
	}
	if err := saveProject(ov, prj); err != nil {
		return out, err
	}

	return releaseOutcome{
		projectID: projectID,
		index:     index,
		ngo:       prj.NGO,
		asset:     prj.Asset,
		amount:    ms.AmountRequested,
		completed: prj.IsCompleted,
	}, nil
}
