package ledger

// CreateProject registers a new escrow project with its milestone plan.
// Preconditions run in order and the first failure wins: caller is a
// verified NGO; goal > 0; the four milestone arrays share the same
// non-zero length; every amount > 0; every deadline strictly in the
// future; every minimum-funding floor at most its amount; the amounts sum
// to at most the goal. Ids are sequential from 1. Milestones are created
// with the project in one commit and are never rewritten afterwards
// except through the governance deadline and floor edits.
func (l *Ledger) CreateProject(
	caller Address,
	asset Asset,
	goal Amount,
	descriptions []string,
	amounts []Amount,
	deadlines []int64,
	minFundings []Amount,
) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, err := loadNGO(l.state, caller)
	if err != nil {
		return 0, l.fail(err)
	}
	if rec == nil || !rec.Verified {
		return 0, l.fail(errAuthf("caller %s is not a verified NGO", caller))
	}
	if asset.Kind == AssetToken && asset.Token == "" {
		return 0, l.fail(errInputf("token asset needs an identifier"))
	}
	if goal <= 0 {
		return 0, l.fail(errInputf("goal must be positive"))
	}
	n := len(descriptions)
	if n == 0 || len(amounts) != n || len(deadlines) != n || len(minFundings) != n {
		return 0, l.fail(errInputf("milestone arrays must share one non-zero length"))
	}
	now := l.now()
	for i, amount := range amounts {
		if amount <= 0 {
			return 0, l.fail(errInputf("milestone %d amount must be positive", i))
		}
	}
	for i, deadline := range deadlines {
		if deadline <= now {
			return 0, l.fail(errInputf("milestone %d deadline must be in the future", i))
		}
	}
	for i, floor := range minFundings {
		if floor < 0 || floor > amounts[i] {
			return 0, l.fail(errInputf("milestone %d minimum funding exceeds its amount", i))
		}
	}
	var sum Amount
	for _, amount := range amounts {
		sum, err = addAmount(sum, amount)
		if err != nil {
			return 0, l.fail(err)
		}
	}
	if sum > goal {
		return 0, l.fail(errInputf("milestone amounts exceed the goal"))
	}

	ov := newOverlay(l.state)
	count, err := getCount(ov, keyProjectCount)
	if err != nil {
		return 0, l.fail(err)
	}
	id := count + 1
	if err := putCount(ov, keyProjectCount, id); err != nil {
		return 0, l.fail(err)
	}

	prj := &Project{
		ID:             id,
		NGO:            caller,
		Asset:          asset,
		Goal:           goal,
		MilestoneCount: n,
		IsActive:       true,
		CreatedAt:      now,
	}
	if err := saveProject(ov, prj); err != nil {
		return 0, l.fail(err)
	}
	for i := 0; i < n; i++ {
		ms := &Milestone{
			Description:     descriptions[i],
			AmountRequested: amounts[i],
			Deadline:        deadlines[i],
			MinFunding:      minFundings[i],
		}
		if err := saveMilestone(ov, id, i, ms); err != nil {
			return 0, l.fail(err)
		}
	}
	if err := addProjectToIndex(ov, id); err != nil {
		return 0, l.fail(err)
	}
	if err := ov.commit(); err != nil {
		return 0, l.fail(err)
	}
	l.emitProjectCreated(prj)
	return id, nil
}
