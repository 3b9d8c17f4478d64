package ledger

// NGO registry. Owner-only writes; records flip to unverified instead of
// being deleted so the name survives for audit.

// RegisterNGO marks an account as a verified organization.
func (l *Ledger) RegisterNGO(caller, account Address, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := loadConfig(l.state)
	if err != nil {
		return l.fail(err)
	}
	if err := requireOwner(cfg, caller); err != nil {
		return l.fail(err)
	}
	if account.IsZero() {
		return l.fail(errInputf("cannot register the zero account"))
	}
	if name == "" {
		return l.fail(errInputf("organization name required"))
	}
	rec, err := loadNGO(l.state, account)
	if err != nil {
		return l.fail(err)
	}
	if rec != nil && rec.Verified {
		return l.fail(errConflictf("account %s already verified", account))
	}

	ov := newOverlay(l.state)
	if err := saveNGO(ov, &NGORecord{Account: account, Name: name, Verified: true}); err != nil {
		return l.fail(err)
	}
	if err := ov.commit(); err != nil {
		return l.fail(err)
	}
	l.emitNGORegistered(account, name)
	return nil
}

// RevokeNGO clears the verified flag. The record itself stays.
func (l *Ledger) RevokeNGO(caller, account Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := loadConfig(l.state)
	if err != nil {
		return l.fail(err)
	}
	if err := requireOwner(cfg, caller); err != nil {
		return l.fail(err)
	}
	rec, err := loadNGO(l.state, account)
	if err != nil {
		return l.fail(err)
	}
	if rec == nil || !rec.Verified {
		return l.fail(errConflictf("account %s is not a verified NGO", account))
	}

	rec.Verified = false
	ov := newOverlay(l.state)
	if err := saveNGO(ov, rec); err != nil {
		return l.fail(err)
	}
	if err := ov.commit(); err != nil {
		return l.fail(err)
	}
	l.emitNGORevoked(account)
	return nil
}
