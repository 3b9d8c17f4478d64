package ledger

// Bank is the settlement boundary: the one place value actually moves.
// Draw pulls a donor's value into ledger custody (for token assets it must
// verify the donor pre-authorized at least the amount and holds it);
// Transfer pays custody out to a recipient.
//
// The ledger calls Draw after validating an operation and before
// committing its bookkeeping, and calls Transfer only after the
// bookkeeping committed, as the operation's last step. The ledger's
// operation lock is held across both calls, which is the reentrancy
// guard: a Bank implementation must never call back into the ledger from
// Draw or Transfer.
type Bank interface {
	Draw(from Address, amount Amount, asset Asset) error
	Transfer(to Address, amount Amount, asset Asset) error
}

// NopBank accepts every movement without doing anything. It is the
// default for embedders that settle value elsewhere and only want the
// ledger's bookkeeping.
type NopBank struct{}

func (NopBank) Draw(Address, Amount, Asset) error     { return nil }
func (NopBank) Transfer(Address, Amount, Asset) error { return nil }

// bankErr maps settlement failures onto the insufficient-resource kind;
// a failed draw is indistinguishable from a missing allowance or balance
// from the caller's point of view.
func bankErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if le, ok := err.(*Error); ok {
		return le
	}
	return errScarcef("bank: %s failed: %v", op, err)
}
