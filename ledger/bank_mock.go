package ledger

import (
	"fmt"
	"sync"
)

// BankOp is one journal line recorded by the MockBank.
type BankOp struct {
	Op      string // "draw" or "transfer"
	Account Address
	Amount  Amount
	Asset   Asset
}

// MockBank backs the tests: it tracks per-account balances and token
// allowances, keeps custody totals per asset, journals every movement and
// supports failure injection plus an observation hook for ordering checks.
type MockBank struct {
	mu         sync.Mutex
	balances   map[Address]map[string]Amount
	allowances map[Address]map[string]Amount
	custody    map[string]Amount
	journal    []BankOp

	// FailDraw/FailTransfer, when set, make the next matching call fail.
	FailDraw     error
	FailTransfer error

	// OnTransfer runs just before a transfer succeeds, letting tests
	// observe that ledger bookkeeping already committed.
	OnTransfer func(op BankOp)
}

// NewMockBank returns an empty mock settlement backend.
func NewMockBank() *MockBank {
	return &MockBank{
		balances:   map[Address]map[string]Amount{},
		allowances: map[Address]map[string]Amount{},
		custody:    map[string]Amount{},
	}
}

// SetBalance funds an account in the given asset.
func (b *MockBank) SetBalance(account Address, asset Asset, amount Amount) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.balances[account] == nil {
		b.balances[account] = map[string]Amount{}
	}
	b.balances[account][asset.String()] = amount
}

// Approve pre-authorizes a token draw, mirroring an allowance.
func (b *MockBank) Approve(account Address, asset Asset, amount Amount) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.allowances[account] == nil {
		b.allowances[account] = map[string]Amount{}
	}
	b.allowances[account][asset.String()] = amount
}

// Draw validates balance (and, for tokens, allowance), then moves value
// from the account into custody.
func (b *MockBank) Draw(from Address, amount Amount, asset Asset) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailDraw != nil {
		err := b.FailDraw
		b.FailDraw = nil
		return err
	}
	key := asset.String()
	if b.balances[from][key] < amount {
		return fmt.Errorf("balance of %s below %d %s", from, amount, key)
	}
	if !asset.IsNative() {
		if b.allowances[from][key] < amount {
			return fmt.Errorf("allowance of %s below %d %s", from, amount, key)
		}
		b.allowances[from][key] -= amount
	}
	b.balances[from][key] -= amount
	b.custody[key] += amount
	b.journal = append(b.journal, BankOp{Op: "draw", Account: from, Amount: amount, Asset: asset})
	return nil
}

// Transfer pays custody out to the recipient.
func (b *MockBank) Transfer(to Address, amount Amount, asset Asset) error {
	b.mu.Lock()
	hook := b.OnTransfer
	if b.FailTransfer != nil {
		err := b.FailTransfer
		b.FailTransfer = nil
		b.mu.Unlock()
		return err
	}
	key := asset.String()
	op := BankOp{Op: "transfer", Account: to, Amount: amount, Asset: asset}
	b.custody[key] -= amount
	if b.balances[to] == nil {
		b.balances[to] = map[string]Amount{}
	}
	b.balances[to][key] += amount
	b.journal = append(b.journal, op)
	b.mu.Unlock()
	if hook != nil {
		hook(op)
	}
	return nil
}

// Balance reads an account balance back out.
func (b *MockBank) Balance(account Address, asset Asset) Amount {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[account][asset.String()]
}

// Custody reads the held total for one asset.
func (b *MockBank) Custody(asset Asset) Amount {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.custody[asset.String()]
}

// Journal returns a copy of every recorded movement in order.
func (b *MockBank) Journal() []BankOp {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]BankOp, len(b.journal))
	copy(out, b.journal)
	return out
}
