package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"givegate/ledger"
)

const (
	owner = ledger.Address("acct:owner")
	ngo   = ledger.Address("acct:ngo")
	d1    = ledger.Address("acct:donor1")
	d2    = ledger.Address("acct:donor2")
	d3    = ledger.Address("acct:donor3")

	baseTime = int64(1_700_000_000)
	day      = int64(86_400)
)

// fixture wires a ledger over MemState with a MockBank and a controllable
// clock so tests stay deterministic.
type fixture struct {
	t     *testing.T
	led   *ledger.Ledger
	bank  *ledger.MockBank
	state *ledger.MemState
	now   int64
}

func newFixture(t *testing.T) *fixture {
	return newFixtureFee(t, 0)
}

func newFixtureFee(t *testing.T, feeBps int64) *fixture {
	t.Helper()
	f := &fixture{
		t:     t,
		bank:  ledger.NewMockBank(),
		state: ledger.NewMemState(),
		now:   baseTime,
	}
	led, err := ledger.New(f.state, ledger.Params{Owner: owner, FeeBps: feeBps},
		ledger.WithBank(f.bank),
		ledger.WithClock(func() int64 { return f.now }),
	)
	require.NoError(t, err)
	f.led = led
	return f
}

// registerNGO verifies the default NGO account as the owner.
func (f *fixture) registerNGO() {
	f.t.Helper()
	require.NoError(f.t, f.led.RegisterNGO(owner, ngo, "Water For All"))
}

// createProject sets up a native-asset project owned by the default NGO
// with one milestone per amount, deadlines a day out and no funding floor.
func (f *fixture) createProject(goal ledger.Amount, amounts ...ledger.Amount) uint64 {
	f.t.Helper()
	n := len(amounts)
	descriptions := make([]string, n)
	deadlines := make([]int64, n)
	minFundings := make([]ledger.Amount, n)
	for i := range amounts {
		descriptions[i] = "phase"
		deadlines[i] = f.now + day
	}
	id, err := f.led.CreateProject(ngo, ledger.NativeAsset(), goal, descriptions, amounts, deadlines, minFundings)
	require.NoError(f.t, err)
	return id
}

// donate funds the donor at the bank first so the draw never trips on a
// missing balance.
func (f *fixture) donate(donor ledger.Address, projectID uint64, gross ledger.Amount) ledger.Amount {
	f.t.Helper()
	f.bank.SetBalance(donor, ledger.NativeAsset(), gross)
	net, err := f.led.Donate(donor, projectID, gross)
	require.NoError(f.t, err)
	return net
}

func (f *fixture) vote(donor ledger.Address, projectID uint64) {
	f.t.Helper()
	require.NoError(f.t, f.led.VoteMilestone(donor, projectID))
}

func (f *fixture) release(projectID uint64) ledger.Amount {
	f.t.Helper()
	amount, err := f.led.ReleaseFunds(ngo, projectID)
	require.NoError(f.t, err)
	return amount
}

// pool reads the reward pool balance, failing the test on any store error.
func (f *fixture) pool() ledger.Amount {
	f.t.Helper()
	pool, err := f.led.RewardPoolBalance()
	require.NoError(f.t, err)
	return pool
}

func (f *fixture) paused() bool {
	f.t.Helper()
	paused, err := f.led.Paused()
	require.NoError(f.t, err)
	return paused
}

// requireKind asserts both that the call failed and how it failed.
func requireKind(t *testing.T, kind ledger.Kind, err error) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, ledger.KindOf(err), "unexpected error kind for %v", err)
}
