package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"givegate/ledger"
)

func TestCreateProjectAssignsSequentialIDs(t *testing.T) {
	f := newFixture(t)
	f.registerNGO()

	first := f.createProject(1_000, 400, 600)
	second := f.createProject(2_000, 2_000)
	require.Equal(t, uint64(1), first)
	require.Equal(t, uint64(2), second)

	ids, err := f.led.ListProjectIDs()
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2}, ids)
}

func TestCreateProjectInitialState(t *testing.T) {
	f := newFixture(t)
	f.registerNGO()
	id := f.createProject(1_000, 400, 600)

	prj, err := f.led.GetProject(id)
	require.NoError(t, err)
	require.Equal(t, ngo, prj.NGO)
	require.Equal(t, ledger.Amount(1_000), prj.Goal)
	require.Zero(t, prj.TotalDonated)
	require.Zero(t, prj.Balance)
	require.Zero(t, prj.CurrentMilestone)
	require.Equal(t, 2, prj.MilestoneCount)
	require.True(t, prj.IsActive)
	require.False(t, prj.IsCompleted)

	for i := 0; i < 2; i++ {
		ms, err := f.led.GetMilestone(id, i)
		require.NoError(t, err)
		require.False(t, ms.Approved)
		require.False(t, ms.FundsReleased)
		require.Zero(t, ms.VoteWeight)
		require.Zero(t, ms.Snapshot)
	}
}

// TestCreateProjectValidationOrder walks the precondition chain and
// checks the first failure wins with the right kind.
func TestCreateProjectValidationOrder(t *testing.T) {
	f := newFixture(t)
	f.registerNGO()
	future := f.now + day

	cases := []struct {
		name         string
		caller       ledger.Address
		goal         ledger.Amount
		descriptions []string
		amounts      []ledger.Amount
		deadlines    []int64
		minFundings  []ledger.Amount
		kind         ledger.Kind
	}{
		{
			name:   "unverified caller",
			caller: d1, goal: 1_000,
			descriptions: []string{"a"}, amounts: []ledger.Amount{1_000},
			deadlines: []int64{future}, minFundings: []ledger.Amount{0},
			kind: ledger.KindAuthorization,
		},
		{
			name:   "zero goal",
			caller: ngo, goal: 0,
			descriptions: []string{"a"}, amounts: []ledger.Amount{1_000},
			deadlines: []int64{future}, minFundings: []ledger.Amount{0},
			kind: ledger.KindInvalidInput,
		},
		{
			name:   "empty milestone list",
			caller: ngo, goal: 1_000,
			descriptions: []string{}, amounts: []ledger.Amount{},
			deadlines: []int64{}, minFundings: []ledger.Amount{},
			kind: ledger.KindInvalidInput,
		},
		{
			name:   "mismatched lengths",
			caller: ngo, goal: 1_000,
			descriptions: []string{"a", "b"}, amounts: []ledger.Amount{1_000},
			deadlines: []int64{future}, minFundings: []ledger.Amount{0},
			kind: ledger.KindInvalidInput,
		},
		{
			name:   "zero amount",
			caller: ngo, goal: 1_000,
			descriptions: []string{"a"}, amounts: []ledger.Amount{0},
			deadlines: []int64{future}, minFundings: []ledger.Amount{0},
			kind: ledger.KindInvalidInput,
		},
		{
			name:   "past deadline",
			caller: ngo, goal: 1_000,
			descriptions: []string{"a"}, amounts: []ledger.Amount{1_000},
			deadlines: []int64{f.now - 1}, minFundings: []ledger.Amount{0},
			kind: ledger.KindInvalidInput,
		},
		{
			name:   "floor above amount",
			caller: ngo, goal: 1_000,
			descriptions: []string{"a"}, amounts: []ledger.Amount{1_000},
			deadlines: []int64{future}, minFundings: []ledger.Amount{1_001},
			kind: ledger.KindInvalidInput,
		},
		{
			name:   "milestones exceed goal",
			caller: ngo, goal: 1_000,
			descriptions: []string{"a", "b"}, amounts: []ledger.Amount{700, 400},
			deadlines: []int64{future, future}, minFundings: []ledger.Amount{0, 0},
			kind: ledger.KindInvalidInput,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.led.CreateProject(tc.caller, ledger.NativeAsset(), tc.goal,
				tc.descriptions, tc.amounts, tc.deadlines, tc.minFundings)
			requireKind(t, tc.kind, err)
		})
	}
}

// TestCreateProjectChecksAllAmountsFirst: the amount check runs over the
// whole array before any deadline check, so a bad amount at a later index
// still wins over a bad deadline at an earlier one.
func TestCreateProjectChecksAllAmountsFirst(t *testing.T) {
	f := newFixture(t)
	f.registerNGO()

	_, err := f.led.CreateProject(ngo, ledger.NativeAsset(), 1_000,
		[]string{"a", "b"},
		[]ledger.Amount{500, 0},
		[]int64{f.now - 1, f.now + day},
		[]ledger.Amount{0, 0})
	requireKind(t, ledger.KindInvalidInput, err)
	require.ErrorContains(t, err, "amount must be positive")
}

func TestCreateProjectRejectsUnnamedToken(t *testing.T) {
	f := newFixture(t)
	f.registerNGO()
	_, err := f.led.CreateProject(ngo, ledger.TokenAsset(""), 1_000,
		[]string{"a"}, []ledger.Amount{1_000}, []int64{f.now + day}, []ledger.Amount{0})
	requireKind(t, ledger.KindInvalidInput, err)
}

func TestGetProjectUnknownID(t *testing.T) {
	f := newFixture(t)
	_, err := f.led.GetProject(42)
	requireKind(t, ledger.KindNotFound, err)
}

func TestGetMilestoneOutOfRange(t *testing.T) {
	f := newFixture(t)
	f.registerNGO()
	id := f.createProject(1_000, 1_000)
	_, err := f.led.GetMilestone(id, 1)
	requireKind(t, ledger.KindNotFound, err)
}
