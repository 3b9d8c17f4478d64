package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"givegate/ledger"
)

func TestVoteAccumulatesWeight(t *testing.T) {
	f := newFixture(t)
	f.registerNGO()
	id := f.createProject(1_000, 1_000)
	f.donate(d1, id, 400) // bronze, no boost
	f.donate(d2, id, 300)

	f.vote(d1, id)
	f.vote(d2, id)

	ms, err := f.led.GetMilestone(id, 0)
	require.NoError(t, err)
	require.Equal(t, ledger.Amount(700), ms.VoteWeight)
	require.Equal(t, ledger.Amount(700), ms.Snapshot)

	voted, err := f.led.HasVoted(id, 0, d1)
	require.NoError(t, err)
	require.True(t, voted)
}

// TestVoteTwiceRejected: the second vote fails with a state conflict and
// leaves the tally untouched.
func TestVoteTwiceRejected(t *testing.T) {
	f := newFixture(t)
	f.registerNGO()
	id := f.createProject(1_000, 1_000)
	f.donate(d1, id, 400)
	f.vote(d1, id)

	requireKind(t, ledger.KindStateConflict, f.led.VoteMilestone(d1, id))

	ms, err := f.led.GetMilestone(id, 0)
	require.NoError(t, err)
	require.Equal(t, ledger.Amount(400), ms.VoteWeight)
}

func TestVoteWithoutContributionRejected(t *testing.T) {
	f := newFixture(t)
	f.registerNGO()
	id := f.createProject(1_000, 1_000)
	f.donate(d1, id, 400)

	requireKind(t, ledger.KindInsufficient, f.led.VoteMilestone(d2, id))
}

func TestVoteUnknownProjectRejected(t *testing.T) {
	f := newFixture(t)
	requireKind(t, ledger.KindNotFound, f.led.VoteMilestone(d1, 7))
}

// TestVoteSnapshotFreezesAtFirstVote: donations after the first vote do
// not enlarge the quorum denominator for that milestone.
func TestVoteSnapshotFreezesAtFirstVote(t *testing.T) {
	f := newFixture(t)
	f.registerNGO()
	id := f.createProject(10_000, 10_000)
	f.donate(d1, id, 400)

	f.vote(d1, id)
	ms, err := f.led.GetMilestone(id, 0)
	require.NoError(t, err)
	require.Equal(t, ledger.Amount(400), ms.Snapshot)

	f.donate(d2, id, 600)
	f.vote(d2, id)

	ms, err = f.led.GetMilestone(id, 0)
	require.NoError(t, err)
	require.Equal(t, ledger.Amount(400), ms.Snapshot, "snapshot must not move after first vote")
	require.Equal(t, ledger.Amount(1_000), ms.VoteWeight)
}

// TestVoteWeightUsesTierBoost: a platinum donor's weight is contribution
// plus the 20% default boost.
func TestVoteWeightUsesTierBoost(t *testing.T) {
	f := newFixture(t)
	f.registerNGO()
	id := f.createProject(1_000_000, 1_000_000)
	f.donate(d1, id, 100_000) // lifetime 100_000 -> platinum

	f.vote(d1, id)

	ms, err := f.led.GetMilestone(id, 0)
	require.NoError(t, err)
	require.Equal(t, ledger.Amount(120_000), ms.VoteWeight)
}

// TestVoteBoostUsesCurrentTierTable: tier edits apply prospectively, so a
// boost raised before the vote shows up in the weight.
func TestVoteBoostUsesCurrentTierTable(t *testing.T) {
	f := newFixture(t)
	f.registerNGO()
	id := f.createProject(1_000, 1_000)
	f.donate(d1, id, 100) // bronze

	require.NoError(t, f.led.UpdateTierConfig(owner, ledger.TierBronze, ledger.TierConfig{
		MinContribution: 0, RewardMultiplierBps: 50, VotingBoostPct: 50,
	}))
	f.vote(d1, id)

	ms, err := f.led.GetMilestone(id, 0)
	require.NoError(t, err)
	require.Equal(t, ledger.Amount(150), ms.VoteWeight)
}

func TestVoteNoCurrentMilestone(t *testing.T) {
	f := newFixture(t)
	f.registerNGO()
	id := f.createProject(1_000, 1_000)
	f.donate(d1, id, 1_000)
	f.vote(d1, id)
	f.release(id) // last milestone released, cursor past the end

	requireKind(t, ledger.KindNotFound, f.led.VoteMilestone(d1, id))
}

func TestVoteBatchAppliesAll(t *testing.T) {
	f := newFixture(t)
	f.registerNGO()
	a := f.createProject(1_000, 1_000)
	b := f.createProject(1_000, 1_000)
	f.donate(d1, a, 400)
	f.donate(d1, b, 300)

	require.NoError(t, f.led.VoteMilestoneBatch(d1, []uint64{a, b}))

	for _, id := range []uint64{a, b} {
		voted, err := f.led.HasVoted(id, 0, d1)
		require.NoError(t, err)
		require.True(t, voted)
	}
}

// TestVoteBatchIsAtomic: one bad project id aborts the whole batch with
// no partial effects.
func TestVoteBatchIsAtomic(t *testing.T) {
	f := newFixture(t)
	f.registerNGO()
	a := f.createProject(1_000, 1_000)
	b := f.createProject(1_000, 1_000)
	f.donate(d1, a, 400) // no contribution to b

	requireKind(t, ledger.KindInsufficient, f.led.VoteMilestoneBatch(d1, []uint64{a, b}))

	voted, err := f.led.HasVoted(a, 0, d1)
	require.NoError(t, err)
	require.False(t, voted, "batch failure must roll back earlier items")

	ms, err := f.led.GetMilestone(a, 0)
	require.NoError(t, err)
	require.Zero(t, ms.VoteWeight)
	require.Zero(t, ms.Snapshot)
}

// TestVoteBatchRejectsDuplicateProject: the same project twice in one
// batch trips the double-vote guard on the second item, so nothing lands.
func TestVoteBatchRejectsDuplicateProject(t *testing.T) {
	f := newFixture(t)
	f.registerNGO()
	a := f.createProject(1_000, 1_000)
	f.donate(d1, a, 400)

	requireKind(t, ledger.KindStateConflict, f.led.VoteMilestoneBatch(d1, []uint64{a, a}))

	voted, err := f.led.HasVoted(a, 0, d1)
	require.NoError(t, err)
	require.False(t, voted)
}

func TestVoteBatchRejectsEmptyList(t *testing.T) {
	f := newFixture(t)
	requireKind(t, ledger.KindInvalidInput, f.led.VoteMilestoneBatch(d1, nil))
}
