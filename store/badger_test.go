package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"givegate/ledger"
	"givegate/store"
)

func openStore(t *testing.T) *store.Badger {
	t.Helper()
	s, err := store.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func TestSetGetDelete(t *testing.T) {
	s := openStore(t)

	got, err := s.Get("missing")
	require.NoError(t, err)
	require.Nil(t, got)

	require.NoError(t, s.Set("prj:1", `{"id":1}`))
	got, err = s.Get("prj:1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, `{"id":1}`, *got)

	require.NoError(t, s.Delete("prj:1"))
	got, err = s.Get("prj:1")
	require.NoError(t, err)
	require.Nil(t, got)

	// Deleting an absent key is not an error.
	require.NoError(t, s.Delete("prj:1"))
}

func TestApplyBatch(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Set("stale", "x"))

	v1, v2 := "one", "two"
	require.NoError(t, s.Apply(map[string]*string{
		"a":     &v1,
		"b":     &v2,
		"stale": nil,
	}))

	got, err := s.Get("a")
	require.NoError(t, err)
	require.Equal(t, "one", *got)
	got, err = s.Get("b")
	require.NoError(t, err)
	require.Equal(t, "two", *got)
	got, err = s.Get("stale")
	require.NoError(t, err)
	require.Nil(t, got)
}

// TestLedgerOverBadger runs a full operation cycle against the durable
// store and reopens it to prove the state survives.
func TestLedgerOverBadger(t *testing.T) {
	dir := t.TempDir()
	owner := ledger.Address("acct:owner")
	ngo := ledger.Address("acct:ngo")
	donor := ledger.Address("acct:donor")

	s, err := store.Open(dir)
	require.NoError(t, err)
	bank := ledger.NewMockBank()

	led, err := ledger.New(s, ledger.Params{Owner: owner, FeeBps: 250}, ledger.WithBank(bank))
	require.NoError(t, err)
	require.NoError(t, led.RegisterNGO(owner, ngo, "Water For All"))
	deadline := time.Now().Add(24 * time.Hour).Unix()
	id, err := led.CreateProject(ngo, ledger.NativeAsset(), 1_000_000,
		[]string{"phase"}, []ledger.Amount{1_000_000}, []int64{deadline}, []ledger.Amount{0})
	require.NoError(t, err)
	bank.SetBalance(donor, ledger.NativeAsset(), 10_000)
	_, err = led.Donate(donor, id, 10_000)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = store.Open(dir)
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()

	led, err = ledger.New(s, ledger.Params{Owner: owner, FeeBps: 250}, ledger.WithBank(bank))
	require.NoError(t, err)
	prj, err := led.GetProject(id)
	require.NoError(t, err)
	require.Equal(t, ledger.Amount(9_750), prj.Balance)
	pool, err := led.RewardPoolBalance()
	require.NoError(t, err)
	require.Equal(t, ledger.Amount(250), pool)
	verified, err := led.IsVerifiedNGO(ngo)
	require.NoError(t, err)
	require.True(t, verified)
}
