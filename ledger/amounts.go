package ledger

import "math"

// Safe integer arithmetic. Every aggregate update goes through these
// helpers so an overflow surfaces as InvalidInput instead of a silently
// wrapped balance.

func addAmount(a, b Amount) (Amount, error) {
	if b > 0 && a > Amount(math.MaxInt64)-b {
		return 0, errInputf("amount overflow")
	}
	if b < 0 && a < Amount(math.MinInt64)-b {
		return 0, errInputf("amount underflow")
	}
	return a + b, nil
}

func subAmount(a, b Amount) (Amount, error) {
	return addAmount(a, -b)
}

// mulDiv computes v*num/den with truncation toward zero, guarding the
// intermediate product. Inputs are non-negative by the time they get here.
func mulDiv(v Amount, num, den int64) (Amount, error) {
	if den <= 0 {
		return 0, errInputf("division by non-positive denominator")
	}
	if num == 0 || v == 0 {
		return 0, nil
	}
	if v < 0 || num < 0 {
		return 0, errInputf("negative amount in fee math")
	}
	if int64(v) > math.MaxInt64/num {
		return 0, errInputf("amount out of range")
	}
	return Amount(int64(v) * num / den), nil
}

// feeFor skims the protocol fee: gross*bps/10000, truncated.
func feeFor(gross Amount, bps int64) (Amount, error) {
	return mulDiv(gross, bps, 10_000)
}

// boostedWeight is contribution plus the tier boost percentage of it.
func boostedWeight(contribution Amount, boostPct int64) (Amount, error) {
	boost, err := mulDiv(contribution, boostPct, 100)
	if err != nil {
		return 0, err
	}
	return addAmount(contribution, boost)
}

// rewardFor scales a per-project contribution by the tier multiplier.
func rewardFor(contribution Amount, multiplierBps int64) (Amount, error) {
	return mulDiv(contribution, multiplierBps, 10_000)
}

// quorumMet is the strict-majority predicate over the frozen snapshot.
// Integer division is deliberate: a snapshot of 1 needs weight > 0, and a
// snapshot of 3 needs weight > 1.
func quorumMet(snapshot, weight Amount) bool {
	return snapshot > 0 && weight > snapshot/2
}
