package core

import (
	"math"
	"sort"
)

// Recalculate derives LineTotal, CumulativeSpend and BonusPoints for the
// whole record set and returns it in presentation order (descending by
// date, insertion order preserved on ties).
//
// The function is pure and total: it never fails, malformed values have
// already been coerced to safe defaults by this point, and a negative
// bonus rate is clamped to zero. Calling it twice on its own output with
// the same rate yields the same result.
//
// Accumulation walks each customer group (keyed by exact phone string
// equality, empty phone forming a single "unknown" bucket) in ascending
// date order, insertion order on ties, summing line totals. Bonus points
// are the cumulative spend times rate/100, rounded half-up to two
// decimal places.
func Recalculate(records []PurchaseRecord, bonusRatePercent float64) []PurchaseRecord {
	if len(records) == 0 {
		return []PurchaseRecord{}
	}
	if bonusRatePercent < 0 || math.IsNaN(bonusRatePercent) {
		bonusRatePercent = 0
	}

	out := make([]PurchaseRecord, len(records))
	copy(out, records)

	groups := make(map[string][]int)
	for i := range out {
		if out[i].UnitPrice.Cents < 0 {
			out[i].UnitPrice = Money{}
		}
		if out[i].Quantity < 0 {
			out[i].Quantity = 0
		}
		if out[i].Date.IsZero() {
			out[i].Date = EpochDate()
		}
		out[i].LineTotal = out[i].UnitPrice.MulInt(out[i].Quantity)
		groups[out[i].CustomerPhone] = append(groups[out[i].CustomerPhone], i)
	}

	// Group iteration order does not affect the result: each group only
	// writes to its own rows.
	for _, idxs := range groups {
		asc := append([]int(nil), idxs...)
		sort.SliceStable(asc, func(a, b int) bool {
			return out[asc[a]].Date.Before(out[asc[b]].Date.Time)
		})
		var running int64
		for _, i := range asc {
			running += out[i].LineTotal.Cents
			out[i].CumulativeSpend = Money{Cents: running}
			out[i].BonusPoints = Points{
				Hundredths: int64(math.Round(float64(running) * bonusRatePercent / 100)),
			}
		}
	}

	// out is still in input order, so the stable sort keeps insertion
	// order among same-date records.
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Date.After(out[b].Date.Time)
	})
	return out
}
