package budget

import (
	"sort"

	"moneymage/internal/core"
)

// loanCalculator tracks a fixed payment schedule: one planned entry per
// due date, each matched to the nearest transaction within a tolerance
// window. No amortization breakdown is computed.
type loanCalculator struct{}

func (loanCalculator) compute(spec core.CategorySpec, txns []core.Transaction, opts Options) Review {
	schedule := matchSchedule(spec.Planned, txns, opts.LoanToleranceDays)

	// Monthly buckets over the schedule year: planned from due dates,
	// actual from the ledger.
	buckets := make([]core.PeriodBucket, 12)
	running := make([]core.Money, 12)
	remaining := make([]core.Money, 12)

	var cumulative core.Money
	for m := 1; m <= 12; m++ {
		var planned core.Money
		for _, p := range spec.Planned {
			if p.Date.Year() == opts.Year && p.Date.Month() == m {
				planned = planned.Add(p.Amount)
			}
		}
		actual := Sum(txns, SumOptions{Category: spec.Name, Kind: core.PeriodMonth, Index: m, Year: opts.Year})

		cumulative = cumulative.Add(actual)
		running[m-1] = cumulative
		buckets[m-1] = core.PeriodBucket{
			Category:   spec.Name,
			Kind:       core.PeriodMonth,
			Index:      m,
			Planned:    planned,
			Actual:     actual,
			Difference: actual.Sub(planned),
		}
		remaining[m-1] = monthRemaining(planned, actual, opts.Year, m, opts.Today)
	}

	return Review{
		Buckets:      buckets,
		Remaining:    remaining,
		RunningTotal: running,
		Schedule:     schedule,
	}
}

// matchSchedule assigns each due date the nearest unclaimed transaction
// within toleranceDays. Ties on distance go to the earlier transaction;
// a transaction settles at most one schedule entry.
func matchSchedule(planned []core.PlannedEntry, txns []core.Transaction, toleranceDays int) []PaymentStatus {
	entries := append([]core.PlannedEntry(nil), planned...)
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Date.Before(entries[b].Date)
	})

	claimed := make([]bool, len(txns))
	statuses := make([]PaymentStatus, len(entries))
	for i, entry := range entries {
		best := -1
		bestDist := toleranceDays + 1
		for j, t := range txns {
			if claimed[j] {
				continue
			}
			dist := core.DaysBetween(entry.Date, t.Date)
			if dist < bestDist {
				best = j
				bestDist = dist
			}
		}

		status := PaymentStatus{Entry: entry, State: Unpaid}
		if best >= 0 {
			claimed[best] = true
			matched := txns[best]
			status.Matched = &matched
			if matched.Amount.Abs().Cents < entry.Amount.Abs().Cents {
				status.State = Partial
			} else {
				status.State = Paid
			}
		}
		statuses[i] = status
	}
	return statuses
}
