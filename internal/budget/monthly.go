package budget

import "moneymage/internal/core"

// monthlyCalculator reviews a category against twelve monthly allocations.
type monthlyCalculator struct{}

func (monthlyCalculator) compute(spec core.CategorySpec, txns []core.Transaction, opts Options) Review {
	shares := spec.YearlyAmount.DivideEven(12)

	buckets := make([]core.PeriodBucket, 12)
	remaining := make([]core.Money, 12)
	running := make([]core.Money, 12)

	var cumulative core.Money
	for m := 1; m <= 12; m++ {
		month := m
		planned := plannedForPeriod(spec, opts.Year,
			func(d core.Date) bool { return d.Month() == month }, shares[m-1])
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

	return Review{Buckets: buckets, Remaining: remaining, RunningTotal: running}
}

// monthRemaining follows the original sheet behavior: elapsed months keep
// nothing, the current month keeps what the plan has not yet consumed
// (clamped so an underspent month cannot turn into extra income), and
// future months keep the full plan.
func monthRemaining(planned, actual core.Money, year, month int, today core.Date) core.Money {
	switch cmpPeriod(year, month, today.Year(), today.Month()) {
	case -1: // elapsed
		return core.Money{}
	case 0: // current month
		left := planned.Sub(actual)
		if left.Cents > 0 {
			return core.Money{}
		}
		return left
	default: // future
		return planned
	}
}

// cmpPeriod orders (year, index) pairs: -1 before, 0 equal, 1 after.
func cmpPeriod(year, index, nowYear, nowIndex int) int {
	switch {
	case year < nowYear || (year == nowYear && index < nowIndex):
		return -1
	case year == nowYear && index == nowIndex:
		return 0
	default:
		return 1
	}
}
