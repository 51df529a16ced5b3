package budget

import "moneymage/internal/core"

// quarterlyCalculator reviews a category against four quarterly
// allocations. Unused allocation from a completed quarter does not roll
// forward: each quarter is a hard cutoff.
type quarterlyCalculator struct{}

func (quarterlyCalculator) compute(spec core.CategorySpec, txns []core.Transaction, opts Options) Review {
	shares := spec.YearlyAmount.DivideEven(4)
	actuals := QuarterlySums(spec.Name, txns, opts.Year)

	buckets := make([]core.PeriodBucket, 4)
	remaining := make([]core.Money, 4)
	running := make([]core.Money, 4)

	var cumulative core.Money
	for q := 1; q <= 4; q++ {
		quarter := q
		planned := plannedForPeriod(spec, opts.Year,
			func(d core.Date) bool { return d.Quarter() == quarter }, shares[q-1])
		actual := actuals[q-1].Amount

		cumulative = cumulative.Add(actual)
		running[q-1] = cumulative
		buckets[q-1] = core.PeriodBucket{
			Category:   spec.Name,
			Kind:       core.PeriodQuarter,
			Index:      q,
			Planned:    planned,
			Actual:     actual,
			Difference: actual.Sub(planned),
		}
		remaining[q-1] = quarterRemaining(planned, actual, opts.Year, q, opts.Today)
	}

	return Review{Buckets: buckets, Remaining: remaining, RunningTotal: running}
}

// quarterRemaining: elapsed quarters keep nothing (no carry-forward), the
// current quarter keeps plan minus spend unless already overspent, and
// future quarters keep the full allocation.
func quarterRemaining(planned, actual core.Money, year, quarter int, today core.Date) core.Money {
	nowQuarter := today.Quarter()
	switch cmpPeriod(year, quarter, today.Year(), nowQuarter) {
	case -1:
		return core.Money{}
	case 0:
		if actual.Cents < planned.Cents {
			// Spent past the plan already; nothing left.
			return core.Money{}
		}
		return planned.Sub(actual)
	default:
		return planned
	}
}
