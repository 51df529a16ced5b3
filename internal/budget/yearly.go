package budget

import "moneymage/internal/core"

// yearlyCalculator reviews a category against a single yearly allocation.
// There is no periodic reset within the year; remaining allowance simply
// shrinks as spending accrues and crosses zero on overspend.
type yearlyCalculator struct{}

func (yearlyCalculator) compute(spec core.CategorySpec, txns []core.Transaction, opts Options) Review {
	actual := Sum(txns, SumOptions{Category: spec.Name, Year: opts.Year})

	bucket := core.PeriodBucket{
		Category:   spec.Name,
		Kind:       core.PeriodYear,
		Index:      0,
		Planned:    spec.YearlyAmount,
		Actual:     actual,
		Difference: actual.Sub(spec.YearlyAmount),
	}

	return Review{
		Buckets:      []core.PeriodBucket{bucket},
		Remaining:    []core.Money{spec.YearlyAmount.Sub(actual)},
		RunningTotal: []core.Money{actual},
	}
}
