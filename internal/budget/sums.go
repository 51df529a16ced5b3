package budget

import (
	"moneymage/internal/core"
	"moneymage/internal/ledger"
)

// SumOptions narrows a ledger reduction to one category, period and
// reconciliation state. Zero values mean "no filter".
type SumOptions struct {
	Category string
	Kind     core.PeriodKind
	Index    int // month 1-12 or quarter 1-4; unused for PeriodYear
	Year     int
	Filter   ledger.ReconciliationFilter
}

// Sum reduces transactions to a single signed total. An empty selection
// sums to zero; it is never an error.
func Sum(txns []core.Transaction, opts SumOptions) core.Money {
	var total core.Money
	for _, t := range txns {
		if !matches(t, opts) {
			continue
		}
		total = total.Add(t.Amount)
	}
	return total
}

func matches(t core.Transaction, opts SumOptions) bool {
	if opts.Category != "" && t.Category != opts.Category {
		return false
	}
	switch opts.Filter {
	case ledger.ReconciledOnly:
		if !t.Reconciled {
			return false
		}
	case ledger.UnreconciledOnly:
		if t.Reconciled {
			return false
		}
	}
	if opts.Year != 0 && t.Date.Year() != opts.Year {
		return false
	}
	switch opts.Kind {
	case core.PeriodMonth:
		if t.Date.Month() != opts.Index {
			return false
		}
	case core.PeriodQuarter:
		if t.Date.Quarter() != opts.Index {
			return false
		}
	}
	return true
}

// MonthSum is one end-of-month bucket of a monthly series.
type MonthSum struct {
	Month  core.Date // end of month
	Amount core.Money
}

// MonthlySums buckets the amounts of the selected category by calendar
// month, one bucket per month between the earliest and latest date seen.
// An empty category selects every transaction.
func MonthlySums(category string, txns []core.Transaction) []MonthSum {
	if len(txns) == 0 {
		return nil
	}

	var first, last core.Date
	for _, t := range txns {
		if category != "" && t.Category != category {
			continue
		}
		if first.IsZero() || t.Date.Before(first) {
			first = t.Date
		}
		if last.IsZero() || t.Date.After(last) {
			last = t.Date
		}
	}
	if first.IsZero() {
		return nil
	}

	months := core.MonthEnds(first, last)
	sums := make([]MonthSum, len(months))
	for i, m := range months {
		sums[i].Month = m
	}
	for _, t := range txns {
		if category != "" && t.Category != category {
			continue
		}
		for i, m := range months {
			if t.Date.InSameMonth(m) {
				sums[i].Amount = sums[i].Amount.Add(t.Amount)
				break
			}
		}
	}
	return sums
}

// QuarterSum is one quarter-end bucket of a quarterly series.
type QuarterSum struct {
	Quarter core.Date // end of quarter
	Amount  core.Money
}

// QuarterlySums returns the category's signed totals for the four quarters
// of year, each bucket keyed by its quarter-end date.
func QuarterlySums(category string, txns []core.Transaction, year int) [4]QuarterSum {
	var sums [4]QuarterSum
	for i, end := range core.QuarterEnds(year) {
		sums[i].Quarter = end
	}
	for _, t := range txns {
		if category != "" && t.Category != category {
			continue
		}
		if t.Date.Year() != year {
			continue
		}
		q := t.Date.Quarter() - 1
		sums[q].Amount = sums[q].Amount.Add(t.Amount)
	}
	return sums
}
