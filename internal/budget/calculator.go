// Package budget computes per-category, per-period variances against the
// user-authored plan. Each of the four budget types has its own calculation
// strategy; dispatch happens through an explicit registry rather than
// runtime type inspection.
//
// All computations are pure: the ledger snapshot, the category spec and the
// "today" cursor come in as arguments, results come out as values, and
// re-running on identical inputs yields identical outputs.
package budget

import (
	"fmt"

	"moneymage/internal/core"
	"moneymage/internal/ledger"
)

// DefaultLoanToleranceDays is the window for matching a loan payment
// transaction to its due date.
const DefaultLoanToleranceDays = 5

const outOfBalanceCents = 1 // |actual - reconciled| above this is flagged

// Options configures a budget computation run.
type Options struct {
	Year              int       // budget year under review
	Today             core.Date // externally supplied cursor, never the wall clock
	LoanToleranceDays int       // 0 selects DefaultLoanToleranceDays
}

func (o Options) withDefaults() Options {
	if o.Year == 0 {
		o.Year = o.Today.Year()
	}
	if o.LoanToleranceDays == 0 {
		o.LoanToleranceDays = DefaultLoanToleranceDays
	}
	return o
}

// PaymentState classifies a loan schedule entry.
type PaymentState string

const (
	Paid    PaymentState = "paid"
	Unpaid  PaymentState = "unpaid"
	Partial PaymentState = "partial"
)

type (
	// PaymentStatus pairs a loan schedule entry with the transaction that
	// settled it, if any.
	PaymentStatus struct {
		Entry   core.PlannedEntry
		Matched *core.Transaction
		State   PaymentState
	}

	// Review is the computed budget state of one category for one year.
	Review struct {
		Category string
		Type     core.BudgetType

		// Buckets hold planned/actual/difference per period: 12 for
		// monthly and loan, 4 for quarterly, 1 for yearly.
		Buckets []core.PeriodBucket

		// Remaining is the signed allowance left per bucket.
		Remaining []core.Money

		// RunningTotal is the cumulative actual across buckets.
		RunningTotal []core.Money

		// Schedule is populated for loan categories only.
		Schedule []PaymentStatus

		// OutOfBalance is the sum of actual minus reconciled amounts for
		// the year; a magnitude above one cent means the sheet and the
		// ledger disagree.
		OutOfBalance core.Money
	}
)

// calculator is the per-budget-type strategy.
type calculator interface {
	compute(spec core.CategorySpec, txns []core.Transaction, opts Options) Review
}

// calculators maps each budget type to its strategy.
var calculators = map[core.BudgetType]calculator{
	core.Monthly:   monthlyCalculator{},
	core.Quarterly: quarterlyCalculator{},
	core.Yearly:    yearlyCalculator{},
	core.Loan:      loanCalculator{},
}

// Compute runs the category's strategy over its transactions. A spec with
// an unrecognized budget type is a configuration error: that category is
// skipped, the caller proceeds with the rest.
func Compute(spec core.CategorySpec, txns []core.Transaction, opts Options) (Review, error) {
	calc, ok := calculators[spec.Type]
	if !ok {
		return Review{}, &core.UnsupportedBudgetTypeError{Category: spec.Name, Type: string(spec.Type)}
	}
	opts = opts.withDefaults()

	review := calc.compute(spec, txns, opts)
	review.Category = spec.Name
	review.Type = spec.Type
	review.OutOfBalance = outOfBalance(spec.Name, txns, opts.Year)
	return review, nil
}

// ComputeAll reviews every spec against the ledger. Categories with
// configuration errors are reported and skipped; the rest proceed.
func ComputeAll(specs []core.CategorySpec, led ledger.Ledger, opts Options) ([]Review, core.Report) {
	var (
		reviews []Review
		report  core.Report
	)
	for _, spec := range specs {
		review, err := Compute(spec, led.Filter(spec.Name, ledger.All), opts)
		if err != nil {
			report.AddError(fmt.Errorf("compute %s: %w", spec.Name, err))
			continue
		}
		reviews = append(reviews, review)
	}
	return reviews, report
}

func outOfBalance(category string, txns []core.Transaction, year int) core.Money {
	actual := Sum(txns, SumOptions{Category: category, Year: year})
	reconciled := Sum(txns, SumOptions{Category: category, Year: year, Filter: ledger.ReconciledOnly})
	return actual.Sub(reconciled)
}

// OutOfBalanceSummary filters reviews down to the categories whose ledger
// and sheet disagree by more than a cent.
func OutOfBalanceSummary(reviews []Review) map[string]core.Money {
	out := make(map[string]core.Money)
	for _, r := range reviews {
		if r.OutOfBalance.Abs().Cents > outOfBalanceCents {
			out[r.Category] = r.OutOfBalance
		}
	}
	return out
}

// plannedForPeriod sums planned entries falling into the given period of
// year; when the spec has no entry in that period the even split of the
// yearly allocation serves as the plan.
func plannedForPeriod(spec core.CategorySpec, year int, inPeriod func(core.Date) bool, share core.Money) core.Money {
	var sum core.Money
	found := false
	for _, p := range spec.Planned {
		if p.Date.Year() != year || !inPeriod(p.Date) {
			continue
		}
		sum = sum.Add(p.Amount)
		found = true
	}
	if !found {
		return share
	}
	return sum
}
