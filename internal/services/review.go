package services

import (
	"context"
	"fmt"

	"moneymage/internal/budget"
	"moneymage/internal/core"
	"moneymage/internal/ledger"
	"moneymage/internal/log"
	"moneymage/internal/match"
	"moneymage/internal/projection"
)

// Options configures one budget review run. Zero fields fall back to
// sensible defaults in withDefaults.
type Options struct {
	Year              int
	Today             core.Date
	HorizonMonths     int
	ForecastYears     int
	LoanToleranceDays int

	// Recurrences are expanded into their categories' planned schedules
	// through the projection horizon before any computation.
	Recurrences []Recurrence
}

func (o Options) withDefaults() Options {
	if o.HorizonMonths == 0 {
		o.HorizonMonths = 12
	}
	if o.ForecastYears == 0 {
		o.ForecastYears = 5
	}
	if o.Year == 0 && !o.Today.IsZero() {
		o.Year = o.Today.Year()
	}
	return o
}

// Result is the full outcome of a budget review.
type Result struct {
	Year            int
	Imported        int
	Duplicates      int
	Reviews         []budget.Review
	OutOfBalance    map[string]core.Money
	StartingBalance core.Money
	Projection      []core.ProjectionPoint
	Ideal           []core.ProjectionPoint
	Forecast        [][]core.ProjectionPoint
	Report          core.Report
}

// FinalBalance returns the last projected balance, or the starting
// balance when nothing projects.
func (r *Result) FinalBalance() core.Money {
	if len(r.Projection) == 0 {
		return r.StartingBalance
	}
	return r.Projection[len(r.Projection)-1].Balance
}

// ReviewService runs budget reviews against a backend.
type ReviewService struct {
	backend Backend
	matcher *match.Matcher
	logger  *log.Logger
}

func NewReviewService(backend Backend, matcher *match.Matcher, logger *log.Logger) *ReviewService {
	if matcher == nil {
		matcher = match.Default()
	}
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentReview)
	}
	return &ReviewService{backend: backend, matcher: matcher, logger: logger}
}

// Run executes a full budget review: load snapshot, merge the incoming
// batch, compute per-category reviews, project forward, persist the
// merged ledger. Per-record problems end up in Result.Report; only
// backend failures abort the run.
func (s *ReviewService) Run(ctx context.Context, incoming []core.Transaction, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	snap, err := LoadSnapshot(ctx, s.backend, opts.Year)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	s.logger.InfoContext(ctx, "Snapshot loaded",
		log.FieldYear, opts.Year,
		"specs", len(snap.Specs),
		"rules", len(snap.Rules),
		"transactions", len(snap.Transactions))

	res := &Result{Year: opts.Year}
	horizonEnd := core.Date{Time: opts.Today.AddDate(0, opts.HorizonMonths, 0)}

	specs, recReport := ApplyRecurrences(snap.Specs, opts.Recurrences, horizonEnd)
	res.Report.Merge(recReport)

	merge := ledger.Merge(ledger.New(snap.Transactions), incoming, s.matcher, snap.Rules)
	res.Imported = merge.Imported
	res.Duplicates = merge.Duplicates
	res.Report.Merge(merge.Report)
	s.logger.InfoContext(ctx, "Import batch merged",
		log.FieldImported, merge.Imported,
		log.FieldDuplicates, merge.Duplicates,
		"errors", len(merge.Report.Errors))

	led := merge.Ledger
	specIndex := make(map[string]core.CategorySpec, len(specs))
	for _, spec := range specs {
		specIndex[spec.Name] = spec
	}
	res.Report.Merge(led.ResolveCategories(specIndex))

	reviews, report := budget.ComputeAll(specs, led, budget.Options{
		Year:              opts.Year,
		Today:             opts.Today,
		LoanToleranceDays: opts.LoanToleranceDays,
	})
	res.Reviews = reviews
	res.Report.Merge(report)
	res.OutOfBalance = budget.OutOfBalanceSummary(reviews)

	res.StartingBalance = StartingBalance(snap.Balances)
	res.Projection = projection.Project(res.StartingBalance, led, specs, opts.Today, horizonEnd)
	res.Ideal = projection.Ideal(res.StartingBalance, led, specs, opts.Today, horizonEnd)
	res.Forecast = projection.Forecast(specs, opts.Year, opts.ForecastYears)

	// Storage is keyed by year; an off-year row in the batch would
	// otherwise leak into the wrong bucket.
	if err := s.backend.SaveTransactions(ctx, opts.Year, led.InYear(opts.Year)); err != nil {
		return nil, fmt.Errorf("persist ledger: %w", err)
	}
	s.logger.InfoContext(ctx, "Review complete",
		log.FieldYear, opts.Year,
		"categories", len(res.Reviews),
		"out_of_balance", len(res.OutOfBalance),
		log.FieldBalanceCents, res.FinalBalance().Cents)

	return res, nil
}

// Import merges a batch into the stored ledger without computing reviews.
// The worker path: cheap, idempotent, safe to retry.
func (s *ReviewService) Import(ctx context.Context, year int, incoming []core.Transaction) (imported, duplicates int, report core.Report, err error) {
	existing, err := s.backend.LoadTransactions(ctx, year)
	if err != nil {
		return 0, 0, report, fmt.Errorf("load transactions: %w", err)
	}
	rules, err := s.backend.LoadRules(ctx)
	if err != nil {
		return 0, 0, report, fmt.Errorf("load rules: %w", err)
	}

	merge := ledger.Merge(ledger.New(existing), incoming, s.matcher, rules)
	if err := s.backend.SaveTransactions(ctx, year, merge.Ledger.InYear(year)); err != nil {
		return 0, 0, merge.Report, fmt.Errorf("persist ledger: %w", err)
	}

	s.logger.InfoContext(ctx, "Batch imported",
		log.FieldYear, year,
		log.FieldImported, merge.Imported,
		log.FieldDuplicates, merge.Duplicates)
	return merge.Imported, merge.Duplicates, merge.Report, nil
}
