// Package services orchestrates the budget review: loading the workbook
// snapshot, merging imports, running the calculators and projections, and
// persisting the result.
//
// This file implements the Strategy Pattern for expanding recurring
// planned entries. Each frequency has its own stepper that encapsulates
// the date arithmetic for that cadence.
package services

import (
	"fmt"

	"moneymage/internal/core"
)

// Frequency is the cadence of a recurring planned entry.
type Frequency string

const (
	EveryMonth   Frequency = "monthly"
	EveryQuarter Frequency = "quarterly"
	EveryYear    Frequency = "yearly"
)

// Recurrence describes a repeating planned entry to be expanded into
// dated entries of its category through a horizon.
type Recurrence struct {
	Category    string
	Start       core.Date
	Amount      core.Money
	Description string
	Note        string
	Frequency   Frequency
}

// Stepper is the strategy interface for advancing a recurrence date.
type Stepper interface {
	// Next returns the occurrence after d. Month arithmetic clamps to the
	// last day of shorter months (Jan 31 -> Feb 28).
	Next(d core.Date) core.Date
}

// MonthStepper advances by one calendar month.
type MonthStepper struct{}

func (MonthStepper) Next(d core.Date) core.Date { return addMonthsClamped(d, 1) }

// QuarterStepper advances by three calendar months.
type QuarterStepper struct{}

func (QuarterStepper) Next(d core.Date) core.Date { return addMonthsClamped(d, 3) }

// YearStepper advances by one calendar year.
type YearStepper struct{}

func (YearStepper) Next(d core.Date) core.Date {
	next := core.NewDate(d.Year()+1, d.Month(), 1)
	return clampDay(next, d.Day())
}

// steppers maps frequencies to their corresponding strategies.
var steppers = map[Frequency]Stepper{
	EveryMonth:   MonthStepper{},
	EveryQuarter: QuarterStepper{},
	EveryYear:    YearStepper{},
}

// GetStepper returns the stepper for a frequency, or an error for an
// unknown one.
func GetStepper(f Frequency) (Stepper, error) {
	s, ok := steppers[f]
	if !ok {
		return nil, fmt.Errorf("unknown recurrence frequency: %s", f)
	}
	return s, nil
}

// Expand materializes a recurrence into dated planned entries from its
// start through the horizon, inclusive.
func Expand(rec Recurrence, through core.Date) ([]core.PlannedEntry, error) {
	if rec.Start.IsZero() {
		return nil, core.ErrMissingDate
	}
	stepper, err := GetStepper(rec.Frequency)
	if err != nil {
		return nil, err
	}

	var out []core.PlannedEntry
	for d := rec.Start; !d.After(through); d = stepper.Next(d) {
		out = append(out, core.PlannedEntry{
			Date:        d,
			Amount:      rec.Amount,
			Description: rec.Description,
			Note:        rec.Note,
		})
	}
	return out, nil
}

// ApplyRecurrences expands each recurrence through the horizon and appends
// the resulting entries to its category's planned schedule. Recurrences
// naming a category with no spec are reported as warnings and skipped.
func ApplyRecurrences(specs []core.CategorySpec, recs []Recurrence, through core.Date) ([]core.CategorySpec, core.Report) {
	var report core.Report
	if len(recs) == 0 {
		return specs, report
	}

	out := append([]core.CategorySpec(nil), specs...)
	index := make(map[string]int, len(out))
	for i, spec := range out {
		index[spec.Name] = i
	}

	for _, rec := range recs {
		i, ok := index[rec.Category]
		if !ok {
			report.AddWarning(&core.UnknownCategoryError{
				Category:    rec.Category,
				Description: rec.Description,
			})
			continue
		}
		entries, err := Expand(rec, through)
		if err != nil {
			report.AddError(fmt.Errorf("expand recurrence %q: %w", rec.Description, err))
			continue
		}
		out[i].Planned = append(append([]core.PlannedEntry(nil), out[i].Planned...), entries...)
	}
	return out, report
}

// addMonthsClamped shifts d by n months, keeping the day of month where
// possible and clamping to the month's last day otherwise. Plain AddDate
// would overflow Jan 31 into March.
func addMonthsClamped(d core.Date, n int) core.Date {
	first := core.NewDate(d.Year(), d.Month(), 1)
	shifted := core.Date{Time: first.Time.AddDate(0, n, 0)}
	return clampDay(shifted, d.Day())
}

func clampDay(firstOfMonth core.Date, day int) core.Date {
	last := firstOfMonth.EndOfMonth().Day()
	if day > last {
		day = last
	}
	return core.NewDate(firstOfMonth.Year(), firstOfMonth.Month(), day)
}
