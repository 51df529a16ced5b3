// Package projection synthesizes forward-looking balance series from
// unreconciled actuals and scheduled planned entries. Everything here is a
// deterministic function of its inputs: the "today" cursor is an argument,
// never the wall clock.
package projection

import (
	"fmt"
	"sort"

	"moneymage/internal/core"
	"moneymage/internal/ledger"
)

// Project walks unreconciled transactions and future planned entries in
// chronological order, applying a running balance from startingBalance.
// Reconciled transactions are settled history and never appear.
//
// Date ties are broken actual-before-planned: actuals are more certain.
// A horizon before today yields an empty sequence, not an error.
func Project(startingBalance core.Money, led ledger.Ledger, specs []core.CategorySpec, today, horizonEnd core.Date) []core.ProjectionPoint {
	if horizonEnd.Before(today) {
		return nil
	}

	points := collectActuals(led, horizonEnd)
	for _, spec := range specs {
		points = append(points, plannedPoints(spec, today, horizonEnd)...)
	}
	return walk(startingBalance, points)
}

// Ideal is the comparison baseline: the same walk as Project but with every
// category's planned entries replaced by an even monthly distribution of
// its yearly allocation. It is a separate pass and shares no state with
// Project.
func Ideal(startingBalance core.Money, led ledger.Ledger, specs []core.CategorySpec, today, horizonEnd core.Date) []core.ProjectionPoint {
	if horizonEnd.Before(today) {
		return nil
	}

	points := collectActuals(led, horizonEnd)
	for _, spec := range specs {
		points = append(points, idealPoints(spec, today, horizonEnd)...)
	}
	return walk(startingBalance, points)
}

// Forecast extends each category's next-year plan into a multi-year
// series: one year-shifted copy of the plan per forecast year.
func Forecast(specs []core.CategorySpec, year, years int) [][]core.ProjectionPoint {
	out := make([][]core.ProjectionPoint, years)
	for y := 0; y < years; y++ {
		var pts []core.ProjectionPoint
		for _, spec := range specs {
			shares := spec.NextYearAmount.DivideEven(12)
			for m := 1; m <= 12; m++ {
				amount := shares[m-1]
				if amount.IsZero() {
					continue
				}
				date := core.NewDate(year, m, 1).EndOfMonth().AddYears(y + 1)
				pts = append(pts, core.ProjectionPoint{
					Date:        date,
					Description: fmt.Sprintf("Forecast: %s for %s %d", spec.Name, date.Format("January"), date.Year()),
					Amount:      amount,
					Category:    spec.Name,
					Source:      core.SourcePlanned,
				})
			}
		}
		sortPoints(pts)
		out[y] = pts
	}
	return out
}

func collectActuals(led ledger.Ledger, horizonEnd core.Date) []core.ProjectionPoint {
	var points []core.ProjectionPoint
	for _, t := range led.Filter("", ledger.UnreconciledOnly) {
		if t.Date.After(horizonEnd) {
			continue
		}
		points = append(points, core.ProjectionPoint{
			Date:        t.Date,
			Description: t.Description,
			Amount:      t.Amount,
			Category:    t.Category,
			Source:      core.SourceActual,
			Note:        t.Note,
		})
	}
	return points
}

func plannedPoints(spec core.CategorySpec, today, horizonEnd core.Date) []core.ProjectionPoint {
	var points []core.ProjectionPoint
	for _, p := range spec.Planned {
		if p.Reconciled || p.Amount.IsZero() {
			continue
		}
		if p.Date.Before(today) || p.Date.After(horizonEnd) {
			continue
		}
		points = append(points, core.ProjectionPoint{
			Date:        p.Date,
			Description: fmt.Sprintf("%s in %s %d", p.Description, p.Date.Format("January"), p.Date.Year()),
			Amount:      p.Amount,
			Category:    spec.Name,
			Source:      core.SourcePlanned,
			Note:        p.Note,
		})
	}
	return points
}

func idealPoints(spec core.CategorySpec, today, horizonEnd core.Date) []core.ProjectionPoint {
	var points []core.ProjectionPoint
	for year := today.Year(); year <= horizonEnd.Year(); year++ {
		shares := spec.YearlyAmount.DivideEven(12)
		for m := 1; m <= 12; m++ {
			amount := shares[m-1]
			if amount.IsZero() {
				continue
			}
			date := core.NewDate(year, m, 1).EndOfMonth()
			if date.Before(today) || date.After(horizonEnd) {
				continue
			}
			points = append(points, core.ProjectionPoint{
				Date:        date,
				Description: fmt.Sprintf("Ideal %s for %s %d", spec.Name, date.Format("January"), year),
				Amount:      amount,
				Category:    spec.Name,
				Source:      core.SourcePlanned,
			})
		}
	}
	return points
}

// walk sorts the points and applies the running balance.
func walk(startingBalance core.Money, points []core.ProjectionPoint) []core.ProjectionPoint {
	sortPoints(points)
	balance := startingBalance
	for i := range points {
		balance = balance.Add(points[i].Amount)
		points[i].Balance = balance
	}
	return points
}

func sortPoints(points []core.ProjectionPoint) {
	sort.SliceStable(points, func(a, b int) bool {
		if !points[a].Date.Equal(points[b].Date) {
			return points[a].Date.Before(points[b].Date)
		}
		return points[a].Source == core.SourceActual && points[b].Source == core.SourcePlanned
	})
}
