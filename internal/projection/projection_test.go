package projection

import (
	"testing"

	"moneymage/internal/core"
	"moneymage/internal/ledger"
)

func TestProjectScenario(t *testing.T) {
	// startingBalance 1000, one unreconciled actual -200 on day 3, one
	// planned +1500 on day 10, horizon day 15: balances 800 then 2300.
	led := ledger.New([]core.Transaction{
		{Date: core.NewDate(2025, 1, 3), Amount: core.NewMoney(-200, 0), Description: "card payment", Account: "Checking", Category: "Spending"},
	})
	specs := []core.CategorySpec{
		{
			Name: "Income",
			Type: core.Monthly,
			Planned: []core.PlannedEntry{
				{Date: core.NewDate(2025, 1, 10), Amount: core.NewMoney(1500, 0), Description: "paycheck"},
			},
		},
	}

	got := Project(core.NewMoney(1000, 0), led, specs, core.NewDate(2025, 1, 1), core.NewDate(2025, 1, 15))
	if len(got) != 2 {
		t.Fatalf("expected 2 points, got %d", len(got))
	}
	if got[0].Balance.Cents != 80000 {
		t.Fatalf("first balance: expected 800.00, got %s", got[0].Balance)
	}
	if got[1].Balance.Cents != 230000 {
		t.Fatalf("second balance: expected 2300.00, got %s", got[1].Balance)
	}
	if got[0].Source != core.SourceActual || got[1].Source != core.SourcePlanned {
		t.Fatalf("source kinds wrong: %s, %s", got[0].Source, got[1].Source)
	}
}

func TestProjectConservation(t *testing.T) {
	led := ledger.New([]core.Transaction{
		{Date: core.NewDate(2025, 1, 3), Amount: core.NewMoney(-200, 0), Description: "a", Account: "A"},
		{Date: core.NewDate(2025, 2, 3), Amount: core.NewMoney(-75, 50), Description: "b", Account: "A"},
	})
	specs := []core.CategorySpec{
		{Name: "Income", Type: core.Monthly, Planned: []core.PlannedEntry{
			{Date: core.NewDate(2025, 3, 1), Amount: core.NewMoney(1500, 0), Description: "pay"},
			{Date: core.NewDate(2025, 4, 1), Amount: core.NewMoney(1500, 0), Description: "pay"},
		}},
	}

	start := core.NewMoney(1000, 0)
	points := Project(start, led, specs, core.NewDate(2025, 1, 1), core.NewDate(2025, 12, 31))

	var sum core.Money
	for _, p := range points {
		sum = sum.Add(p.Amount)
	}
	final := points[len(points)-1].Balance
	if final.Cents != start.Add(sum).Cents {
		t.Fatalf("final balance %s != start %s + amounts %s", final, start, sum)
	}
}

func TestProjectExcludesReconciled(t *testing.T) {
	led := ledger.New([]core.Transaction{
		{Date: core.NewDate(2025, 1, 3), Amount: core.NewMoney(-200, 0), Description: "settled", Account: "A", Reconciled: true},
		{Date: core.NewDate(2025, 1, 4), Amount: core.NewMoney(-100, 0), Description: "pending", Account: "A"},
	})
	points := Project(core.Money{}, led, nil, core.NewDate(2025, 1, 1), core.NewDate(2025, 2, 1))
	if len(points) != 1 || points[0].Description != "pending" {
		t.Fatalf("reconciled history must not project forward: %v", points)
	}
}

func TestProjectHorizonBeforeToday(t *testing.T) {
	led := ledger.New([]core.Transaction{
		{Date: core.NewDate(2025, 1, 3), Amount: core.NewMoney(-200, 0), Description: "a", Account: "A"},
	})
	if got := Project(core.Money{}, led, nil, core.NewDate(2025, 6, 1), core.NewDate(2025, 5, 1)); got != nil {
		t.Fatalf("horizon before today must yield empty, got %v", got)
	}
}

func TestProjectTieBreakActualFirst(t *testing.T) {
	day := core.NewDate(2025, 1, 10)
	led := ledger.New([]core.Transaction{
		{Date: day, Amount: core.NewMoney(-10, 0), Description: "actual same day", Account: "A"},
	})
	specs := []core.CategorySpec{
		{Name: "Income", Type: core.Monthly, Planned: []core.PlannedEntry{
			{Date: day, Amount: core.NewMoney(500, 0), Description: "planned same day"},
		}},
	}
	points := Project(core.Money{}, led, specs, core.NewDate(2025, 1, 1), core.NewDate(2025, 1, 31))
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Source != core.SourceActual {
		t.Fatalf("actuals sort before planned on the same day")
	}
}

func TestProjectSkipsReconciledAndZeroPlans(t *testing.T) {
	specs := []core.CategorySpec{
		{Name: "Bills", Type: core.Monthly, Planned: []core.PlannedEntry{
			{Date: core.NewDate(2025, 1, 10), Amount: core.NewMoney(-50, 0), Description: "due", Reconciled: true},
			{Date: core.NewDate(2025, 1, 12), Amount: core.Money{}, Description: "placeholder"},
			{Date: core.NewDate(2025, 1, 14), Amount: core.NewMoney(-25, 0), Description: "due"},
		}},
	}
	points := Project(core.Money{}, ledger.Ledger{}, specs, core.NewDate(2025, 1, 1), core.NewDate(2025, 1, 31))
	if len(points) != 1 {
		t.Fatalf("reconciled and zero-amount plans must be skipped, got %d points", len(points))
	}
}

func TestIdealIndependentOfProject(t *testing.T) {
	led := ledger.New([]core.Transaction{
		{Date: core.NewDate(2025, 1, 3), Amount: core.NewMoney(-200, 0), Description: "pending", Account: "A", Category: "Groceries"},
	})
	specs := []core.CategorySpec{
		{
			Name:         "Groceries",
			Type:         core.Monthly,
			YearlyAmount: core.NewMoney(-1200, 0),
			Planned: []core.PlannedEntry{
				{Date: core.NewDate(2025, 1, 20), Amount: core.NewMoney(-300, 0), Description: "big shop"},
			},
		},
	}
	today := core.NewDate(2025, 1, 1)
	horizon := core.NewDate(2025, 3, 31)
	start := core.NewMoney(1000, 0)

	actualPass := Project(start, led, specs, today, horizon)
	idealPass := Ideal(start, led, specs, today, horizon)

	// The ideal pass replaces the -300 planned entry with -100 end-of-month
	// allocations; both passes still carry the unreconciled actual.
	if len(idealPass) != 4 { // 1 actual + jan, feb, mar allocations
		t.Fatalf("expected 4 ideal points, got %d", len(idealPass))
	}
	for _, p := range idealPass[1:] {
		if p.Amount.Cents != -10000 {
			t.Fatalf("ideal allocation must be the even split, got %s", p.Amount)
		}
	}

	// Running the ideal pass must not have mutated the actual pass.
	again := Project(start, led, specs, today, horizon)
	if len(again) != len(actualPass) {
		t.Fatalf("project results changed after ideal pass")
	}
	for i := range again {
		if again[i] != actualPass[i] {
			t.Fatalf("project point %d changed after ideal pass", i)
		}
	}
}

func TestForecast(t *testing.T) {
	specs := []core.CategorySpec{
		{Name: "Groceries", Type: core.Monthly, NextYearAmount: core.NewMoney(-1200, 0)},
	}
	years := Forecast(specs, 2025, 5)
	if len(years) != 5 {
		t.Fatalf("expected 5 forecast years, got %d", len(years))
	}
	if len(years[0]) != 12 {
		t.Fatalf("expected 12 monthly points, got %d", len(years[0]))
	}
	if years[0][0].Date.Year() != 2026 {
		t.Fatalf("first forecast year shifts forward one year, got %d", years[0][0].Date.Year())
	}
	if years[4][0].Date.Year() != 2030 {
		t.Fatalf("fifth forecast year is +5, got %d", years[4][0].Date.Year())
	}
}
