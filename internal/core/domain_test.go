package core

import (
	"testing"
	"time"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Date:        NewDate(2025, 1, 5),
		Amount:      NewMoney(-50, 0),
		Description: "WALMART",
		Account:     "Checking",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	tests := []struct {
		name string
		txn  Transaction
	}{
		{"zero date", Transaction{Amount: NewMoney(-50, 0), Description: "WALMART", Account: "Checking"}},
		{"empty description", Transaction{Date: NewDate(2025, 1, 5), Amount: NewMoney(-50, 0), Account: "Checking"}},
		{"blank description", Transaction{Date: NewDate(2025, 1, 5), Amount: NewMoney(-50, 0), Description: "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.txn.Validate(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestTransactionIdentity(t *testing.T) {
	a := Transaction{Date: NewDate(2025, 1, 5), Amount: NewMoney(-50, 0), Description: "WALMART", Account: "Checking"}
	b := a
	b.Reconciled = true
	b.Category = "Groceries"
	if a.Identity() != b.Identity() {
		t.Fatalf("identity must ignore category and reconciliation state")
	}

	c := a
	c.Amount = NewMoney(-50, 1)
	if a.Identity() == c.Identity() {
		t.Fatalf("identity must include amount")
	}
}

func TestBudgetTypeIsValid(t *testing.T) {
	for _, bt := range []BudgetType{Monthly, Quarterly, Yearly, Loan} {
		if !bt.IsValid() {
			t.Fatalf("%s should be valid", bt)
		}
	}
	if BudgetType("weekly").IsValid() {
		t.Fatalf("weekly should be invalid")
	}
}

func TestCategorySpecValidate(t *testing.T) {
	spec := CategorySpec{Name: "Groceries", Type: Monthly, YearlyAmount: NewMoney(-1200, 0)}
	if err := spec.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bad := CategorySpec{Name: "Groceries", Type: "weekly"}
	err := bad.Validate()
	if err == nil {
		t.Fatalf("expected error for bad type")
	}
	if _, ok := err.(*UnsupportedBudgetTypeError); !ok {
		t.Fatalf("expected UnsupportedBudgetTypeError, got %T", err)
	}
}

func TestDateHelpers(t *testing.T) {
	d := NewDate(2025, 2, 14)
	if d.Quarter() != 1 {
		t.Fatalf("expected Q1, got %d", d.Quarter())
	}
	if got := d.EndOfMonth(); got.Day() != 28 {
		t.Fatalf("expected feb 28, got %d", got.Day())
	}
	if got := NewDate(2024, 2, 1).EndOfMonth(); got.Day() != 29 {
		t.Fatalf("expected leap feb 29, got %d", got.Day())
	}
	if (Date{Time: time.Time{}}).Validate() == nil {
		t.Fatalf("zero date should not validate")
	}
}

func TestMonthEnds(t *testing.T) {
	ends := MonthEnds(NewDate(2024, 11, 15), NewDate(2025, 2, 3))
	want := []Date{
		NewDate(2024, 11, 30),
		NewDate(2024, 12, 31),
		NewDate(2025, 1, 31),
		NewDate(2025, 2, 28),
	}
	if len(ends) != len(want) {
		t.Fatalf("expected %d months, got %d", len(want), len(ends))
	}
	for i := range want {
		if !ends[i].Equal(want[i]) {
			t.Fatalf("month %d: expected %s, got %s", i, want[i].Key(), ends[i].Key())
		}
	}

	if got := MonthEnds(NewDate(2025, 3, 1), NewDate(2025, 1, 1)); got != nil {
		t.Fatalf("reversed range should yield nil, got %v", got)
	}
}
