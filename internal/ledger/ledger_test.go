package ledger

import (
	"errors"
	"testing"

	"moneymage/internal/core"
	"moneymage/internal/match"
)

func walmartTxn() core.Transaction {
	return core.Transaction{
		Date:        core.NewDate(2025, 1, 5),
		Amount:      core.NewMoney(-50, 0),
		Description: "WALMART",
		Account:     "Checking",
	}
}

var groceryRules = []core.Rule{{Pattern: "WALMART", Category: "Groceries"}}

func TestMergeCategorizesNewTransactions(t *testing.T) {
	res := Merge(Ledger{}, []core.Transaction{walmartTxn()}, match.Default(), groceryRules)
	if res.Imported != 1 || res.Duplicates != 0 {
		t.Fatalf("expected 1 imported, got imported=%d duplicates=%d", res.Imported, res.Duplicates)
	}
	got := res.Ledger.Transactions()
	if got[0].Category != "Groceries" {
		t.Fatalf("expected auto-categorized Groceries, got %q", got[0].Category)
	}
	if got[0].Reconciled {
		t.Fatalf("imported transactions must start unreconciled")
	}
}

func TestMergeDedupIdempotence(t *testing.T) {
	batch := []core.Transaction{walmartTxn()}
	first := Merge(Ledger{}, batch, match.Default(), groceryRules)
	second := Merge(first.Ledger, batch, match.Default(), groceryRules)

	if second.Duplicates != len(batch) {
		t.Fatalf("re-merge should count full batch as duplicates, got %d", second.Duplicates)
	}
	if second.Imported != 0 {
		t.Fatalf("re-merge should import nothing, got %d", second.Imported)
	}
	if second.Ledger.Len() != first.Ledger.Len() {
		t.Fatalf("re-merge changed ledger size: %d -> %d", first.Ledger.Len(), second.Ledger.Len())
	}
}

func TestMergePreservesReconciliation(t *testing.T) {
	existing := walmartTxn()
	existing.Category = "Groceries"
	existing.Reconciled = true

	// Incoming copy of the same transaction, unreconciled.
	res := Merge(New([]core.Transaction{existing}), []core.Transaction{walmartTxn()}, match.Default(), groceryRules)
	if res.Duplicates != 1 {
		t.Fatalf("expected duplicate, got %d", res.Duplicates)
	}
	got := res.Ledger.Transactions()
	if !got[0].Reconciled {
		t.Fatalf("merge must not clear existing reconciled flags")
	}
}

func TestMergePartialFailure(t *testing.T) {
	bad := core.Transaction{Amount: core.NewMoney(-10, 0), Description: "NO DATE", Account: "Checking"}
	good := walmartTxn()

	res := Merge(Ledger{}, []core.Transaction{bad, good}, match.Default(), groceryRules)
	if res.Imported != 1 {
		t.Fatalf("good record should survive a bad sibling, imported=%d", res.Imported)
	}
	if len(res.Report.Errors) != 1 {
		t.Fatalf("expected one record error, got %v", res.Report.Errors)
	}
	var recErr *core.RecordError
	if !errors.As(res.Report.Errors[0], &recErr) {
		t.Fatalf("expected RecordError, got %T", res.Report.Errors[0])
	}
}

func TestMergeSortsChronologicallyKeepingTies(t *testing.T) {
	jan10a := core.Transaction{Date: core.NewDate(2025, 1, 10), Amount: core.NewMoney(-1, 0), Description: "FIRST", Account: "A"}
	jan10b := core.Transaction{Date: core.NewDate(2025, 1, 10), Amount: core.NewMoney(-2, 0), Description: "SECOND", Account: "A"}
	jan3 := core.Transaction{Date: core.NewDate(2025, 1, 3), Amount: core.NewMoney(-3, 0), Description: "EARLIER", Account: "A"}

	res := Merge(Ledger{}, []core.Transaction{jan10a, jan10b, jan3}, nil, nil)
	got := res.Ledger.Transactions()
	if got[0].Description != "EARLIER" {
		t.Fatalf("expected chronological order, got %q first", got[0].Description)
	}
	if got[1].Description != "FIRST" || got[2].Description != "SECOND" {
		t.Fatalf("date ties must keep insertion order: %q then %q", got[1].Description, got[2].Description)
	}
}

func TestMergeReportsExistingDuplicates(t *testing.T) {
	dup := walmartTxn()
	broken := Ledger{txns: []core.Transaction{dup, dup}}

	res := Merge(broken, nil, nil, nil)
	if len(res.Report.Errors) != 1 {
		t.Fatalf("expected invariant error, got %v", res.Report.Errors)
	}
	var invErr *core.InvariantError
	if !errors.As(res.Report.Errors[0], &invErr) {
		t.Fatalf("expected InvariantError, got %T", res.Report.Errors[0])
	}
	if res.Ledger.Len() != 1 {
		t.Fatalf("merge should drop the surviving duplicate, len=%d", res.Ledger.Len())
	}
}

func TestFilter(t *testing.T) {
	rec := walmartTxn()
	rec.Category = "Groceries"
	rec.Reconciled = true
	unrec := core.Transaction{Date: core.NewDate(2025, 2, 1), Amount: core.NewMoney(-20, 0), Description: "HEB", Account: "Checking", Category: "Groceries"}
	other := core.Transaction{Date: core.NewDate(2025, 2, 2), Amount: core.NewMoney(-30, 0), Description: "SHELL", Account: "Checking", Category: "Gas"}

	l := New([]core.Transaction{rec, unrec, other})

	if got := l.Filter("Groceries", All); len(got) != 2 {
		t.Fatalf("category filter: expected 2, got %d", len(got))
	}
	if got := l.Filter("", UnreconciledOnly); len(got) != 2 {
		t.Fatalf("unreconciled filter: expected 2, got %d", len(got))
	}
	if got := l.Filter("Groceries", ReconciledOnly); len(got) != 1 {
		t.Fatalf("reconciled filter: expected 1, got %d", len(got))
	}
}

func TestInYear(t *testing.T) {
	old := core.Transaction{Date: core.NewDate(2024, 12, 28), Amount: core.NewMoney(-5, 0), Description: "OLD", Account: "Checking"}
	l := New([]core.Transaction{old, walmartTxn()})

	got := l.InYear(2025)
	if len(got) != 1 || got[0].Description != "WALMART" {
		t.Fatalf("expected only the 2025 entry, got %v", got)
	}
}

func TestResolveCategories(t *testing.T) {
	txn := walmartTxn()
	txn.Category = "Missing"
	l := New([]core.Transaction{txn})

	specs := map[string]core.CategorySpec{
		"Groceries": {Name: "Groceries", Type: core.Monthly},
	}
	report := l.ResolveCategories(specs)
	if len(report.Warnings) != 1 {
		t.Fatalf("expected unknown-category warning, got %v", report.Warnings)
	}
	if got := l.Transactions()[0].Category; got != core.Uncategorized {
		t.Fatalf("expected fallback to uncategorized, got %q", got)
	}
}

func TestReconcileAndSetCategory(t *testing.T) {
	txn := walmartTxn()
	l := New([]core.Transaction{txn})

	if !l.Reconcile(txn.Identity(), true) {
		t.Fatalf("expected reconcile to find the entry")
	}
	if !l.Transactions()[0].Reconciled {
		t.Fatalf("reconcile flag not set")
	}
	if !l.SetCategory(txn.Identity(), "Groceries") {
		t.Fatalf("expected category update")
	}
	if l.Reconcile(core.Identity{Date: "1999-01-01"}, true) {
		t.Fatalf("unknown identity must not reconcile")
	}
}
