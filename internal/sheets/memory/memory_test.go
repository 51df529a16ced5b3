package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"moneymage/internal/core"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	txns := []core.Transaction{
		{Date: core.NewDate(2025, 1, 3), Amount: core.NewMoney(-20, 0), Description: "coffee", Account: "Checking"},
	}
	if err := s.SaveTransactions(ctx, 2025, txns); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.LoadTransactions(ctx, 2025)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].Description != "coffee" {
		t.Fatalf("round trip lost data: %v", got)
	}

	// Other years stay empty.
	other, err := s.LoadTransactions(ctx, 2024)
	if err != nil {
		t.Fatalf("load other year: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("2024 ledger should be empty, got %v", other)
	}
}

func TestLoadReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	_ = s.SaveTransactions(ctx, 2025, []core.Transaction{
		{Date: core.NewDate(2025, 1, 3), Amount: core.NewMoney(-20, 0), Description: "coffee", Account: "Checking"},
	})

	first, _ := s.LoadTransactions(ctx, 2025)
	first[0].Description = "mutated"

	second, _ := s.LoadTransactions(ctx, 2025)
	if second[0].Description != "coffee" {
		t.Fatalf("store must not share slices with callers")
	}
}

func TestNewFromFiles(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	write("specs.json", `[
		{"name":"Groceries","type":"monthly","yearly_cents":-120000},
		{"name":"Broken","type":"weekly","yearly_cents":-100}
	]`)
	write("rules.json", `[{"pattern":"WALMART","category":"Groceries"}]`)
	write("balances.json", `[{"account":"Checking","date":"2025-01-01","balance_cents":100000}]`)
	write("transactions.jsonl",
		`{"date":"2025-01-03","amount_cents":-5000,"description":"store","account":"Checking"}
{"date":"not a date","amount_cents":-1,"description":"bad","account":"Checking"}
`)

	s := NewFromFiles(dir)
	ctx := context.Background()

	specs, _ := s.LoadSpecs(ctx, 2025)
	if len(specs) != 1 || specs[0].Name != "Groceries" {
		t.Fatalf("invalid specs must be dropped on seed, got %v", specs)
	}
	rules, _ := s.LoadRules(ctx)
	if len(rules) != 1 || rules[0].Category != "Groceries" {
		t.Fatalf("rules not loaded: %v", rules)
	}
	balances, _ := s.LoadBalances(ctx)
	if len(balances) != 1 || balances[0].Balance.Cents != 100000 {
		t.Fatalf("balances not loaded: %v", balances)
	}
	txns, _ := s.LoadTransactions(ctx, 2025)
	if len(txns) != 1 || txns[0].Amount.Cents != -5000 {
		t.Fatalf("expected the one parseable transaction, got %v", txns)
	}
}

func TestNewFromFilesMissingDirectory(t *testing.T) {
	s := NewFromFiles(filepath.Join(t.TempDir(), "nope"))
	specs, err := s.LoadSpecs(context.Background(), 2025)
	if err != nil || len(specs) != 0 {
		t.Fatalf("missing seed files must yield an empty store, got %v / %v", specs, err)
	}
}
