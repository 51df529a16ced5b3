package google

import (
	"testing"

	"moneymage/internal/core"
)

func TestParseTransactionRow(t *testing.T) {
	tests := []struct {
		name    string
		cols    []string
		want    core.Transaction
		wantErr bool
	}{
		{
			name: "full row",
			cols: []string{"2025-01-15", "-45,50", "WALMART STORE 123", "Checking", "Groceries", "x", "weekly shop"},
			want: core.Transaction{
				Date:        core.NewDate(2025, 1, 15),
				Amount:      core.Money{Cents: -4550},
				Description: "WALMART STORE 123",
				Account:     "Checking",
				Category:    "Groceries",
				Reconciled:  true,
				Note:        "weekly shop",
			},
		},
		{
			name: "short row without flags",
			cols: []string{"01/15/2025", "-10", "coffee", "Checking"},
			want: core.Transaction{
				Date:        core.NewDate(2025, 1, 15),
				Amount:      core.Money{Cents: -1000},
				Description: "coffee",
				Account:     "Checking",
			},
		},
		{name: "header row", cols: []string{"Date", "Amount", "Description"}, wantErr: true},
		{name: "bad amount", cols: []string{"2025-01-15", "abc", "x", "Checking"}, wantErr: true},
		{name: "missing description", cols: []string{"2025-01-15", "-10", "", "Checking"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTransactionRow(tt.cols)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTransactionRowRoundTrip(t *testing.T) {
	orig := core.Transaction{
		Date:        core.NewDate(2025, 3, 31),
		Amount:      core.Money{Cents: -123456},
		Description: "rent",
		Account:     "Checking",
		Category:    "Housing",
		Reconciled:  true,
		Note:        "march",
	}
	row := transactionRow(orig)
	cols := make([]string, len(row))
	for i, v := range row {
		cols[i] = v.(string)
	}
	back, err := parseTransactionRow(cols)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back != orig {
		t.Fatalf("round trip changed the transaction: %+v != %+v", back, orig)
	}
}

func TestParseSpecRow(t *testing.T) {
	spec, err := parseSpecRow([]string{"Groceries", "Monthly", "-1200", "-1300"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.Type != core.Monthly {
		t.Fatalf("type must be lowercased to the enum, got %s", spec.Type)
	}
	if spec.YearlyAmount.Cents != -120000 || spec.NextYearAmount.Cents != -130000 {
		t.Fatalf("amounts wrong: %+v", spec)
	}

	if _, err := parseSpecRow([]string{"Broken", "weekly", "-100"}); err == nil {
		t.Fatalf("unsupported budget type must be rejected")
	}
	if _, err := parseSpecRow([]string{"", "monthly", "-100"}); err == nil {
		t.Fatalf("empty name must be rejected")
	}
}

func TestParseSpecRowBlankNextYear(t *testing.T) {
	spec, err := parseSpecRow([]string{"Gifts", "yearly", "-500", ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !spec.NextYearAmount.IsZero() {
		t.Fatalf("blank next-year column must parse as zero, got %s", spec.NextYearAmount)
	}
}

func TestParseBalanceRow(t *testing.T) {
	b, err := parseBalanceRow([]string{"Checking", "2025-01-01", "1234,56"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Balance.Cents != 123456 {
		t.Fatalf("balance: got %d", b.Balance.Cents)
	}
	if _, err := parseBalanceRow([]string{"", "2025-01-01", "1"}); err == nil {
		t.Fatalf("empty account must be rejected")
	}
}

func TestParseFlag(t *testing.T) {
	for _, s := range []string{"x", "X", "true", "1", " yes "} {
		if !parseFlag(s) {
			t.Fatalf("%q should parse as reconciled", s)
		}
	}
	for _, s := range []string{"", "no", "0", "pending"} {
		if parseFlag(s) {
			t.Fatalf("%q should parse as unreconciled", s)
		}
	}
}

func TestYearPrefixedName(t *testing.T) {
	if got := yearPrefixedName("Expenses", 2025); got != "2025 Expenses" {
		t.Fatalf("got %q", got)
	}
	if got := yearPrefixedName("2024 Expenses", 2025); got != "2024 Expenses" {
		t.Fatalf("already-prefixed name must be kept, got %q", got)
	}
}
