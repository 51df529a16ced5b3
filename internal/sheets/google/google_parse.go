package google

import (
	"fmt"
	"strings"

	"moneymage/internal/core"
)

// Ledger sheet columns: Date | Amount | Description | Account | Category |
// Reconciled | Note. Category sheets: Date | Amount | Description | Note |
// Reconciled. Balances: Account | Date | Balance.

func parseTransactionRow(cols []string) (core.Transaction, error) {
	date, err := core.ParseDate(safeGet(cols, 0))
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := parseCents(safeGet(cols, 1))
	if err != nil {
		return core.Transaction{}, err
	}
	t := core.Transaction{
		Date:        date,
		Amount:      amount,
		Description: safeGet(cols, 2),
		Account:     safeGet(cols, 3),
		Category:    safeGet(cols, 4),
		Reconciled:  parseFlag(safeGet(cols, 5)),
		Note:        safeGet(cols, 6),
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

func transactionRow(t core.Transaction) []any {
	reconciled := ""
	if t.Reconciled {
		reconciled = "x"
	}
	return []any{t.Date.Key(), t.Amount.String(), t.Description, t.Account, t.Category, reconciled, t.Note}
}

func parseSpecRow(cols []string) (core.CategorySpec, error) {
	name := safeGet(cols, 0)
	if name == "" {
		return core.CategorySpec{}, fmt.Errorf("empty category name")
	}
	yearly, err := parseCents(safeGet(cols, 2))
	if err != nil {
		return core.CategorySpec{}, fmt.Errorf("yearly amount: %w", err)
	}
	// Next-year column may be blank for categories not planned forward.
	nextYear := core.Money{}
	if s := safeGet(cols, 3); s != "" {
		nextYear, err = parseCents(s)
		if err != nil {
			return core.CategorySpec{}, fmt.Errorf("next year amount: %w", err)
		}
	}
	spec := core.CategorySpec{
		Name:           name,
		Type:           core.BudgetType(strings.ToLower(safeGet(cols, 1))),
		YearlyAmount:   yearly,
		NextYearAmount: nextYear,
	}
	if err := spec.Validate(); err != nil {
		return core.CategorySpec{}, err
	}
	return spec, nil
}

func parsePlannedRow(cols []string) (core.PlannedEntry, error) {
	date, err := core.ParseDate(safeGet(cols, 0))
	if err != nil {
		return core.PlannedEntry{}, err
	}
	amount, err := parseCents(safeGet(cols, 1))
	if err != nil {
		return core.PlannedEntry{}, err
	}
	return core.PlannedEntry{
		Date:        date,
		Amount:      amount,
		Description: safeGet(cols, 2),
		Note:        safeGet(cols, 3),
		Reconciled:  parseFlag(safeGet(cols, 4)),
	}, nil
}

func parseBalanceRow(cols []string) (core.AccountBalance, error) {
	account := safeGet(cols, 0)
	if account == "" {
		return core.AccountBalance{}, fmt.Errorf("empty account")
	}
	date, err := core.ParseDate(safeGet(cols, 1))
	if err != nil {
		return core.AccountBalance{}, err
	}
	balance, err := parseCents(safeGet(cols, 2))
	if err != nil {
		return core.AccountBalance{}, err
	}
	return core.AccountBalance{Account: account, Date: date, Balance: balance}, nil
}

func parseCents(s string) (core.Money, error) {
	cents, err := core.ParseDecimalToCents(s)
	if err != nil {
		return core.Money{}, err
	}
	return core.Money{Cents: cents}, nil
}

// parseFlag accepts the workbook's reconciliation marks.
func parseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x", "true", "yes", "1":
		return true
	default:
		return false
	}
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}
