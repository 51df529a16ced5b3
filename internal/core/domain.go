package core

import (
	"errors"
	"strings"
)

const (
	Monthly   BudgetType = "monthly"
	Quarterly BudgetType = "quarterly"
	Yearly    BudgetType = "yearly"
	Loan      BudgetType = "loan"
)

// Uncategorized is the sentinel category for transactions no rule matched.
const Uncategorized = "uncategorized"

type (
	// BudgetType selects how a category's planned allocation and variance
	// are computed.
	BudgetType string

	// Transaction is one ledger entry. Amount is signed: negative = outflow.
	// Identity for deduplication is the (Date, Amount, Description, Account)
	// tuple; Description is the raw bank text and is never rewritten.
	Transaction struct {
		Date        Date
		Amount      Money
		Category    string
		Account     string
		Description string
		Reconciled  bool
		Note        string
	}

	// PlannedEntry is one scheduled row of a category's budget sheet.
	// Amounts share the transaction sign convention (outflow negative).
	PlannedEntry struct {
		Date        Date
		Amount      Money
		Description string
		Note        string
		Reconciled  bool
	}

	// CategorySpec is the per-category budget configuration.
	CategorySpec struct {
		Name           string
		Type           BudgetType
		YearlyAmount   Money
		NextYearAmount Money
		Planned        []PlannedEntry
	}

	// Rule maps a description pattern to a category. The engine only
	// consults rules, it never mutates them.
	Rule struct {
		Pattern  string
		Category string
	}

	// AccountBalance is one row of the balance history.
	AccountBalance struct {
		Account string
		Date    Date
		Balance Money
	}

	// Identity is the comparable dedup tuple of a transaction.
	Identity struct {
		Date        string
		Cents       int64
		Description string
		Account     string
	}
)

var (
	ErrMissingDate      = errors.New("missing date")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category name")
)

// IsValid reports whether bt is one of the four supported budget types.
func (bt BudgetType) IsValid() bool {
	switch bt {
	case Monthly, Quarterly, Yearly, Loan:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (bt BudgetType) String() string {
	return string(bt)
}

// Identity returns the deduplication key for t.
func (t Transaction) Identity() Identity {
	return Identity{
		Date:        t.Date.Key(),
		Cents:       t.Amount.Cents,
		Description: t.Description,
		Account:     t.Account,
	}
}

// Validate checks the fields a transaction must carry to be imported.
// A zero amount is legal (a memo row); a zero date is not.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return ErrMissingDate
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	return nil
}

// Validate checks a planned entry for the fields the calculators rely on.
func (p PlannedEntry) Validate() error {
	if p.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// Validate checks the spec's structural invariants.
func (cs CategorySpec) Validate() error {
	if strings.TrimSpace(cs.Name) == "" {
		return ErrEmptyCategory
	}
	if !cs.Type.IsValid() {
		return &UnsupportedBudgetTypeError{Category: cs.Name, Type: string(cs.Type)}
	}
	for _, p := range cs.Planned {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}
