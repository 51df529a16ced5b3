package sheets

import (
	"context"

	"moneymage/internal/core"
)

// Ports for outbound adapters. A full backend implements all of them; the
// review service only asks for the slices it needs.
type (
	LedgerReader interface {
		LoadTransactions(ctx context.Context, year int) ([]core.Transaction, error)
	}

	LedgerWriter interface {
		// SaveTransactions replaces the stored ledger for the given year.
		SaveTransactions(ctx context.Context, year int, txns []core.Transaction) error
	}

	// BudgetReader loads the per-category budget configuration, planned
	// entries included.
	BudgetReader interface {
		LoadSpecs(ctx context.Context, year int) ([]core.CategorySpec, error)
	}

	// RuleReader loads the auto-categorization rules. Rules are read-only
	// from the engine's point of view.
	RuleReader interface {
		LoadRules(ctx context.Context) ([]core.Rule, error)
	}

	// BalanceReader loads the account balance history.
	BalanceReader interface {
		LoadBalances(ctx context.Context) ([]core.AccountBalance, error)
	}
)
