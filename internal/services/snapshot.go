package services

import (
	"context"
	"fmt"

	"moneymage/internal/core"
	"moneymage/internal/sheets"

	"golang.org/x/sync/errgroup"
)

// Backend is the full set of ports a review needs.
type Backend interface {
	sheets.LedgerReader
	sheets.LedgerWriter
	sheets.BudgetReader
	sheets.RuleReader
	sheets.BalanceReader
}

// Snapshot is everything the engine reads, loaded once up front. The
// engine itself stays single-threaded over the snapshot.
type Snapshot struct {
	Specs        []core.CategorySpec
	Rules        []core.Rule
	Balances     []core.AccountBalance
	Transactions []core.Transaction
}

// LoadSnapshot fetches all four sections concurrently. Any failure aborts
// the load; a review on a partial snapshot would silently misreport.
func LoadSnapshot(ctx context.Context, backend Backend, year int) (Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		specs, err := backend.LoadSpecs(ctx, year)
		if err != nil {
			return fmt.Errorf("load specs: %w", err)
		}
		snap.Specs = specs
		return nil
	})
	g.Go(func() error {
		rules, err := backend.LoadRules(ctx)
		if err != nil {
			return fmt.Errorf("load rules: %w", err)
		}
		snap.Rules = rules
		return nil
	})
	g.Go(func() error {
		balances, err := backend.LoadBalances(ctx)
		if err != nil {
			return fmt.Errorf("load balances: %w", err)
		}
		snap.Balances = balances
		return nil
	})
	g.Go(func() error {
		txns, err := backend.LoadTransactions(ctx, year)
		if err != nil {
			return fmt.Errorf("load transactions: %w", err)
		}
		snap.Transactions = txns
		return nil
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// StartingBalance sums the latest balance row of every account. Ties on
// the date keep the later row.
func StartingBalance(balances []core.AccountBalance) core.Money {
	latest := map[string]core.AccountBalance{}
	for _, b := range balances {
		cur, ok := latest[b.Account]
		if !ok || !b.Date.Before(cur.Date) {
			latest[b.Account] = b
		}
	}
	var total core.Money
	for _, b := range latest {
		total = total.Add(b.Balance)
	}
	return total
}
