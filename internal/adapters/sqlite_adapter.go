// Package adapters composes storage backends with the AMQP side channel.
package adapters

import (
	"context"
	"fmt"
	"time"

	"moneymage/internal/amqp"
	"moneymage/internal/core"
	"moneymage/internal/log"
	"moneymage/internal/sheets"
	"moneymage/internal/storage"
)

// StoreAdapter fronts the SQLite repository with an optional AMQP publish
// on every ledger save, so other consumers can follow imports without
// polling the database. The publish is best effort: a broker outage never
// fails a local write.
type StoreAdapter struct {
	repo   *storage.SQLiteRepository
	broker *amqp.Client
	logger *log.Logger
}

func NewStoreAdapter(repo *storage.SQLiteRepository, broker *amqp.Client, logger *log.Logger) *StoreAdapter {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentBackend)
	}
	return &StoreAdapter{repo: repo, broker: broker, logger: logger}
}

func (a *StoreAdapter) LoadTransactions(ctx context.Context, year int) ([]core.Transaction, error) {
	return a.repo.LoadTransactions(ctx, year)
}

// SaveTransactions persists locally, then announces the saved ledger on
// the broker when one is configured.
func (a *StoreAdapter) SaveTransactions(ctx context.Context, year int, txns []core.Transaction) error {
	if err := a.repo.SaveTransactions(ctx, year, txns); err != nil {
		return err
	}
	if a.broker == nil {
		return nil
	}

	records := make([]sheets.TransactionRecord, len(txns))
	for i, t := range txns {
		records[i] = sheets.RecordFromCore(t)
	}
	msg := amqp.NewTransactionBatchMessage(
		fmt.Sprintf("ledger-%d-%d", year, time.Now().UnixNano()),
		"sqlite-store", year, records)
	if err := a.broker.PublishTransactionBatch(ctx, msg); err != nil {
		a.logger.WarnContext(ctx, "Ledger saved but publish failed",
			log.FieldYear, year,
			log.FieldBatchSize, len(records),
			log.FieldError, err.Error())
	}
	return nil
}

func (a *StoreAdapter) LoadSpecs(ctx context.Context, year int) ([]core.CategorySpec, error) {
	return a.repo.LoadSpecs(ctx, year)
}

func (a *StoreAdapter) LoadRules(ctx context.Context) ([]core.Rule, error) {
	return a.repo.LoadRules(ctx)
}

func (a *StoreAdapter) LoadBalances(ctx context.Context) ([]core.AccountBalance, error) {
	return a.repo.LoadBalances(ctx)
}

var (
	_ sheets.LedgerReader  = (*StoreAdapter)(nil)
	_ sheets.LedgerWriter  = (*StoreAdapter)(nil)
	_ sheets.BudgetReader  = (*StoreAdapter)(nil)
	_ sheets.RuleReader    = (*StoreAdapter)(nil)
	_ sheets.BalanceReader = (*StoreAdapter)(nil)
)
