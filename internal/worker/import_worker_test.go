package worker

import (
	"context"
	"errors"
	"testing"

	"moneymage/internal/amqp"
	"moneymage/internal/core"
	"moneymage/internal/log"
	"moneymage/internal/services"
	"moneymage/internal/sheets"
	"moneymage/internal/sheets/memory"
)

func TestHandleBatchMergesIntoStore(t *testing.T) {
	store := memory.New()
	store.Seed([]core.CategorySpec{{Name: "groceries", Type: core.Monthly}},
		[]core.Rule{{Pattern: "WALMART GROCERY", Category: "groceries"}}, nil)
	svc := services.NewReviewService(store, nil, log.Discard())
	w := NewImportWorker(svc, log.Discard())

	msg := amqp.NewTransactionBatchMessage("batch-7", "bank-export", 2025, []sheets.TransactionRecord{
		{Date: "2025-03-01", AmountCents: -4200, Account: "Checking", Description: "WALMART GROCERY"},
		{Date: "not a date", AmountCents: -100, Account: "Checking", Description: "BROKEN ROW"},
		{Date: "2025-03-01", AmountCents: -4200, Account: "Checking", Description: "WALMART GROCERY"},
	})

	if err := w.HandleBatch(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	persisted, err := store.LoadTransactions(context.Background(), 2025)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(persisted) != 1 {
		t.Fatalf("bad row skipped and duplicate dropped, want 1 persisted, got %d", len(persisted))
	}
	if persisted[0].Category != "groceries" {
		t.Errorf("rule must categorize the import, got %q", persisted[0].Category)
	}
}

type failingImporter struct{ err error }

func (f failingImporter) Import(context.Context, int, []core.Transaction) (int, int, core.Report, error) {
	return 0, 0, core.Report{}, f.err
}

func TestHandleBatchReturnsBackendFailureForRequeue(t *testing.T) {
	sentinel := errors.New("store down")
	w := NewImportWorker(failingImporter{err: sentinel}, log.Discard())

	msg := amqp.NewTransactionBatchMessage("batch-8", "bank-export", 2025, []sheets.TransactionRecord{
		{Date: "2025-03-01", AmountCents: -4200, Account: "Checking", Description: "WALMART GROCERY"},
	})
	if err := w.HandleBatch(context.Background(), msg); !errors.Is(err, sentinel) {
		t.Fatalf("backend failure must propagate for requeue, got %v", err)
	}
}
