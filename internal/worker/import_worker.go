// Package worker hosts the AMQP import consumer: transaction batches
// published by exporters are merged into the configured backend.
package worker

import (
	"context"
	"fmt"

	"moneymage/internal/amqp"
	"moneymage/internal/core"
	"moneymage/internal/log"
	"moneymage/internal/services"
	"moneymage/internal/sheets"
)

// Importer is the slice of the review service the worker needs.
type Importer interface {
	Import(ctx context.Context, year int, incoming []core.Transaction) (imported, duplicates int, report core.Report, err error)
}

// ImportWorker merges consumed transaction batches into the backend.
type ImportWorker struct {
	importer Importer
	logger   *log.Logger
}

func NewImportWorker(importer Importer, logger *log.Logger) *ImportWorker {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentWorker)
	}
	return &ImportWorker{importer: importer, logger: logger}
}

// HandleBatch processes one consumed batch. A returned error requeues the
// delivery, so only backend failures may return one; per-record problems
// are logged and dropped with the batch acked.
func (w *ImportWorker) HandleBatch(ctx context.Context, msg *amqp.TransactionBatchMessage) error {
	txns, report := sheets.ToCoreBatch(msg.Transactions)
	for _, recErr := range report.Errors {
		w.logger.WarnContext(ctx, "Skipping malformed record",
			log.FieldBatchID, msg.BatchID,
			log.FieldError, recErr.Error())
	}

	imported, duplicates, mergeReport, err := w.importer.Import(ctx, msg.Year, txns)
	if err != nil {
		return fmt.Errorf("import batch %s: %w", msg.BatchID, err)
	}
	for _, mergeErr := range mergeReport.Errors {
		w.logger.WarnContext(ctx, "Merge reported a problem",
			log.FieldBatchID, msg.BatchID,
			log.FieldError, mergeErr.Error())
	}

	w.logger.InfoContext(ctx, "Batch merged",
		log.FieldBatchID, msg.BatchID,
		log.FieldBatchSize, len(msg.Transactions),
		log.FieldYear, msg.Year,
		log.FieldImported, imported,
		log.FieldDuplicates, duplicates)
	return nil
}

// Run consumes batches until the context is cancelled.
func (w *ImportWorker) Run(ctx context.Context, client *amqp.Client) error {
	return client.ConsumeTransactionBatches(ctx, w.HandleBatch)
}

var _ Importer = (*services.ReviewService)(nil)
