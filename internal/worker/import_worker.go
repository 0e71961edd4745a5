// Package worker consumes queued transaction batches and report export
// requests.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PixelForgeIT-GH/income-hue/internal/amqp"
	"github.com/PixelForgeIT-GH/income-hue/internal/core"
	"github.com/PixelForgeIT-GH/income-hue/internal/services"
	"github.com/PixelForgeIT-GH/income-hue/internal/storage"
)

// ReportExporter pushes one month's summary to an external spreadsheet.
type ReportExporter interface {
	AppendMonthlyReport(ctx context.Context, summary core.MonthSummary) error
}

// ImportWorker handles both queue directions: incoming transaction batches
// get validated and stored; export requests recompute the month summary and
// hand it to the exporter.
type ImportWorker struct {
	storage  storage.Repository
	reports  *services.ReportService
	exporter ReportExporter
}

func NewImportWorker(repo storage.Repository, reports *services.ReportService, exporter ReportExporter) *ImportWorker {
	return &ImportWorker{storage: repo, reports: reports, exporter: exporter}
}

// HandleTransactionBatch stores every valid record of a batch. Records that
// fail validation are logged and skipped; they never block the rest of the
// batch and never requeue the message.
func (w *ImportWorker) HandleTransactionBatch(ctx context.Context, msg *amqp.TransactionBatchMessage) error {
	stored, skipped := 0, 0
	for i, record := range msg.Transactions {
		tx, err := transactionFromRecord(record)
		if err != nil {
			slog.WarnContext(ctx, "Skipping invalid batch record",
				"source", msg.Source, "index", i, "name", record.Name, "error", err)
			skipped++
			continue
		}
		if _, err := w.storage.CreateTransaction(ctx, tx); err != nil {
			return fmt.Errorf("store batch record %d: %w", i, err)
		}
		stored++
	}

	slog.InfoContext(ctx, "Processed transaction batch",
		"source", msg.Source, "stored", stored, "skipped", skipped)
	return nil
}

// HandleReportExport recomputes the requested month and appends it to the
// spreadsheet. With no exporter configured the request is dropped.
func (w *ImportWorker) HandleReportExport(ctx context.Context, msg *amqp.ReportExportMessage) error {
	if w.exporter == nil {
		slog.WarnContext(ctx, "No exporter configured, dropping export request",
			"year", msg.Year, "month", msg.Month)
		return nil
	}
	if msg.Month < 1 || msg.Month > 12 {
		slog.WarnContext(ctx, "Dropping export request with invalid month",
			"year", msg.Year, "month", msg.Month)
		return nil
	}

	summary, err := w.reports.MonthSummary(ctx, msg.Year, msg.Month)
	if err != nil {
		return fmt.Errorf("compute month summary: %w", err)
	}
	if err := w.exporter.AppendMonthlyReport(ctx, summary); err != nil {
		return fmt.Errorf("append monthly report: %w", err)
	}

	slog.InfoContext(ctx, "Exported monthly report",
		"year", msg.Year, "month", msg.Month, "balance_cents", summary.Balance.Cents)
	return nil
}

func transactionFromRecord(r amqp.BatchTransaction) (core.Transaction, error) {
	date, err := core.ParseDate(r.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	tx := core.Transaction{
		Name:   r.Name,
		Amount: core.Money{Cents: r.AmountCents},
		Type:   core.TransactionType(r.Type),
		Date:   date,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}
