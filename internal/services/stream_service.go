package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PixelForgeIT-GH/income-hue/internal/core"
	"github.com/PixelForgeIT-GH/income-hue/internal/storage"
)

// ExportPublisher triggers an asynchronous spreadsheet export of one month.
type ExportPublisher interface {
	PublishReportExport(ctx context.Context, year, month int) error
}

// StreamService is the write path for schedule definitions and ad-hoc
// transactions. Writes that change a month's numbers publish an export
// trigger; publish failures are logged and never fail the request, the
// local write already succeeded.
type StreamService struct {
	storage   storage.Repository
	publisher ExportPublisher
}

func NewStreamService(repo storage.Repository, publisher ExportPublisher) *StreamService {
	return &StreamService{storage: repo, publisher: publisher}
}

func (s *StreamService) CreateIncomeStream(ctx context.Context, stream core.IncomeStream) (int64, error) {
	if err := stream.Validate(); err != nil {
		return 0, err
	}
	id, err := s.storage.CreateIncomeStream(ctx, stream)
	if err != nil {
		return 0, fmt.Errorf("save income stream: %w", err)
	}
	return id, nil
}

func (s *StreamService) GetIncomeStream(ctx context.Context, id int64) (core.IncomeStream, error) {
	return s.storage.GetIncomeStream(ctx, id)
}

func (s *StreamService) ListIncomeStreams(ctx context.Context) ([]core.IncomeStream, error) {
	return s.storage.ListIncomeStreams(ctx)
}

func (s *StreamService) UpdateIncomeStream(ctx context.Context, stream core.IncomeStream) error {
	if err := stream.Validate(); err != nil {
		return err
	}
	if err := s.storage.UpdateIncomeStream(ctx, stream); err != nil {
		return fmt.Errorf("update income stream: %w", err)
	}
	return nil
}

func (s *StreamService) DeleteIncomeStream(ctx context.Context, id int64) error {
	return s.storage.DeleteIncomeStream(ctx, id)
}

func (s *StreamService) CreateExpenseSchedule(ctx context.Context, exp core.ExpenseSchedule) (int64, error) {
	if err := exp.Validate(); err != nil {
		return 0, err
	}
	id, err := s.storage.CreateExpenseSchedule(ctx, exp)
	if err != nil {
		return 0, fmt.Errorf("save expense schedule: %w", err)
	}
	return id, nil
}

func (s *StreamService) GetExpenseSchedule(ctx context.Context, id int64) (core.ExpenseSchedule, error) {
	return s.storage.GetExpenseSchedule(ctx, id)
}

func (s *StreamService) ListExpenseSchedules(ctx context.Context) ([]core.ExpenseSchedule, error) {
	return s.storage.ListExpenseSchedules(ctx)
}

func (s *StreamService) UpdateExpenseSchedule(ctx context.Context, exp core.ExpenseSchedule) error {
	if err := exp.Validate(); err != nil {
		return err
	}
	if err := s.storage.UpdateExpenseSchedule(ctx, exp); err != nil {
		return fmt.Errorf("update expense schedule: %w", err)
	}
	return nil
}

func (s *StreamService) DeleteExpenseSchedule(ctx context.Context, id int64) error {
	return s.storage.DeleteExpenseSchedule(ctx, id)
}

// CreateTransaction saves an ad-hoc transaction and asks the worker to
// refresh that month's exported report.
func (s *StreamService) CreateTransaction(ctx context.Context, tx core.Transaction) (int64, error) {
	if err := tx.Validate(); err != nil {
		return 0, err
	}
	id, err := s.storage.CreateTransaction(ctx, tx)
	if err != nil {
		return 0, fmt.Errorf("save transaction: %w", err)
	}

	s.triggerExport(ctx, tx.Date.Year(), tx.Date.Month())
	return id, nil
}

func (s *StreamService) ListTransactionsByMonth(ctx context.Context, year, month int) ([]core.Transaction, error) {
	return s.storage.ListTransactionsByMonth(ctx, year, month)
}

func (s *StreamService) DeleteTransaction(ctx context.Context, id int64) error {
	return s.storage.DeleteTransaction(ctx, id)
}

func (s *StreamService) triggerExport(ctx context.Context, year, month int) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Export publisher not available, skipping report export")
		return
	}
	if err := s.publisher.PublishReportExport(ctx, year, month); err != nil {
		slog.ErrorContext(ctx, "Failed to publish report export",
			"year", year, "month", month, "error", err)
	}
}
