// Package storage persists income streams, expense schedules and ad-hoc
// transactions. The SQLite backend is the production store; the memory
// backend serves tests and local development.
package storage

import (
	"context"

	"github.com/PixelForgeIT-GH/income-hue/internal/core"
)

// Repository is the persistence contract consumed by the services and HTTP
// layers. All projection math happens outside; the store only holds the raw
// schedule definitions and transaction records.
type Repository interface {
	CreateIncomeStream(ctx context.Context, s core.IncomeStream) (int64, error)
	GetIncomeStream(ctx context.Context, id int64) (core.IncomeStream, error)
	ListIncomeStreams(ctx context.Context) ([]core.IncomeStream, error)
	UpdateIncomeStream(ctx context.Context, s core.IncomeStream) error
	DeleteIncomeStream(ctx context.Context, id int64) error

	CreateExpenseSchedule(ctx context.Context, e core.ExpenseSchedule) (int64, error)
	GetExpenseSchedule(ctx context.Context, id int64) (core.ExpenseSchedule, error)
	ListExpenseSchedules(ctx context.Context) ([]core.ExpenseSchedule, error)
	UpdateExpenseSchedule(ctx context.Context, e core.ExpenseSchedule) error
	DeleteExpenseSchedule(ctx context.Context, id int64) error

	CreateTransaction(ctx context.Context, t core.Transaction) (int64, error)
	ListTransactionsByMonth(ctx context.Context, year, month int) ([]core.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error

	Close() error
}
