package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/PixelForgeIT-GH/income-hue/internal/core"
)

func TestMemoryRepositoryStreams(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	id, err := repo.CreateIncomeStream(ctx, core.IncomeStream{
		Name:      "Salary",
		Amount:    core.Money{Cents: 250000},
		Frequency: "monthly",
		Anchor:    core.NewDate(2024, 1, 31),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	got, err := repo.GetIncomeStream(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Salary" || got.Amount.Cents != 250000 {
		t.Errorf("got %+v", got)
	}

	got.Amount = core.Money{Cents: 260000}
	if err := repo.UpdateIncomeStream(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = repo.GetIncomeStream(ctx, id)
	if got.Amount.Cents != 260000 {
		t.Errorf("update not applied: %+v", got)
	}

	list, err := repo.ListIncomeStreams(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 stream, got %d", len(list))
	}

	if err := repo.DeleteIncomeStream(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetIncomeStream(ctx, id); !errors.Is(err, core.ErrStreamNotFound) {
		t.Errorf("expected ErrStreamNotFound, got %v", err)
	}
	if err := repo.DeleteIncomeStream(ctx, id); !errors.Is(err, core.ErrStreamNotFound) {
		t.Errorf("double delete: expected ErrStreamNotFound, got %v", err)
	}
}

func TestMemoryRepositorySchedules(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	id, err := repo.CreateExpenseSchedule(ctx, core.ExpenseSchedule{
		Name:      "Rent",
		Amount:    core.Money{Cents: 120000},
		Frequency: "monthly",
		Start:     core.NewDate(2024, 1, 1),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.UpdateExpenseSchedule(ctx, core.ExpenseSchedule{ID: id + 99}); !errors.Is(err, core.ErrScheduleNotFound) {
		t.Errorf("update missing: expected ErrScheduleNotFound, got %v", err)
	}

	list, err := repo.ListExpenseSchedules(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Rent" {
		t.Errorf("got %+v", list)
	}
}

func TestMemoryRepositoryTransactionsByMonth(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	dates := []core.Date{
		core.NewDate(2024, 3, 1),
		core.NewDate(2024, 3, 31),
		core.NewDate(2024, 4, 1),
	}
	for i, d := range dates {
		_, err := repo.CreateTransaction(ctx, core.Transaction{
			Name:   "tx",
			Amount: core.Money{Cents: int64(100 * (i + 1))},
			Type:   core.TransactionExpense,
			Date:   d,
		})
		if err != nil {
			t.Fatalf("create tx %d: %v", i, err)
		}
	}

	march, err := repo.ListTransactionsByMonth(ctx, 2024, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(march) != 2 {
		t.Fatalf("expected 2 march transactions, got %d", len(march))
	}

	if err := repo.DeleteTransaction(ctx, 999); !errors.Is(err, core.ErrTransactionMissing) {
		t.Errorf("expected ErrTransactionMissing, got %v", err)
	}
}
