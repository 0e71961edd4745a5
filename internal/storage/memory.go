package storage

import (
	"context"
	"sync"

	"github.com/PixelForgeIT-GH/income-hue/internal/core"
)

// MemoryRepository is a mutex-guarded in-memory Repository used by tests and
// the default development backend.
type MemoryRepository struct {
	mu        sync.RWMutex
	streams   map[int64]core.IncomeStream
	schedules map[int64]core.ExpenseSchedule
	txs       map[int64]core.Transaction
	nextID    int64
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		streams:   make(map[int64]core.IncomeStream),
		schedules: make(map[int64]core.ExpenseSchedule),
		txs:       make(map[int64]core.Transaction),
		nextID:    1,
	}
}

func (r *MemoryRepository) Close() error { return nil }

func (r *MemoryRepository) CreateIncomeStream(_ context.Context, s core.IncomeStream) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.nextID
	r.nextID++
	r.streams[s.ID] = s
	return s.ID, nil
}

func (r *MemoryRepository) GetIncomeStream(_ context.Context, id int64) (core.IncomeStream, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.streams[id]
	if !ok {
		return core.IncomeStream{}, core.ErrStreamNotFound
	}
	return s, nil
}

func (r *MemoryRepository) ListIncomeStreams(_ context.Context) ([]core.IncomeStream, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.IncomeStream, 0, len(r.streams))
	for id := int64(1); id < r.nextID; id++ {
		if s, ok := r.streams[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *MemoryRepository) UpdateIncomeStream(_ context.Context, s core.IncomeStream) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.streams[s.ID]; !ok {
		return core.ErrStreamNotFound
	}
	r.streams[s.ID] = s
	return nil
}

func (r *MemoryRepository) DeleteIncomeStream(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.streams[id]; !ok {
		return core.ErrStreamNotFound
	}
	delete(r.streams, id)
	return nil
}

func (r *MemoryRepository) CreateExpenseSchedule(_ context.Context, e core.ExpenseSchedule) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = r.nextID
	r.nextID++
	r.schedules[e.ID] = e
	return e.ID, nil
}

func (r *MemoryRepository) GetExpenseSchedule(_ context.Context, id int64) (core.ExpenseSchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.schedules[id]
	if !ok {
		return core.ExpenseSchedule{}, core.ErrScheduleNotFound
	}
	return e, nil
}

func (r *MemoryRepository) ListExpenseSchedules(_ context.Context) ([]core.ExpenseSchedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.ExpenseSchedule, 0, len(r.schedules))
	for id := int64(1); id < r.nextID; id++ {
		if e, ok := r.schedules[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *MemoryRepository) UpdateExpenseSchedule(_ context.Context, e core.ExpenseSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.schedules[e.ID]; !ok {
		return core.ErrScheduleNotFound
	}
	r.schedules[e.ID] = e
	return nil
}

func (r *MemoryRepository) DeleteExpenseSchedule(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.schedules[id]; !ok {
		return core.ErrScheduleNotFound
	}
	delete(r.schedules, id)
	return nil
}

func (r *MemoryRepository) CreateTransaction(_ context.Context, t core.Transaction) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = r.nextID
	r.nextID++
	r.txs[t.ID] = t
	return t.ID, nil
}

func (r *MemoryRepository) ListTransactionsByMonth(_ context.Context, year, month int) ([]core.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []core.Transaction
	for id := int64(1); id < r.nextID; id++ {
		t, ok := r.txs[id]
		if !ok {
			continue
		}
		if t.Date.Year() == year && t.Date.Month() == month {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *MemoryRepository) DeleteTransaction(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.txs[id]; !ok {
		return core.ErrTransactionMissing
	}
	delete(r.txs, id)
	return nil
}
