package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/PixelForgeIT-GH/income-hue/internal/core"
)

// SQLiteRepository implements Repository on a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) CreateIncomeStream(ctx context.Context, s core.IncomeStream) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO income_streams (name, amount_cents, frequency, anchor_date) VALUES (?, ?, ?, ?)`,
		s.Name, s.Amount.Cents, s.Frequency, s.Anchor.ISO())
	if err != nil {
		return 0, fmt.Errorf("insert income stream: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("income stream id: %w", err)
	}

	slog.InfoContext(ctx, "Income stream saved",
		"id", id,
		"name", s.Name,
		"amount_cents", s.Amount.Cents,
		"frequency", s.Frequency)
	return id, nil
}

func (r *SQLiteRepository) GetIncomeStream(ctx context.Context, id int64) (core.IncomeStream, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, amount_cents, frequency, anchor_date FROM income_streams WHERE id = ?`, id)
	s, err := scanIncomeStream(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.IncomeStream{}, core.ErrStreamNotFound
	}
	if err != nil {
		return core.IncomeStream{}, fmt.Errorf("get income stream %d: %w", id, err)
	}
	return s, nil
}

func (r *SQLiteRepository) ListIncomeStreams(ctx context.Context) ([]core.IncomeStream, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, amount_cents, frequency, anchor_date FROM income_streams ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list income streams: %w", err)
	}
	defer rows.Close()

	var out []core.IncomeStream
	for rows.Next() {
		s, err := scanIncomeStream(rows)
		if err != nil {
			return nil, fmt.Errorf("scan income stream: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateIncomeStream(ctx context.Context, s core.IncomeStream) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE income_streams SET name = ?, amount_cents = ?, frequency = ?, anchor_date = ? WHERE id = ?`,
		s.Name, s.Amount.Cents, s.Frequency, s.Anchor.ISO(), s.ID)
	if err != nil {
		return fmt.Errorf("update income stream %d: %w", s.ID, err)
	}
	return requireRow(res, core.ErrStreamNotFound)
}

func (r *SQLiteRepository) DeleteIncomeStream(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM income_streams WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete income stream %d: %w", id, err)
	}
	return requireRow(res, core.ErrStreamNotFound)
}

func (r *SQLiteRepository) CreateExpenseSchedule(ctx context.Context, e core.ExpenseSchedule) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expense_schedules (name, amount_cents, frequency, start_date) VALUES (?, ?, ?, ?)`,
		e.Name, e.Amount.Cents, e.Frequency, e.Start.ISO())
	if err != nil {
		return 0, fmt.Errorf("insert expense schedule: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense schedule id: %w", err)
	}

	slog.InfoContext(ctx, "Expense schedule saved",
		"id", id,
		"name", e.Name,
		"amount_cents", e.Amount.Cents,
		"frequency", e.Frequency)
	return id, nil
}

func (r *SQLiteRepository) GetExpenseSchedule(ctx context.Context, id int64) (core.ExpenseSchedule, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, amount_cents, frequency, start_date FROM expense_schedules WHERE id = ?`, id)
	e, err := scanExpenseSchedule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ExpenseSchedule{}, core.ErrScheduleNotFound
	}
	if err != nil {
		return core.ExpenseSchedule{}, fmt.Errorf("get expense schedule %d: %w", id, err)
	}
	return e, nil
}

func (r *SQLiteRepository) ListExpenseSchedules(ctx context.Context) ([]core.ExpenseSchedule, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, amount_cents, frequency, start_date FROM expense_schedules ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list expense schedules: %w", err)
	}
	defer rows.Close()

	var out []core.ExpenseSchedule
	for rows.Next() {
		e, err := scanExpenseSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense schedule: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) UpdateExpenseSchedule(ctx context.Context, e core.ExpenseSchedule) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expense_schedules SET name = ?, amount_cents = ?, frequency = ?, start_date = ? WHERE id = ?`,
		e.Name, e.Amount.Cents, e.Frequency, e.Start.ISO(), e.ID)
	if err != nil {
		return fmt.Errorf("update expense schedule %d: %w", e.ID, err)
	}
	return requireRow(res, core.ErrScheduleNotFound)
}

func (r *SQLiteRepository) DeleteExpenseSchedule(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expense_schedules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense schedule %d: %w", id, err)
	}
	return requireRow(res, core.ErrScheduleNotFound)
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (name, amount_cents, type, tx_date) VALUES (?, ?, ?, ?)`,
		t.Name, t.Amount.Cents, string(t.Type), t.Date.ISO())
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) ListTransactionsByMonth(ctx context.Context, year, month int) ([]core.Transaction, error) {
	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, amount_cents, type, tx_date FROM transactions WHERE tx_date LIKE ? || '%' ORDER BY tx_date, id`,
		prefix)
	if err != nil {
		return nil, fmt.Errorf("list transactions %d-%02d: %w", year, month, err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			t      core.Transaction
			txType string
			txDate string
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.Amount.Cents, &txType, &txDate); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t.Type = core.TransactionType(txType)
		if t.Date, err = core.ParseDate(txDate); err != nil {
			return nil, fmt.Errorf("transaction %d has corrupt date %q: %w", t.ID, txDate, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	return requireRow(res, core.ErrTransactionMissing)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIncomeStream(row rowScanner) (core.IncomeStream, error) {
	var (
		s      core.IncomeStream
		anchor string
	)
	if err := row.Scan(&s.ID, &s.Name, &s.Amount.Cents, &s.Frequency, &anchor); err != nil {
		return core.IncomeStream{}, err
	}
	var err error
	if s.Anchor, err = core.ParseDate(anchor); err != nil {
		return core.IncomeStream{}, fmt.Errorf("income stream %d has corrupt anchor %q: %w", s.ID, anchor, err)
	}
	return s, nil
}

func scanExpenseSchedule(row rowScanner) (core.ExpenseSchedule, error) {
	var (
		e     core.ExpenseSchedule
		start string
	)
	if err := row.Scan(&e.ID, &e.Name, &e.Amount.Cents, &e.Frequency, &start); err != nil {
		return core.ExpenseSchedule{}, err
	}
	var err error
	if e.Start, err = core.ParseDate(start); err != nil {
		return core.ExpenseSchedule{}, fmt.Errorf("expense schedule %d has corrupt start %q: %w", e.ID, start, err)
	}
	return e, nil
}

func requireRow(res sql.Result, missing error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return missing
	}
	return nil
}
