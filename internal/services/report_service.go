// Package services orchestrates the schedule engine, the store and the
// message queue behind the HTTP and worker entry points.
package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/PixelForgeIT-GH/income-hue/internal/core"
	"github.com/PixelForgeIT-GH/income-hue/internal/schedule"
	"github.com/PixelForgeIT-GH/income-hue/internal/storage"
)

// ReportService computes dashboard and calendar projections. It holds no
// state of its own; every call reads the current schedule definitions from
// the store and projects them with the schedule engine.
type ReportService struct {
	storage storage.Repository
}

func NewReportService(repo storage.Repository) *ReportService {
	return &ReportService{storage: repo}
}

// MonthSummary aggregates one calendar month. Recurring income counts exact
// occurrences per stream; recurring expenses use the monthly-equivalent
// average and only count schedules that have started by the month's first
// day. Ad-hoc transactions are summed by type as recorded.
func (s *ReportService) MonthSummary(ctx context.Context, year, month int) (core.MonthSummary, error) {
	summary := core.MonthSummary{Year: year, Month: month}

	streams, err := s.storage.ListIncomeStreams(ctx)
	if err != nil {
		return summary, fmt.Errorf("list income streams: %w", err)
	}
	for _, stream := range streams {
		sched := schedule.FromIncomeStream(stream)
		if n := schedule.OccurrencesInMonth(sched, year, month); n > 0 {
			summary.RecurringIncome = summary.RecurringIncome.Add(stream.Amount.Mul(n))
		}
	}

	schedules, err := s.storage.ListExpenseSchedules(ctx)
	if err != nil {
		return summary, fmt.Errorf("list expense schedules: %w", err)
	}
	monthStart := core.MonthStart(year, month)
	for _, exp := range schedules {
		if exp.Start.After(monthStart.Time) {
			continue
		}
		sched := schedule.FromExpenseSchedule(exp)
		summary.RecurringExpenses = summary.RecurringExpenses.Add(schedule.MonthlyEquivalent(sched))
	}

	txs, err := s.storage.ListTransactionsByMonth(ctx, year, month)
	if err != nil {
		return summary, fmt.Errorf("list transactions: %w", err)
	}
	for _, tx := range txs {
		switch tx.Type {
		case core.TransactionIncome:
			summary.TransactionIncome = summary.TransactionIncome.Add(tx.Amount)
		case core.TransactionExpense:
			summary.TransactionExpenses = summary.TransactionExpenses.Add(tx.Amount)
		}
	}

	summary.Balance = summary.RecurringIncome.
		Add(summary.TransactionIncome).
		Sub(summary.RecurringExpenses).
		Sub(summary.TransactionExpenses)
	return summary, nil
}

// PaydayCalendar returns every projected payday of every income stream
// inside [start, end], sorted by date then stream ID.
func (s *ReportService) PaydayCalendar(ctx context.Context, start, end core.Date) ([]core.Payday, error) {
	streams, err := s.storage.ListIncomeStreams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list income streams: %w", err)
	}

	var paydays []core.Payday
	for _, stream := range streams {
		sched := schedule.FromIncomeStream(stream)
		for _, occ := range schedule.OccurrencesInRange(sched, start, end) {
			paydays = append(paydays, core.Payday{
				StreamID: stream.ID,
				Name:     stream.Name,
				Date:     occ,
				Amount:   stream.Amount,
			})
		}
	}

	sort.Slice(paydays, func(i, j int) bool {
		if !paydays[i].Date.Equal(paydays[j].Date.Time) {
			return paydays[i].Date.Before(paydays[j].Date.Time)
		}
		return paydays[i].StreamID < paydays[j].StreamID
	})
	return paydays, nil
}

// NextPayDates returns the next projected payday per income stream, relative
// to today, with the upcoming flag set when it falls within 7 days.
func (s *ReportService) NextPayDates(ctx context.Context, today core.Date) ([]core.NextPay, error) {
	streams, err := s.storage.ListIncomeStreams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list income streams: %w", err)
	}

	out := make([]core.NextPay, 0, len(streams))
	for _, stream := range streams {
		sched := schedule.FromIncomeStream(stream)
		// Yesterday as reference keeps a payday landing today visible:
		// the product treats today's payday as the answer to "when is my
		// next pay", not as already past.
		next := schedule.NextOccurrence(sched, today.AddDays(-1))
		out = append(out, core.NextPay{
			StreamID: stream.ID,
			Date:     next,
			Upcoming: schedule.Upcoming(next, today),
		})
	}
	return out, nil
}
