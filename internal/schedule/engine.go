package schedule

import (
	"github.com/shopspring/decimal"

	"github.com/PixelForgeIT-GH/income-hue/internal/core"
)

// Schedule is the engine's view of any recurring definition: an amount paid
// per occurrence, a canonical frequency and an anchor date from which all
// occurrences are derived by stepping forward or backward.
type Schedule struct {
	Amount core.Money
	Every  Frequency
	Anchor core.Date
}

// FromIncomeStream builds a Schedule from a stored income stream,
// normalizing its raw frequency label. The anchor is the last paid date.
func FromIncomeStream(s core.IncomeStream) Schedule {
	return Schedule{Amount: s.Amount, Every: Normalize(s.Frequency), Anchor: s.Anchor}
}

// FromExpenseSchedule builds a Schedule from a stored expense schedule. The
// anchor is the obligation's start date.
func FromExpenseSchedule(e core.ExpenseSchedule) Schedule {
	return Schedule{Amount: e.Amount, Every: Normalize(e.Frequency), Anchor: e.Start}
}

// avgWeeksPerMonth is the fixed averaging factor for weekly expenses.
var avgWeeksPerMonth = decimal.NewFromFloat(4.33)

// monthIndex counts whole months since year 0, for drift-free month stepping.
func monthIndex(d core.Date) int {
	return d.Year()*12 + d.Month() - 1
}

// monthlyOccurrence returns the k-th monthly occurrence relative to the
// anchor (k may be negative). The anchor's day of month is preserved exactly
// except when the target month is shorter, in which case the occurrence
// clamps to that month's last day. Each occurrence is computed from the
// anchor, never from a previously clamped date, so a day-31 anchor lands on
// Feb 28/29 and back on Mar 31.
func monthlyOccurrence(anchor core.Date, k int) core.Date {
	idx := monthIndex(anchor) + k
	year, month := idx/12, idx%12+1
	if idx < 0 {
		year, month = (idx-11)/12, (idx%12+12)%12+1
	}
	day := anchor.Day()
	if last := core.DaysInMonth(year, month); day > last {
		day = last
	}
	return core.NewDate(year, month, day)
}

// OccurrencesInMonth returns how many occurrences of s land inside the given
// calendar month. Counts are exact: a weekly schedule yields 4 or 5, a
// biweekly one 2 or 3, depending on calendar alignment. Schedules anchored
// after the month's last day have not started and contribute 0.
func OccurrencesInMonth(s Schedule, year, month int) int {
	monthEnd := core.MonthEnd(year, month)
	if s.Anchor.After(monthEnd.Time) {
		return 0
	}

	step := stepDays(s.Every)
	if step == 0 {
		// One candidate per month at the anchor's day, clamped.
		day := s.Anchor.Day()
		if last := core.DaysInMonth(year, month); day > last {
			day = last
		}
		candidate := core.NewDate(year, month, day)
		if candidate.Before(s.Anchor.Time) {
			return 0
		}
		return 1
	}

	first := s.Anchor
	if monthStart := core.MonthStart(year, month); first.Before(monthStart.Time) {
		delta := monthStart.DaysSince(first)
		k := (delta + step - 1) / step
		first = first.AddDays(k * step)
	}
	if first.After(monthEnd.Time) {
		return 0
	}
	return monthEnd.DaysSince(first)/step + 1
}

// MonthlyEquivalent converts a schedule's amount into an approximate single
// month figure: weekly amounts scale by the average weeks per month, yearly
// amounts divide by 12, everything else (including biweekly) passes through
// unchanged. This averaging model is used for expense aggregation only;
// income uses exact occurrence counting.
func MonthlyEquivalent(s Schedule) core.Money {
	switch s.Every {
	case Weekly:
		return s.Amount.Scale(avgWeeksPerMonth)
	case Yearly:
		return s.Amount.Div(12)
	default:
		return s.Amount
	}
}

// NextOccurrence returns the smallest occurrence of s strictly after from.
// Weekly and biweekly steps are resolved arithmetically, so an anchor
// centuries in the past costs the same as one last week. Monthly stepping
// (which Yearly also uses here, one payday marker per month) walks at most a
// couple of candidates around an analytic estimate.
func NextOccurrence(s Schedule, from core.Date) core.Date {
	if from.Before(s.Anchor.Time) {
		return s.Anchor
	}

	if step := stepDays(s.Every); step > 0 {
		k := from.DaysSince(s.Anchor)/step + 1
		return s.Anchor.AddDays(k * step)
	}

	k := monthIndex(from) - monthIndex(s.Anchor)
	for !monthlyOccurrence(s.Anchor, k).After(from.Time) {
		k++
	}
	for k > 0 && monthlyOccurrence(s.Anchor, k-1).After(from.Time) {
		k--
	}
	return monthlyOccurrence(s.Anchor, k)
}

// Upcoming reports whether an occurrence falls within 7 days (inclusive) of
// the reference date.
func Upcoming(occurrence, today core.Date) bool {
	days := occurrence.DaysSince(today)
	return days >= 0 && days <= 7
}

// OccurrencesInRange returns every occurrence of s inside [start, end],
// inclusive on both ends, in ascending order. No occurrence before the
// anchor is emitted. Yearly schedules produce one marker per month in this
// view, matching the payday-calendar treatment of annual salaries.
func OccurrencesInRange(s Schedule, start, end core.Date) []core.Date {
	if end.Before(start.Time) || s.Anchor.After(end.Time) {
		return nil
	}

	var out []core.Date
	if step := stepDays(s.Every); step > 0 {
		first := s.Anchor
		if first.Before(start.Time) {
			delta := start.DaysSince(first)
			k := (delta + step - 1) / step
			first = first.AddDays(k * step)
		}
		for d := first; !d.After(end.Time); d = d.AddDays(step) {
			out = append(out, d)
		}
		return out
	}

	k := 0
	if diff := monthIndex(start) - monthIndex(s.Anchor) - 1; diff > k {
		k = diff
	}
	for ; ; k++ {
		occ := monthlyOccurrence(s.Anchor, k)
		if occ.After(end.Time) {
			break
		}
		if occ.Before(start.Time) || occ.Before(s.Anchor.Time) {
			continue
		}
		out = append(out, occ)
	}
	return out
}

// AggregateOverWindow sums the per-occurrence amounts of all schedules over
// [start, end]. Schedules anchored after the window contribute nothing;
// schedules anchored mid-window contribute only from the anchor forward.
func AggregateOverWindow(schedules []Schedule, start, end core.Date) core.Money {
	var total core.Money
	for _, s := range schedules {
		if n := len(OccurrencesInRange(s, start, end)); n > 0 {
			total = total.Add(s.Amount.Mul(n))
		}
	}
	return total
}
