package schedule

import (
	"testing"

	"github.com/PixelForgeIT-GH/income-hue/internal/core"
)

func mkSchedule(cents int64, every Frequency, anchor core.Date) Schedule {
	return Schedule{Amount: core.Money{Cents: cents}, Every: every, Anchor: anchor}
}

func TestOccurrencesInMonth(t *testing.T) {
	tests := []struct {
		name   string
		s      Schedule
		year   int
		month  int
		want   int
	}{
		{
			name:  "monthly same day every month",
			s:     mkSchedule(100000, Monthly, core.NewDate(2024, 1, 15)),
			year:  2024, month: 3,
			want: 1,
		},
		{
			name:  "monthly anchor month counts itself",
			s:     mkSchedule(100000, Monthly, core.NewDate(2024, 1, 15)),
			year:  2024, month: 1,
			want: 1,
		},
		{
			name:  "monthly anchored day 31 clamps into february",
			s:     mkSchedule(50000, Monthly, core.NewDate(2024, 1, 31)),
			year:  2024, month: 2,
			want: 1,
		},
		{
			name:  "anchor after month end means not started",
			s:     mkSchedule(100000, Monthly, core.NewDate(2024, 5, 1)),
			year:  2024, month: 4,
			want: 0,
		},
		{
			name:  "monthly candidate before mid-month anchor",
			s:     mkSchedule(100000, Monthly, core.NewDate(2024, 1, 20)),
			year:  2024, month: 1,
			want: 1,
		},
		{
			name:  "biweekly anchored jan 1: jan has three paydays",
			s:     mkSchedule(100000, Biweekly, core.NewDate(2024, 1, 1)),
			year:  2024, month: 1,
			want: 3, // Jan 1, 15, 29
		},
		{
			name:  "biweekly anchored jan 1: feb has two paydays",
			s:     mkSchedule(100000, Biweekly, core.NewDate(2024, 1, 1)),
			year:  2024, month: 2,
			want: 2, // Feb 12, 26
		},
		{
			name:  "weekly five-friday month",
			s:     mkSchedule(100000, Weekly, core.NewDate(2024, 3, 1)),
			year:  2024, month: 3,
			want: 5, // Mar 1, 8, 15, 22, 29
		},
		{
			name:  "weekly four occurrences in april",
			s:     mkSchedule(100000, Weekly, core.NewDate(2024, 3, 1)),
			year:  2024, month: 4,
			want: 4, // Apr 5, 12, 19, 26
		},
		{
			name:  "weekly anchored mid-month counts from anchor only",
			s:     mkSchedule(100000, Weekly, core.NewDate(2024, 1, 20)),
			year:  2024, month: 1,
			want: 2, // Jan 20, 27
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OccurrencesInMonth(tt.s, tt.year, tt.month); got != tt.want {
				t.Errorf("OccurrencesInMonth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMonthlyOccurrenceClampDoesNotDrift(t *testing.T) {
	anchor := core.NewDate(2024, 1, 31)
	want := []core.Date{
		core.NewDate(2024, 2, 29), // leap february clamps
		core.NewDate(2024, 3, 31), // back to the anchor day
		core.NewDate(2024, 4, 30),
		core.NewDate(2024, 5, 31),
	}
	for i, w := range want {
		if got := monthlyOccurrence(anchor, i+1); !got.Equal(w.Time) {
			t.Errorf("occurrence %d = %s, want %s", i+1, got.ISO(), w.ISO())
		}
	}
}

func TestMonthlyEquivalent(t *testing.T) {
	tests := []struct {
		name  string
		s     Schedule
		want  int64
	}{
		{"weekly times 4.33", mkSchedule(10000, Weekly, core.NewDate(2024, 1, 1)), 43300},
		{"yearly divided by 12", mkSchedule(12000, Yearly, core.NewDate(2024, 1, 1)), 1000},
		{"monthly unchanged", mkSchedule(5000, Monthly, core.NewDate(2024, 1, 1)), 5000},
		// biweekly intentionally passes through like monthly in the
		// averaging model
		{"biweekly unchanged", mkSchedule(5000, Biweekly, core.NewDate(2024, 1, 1)), 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthlyEquivalent(tt.s); got.Cents != tt.want {
				t.Errorf("MonthlyEquivalent() = %d cents, want %d", got.Cents, tt.want)
			}
		})
	}
}

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name string
		s    Schedule
		from core.Date
		want core.Date
	}{
		{
			name: "weekly from anchor day itself",
			s:    mkSchedule(0, Weekly, core.NewDate(2024, 1, 5)),
			from: core.NewDate(2024, 1, 5),
			want: core.NewDate(2024, 1, 12),
		},
		{
			name: "weekly mid-cycle",
			s:    mkSchedule(0, Weekly, core.NewDate(2024, 1, 5)),
			from: core.NewDate(2024, 1, 9),
			want: core.NewDate(2024, 1, 12),
		},
		{
			name: "biweekly far-past anchor resolves without stepping",
			s:    mkSchedule(0, Biweekly, core.NewDate(1970, 1, 2)),
			from: core.NewDate(2024, 6, 1),
			want: core.NewDate(2024, 6, 7),
		},
		{
			name: "future anchor is itself the next occurrence",
			s:    mkSchedule(0, Monthly, core.NewDate(2024, 9, 1)),
			from: core.NewDate(2024, 6, 1),
			want: core.NewDate(2024, 9, 1),
		},
		{
			name: "monthly preserves anchor day",
			s:    mkSchedule(0, Monthly, core.NewDate(2024, 1, 15)),
			from: core.NewDate(2024, 3, 15),
			want: core.NewDate(2024, 4, 15),
		},
		{
			name: "monthly day-31 anchor clamps into short month",
			s:    mkSchedule(0, Monthly, core.NewDate(2024, 1, 31)),
			from: core.NewDate(2024, 2, 1),
			want: core.NewDate(2024, 2, 29),
		},
		{
			name: "monthly resumes anchor day after clamped month",
			s:    mkSchedule(0, Monthly, core.NewDate(2024, 1, 31)),
			from: core.NewDate(2024, 2, 29),
			want: core.NewDate(2024, 3, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextOccurrence(tt.s, tt.from)
			if !got.Equal(tt.want.Time) {
				t.Errorf("NextOccurrence() = %s, want %s", got.ISO(), tt.want.ISO())
			}
			if !got.After(tt.from.Time) {
				t.Errorf("NextOccurrence() = %s is not strictly after %s", got.ISO(), tt.from.ISO())
			}
		})
	}
}

func TestNextOccurrenceIsSmallest(t *testing.T) {
	// Walking day by day, the next occurrence must never skip past a
	// nearer one.
	s := mkSchedule(0, Biweekly, core.NewDate(2024, 1, 5))
	prev := NextOccurrence(s, core.NewDate(2024, 1, 1))
	for from := core.NewDate(2024, 1, 2); from.Before(core.NewDate(2024, 4, 1).Time); from = from.AddDays(1) {
		next := NextOccurrence(s, from)
		if next.Before(prev.Time) {
			t.Fatalf("next occurrence went backwards: %s then %s", prev.ISO(), next.ISO())
		}
		if next.DaysSince(prev) > 14 {
			t.Fatalf("skipped an occurrence between %s and %s", prev.ISO(), next.ISO())
		}
		prev = next
	}
}

func TestFarPastAnchor(t *testing.T) {
	// Day deltas against an anchor centuries back exceed what a nanosecond
	// duration can represent; the arithmetic jump must stay exact anyway.
	s := mkSchedule(100000, Weekly, core.NewDate(1500, 1, 1))

	if got := OccurrencesInMonth(s, 2024, 3); got != 4 {
		t.Errorf("OccurrencesInMonth = %d, want 4", got)
	}

	from := core.NewDate(2024, 3, 1)
	next := NextOccurrence(s, from)
	if want := core.NewDate(2024, 3, 4); !next.Equal(want.Time) {
		t.Errorf("NextOccurrence = %s, want %s", next.ISO(), want.ISO())
	}
	if !next.After(from.Time) {
		t.Errorf("NextOccurrence = %s is not after %s", next.ISO(), from.ISO())
	}

	got := OccurrencesInRange(s, core.NewDate(2024, 3, 1), core.NewDate(2024, 3, 31))
	want := []core.Date{
		core.NewDate(2024, 3, 4),
		core.NewDate(2024, 3, 11),
		core.NewDate(2024, 3, 18),
		core.NewDate(2024, 3, 25),
	}
	if len(got) != len(want) {
		t.Fatalf("OccurrencesInRange returned %d dates, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i].Time) {
			t.Errorf("occurrence[%d] = %s, want %s", i, got[i].ISO(), want[i].ISO())
		}
	}
}

func TestUpcoming(t *testing.T) {
	today := core.NewDate(2024, 6, 1)
	if !Upcoming(core.NewDate(2024, 6, 8), today) {
		t.Error("occurrence exactly 7 days out should be upcoming")
	}
	if Upcoming(core.NewDate(2024, 6, 9), today) {
		t.Error("occurrence 8 days out should not be upcoming")
	}
	if !Upcoming(today, today) {
		t.Error("occurrence today should be upcoming")
	}
}

func TestOccurrencesInRange(t *testing.T) {
	tests := []struct {
		name  string
		s     Schedule
		start core.Date
		end   core.Date
		want  []core.Date
	}{
		{
			name:  "biweekly window in february",
			s:     mkSchedule(100000, Biweekly, core.NewDate(2024, 1, 5)),
			start: core.NewDate(2024, 2, 1),
			end:   core.NewDate(2024, 2, 29),
			want:  []core.Date{core.NewDate(2024, 2, 2), core.NewDate(2024, 2, 16)},
		},
		{
			name:  "weekly 28-day window holds exactly four",
			s:     mkSchedule(100000, Weekly, core.NewDate(2024, 1, 3)),
			start: core.NewDate(2024, 2, 7),
			end:   core.NewDate(2024, 3, 5),
			want: []core.Date{
				core.NewDate(2024, 2, 7), core.NewDate(2024, 2, 14),
				core.NewDate(2024, 2, 21), core.NewDate(2024, 2, 28),
			},
		},
		{
			name:  "anchor inside window starts the sequence",
			s:     mkSchedule(100000, Weekly, core.NewDate(2024, 2, 10)),
			start: core.NewDate(2024, 2, 1),
			end:   core.NewDate(2024, 2, 29),
			want: []core.Date{
				core.NewDate(2024, 2, 10), core.NewDate(2024, 2, 17),
				core.NewDate(2024, 2, 24),
			},
		},
		{
			name:  "monthly day-31 anchor across short months",
			s:     mkSchedule(100000, Monthly, core.NewDate(2024, 1, 31)),
			start: core.NewDate(2024, 2, 1),
			end:   core.NewDate(2024, 4, 30),
			want: []core.Date{
				core.NewDate(2024, 2, 29), core.NewDate(2024, 3, 31),
				core.NewDate(2024, 4, 30),
			},
		},
		{
			name:  "yearly emits one marker per month in the calendar view",
			s:     mkSchedule(100000, Yearly, core.NewDate(2024, 1, 10)),
			start: core.NewDate(2024, 2, 1),
			end:   core.NewDate(2024, 3, 31),
			want:  []core.Date{core.NewDate(2024, 2, 10), core.NewDate(2024, 3, 10)},
		},
		{
			name:  "schedule not started yet",
			s:     mkSchedule(100000, Weekly, core.NewDate(2024, 6, 1)),
			start: core.NewDate(2024, 2, 1),
			end:   core.NewDate(2024, 2, 29),
			want:  nil,
		},
		{
			name:  "inverted window",
			s:     mkSchedule(100000, Weekly, core.NewDate(2024, 1, 1)),
			start: core.NewDate(2024, 3, 1),
			end:   core.NewDate(2024, 2, 1),
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OccurrencesInRange(tt.s, tt.start, tt.end)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d occurrences, want %d: %v", len(got), len(tt.want), isoDates(got))
			}
			for i := range got {
				if !got[i].Equal(tt.want[i].Time) {
					t.Errorf("occurrence %d = %s, want %s", i, got[i].ISO(), tt.want[i].ISO())
				}
			}
		})
	}
}

func TestRangeMatchesMonthCountsOverWholeMonths(t *testing.T) {
	schedules := []Schedule{
		mkSchedule(100000, Weekly, core.NewDate(2024, 1, 3)),
		mkSchedule(100000, Biweekly, core.NewDate(2024, 1, 5)),
		mkSchedule(100000, Monthly, core.NewDate(2024, 1, 31)),
		mkSchedule(100000, Weekly, core.NewDate(2024, 3, 15)),
	}

	for _, s := range schedules {
		total := 0
		for month := 1; month <= 6; month++ {
			total += OccurrencesInMonth(s, 2024, month)
		}
		ranged := OccurrencesInRange(s, core.NewDate(2024, 1, 1), core.NewDate(2024, 6, 30))
		if len(ranged) != total {
			t.Errorf("%s anchored %s: range count %d != summed month counts %d",
				s.Every, s.Anchor.ISO(), len(ranged), total)
		}
	}
}

func TestAggregateOverWindow(t *testing.T) {
	// 1000.00 biweekly anchored 2024-01-05 pays twice in February.
	s := mkSchedule(100000, Biweekly, core.NewDate(2024, 1, 5))
	got := AggregateOverWindow([]Schedule{s}, core.NewDate(2024, 2, 1), core.NewDate(2024, 2, 29))
	if got.Cents != 200000 {
		t.Errorf("aggregate = %s, want 2000.00", got)
	}

	// A schedule anchored after the window contributes nothing.
	late := mkSchedule(999900, Weekly, core.NewDate(2024, 3, 1))
	got = AggregateOverWindow([]Schedule{s, late}, core.NewDate(2024, 2, 1), core.NewDate(2024, 2, 29))
	if got.Cents != 200000 {
		t.Errorf("aggregate with unstarted schedule = %s, want 2000.00", got)
	}

	// A mid-window anchor contributes only from the anchor forward.
	mid := mkSchedule(10000, Weekly, core.NewDate(2024, 2, 20))
	got = AggregateOverWindow([]Schedule{mid}, core.NewDate(2024, 2, 1), core.NewDate(2024, 2, 29))
	if got.Cents != 20000 { // Feb 20, 27
		t.Errorf("aggregate with mid-window anchor = %s, want 200.00", got)
	}
}

func isoDates(dates []core.Date) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.ISO()
	}
	return out
}
