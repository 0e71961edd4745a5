// Package schedule is the recurring-schedule projection engine. It is pure
// and stateless: given a schedule definition and a window or reference date
// it computes occurrence dates, next occurrences and normalized amounts. It
// performs no I/O and is safe for concurrent use.
package schedule

import "strings"

// Frequency is the canonical recurrence unit.
type Frequency string

const (
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"
	Yearly   Frequency = "yearly"
)

var synonyms = map[string]Frequency{
	"w": Weekly, "wk": Weekly, "week": Weekly, "weekly": Weekly,

	"biweekly": Biweekly, "biweek": Biweekly, "fortnightly": Biweekly,
	"everytwoweeks": Biweekly, "2w": Biweekly,

	"m": Monthly, "mo": Monthly, "mon": Monthly, "month": Monthly, "monthly": Monthly,

	"y": Yearly, "yr": Yearly, "year": Yearly, "yearly": Yearly,
	"annual": Yearly, "annually": Yearly,
}

// Normalize maps a loosely-formatted frequency label to its canonical
// Frequency. Matching ignores case, whitespace, underscores and hyphens.
// Unrecognized input maps to Monthly: miscounting a payday is worse than
// approximating it, so the engine approximates instead of erroring.
func Normalize(raw string) Frequency {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
	if f, ok := synonyms[s]; ok {
		return f
	}
	return Monthly
}

// stepDays returns the fixed step in days, or 0 for calendar-month stepping.
func stepDays(f Frequency) int {
	switch f {
	case Weekly:
		return 7
	case Biweekly:
		return 14
	default:
		return 0
	}
}
