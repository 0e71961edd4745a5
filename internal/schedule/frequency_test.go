package schedule

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want Frequency
	}{
		{"weekly", Weekly},
		{"Weekly", Weekly},
		{"wk", Weekly},
		{" w ", Weekly},
		{"biweekly", Biweekly},
		{"Bi-Weekly", Biweekly},
		{"BIWEEKLY", Biweekly},
		{"fortnightly", Biweekly},
		{"every_two_weeks", Biweekly},
		{"2w", Biweekly},
		{"monthly", Monthly},
		{"mo", Monthly},
		{"Month", Monthly},
		{"yearly", Yearly},
		{"Annually", Yearly},
		{"yr", Yearly},
		// unrecognized input falls back to monthly, never errors
		{"", Monthly},
		{"whenever", Monthly},
		{"quarterly", Monthly},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, raw := range []string{"Bi-Weekly", "wk", "Annually", "nonsense"} {
		once := Normalize(raw)
		if twice := Normalize(string(once)); twice != once {
			t.Errorf("Normalize(Normalize(%q)) = %q, want %q", raw, twice, once)
		}
	}
}
