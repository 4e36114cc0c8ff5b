package period_test

import (
	"errors"
	"testing"

	"github.com/bilusteknoloji/playdetails/internal/period"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want period.Period
	}{
		{"P1M", period.Period{Months: 1}},
		{"P1Y", period.Period{Years: 1}},
		{"P1W", period.Period{Weeks: 1}},
		{"P3D", period.Period{Days: 3}},
		{"P1Y6M", period.Period{Years: 1, Months: 6}},
		{"P1W3D", period.Period{Weeks: 1, Days: 3}},
		{"P0D", period.Period{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := period.Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}

			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{"", "P", "1M", "PM", "P1", "P1H", "PT1H", "P1M1Y", "P1M2M", "p1m", "P-1M"} {
		t.Run(in, func(t *testing.T) {
			_, err := period.Parse(in)
			if err == nil {
				t.Fatalf("Parse(%q) expected error, got nil", in)
			}

			if !errors.Is(err, period.ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		p    period.Period
		want string
	}{
		{period.Period{Months: 1}, "1 month"},
		{period.Period{Years: 1, Months: 6}, "1 year 6 months"},
		{period.Period{Weeks: 2, Days: 1}, "2 weeks 1 day"},
		{period.Period{}, "0 days"},
	}

	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestIsZero(t *testing.T) {
	if !(period.Period{}).IsZero() {
		t.Error("expected zero period to be zero")
	}
	if (period.Period{Days: 1}).IsZero() {
		t.Error("expected non-zero period")
	}
}
