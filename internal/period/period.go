package period

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalid is returned for strings that are not date-only ISO 8601 durations.
var ErrInvalid = errors.New("invalid billing period")

// Period is a billing period such as "P1M" or "P1Y6M".
type Period struct {
	Years  int
	Months int
	Weeks  int
	Days   int
}

// Parse parses a date-only ISO 8601 duration. Designators must appear in
// Y, M, W, D order and at most once; time parts ("T...") are rejected.
//
//	"P1M"   → 1 month
//	"P1Y6M" → 1 year 6 months
//	"P3D"   → 3 days
func Parse(s string) (Period, error) {
	rest, ok := strings.CutPrefix(s, "P")
	if !ok || rest == "" {
		return Period{}, fmt.Errorf("%w %q", ErrInvalid, s)
	}

	var p Period

	order := "YMWD"

	for rest != "" {
		end := strings.IndexFunc(rest, func(r rune) bool { return r < '0' || r > '9' })
		if end <= 0 {
			return Period{}, fmt.Errorf("%w %q", ErrInvalid, s)
		}

		n, err := strconv.Atoi(rest[:end])
		if err != nil {
			return Period{}, fmt.Errorf("%w %q: %w", ErrInvalid, s, err)
		}

		designator := rest[end]

		idx := strings.IndexByte(order, designator)
		if idx < 0 {
			return Period{}, fmt.Errorf("%w %q: unexpected %q", ErrInvalid, s, designator)
		}

		switch designator {
		case 'Y':
			p.Years = n
		case 'M':
			p.Months = n
		case 'W':
			p.Weeks = n
		case 'D':
			p.Days = n
		}

		// Later designators only.
		order = order[idx+1:]
		rest = rest[end+1:]
	}

	return p, nil
}

// IsZero reports whether every component is zero.
func (p Period) IsZero() bool {
	return p == Period{}
}

// String returns a human form, e.g. "1 year 6 months".
func (p Period) String() string {
	var parts []string

	for _, c := range []struct {
		n    int
		unit string
	}{
		{p.Years, "year"},
		{p.Months, "month"},
		{p.Weeks, "week"},
		{p.Days, "day"},
	} {
		if c.n == 0 {
			continue
		}

		unit := c.unit
		if c.n != 1 {
			unit += "s"
		}

		parts = append(parts, fmt.Sprintf("%d %s", c.n, unit))
	}

	if len(parts) == 0 {
		return "0 days"
	}

	return strings.Join(parts, " ")
}
