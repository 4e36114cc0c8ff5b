package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
)

// MicrosPerUnit is the number of micros in one currency unit.
const MicrosPerUnit = 1_000_000

// microsDigits is the number of fraction digits a micros amount carries.
const microsDigits = 6

// ErrInvalidAmount is returned by ParseAmount for malformed decimal strings.
var ErrInvalidAmount = errors.New("invalid amount")

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

// Format renders micros as a display price in the given ISO 4217 currency,
// rounded to the currency's standard number of fraction digits.
//
//	Format(990000, "USD")   → "$0.99"
//	Format(1500000, "CHF")  → "1.50 CHF"
func Format(micros int64, code string) (string, error) {
	unit, err := currency.ParseISO(strings.ToUpper(code))
	if err != nil {
		return "", fmt.Errorf("parsing currency %q: %w", code, err)
	}

	scale, _ := currency.Standard.Rounding(unit)
	scale = min(scale, microsDigits)

	neg, amount := formatMicros(micros, scale)

	iso := unit.String()
	if sym, ok := symbols[iso]; ok {
		amount = sym + amount
	} else {
		amount = amount + " " + iso
	}

	if neg {
		amount = "-" + amount
	}

	return amount, nil
}

// formatMicros rounds micros half away from zero to scale fraction digits.
// neg reports a negative, non-zero rounded value.
func formatMicros(micros int64, scale int) (neg bool, s string) {
	abs := uint64(micros)
	if micros < 0 {
		abs = -abs
	}

	div := pow10(microsDigits - scale)

	q := abs / div
	if (abs%div)*2 >= div {
		q++
	}

	unit := pow10(scale)

	s = strconv.FormatUint(q/unit, 10)
	if scale > 0 {
		s += fmt.Sprintf(".%0*d", scale, q%unit)
	}

	return micros < 0 && q != 0, s
}

// ParseAmount converts a decimal string such as "0.99" into micros.
// At most six fraction digits are accepted.
func ParseAmount(s string) (int64, error) {
	whole, frac, _ := strings.Cut(strings.TrimSpace(s), ".")

	if whole == "" || !digitsOnly(whole) || !digitsOnly(frac) || len(frac) > microsDigits {
		return 0, fmt.Errorf("%w %q", ErrInvalidAmount, s)
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > math.MaxInt64/MicrosPerUnit {
		return 0, fmt.Errorf("%w %q: out of range", ErrInvalidAmount, s)
	}

	var fracMicros int64
	if frac != "" {
		padded := frac + strings.Repeat("0", microsDigits-len(frac))

		fracMicros, err = strconv.ParseInt(padded, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w %q: %w", ErrInvalidAmount, s, err)
		}
	}

	total := units*MicrosPerUnit + fracMicros
	if total < 0 {
		return 0, fmt.Errorf("%w %q: out of range", ErrInvalidAmount, s)
	}

	return total, nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func pow10(n int) uint64 {
	p := uint64(1)
	for range n {
		p *= 10
	}

	return p
}
