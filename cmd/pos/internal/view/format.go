package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const apiTimeout = 15 * time.Second

// FormatAmount formats an amount stored in minor units into a
// human-readable string.
func FormatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}

	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

// ParseAmount converts a cashier-entered decimal string into minor
// units. At most two fractional digits are accepted; the math stays in
// integers so entered cents survive exactly.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount is empty")
	}

	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	var units, cents int64

	var err error

	// Entries like ".50" have an empty whole part, meaning zero units.
	if whole != "" {
		units, err = strconv.ParseInt(whole, 10, 64)
		if err != nil || units < 0 {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}

	if frac != "" {
		if len(frac) > 2 {
			return 0, fmt.Errorf("amount %q has more than two decimal places", s)
		}

		frac += strings.Repeat("0", 2-len(frac))

		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}

	return units*100 + cents, nil
}

// FormatTime formats a timestamp for bill headers and receipts.
func FormatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// ApiCtx returns a context with the standard timeout for API calls.
func ApiCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), apiTimeout)
}
