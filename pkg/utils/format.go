package utils

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatUSD formats a dollar amount compactly for terminal output,
// e.g. 1927345000 → "$1.93B", 42950.12 → "$42,950.12".
func FormatUSD(amount float64) string {
	neg := ""
	if amount < 0 {
		neg = "-"
		amount = -amount
	}

	switch {
	case amount >= 1e12:
		return fmt.Sprintf("%s$%.2fT", neg, amount/1e12)
	case amount >= 1e9:
		return fmt.Sprintf("%s$%.2fB", neg, amount/1e9)
	case amount >= 1e6:
		return fmt.Sprintf("%s$%.2fM", neg, amount/1e6)
	default:
		return neg + "$" + humanize.CommafWithDigits(amount, 2)
	}
}

// FormatCount formats a unitless quantity (e.g. circulating supply) with
// thousands separators, dropping fractional noise on large values.
func FormatCount(n float64) string {
	if n >= 1e6 {
		return humanize.CommafWithDigits(n, 0)
	}
	return humanize.CommafWithDigits(n, 2)
}
