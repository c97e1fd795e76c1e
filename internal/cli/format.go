// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatMoney formats an amount with a dollar sign, thousands separators
// and two decimals. e.g., 1234.5 -> "$1,234.50"
func FormatMoney(v float64) string {
	if v < 0 {
		return "-" + FormatMoney(-v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// FormatMoneyShort drops the cents, for tight columns and chart labels.
func FormatMoneyShort(v float64) string {
	if v < 0 {
		return "-" + FormatMoneyShort(-v)
	}
	return "$" + humanize.Comma(int64(math.Round(v)))
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatPercent formats a 0-100 value with no decimals.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.0f%%", math.Round(p))
}

// FormatDelta formats a money change with an explicit sign.
func FormatDelta(delta float64) string {
	if delta > 0 {
		return "+" + FormatMoney(delta)
	}
	if delta < 0 {
		return "-" + FormatMoney(-delta)
	}
	return FormatMoney(0)
}

// FormatChangePercent formats a percentage change with an explicit sign.
func FormatChangePercent(p float64) string {
	r := math.Round(p*10) / 10
	switch {
	case r > 0:
		return fmt.Sprintf("+%.1f%%", r)
	case r < 0:
		return fmt.Sprintf("%.1f%%", r)
	default:
		return "0.0%"
	}
}

// FormatDate formats a calendar date. e.g., "Jun 9, 2025"
func FormatDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// FormatShortDate formats a calendar date without the year. e.g., "Jun 9"
func FormatShortDate(t time.Time) string {
	return t.Format("Jan 2")
}

// FormatRelative describes t relative to now. e.g., "3 days ago"
func FormatRelative(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}
