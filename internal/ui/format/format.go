// Package format provides UI formatting helpers.
package format

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

var nowFunc = time.Now

// Duration formats elapsed seconds as "2m3s", "1h30m", etc. (max 2 segments).
func Duration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}

	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd%dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh%dm", hours, mins)
	case mins > 0:
		return fmt.Sprintf("%dm%ds", mins, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// Elapsed formats the time between start and end, or "-" when either is unset.
func Elapsed(start, end time.Time) string {
	if start.IsZero() || end.IsZero() {
		return "-"
	}
	return Duration(int64(end.Sub(start) / time.Second))
}

// RelativeTime formats t relative to now, e.g. "3 hours ago".
func RelativeTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, nowFunc(), "ago", "from now")
}

// DateTime formats t in local time, or "-" when unset.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(time.Local).Format("2006-01-02 15:04")
}

// Count formats an integer with thousands separators.
func Count(n int64) string {
	return humanize.Comma(n)
}

// Rating formats a rating with two decimals, or "-" when unknown.
func Rating(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

// Delta formats a signed rating change, or "-" when unknown.
func Delta(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return "-"
	}
	if *v > 0 {
		return fmt.Sprintf("+%.2f", *v)
	}
	if *v == 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", *v)
}

// ShortNumber formats a number into a compact 4-char max string (e.g., 999, 9.9K, 120K).
func ShortNumber(n int64) string {
	switch {
	case n < 0:
		return "-" + ShortNumber(-n)
	case n < 1_000:
		return fmt.Sprintf("%d", n)
	case n < 10_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	case n < 1_000_000:
		return fmt.Sprintf("%dK", n/1_000)
	case n < 10_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n < 1_000_000_000:
		return fmt.Sprintf("%dM", n/1_000_000)
	case n < 10_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	default:
		return fmt.Sprintf("%dB", n/1_000_000_000)
	}
}
