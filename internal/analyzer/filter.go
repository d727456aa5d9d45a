package analyzer

import (
	"math"
	"sort"
	"time"

	"github.com/prabinb19/ClaudeBuddy/internal/claude"
)

// FilterByDays returns the sessions whose date falls within the trailing
// N days of now, inclusive. Sessions with no timestamped record carry an
// empty date and are excluded from any date-windowed aggregation.
// days <= 0 keeps every dated session.
func FilterByDays(sessions []claude.Session, days int, now time.Time) []claude.Session {
	var out []claude.Session
	cutoff := ""
	if days > 0 {
		cutoff = claude.DayOf(now.AddDate(0, 0, -days))
	}
	for _, s := range sessions {
		if s.Date == "" {
			continue
		}
		if s.Date >= cutoff {
			out = append(out, s)
		}
	}
	return out
}

// ActiveDates returns the sorted distinct session dates.
func ActiveDates(sessions []claude.Session) []string {
	seen := map[string]bool{}
	for _, s := range sessions {
		if s.Date != "" {
			seen[s.Date] = true
		}
	}
	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// trailingDays returns the last n local calendar days ending at now,
// oldest first.
func trailingDays(n int, now time.Time) []string {
	days := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		days = append(days, claude.DayOf(now.AddDate(0, 0, -i)))
	}
	return days
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
