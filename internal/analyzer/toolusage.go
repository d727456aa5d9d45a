package analyzer

import (
	"time"

	"github.com/prabinb19/ClaudeBuddy/internal/claude"
)

// Read:write ratio thresholds and their qualitative labels.
const (
	RatioExploration  = "exploration-heavy"
	RatioBalanced     = "balanced"
	RatioActiveCoding = "active-coding"
	RatioHighVelocity = "high-velocity"
)

// AnalyzeToolUsage tallies operations into the fixed six-kind
// distribution and derives the read:write ratio with its insight label.
func AnalyzeToolUsage(sessions []claude.Session, now time.Time) ToolUsageMetrics {
	m := ToolUsageMetrics{
		Distribution: map[string]int{
			string(claude.OpWrite): 0,
			string(claude.OpEdit):  0,
			string(claude.OpRead):  0,
			string(claude.OpShell): 0,
			string(claude.OpGlob):  0,
			string(claude.OpGrep):  0,
		},
	}

	byDay := map[string]*ToolTrendDay{}

	for _, s := range sessions {
		for _, op := range s.Operations {
			m.Distribution[string(op.Kind)]++

			day := claude.DayOf(op.Timestamp)
			if day == "" {
				continue
			}
			if byDay[day] == nil {
				byDay[day] = &ToolTrendDay{Date: day}
			}
			switch op.Kind {
			case claude.OpWrite:
				byDay[day].Writes++
			case claude.OpEdit:
				byDay[day].Edits++
			case claude.OpRead:
				byDay[day].Reads++
			case claude.OpShell:
				byDay[day].Commands++
			}
		}
	}

	writes := m.Distribution[string(claude.OpWrite)] + m.Distribution[string(claude.OpEdit)]
	reads := m.Distribution[string(claude.OpRead)]
	if writes > 0 {
		m.ReadWriteRatio = round2(float64(reads) / float64(writes))
	}
	m.RatioInsight = ratioInsight(m.ReadWriteRatio)

	for _, day := range trailingDays(trendDays, now) {
		entry := ToolTrendDay{Date: day}
		if d, ok := byDay[day]; ok {
			entry = *d
		}
		m.DailyTrend = append(m.DailyTrend, entry)
	}

	return m
}

// ratioInsight maps a read:write ratio to its qualitative label.
func ratioInsight(ratio float64) string {
	switch {
	case ratio > 3:
		return RatioExploration
	case ratio > 1.5:
		return RatioBalanced
	case ratio > 0.5:
		return RatioActiveCoding
	default:
		return RatioHighVelocity
	}
}
