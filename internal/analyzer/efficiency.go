package analyzer

import (
	"github.com/prabinb19/ClaudeBuddy/internal/claude"
)

// Session duration buckets, in minutes.
const (
	bucketShort  = "0-15"
	bucketMedium = "15-30"
	bucketLong   = "30-60"
	bucketDeep   = "60+"
)

// AnalyzeEfficiency builds the weekday/hour activity heatmap, buckets
// session durations, and relates token spend (from the stats file) to
// code output. stats may be nil: token-derived fields stay zero.
func AnalyzeEfficiency(sessions []claude.Session, stats *claude.StatsFile) EfficiencyMetrics {
	m := EfficiencyMetrics{
		SessionDurations: map[string]int{
			bucketShort:  0,
			bucketMedium: 0,
			bucketLong:   0,
			bucketDeep:   0,
		},
	}

	codeOps := 0
	totalOps := 0
	for _, s := range sessions {
		for _, op := range s.Operations {
			totalOps++
			if op.IsCode() {
				codeOps++
			}
			if op.Timestamp.IsZero() {
				continue
			}
			local := op.Timestamp.Local()
			m.PeakHoursHeatmap[int(local.Weekday())][local.Hour()]++
		}

		if d := s.Duration(); d > 0 {
			minutes := d.Minutes()
			switch {
			case minutes < 15:
				m.SessionDurations[bucketShort]++
			case minutes < 30:
				m.SessionDurations[bucketMedium]++
			case minutes < 60:
				m.SessionDurations[bucketLong]++
			default:
				m.SessionDurations[bucketDeep]++
			}
		}
	}

	if len(sessions) > 0 {
		m.OpsPerSession = round1(float64(totalOps) / float64(len(sessions)))
	}

	if stats != nil && codeOps > 0 {
		var tokens int64
		for _, u := range stats.ModelUsage {
			tokens += u.InputTokens + u.OutputTokens
		}
		m.TokensPerCodeOp = round1(float64(tokens) / float64(codeOps))
	}

	return m
}
