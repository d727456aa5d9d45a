package analyzer

import (
	"sort"
	"strings"
	"time"

	"github.com/prabinb19/ClaudeBuddy/internal/claude"
)

// trendDays is the span of the daily trend series.
const trendDays = 14

// AnalyzeVelocity computes output-volume metrics across sessions.
// The line estimate is a heuristic, not a diff: a write counts the lines
// of the written content, an edit counts abs(new-old) + min(old, new).
func AnalyzeVelocity(sessions []claude.Session, now time.Time) VelocityMetrics {
	m := VelocityMetrics{}

	filesByDay := map[string]map[string]bool{}
	opsByDay := map[string]*OpsTrendDay{}

	for _, s := range sessions {
		for _, op := range s.Operations {
			if !op.IsCode() {
				continue
			}
			day := claude.DayOf(op.Timestamp)
			if day != "" {
				if opsByDay[day] == nil {
					opsByDay[day] = &OpsTrendDay{Date: day}
				}
				if op.FilePath != "" {
					if filesByDay[day] == nil {
						filesByDay[day] = map[string]bool{}
					}
					filesByDay[day][op.FilePath] = true
				}
			}

			switch op.Kind {
			case claude.OpWrite:
				m.TotalWrites++
				m.LinesChangedEstimate += lineCount(op.Content)
				if day != "" {
					opsByDay[day].Writes++
				}
			case claude.OpEdit:
				m.TotalEdits++
				m.LinesChangedEstimate += editLineEstimate(op.OldText, op.NewText)
				if day != "" {
					opsByDay[day].Edits++
				}
			}
		}
	}

	m.TotalCodeOperations = m.TotalWrites + m.TotalEdits

	for day, files := range filesByDay {
		m.FilesModifiedByDay = append(m.FilesModifiedByDay, DayCount{Date: day, Count: len(files)})
	}
	sort.Slice(m.FilesModifiedByDay, func(i, j int) bool {
		return m.FilesModifiedByDay[i].Date < m.FilesModifiedByDay[j].Date
	})
	if len(m.FilesModifiedByDay) > 30 {
		m.FilesModifiedByDay = m.FilesModifiedByDay[len(m.FilesModifiedByDay)-30:]
	}

	if activeDays := len(opsByDay); activeDays > 0 {
		m.AverageOpsPerDay = round1(float64(m.TotalCodeOperations) / float64(activeDays))
	}

	for _, day := range trailingDays(trendDays, now) {
		entry := OpsTrendDay{Date: day}
		if d, ok := opsByDay[day]; ok {
			entry.Writes = d.Writes
			entry.Edits = d.Edits
		}
		m.DailyTrend = append(m.DailyTrend, entry)
	}

	return m
}

// lineCount counts the lines of written content: newlines + 1.
func lineCount(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}

// editLineEstimate approximates lines affected by a replacement.
func editLineEstimate(oldText, newText string) int {
	oldLines := lineCount(oldText)
	newLines := lineCount(newText)
	diff := newLines - oldLines
	if diff < 0 {
		diff = -diff
	}
	base := oldLines
	if newLines < oldLines {
		base = newLines
	}
	return diff + base
}
