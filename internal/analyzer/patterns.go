package analyzer

import (
	"sort"
	"time"

	"github.com/prabinb19/ClaudeBuddy/internal/claude"
)

// Focus-session thresholds: a session counts as focused work when it ran
// at least this long and produced at least this many code operations.
const (
	focusMinDuration = 30 * time.Minute
	focusMinCodeOps  = 3
)

// AnalyzePatterns computes working-habit metrics: per-weekday averages,
// activity streaks, focus sessions, and the most-edited files.
func AnalyzePatterns(sessions []claude.Session, now time.Time) PatternMetrics {
	m := PatternMetrics{}

	// Code operations per session date, and per file basename.
	opsByDate := map[string]int{}
	fileCounts := map[string]int{}

	for _, s := range sessions {
		code := 0
		for _, op := range s.Operations {
			if !op.IsCode() {
				continue
			}
			code++
			if name := op.FileName(); name != "" {
				fileCounts[name]++
			}
		}
		if s.Date != "" {
			opsByDate[s.Date] += code
		}
		if s.Duration() >= focusMinDuration && code >= focusMinCodeOps {
			m.FocusSessions++
		}
	}

	m.TotalActiveDays = len(opsByDate)
	m.ByDayOfWeek = weekdayAverages(opsByDate)
	m.CurrentStreak = currentStreak(opsByDate, now)
	m.LongestStreak = longestStreak(opsByDate)
	m.MostEditedFiles = topFiles(fileCounts, 10)
	return m
}

// weekdayAverages computes mean code ops per active day for each weekday,
// Sunday first.
func weekdayAverages(opsByDate map[string]int) []WeekdayAverage {
	var totals, days [7]int
	for date, ops := range opsByDate {
		t, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			continue
		}
		wd := int(t.Weekday())
		totals[wd] += ops
		days[wd]++
	}

	out := make([]WeekdayAverage, 7)
	for wd := 0; wd < 7; wd++ {
		out[wd] = WeekdayAverage{Day: time.Weekday(wd).String()}
		if days[wd] > 0 {
			out[wd].AvgOps = round1(float64(totals[wd]) / float64(days[wd]))
		}
	}
	return out
}

// currentStreak walks backward from today counting consecutive active
// days. An inactive today does not end the streak — a streak checked in
// the morning before any work should not read as zero — but any earlier
// gap does.
func currentStreak(opsByDate map[string]int, now time.Time) int {
	streak := 0
	day := now
	for i := 0; ; i++ {
		if opsByDate[claude.DayOf(day)] > 0 {
			streak++
		} else if i > 0 {
			break
		}
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// longestStreak scans the distinct active dates in order and breaks a run
// on any gap of two or more days.
func longestStreak(opsByDate map[string]int) int {
	dates := make([]string, 0, len(opsByDate))
	for d := range opsByDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	longest, run := 0, 0
	var prev time.Time
	for _, date := range dates {
		t, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			continue
		}
		if run == 0 || t.Sub(prev) >= 48*time.Hour {
			run = 1
		} else {
			run++
		}
		if run > longest {
			longest = run
		}
		prev = t
	}
	return longest
}

// topFiles returns the n most-edited file basenames, count descending
// with name as tiebreak.
func topFiles(fileCounts map[string]int, n int) []FileEditCount {
	out := make([]FileEditCount, 0, len(fileCounts))
	for name, count := range fileCounts {
		out = append(out, FileEditCount{FileName: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].FileName < out[j].FileName
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
