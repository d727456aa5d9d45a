package analyzer

import (
	"sort"
	"time"

	"github.com/prabinb19/ClaudeBuddy/internal/claude"
)

// maxSessionMinutes caps one session's contribution to active minutes, so
// a transcript left open overnight cannot dominate a day.
const maxSessionMinutes = 180.0

// maxDailyTopics bounds the merged topic list in a daily summary.
const maxDailyTopics = 10

// SummarizeDay aggregates the sessions whose date equals the target date:
// capped active minutes, distinct file basenames, operation-kind counts,
// and the merged topic groups.
func SummarizeDay(sessions []claude.Session, date string) DailySummary {
	summary := DailySummary{
		Date: date,
		OperationCounts: map[string]int{
			"writes": 0, "edits": 0, "reads": 0, "commands": 0, "total": 0,
		},
	}

	filesModified := map[string]bool{}

	// Topic groups from different sessions sharing the same text merge:
	// counts sum, files union. Insertion order is kept for stable sorting.
	merged := map[string]*TopicSummary{}
	mergedFiles := map[string]map[string]bool{}
	var topicOrder []string

	for _, s := range sessions {
		if s.Date != date {
			continue
		}
		summary.SessionCount++

		if d := s.Duration(); d > 0 {
			minutes := d.Minutes()
			if minutes > maxSessionMinutes {
				minutes = maxSessionMinutes
			}
			summary.ActiveMinutes += int(minutes + 0.5)
		}

		for _, op := range s.Operations {
			switch op.Kind {
			case claude.OpWrite:
				summary.OperationCounts["writes"]++
				summary.OperationCounts["total"]++
			case claude.OpEdit:
				summary.OperationCounts["edits"]++
				summary.OperationCounts["total"]++
			case claude.OpRead:
				summary.OperationCounts["reads"]++
			case claude.OpShell:
				summary.OperationCounts["commands"]++
				summary.OperationCounts["total"]++
			}
			if op.IsCode() {
				if name := op.FileName(); name != "" {
					filesModified[name] = true
				}
			}
		}

		for _, g := range s.TopicGroups {
			t, ok := merged[g.Topic]
			if !ok {
				t = &TopicSummary{Topic: g.Topic}
				merged[g.Topic] = t
				mergedFiles[g.Topic] = map[string]bool{}
				topicOrder = append(topicOrder, g.Topic)
			}
			t.OperationCount += g.OperationCount
			for _, f := range g.Files {
				mergedFiles[g.Topic][f] = true
			}
		}
	}

	for name := range filesModified {
		summary.FilesModified = append(summary.FilesModified, name)
	}
	sort.Strings(summary.FilesModified)

	for _, topic := range topicOrder {
		t := *merged[topic]
		for f := range mergedFiles[topic] {
			t.Files = append(t.Files, f)
		}
		sort.Strings(t.Files)
		summary.Topics = append(summary.Topics, t)
	}
	sort.SliceStable(summary.Topics, func(i, j int) bool {
		return summary.Topics[i].OperationCount > summary.Topics[j].OperationCount
	})
	if len(summary.Topics) > maxDailyTopics {
		summary.Topics = summary.Topics[:maxDailyTopics]
	}

	return summary
}

// NavigationFor locates the nearest active dates on either side of the
// target. Previous/next skip inactive calendar days; they are the
// neighboring dates that actually had sessions.
func NavigationFor(sessions []claude.Session, date string) DateNavigation {
	nav := DateNavigation{}
	for _, d := range ActiveDates(sessions) {
		switch {
		case d < date:
			nav.HasPrevious = true
			nav.PreviousDate = d
		case d > date:
			if !nav.HasNext {
				nav.HasNext = true
				nav.NextDate = d
			}
		}
	}
	return nav
}

// DisplayDate renders a date for the daily view: "Today (Jan 2)",
// "Yesterday (Jan 1)", or "Mon, Jan 2".
func DisplayDate(date string, now time.Time) string {
	t, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return date
	}
	switch date {
	case claude.DayOf(now):
		return "Today (" + t.Format("Jan 2") + ")"
	case claude.DayOf(now.AddDate(0, 0, -1)):
		return "Yesterday (" + t.Format("Jan 2") + ")"
	default:
		return t.Format("Mon, Jan 2")
	}
}
