package analyzer

import (
	"sort"
	"strings"
	"time"

	"github.com/prabinb19/ClaudeBuddy/internal/claude"
)

const previewMaxLen = 100

// HistoryPrompt is a single prompt as shown in the history view.
type HistoryPrompt struct {
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// HistorySession groups one session's prompts within a day.
type HistorySession struct {
	SessionID      string          `json:"sessionId"`
	Project        string          `json:"project"`
	ProjectName    string          `json:"projectName"`
	Topic          string          `json:"topic"`
	Preview        string          `json:"preview"`
	PromptCount    int             `json:"promptCount"`
	Prompts        []HistoryPrompt `json:"prompts"`
	FirstTimestamp string          `json:"firstTimestamp"`
	LastTimestamp  string          `json:"lastTimestamp"`
}

// HistoryDay is one calendar day of prompt history, newest day first.
type HistoryDay struct {
	Date     string           `json:"date"`
	Sessions []HistorySession `json:"sessions"`
}

type historyBucket struct {
	session HistorySession
	first   time.Time
	last    time.Time
}

// GroupHistory organizes raw history entries by local calendar day and
// session. Days and sessions within a day are newest first; prompts
// within a session stay in chronological order.
func GroupHistory(entries []claude.HistoryEntry) []HistoryDay {
	ordered := make([]claude.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Timestamp.Time.IsZero() {
			ordered = append(ordered, e)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Time.Before(ordered[j].Timestamp.Time)
	})

	buckets := map[string]map[string]*historyBucket{}
	var dayKeys []string
	dayOrder := map[string][]string{}

	for _, e := range ordered {
		t := e.Timestamp.Time.Local()
		day := t.Format("2006-01-02")
		if buckets[day] == nil {
			buckets[day] = map[string]*historyBucket{}
			dayKeys = append(dayKeys, day)
		}

		sessionID := e.SessionID
		if sessionID == "" {
			sessionID = "unknown"
		}
		b, ok := buckets[day][sessionID]
		if !ok {
			b = &historyBucket{
				session: HistorySession{
					SessionID:   sessionID,
					Project:     e.Project,
					ProjectName: projectDisplayName(e.Project),
				},
				first: t,
				last:  t,
			}
			buckets[day][sessionID] = b
			dayOrder[day] = append(dayOrder[day], sessionID)
		}

		ts := t.Format(time.RFC3339)
		b.session.Prompts = append(b.session.Prompts, HistoryPrompt{Text: e.Display, Timestamp: ts})
		if t.Before(b.first) {
			b.first = t
		}
		if t.After(b.last) {
			b.last = t
		}
	}

	sort.Sort(sort.Reverse(sort.StringSlice(dayKeys)))

	out := make([]HistoryDay, 0, len(dayKeys))
	for _, day := range dayKeys {
		t, _ := time.ParseInLocation("2006-01-02", day, time.Local)
		hd := HistoryDay{Date: t.Format("Mon, Jan 02, 2006")}

		for _, sessionID := range dayOrder[day] {
			b := buckets[day][sessionID]
			s := b.session
			s.PromptCount = len(s.Prompts)
			s.FirstTimestamp = b.first.Format(time.RFC3339)
			s.LastTimestamp = b.last.Format(time.RFC3339)

			var joined []string
			for _, p := range s.Prompts {
				joined = append(joined, p.Text)
			}
			s.Topic = DetectHistoryTopic(strings.Join(joined, " "))
			if len(s.Prompts) > 0 {
				s.Preview = snippet(s.Prompts[0].Text, previewMaxLen)
			}
			hd.Sessions = append(hd.Sessions, s)
		}

		sort.SliceStable(hd.Sessions, func(i, j int) bool {
			return hd.Sessions[i].LastTimestamp > hd.Sessions[j].LastTimestamp
		})
		out = append(out, hd)
	}
	return out
}

// projectDisplayName shows the last path segment of a project path.
func projectDisplayName(project string) string {
	if project == "" {
		return "Unknown Project"
	}
	if i := strings.LastIndexByte(project, '/'); i >= 0 {
		return project[i+1:]
	}
	return project
}
