package analyzer

import (
	"testing"
	"time"

	"github.com/prabinb19/ClaudeBuddy/internal/claude"
)

func TestSummarizeDay(t *testing.T) {
	day := localTime(2026, 2, 10, 9, 0)
	s1 := testSession("s1", day, 30*time.Minute,
		writeOp(day, "/app/a.go", "x"),
		editOp(day, "/app/b.go", "x", "y"),
		readOp(day, "/app/a.go"),
		shellOp(day, "go test"),
	)
	s1.TopicGroups = []claude.TopicGroup{
		{Topic: "build the thing", OperationCount: 3, Files: []string{"a.go", "b.go"}},
	}
	s2 := testSession("s2", day.Add(2*time.Hour), time.Hour,
		editOp(day.Add(2*time.Hour), "/app/a.go", "x", "y"),
	)
	s2.TopicGroups = []claude.TopicGroup{
		{Topic: "build the thing", OperationCount: 1, Files: []string{"a.go"}},
		{Topic: "side quest", OperationCount: 1, Files: []string{"a.go"}},
	}
	// A session on a different day is excluded.
	other := testSession("other", day.AddDate(0, 0, 1), time.Hour,
		writeOp(day.AddDate(0, 0, 1), "/app/z.go", "x"),
	)

	d := SummarizeDay([]claude.Session{s1, s2, other}, claude.DayOf(day))

	if d.SessionCount != 2 {
		t.Errorf("SessionCount = %d, want 2", d.SessionCount)
	}
	if d.ActiveMinutes != 90 {
		t.Errorf("ActiveMinutes = %d, want 90", d.ActiveMinutes)
	}
	if got := d.OperationCounts; got["writes"] != 1 || got["edits"] != 2 || got["reads"] != 1 || got["commands"] != 1 {
		t.Errorf("OperationCounts = %v", got)
	}
	// Reads don't count toward total.
	if d.OperationCounts["total"] != 4 {
		t.Errorf("total = %d, want 4", d.OperationCounts["total"])
	}
	if len(d.FilesModified) != 2 || d.FilesModified[0] != "a.go" {
		t.Errorf("FilesModified = %v", d.FilesModified)
	}

	if len(d.Topics) != 2 {
		t.Fatalf("Topics = %+v", d.Topics)
	}
	if d.Topics[0].Topic != "build the thing" || d.Topics[0].OperationCount != 4 {
		t.Errorf("merged topic = %+v", d.Topics[0])
	}
}

func TestSummarizeDay_CapsSessionMinutes(t *testing.T) {
	day := localTime(2026, 2, 10, 6, 0)
	marathon := testSession("m", day, 10*time.Hour)

	d := SummarizeDay([]claude.Session{marathon}, claude.DayOf(day))
	if d.ActiveMinutes != 180 {
		t.Errorf("ActiveMinutes = %d, want capped 180", d.ActiveMinutes)
	}
}

func TestNavigationFor(t *testing.T) {
	sessions := []claude.Session{
		{Date: "2026-02-08"},
		{Date: "2026-02-10"},
		{Date: "2026-02-14"},
	}

	nav := NavigationFor(sessions, "2026-02-10")
	if !nav.HasPrevious || nav.PreviousDate != "2026-02-08" {
		t.Errorf("previous = %+v", nav)
	}
	if !nav.HasNext || nav.NextDate != "2026-02-14" {
		t.Errorf("next = %+v", nav)
	}

	// Edges: nothing before the first date, nothing after the last.
	first := NavigationFor(sessions, "2026-02-08")
	if first.HasPrevious {
		t.Error("expected no previous at the first active date")
	}
	last := NavigationFor(sessions, "2026-02-14")
	if last.HasNext {
		t.Error("expected no next at the last active date")
	}

	// An inactive date between active ones still navigates both ways.
	mid := NavigationFor(sessions, "2026-02-11")
	if mid.PreviousDate != "2026-02-10" || mid.NextDate != "2026-02-14" {
		t.Errorf("mid = %+v", mid)
	}
}

func TestDisplayDate(t *testing.T) {
	now := localTime(2026, 2, 10, 12, 0)
	if got := DisplayDate("2026-02-10", now); got != "Today (Feb 10)" {
		t.Errorf("today = %q", got)
	}
	if got := DisplayDate("2026-02-09", now); got != "Yesterday (Feb 9)" {
		t.Errorf("yesterday = %q", got)
	}
	if got := DisplayDate("2026-02-06", now); got != "Fri, Feb 6" {
		t.Errorf("weekday = %q", got)
	}
	if got := DisplayDate("garbage", now); got != "garbage" {
		t.Errorf("invalid = %q", got)
	}
}
