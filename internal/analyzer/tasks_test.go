package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/prabinb19/ClaudeBuddy/internal/claude"
)

func namedSession(id string, start time.Time, prompt string, files ...string) claude.Session {
	s := testSession(id, start, 30*time.Minute)
	for i, f := range files {
		s.Operations = append(s.Operations, editOp(start.Add(time.Duration(i)*time.Minute), f, "a", "b"))
	}
	if prompt != "" {
		s.Messages = append(s.Messages, claude.Message{Role: "user", Text: prompt, Timestamp: start})
	}
	return s
}

func TestGroupTasks_MergesRelatedSessions(t *testing.T) {
	start := localTime(2026, 2, 10, 9, 0)
	a := namedSession("a", start.Add(time.Hour), "fix auth token refresh", "/app/auth.go", "/app/token.go")
	// Same files, same day, one hour apart: well above the threshold.
	b := namedSession("b", start, "", "/app/auth.go", "/app/token.go")
	// Different day, no shared files: its own task.
	c := namedSession("c", start.AddDate(0, 0, -3), "create the billing page", "/app/billing.go")

	tasks := GroupTasks([]claude.Session{a, b, c})
	require.Len(t, tasks, 2)

	require.Equal(t, 2, tasks[0].SessionCount)
	require.Equal(t, "fix auth token refresh", tasks[0].Name)
	require.Equal(t, "prompt", tasks[0].InferredFrom)
	require.Equal(t, []string{"auth.go", "token.go"}, tasks[0].FilesInvolved)
	require.Equal(t, 60, tasks[0].TotalMinutes)

	require.Equal(t, 1, tasks[1].SessionCount)
	require.Equal(t, "create the billing page", tasks[1].Name)
}

func TestGroupTasks_StableUnderReordering(t *testing.T) {
	start := localTime(2026, 2, 10, 9, 0)
	sessions := []claude.Session{
		namedSession("a", start, "fix the login flow", "/app/login.go"),
		namedSession("b", start.Add(30*time.Minute), "", "/app/login.go"),
		namedSession("c", start.AddDate(0, 0, -2), "add search endpoint", "/app/search.go"),
		namedSession("d", start.AddDate(0, 0, -2).Add(time.Hour), "", "/app/search.go"),
	}

	forward := GroupTasks(sessions)

	reversed := make([]claude.Session, len(sessions))
	for i, s := range sessions {
		reversed[len(sessions)-1-i] = s
	}
	backward := GroupTasks(reversed)

	require.Equal(t, forward, backward)
}

func TestGroupTasks_NameFromMostTouchedFile(t *testing.T) {
	start := localTime(2026, 2, 10, 9, 0)
	// No actionable prompt: name falls back to the dominant file.
	s := namedSession("s", start, "what does this do?", "/app/core.go", "/app/core.go", "/app/util.go")

	tasks := GroupTasks([]claude.Session{s})
	require.Len(t, tasks, 1)
	require.Equal(t, "core.go", tasks[0].Name)
	require.Equal(t, "file", tasks[0].InferredFrom)
}

func TestGroupTasks_FallbackName(t *testing.T) {
	start := localTime(2026, 2, 10, 9, 0)
	s := testSession("bare", start, 10*time.Minute)

	tasks := GroupTasks([]claude.Session{s})
	require.Len(t, tasks, 1)
	require.Equal(t, "Unnamed task", tasks[0].Name)
	require.Equal(t, "fallback", tasks[0].InferredFrom)
}

func TestGroupTasks_SkipsUndatedSessions(t *testing.T) {
	s := claude.Session{ID: "no-date"}
	require.Empty(t, GroupTasks([]claude.Session{s}))
}

func TestGroupTasks_DateRangeSpansMembers(t *testing.T) {
	start := localTime(2026, 2, 10, 23, 30)
	// Same files but across midnight: date proximity still merges them
	// (40 file points + time points clears the threshold).
	a := namedSession("a", start.Add(time.Hour), "", "/app/x.go")
	b := namedSession("b", start, "", "/app/x.go")

	tasks := GroupTasks([]claude.Session{a, b})
	require.Len(t, tasks, 1)
	require.Equal(t, claude.DayOf(start), tasks[0].DateRange.Start)
	require.Equal(t, claude.DayOf(start.Add(time.Hour)), tasks[0].DateRange.End)
}

func TestSummarizeTasks(t *testing.T) {
	tasks := []Task{
		{TotalMinutes: 90},
		{TotalMinutes: 30},
	}
	s := SummarizeTasks(tasks)
	require.Equal(t, 2, s.TotalTasks)
	require.Equal(t, 120, s.TotalTimeMinutes)
	require.Equal(t, 60, s.AvgMinutesPerTask)
}
