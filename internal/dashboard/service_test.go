package dashboard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/prabinb19/ClaudeBuddy/internal/config"
)

// fixtureHome builds a claude home with one project and one session.
func fixtureHome(t *testing.T) (string, time.Time) {
	t.Helper()
	home := t.TempDir()

	base := time.Date(2026, 2, 10, 10, 0, 0, 0, time.Local)
	stamp := func(d time.Duration) string {
		return base.Add(d).UTC().Format(time.RFC3339)
	}

	projectDir := filepath.Join(home, "projects", "-Users-dev-webapp")
	require.NoError(t, os.MkdirAll(projectDir, 0755))

	lines := []string{
		fmt.Sprintf(`{"type":"user","timestamp":"%s","message":{"role":"user","content":"fix the login flow please"}}`, stamp(0)),
		fmt.Sprintf(`{"type":"assistant","timestamp":"%s","message":{"role":"assistant","model":"claude-sonnet-4-20250514","content":[{"type":"text","text":"On it."},{"type":"tool_use","id":"t1","name":"Edit","input":{"file_path":"/Users/dev/webapp/login.go","old_string":"a","new_string":"b"}}]}}`, stamp(time.Minute)),
		fmt.Sprintf(`{"type":"assistant","timestamp":"%s","message":{"role":"assistant","content":[{"type":"tool_use","id":"t2","name":"Bash","input":{"command":"go test ./...","description":"Run tests"}}]}}`, stamp(2*time.Minute)),
	}
	require.NoError(t, os.WriteFile(
		filepath.Join(projectDir, "sess-1.jsonl"),
		[]byte(strings.Join(lines, "\n")),
		0644,
	))

	stats := `{"version":1,"totalSessions":1,"totalMessages":3,` +
		`"modelUsage":{"claude-sonnet-4-20250514":{"inputTokens":1000000,"outputTokens":500000}},` +
		`"dailyActivity":[{"date":"2026-02-10","messageCount":3,"sessionCount":1}],` +
		`"dailyModelTokens":[{"date":"2026-02-10","tokensByModel":{"claude-sonnet-4-20250514":1500000}}]}`
	require.NoError(t, os.WriteFile(filepath.Join(home, "statsCache.json"), []byte(stats), 0644))

	history := fmt.Sprintf(`{"display":"fix the login flow please","project":"/Users/dev/webapp","sessionId":"sess-1","timestamp":"%s"}`, stamp(0))
	require.NoError(t, os.WriteFile(filepath.Join(home, "history.jsonl"), []byte(history+"\n"), 0644))

	return home, base
}

func testService(t *testing.T) (*Service, time.Time) {
	t.Helper()
	home, base := fixtureHome(t)
	cfg := &config.Config{
		ClaudeHome: home,
		Cache:      config.DefaultCacheTTL,
		Insights:   config.DefaultInsights,
	}
	svc := New(cfg)
	svc.now = func() time.Time { return base.Add(time.Hour) }
	return svc, base
}

func TestServiceStats(t *testing.T) {
	svc, _ := testService(t)

	got, err := svc.Stats()
	require.NoError(t, err)
	require.Empty(t, got.Message)
	require.Equal(t, 1, got.Stats.TotalSessions)
	require.InDelta(t, 10.5, got.Costs.Total, 1e-9)
	require.Len(t, got.Charts.DailyActivity, 1)
	require.Equal(t, int64(1500000), got.Charts.DailyTokens[0].Tokens)
}

func TestServiceStats_NoData(t *testing.T) {
	cfg := &config.Config{ClaudeHome: t.TempDir()}
	svc := New(cfg)

	got, err := svc.Stats()
	require.NoError(t, err)
	require.NotEmpty(t, got.Message)
	require.Zero(t, got.Costs.Total)
}

func TestServiceProjects(t *testing.T) {
	svc, _ := testService(t)

	projects, err := svc.Projects()
	require.NoError(t, err)
	require.Len(t, projects, 1)

	p := projects[0]
	require.Equal(t, "-Users-dev-webapp", p.ID)
	require.Equal(t, "webapp", p.Name)
	require.Equal(t, 1, p.SessionCount)
	require.Contains(t, p.Topics, "Bug Fix")
	require.Contains(t, p.RecentTasks, "fix the login flow please")
	require.Len(t, p.Sessions, 1)
	require.Equal(t, "sess-1", p.Sessions[0].ID)
	require.False(t, p.LastActivity.IsZero())
}

func TestServiceSession(t *testing.T) {
	svc, _ := testService(t)

	detail, err := svc.Session("-Users-dev-webapp", "sess-1")
	require.NoError(t, err)
	require.Equal(t, "sess-1", detail.ID)
	require.Equal(t, "/Users/dev/webapp", detail.ProjectPath)
	require.Equal(t, 2, detail.MessageCount)
	require.Len(t, detail.Operations, 2)
	require.Equal(t, 1, detail.OperationCounts["edits"])
	require.Equal(t, 1, detail.OperationCounts["commands"])
	require.Len(t, detail.TopicGroups, 1)
}

func TestServiceSession_TruncatesLongMessagesOnRuneBoundary(t *testing.T) {
	svc, base := testService(t)

	// 2100 two-byte runes: a byte-based cut at the limit would split one
	// in half and leave invalid UTF-8 in the detail view.
	long := strings.Repeat("é", 2100)
	line := fmt.Sprintf(`{"type":"user","timestamp":"%s","message":{"role":"user","content":%q}}`,
		base.UTC().Format(time.RFC3339), long)
	path := filepath.Join(svc.home, "projects", "-Users-dev-webapp", "sess-2.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(line+"\n"), 0644))

	detail, err := svc.Session("-Users-dev-webapp", "sess-2")
	require.NoError(t, err)
	require.Len(t, detail.Messages, 1)

	text := detail.Messages[0].Text
	require.True(t, utf8.ValidString(text))
	require.Equal(t, 2000, utf8.RuneCountInString(text))
}

func TestServiceSession_NotFound(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.Session("-Users-dev-webapp", "nope")
	require.True(t, errors.Is(err, ErrSessionNotFound))
}

func TestServiceProductivity(t *testing.T) {
	svc, _ := testService(t)

	got, err := svc.Productivity(false)
	require.NoError(t, err)
	require.Equal(t, 1, got.Velocity.TotalEdits)
	require.Equal(t, 1, got.Patterns.TotalActiveDays)
	require.Equal(t, 1, got.Summary.TotalActiveDays)
	require.False(t, got.ComputedAt.IsZero())

	// Second call is served from cache: identical computedAt.
	again, err := svc.Productivity(false)
	require.NoError(t, err)
	require.Equal(t, got.ComputedAt, again.ComputedAt)
}

func TestServiceInsightsDaily(t *testing.T) {
	svc, base := testService(t)

	got, err := svc.InsightsDaily(base.Format("2006-01-02"), false)
	require.NoError(t, err)
	require.Equal(t, 1, got.Summary.SessionCount)
	require.Equal(t, 2, got.Summary.OperationCounts["total"])
	require.False(t, got.Navigation.HasPrevious)
	require.False(t, got.Navigation.HasNext)
}

func TestServiceInsightsErrors(t *testing.T) {
	svc, _ := testService(t)

	got, err := svc.InsightsErrors(0, false)
	require.NoError(t, err)
	require.Equal(t, config.DefaultInsights.ErrorDays, got.Days)
	// One edit and one command: no struggle or repetition signals.
	require.Empty(t, got.Patterns.StruggleFiles)
	require.Empty(t, got.Patterns.ThrashingSessions)
}

func TestServiceInsightsTasks(t *testing.T) {
	svc, _ := testService(t)

	got, err := svc.InsightsTasks(0, false)
	require.NoError(t, err)
	require.Equal(t, config.DefaultInsights.TaskDays, got.Days)
	require.Len(t, got.Tasks, 1)
	require.Equal(t, "fix the login flow please", got.Tasks[0].Name)
	require.Equal(t, "prompt", got.Tasks[0].InferredFrom)
	require.Equal(t, 1, got.Summary.TotalTasks)
}

func TestServiceHistory(t *testing.T) {
	svc, _ := testService(t)

	days, err := svc.History(false)
	require.NoError(t, err)
	require.Len(t, days, 1)
	require.Len(t, days[0].Sessions, 1)
	require.Equal(t, "Debugging", days[0].Sessions[0].Topic)
}
