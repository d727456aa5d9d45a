package claude

import (
	"testing"
	"time"
)

func userRecord(ts time.Time, text string) Record {
	return Record{Type: "user", Role: "user", Timestamp: ts, Text: text}
}

func assistantRecord(ts time.Time, tools ...ToolUse) Record {
	return Record{Type: "assistant", Role: "assistant", Timestamp: ts, ToolUses: tools}
}

func writeTool(path, content string) ToolUse {
	return ToolUse{Name: "Write", Input: ToolInput{FilePath: path, Content: content}}
}

func editTool(path, oldText, newText string) ToolUse {
	return ToolUse{Name: "Edit", Input: ToolInput{FilePath: path, OldString: oldText, NewString: newText}}
}

func TestExtractOperations_KindMapping(t *testing.T) {
	ts := time.Date(2026, 1, 15, 12, 0, 0, 0, time.Local)
	rec := assistantRecord(ts,
		ToolUse{Name: "Write", Input: ToolInput{FilePath: "/app/main.go", Content: "package main\n"}},
		ToolUse{Name: "Edit", Input: ToolInput{FilePath: "/app/main.go", OldString: "a", NewString: "b"}},
		ToolUse{Name: "Read", Input: ToolInput{FilePath: "/app/main.go"}},
		ToolUse{Name: "Bash", Input: ToolInput{Command: "go test ./...", Description: "Run tests"}},
		ToolUse{Name: "Glob", Input: ToolInput{Pattern: "**/*.go"}},
		ToolUse{Name: "Grep", Input: ToolInput{Pattern: "func main"}},
		ToolUse{Name: "WebSearch", Input: ToolInput{}},
	)

	ops := ExtractOperations([]Record{rec})
	if len(ops) != 6 {
		t.Fatalf("expected 6 operations, got %d", len(ops))
	}

	wantKinds := []OpKind{OpWrite, OpEdit, OpRead, OpShell, OpGlob, OpGrep}
	for i, want := range wantKinds {
		if ops[i].Kind != want {
			t.Errorf("ops[%d].Kind = %q, want %q", i, ops[i].Kind, want)
		}
	}
	if ops[0].Language != "go" {
		t.Errorf("write Language = %q, want go", ops[0].Language)
	}
	if ops[3].Command != "go test ./..." {
		t.Errorf("shell Command = %q", ops[3].Command)
	}
	if ops[4].Pattern != "**/*.go" {
		t.Errorf("glob Pattern = %q", ops[4].Pattern)
	}
}

func TestExtractOperations_LowercaseNamesIgnored(t *testing.T) {
	ts := time.Date(2026, 1, 15, 12, 0, 0, 0, time.Local)
	rec := assistantRecord(ts,
		ToolUse{Name: "write", Input: ToolInput{FilePath: "/x"}},
		ToolUse{Name: "BASH", Input: ToolInput{Command: "ls"}},
	)
	if ops := ExtractOperations([]Record{rec}); len(ops) != 0 {
		t.Errorf("expected 0 operations for non-canonical names, got %d", len(ops))
	}
}

func TestExtractOperations_UserToolUsesIgnored(t *testing.T) {
	ts := time.Date(2026, 1, 15, 12, 0, 0, 0, time.Local)
	rec := userRecord(ts, "hello")
	rec.ToolUses = []ToolUse{writeTool("/x", "y")}
	if ops := ExtractOperations([]Record{rec}); len(ops) != 0 {
		t.Errorf("expected no operations from user records, got %d", len(ops))
	}
}

func TestBuildSession_TimesAndDate(t *testing.T) {
	start := time.Date(2026, 1, 15, 9, 0, 0, 0, time.Local)
	end := start.Add(45 * time.Minute)
	records := []Record{
		userRecord(start, "add a health endpoint"),
		assistantRecord(start.Add(time.Minute), writeTool("/app/health.go", "package app\n")),
		assistantRecord(end),
	}

	s := BuildSession(SessionFile{ID: "sess-1"}, "-app", records)
	if !s.StartTime.Equal(start) {
		t.Errorf("StartTime = %v, want %v", s.StartTime, start)
	}
	if !s.EndTime.Equal(end) {
		t.Errorf("EndTime = %v, want %v", s.EndTime, end)
	}
	if s.Duration() != 45*time.Minute {
		t.Errorf("Duration = %v, want 45m", s.Duration())
	}
	if s.Date != "2026-01-15" {
		t.Errorf("Date = %q, want 2026-01-15", s.Date)
	}
}

func TestBuildSession_TopicGroups(t *testing.T) {
	ts := time.Date(2026, 1, 15, 12, 0, 0, 0, time.Local)
	records := []Record{
		userRecord(ts, "fix the parser\nextra detail here"),
		assistantRecord(ts.Add(time.Minute), editTool("/app/parser.go", "a", "b")),
		assistantRecord(ts.Add(2*time.Minute), editTool("/app/lexer.go", "c", "d")),
		userRecord(ts.Add(3*time.Minute), "now add tests"),
		assistantRecord(ts.Add(4*time.Minute), writeTool("/app/parser_test.go", "package app\n")),
		// Prompt with no operations after it: no group emitted.
		userRecord(ts.Add(5*time.Minute), "thanks"),
	}

	s := BuildSession(SessionFile{ID: "sess-2"}, "-app", records)
	if len(s.TopicGroups) != 2 {
		t.Fatalf("expected 2 topic groups, got %d", len(s.TopicGroups))
	}

	g := s.TopicGroups[0]
	if g.Topic != "fix the parser" {
		t.Errorf("Topic = %q, want first prompt line", g.Topic)
	}
	if g.OperationCount != 2 {
		t.Errorf("OperationCount = %d, want 2", g.OperationCount)
	}
	if len(g.Files) != 2 || g.Files[0] != "lexer.go" || g.Files[1] != "parser.go" {
		t.Errorf("Files = %v, want sorted [lexer.go parser.go]", g.Files)
	}

	if s.TopicGroups[1].Topic != "now add tests" {
		t.Errorf("second Topic = %q", s.TopicGroups[1].Topic)
	}
}

func TestBuildSession_OpsBeforeFirstPrompt(t *testing.T) {
	ts := time.Date(2026, 1, 15, 12, 0, 0, 0, time.Local)
	records := []Record{
		assistantRecord(ts, writeTool("/app/a.go", "x")),
	}

	s := BuildSession(SessionFile{ID: "abcdefgh1234"}, "-app", records)
	if len(s.TopicGroups) != 1 {
		t.Fatalf("expected 1 topic group, got %d", len(s.TopicGroups))
	}
	if s.TopicGroups[0].Topic != "Session abcdefgh" {
		t.Errorf("Topic = %q, want placeholder", s.TopicGroups[0].Topic)
	}
}

func TestBuildSession_Messages(t *testing.T) {
	ts := time.Date(2026, 1, 15, 12, 0, 0, 0, time.Local)
	records := []Record{
		userRecord(ts, "question"),
		{Type: "assistant", Role: "assistant", Timestamp: ts.Add(time.Second), Text: "answer", Model: "claude-sonnet-4-20250514"},
		userRecord(ts.Add(2*time.Second), ""), // empty text, not a message
	}

	s := BuildSession(SessionFile{ID: "sess-3"}, "-app", records)
	if len(s.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(s.Messages))
	}
	if s.Messages[0].Role != "user" || s.Messages[1].Role != "assistant" {
		t.Errorf("roles = %q, %q", s.Messages[0].Role, s.Messages[1].Role)
	}
	if s.Messages[1].Model != "claude-sonnet-4-20250514" {
		t.Errorf("Model = %q", s.Messages[1].Model)
	}
}

func TestTopicLabel_Truncation(t *testing.T) {
	long := "this prompt line is quite long and definitely exceeds the sixty character budget"
	got := topicLabel(long, "sess")
	if len(got) != topicSnippetLen {
		t.Errorf("len = %d, want %d", len(got), topicSnippetLen)
	}
}
