// Package claude reads and models Claude Code's local data files: the
// per-project JSONL session transcripts, the aggregate usage stats file,
// and the prompt history.
package claude

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Record is one parsed transcript line, with the message content union
// (bare string vs. array of typed blocks) already resolved.
type Record struct {
	// Type is the top-level record type: "user", "assistant", or other.
	Type string

	// Role is the message role when present ("user" or "assistant").
	Role string

	// Model is the model identifier on assistant messages, if any.
	Model string

	// Timestamp is the parsed record timestamp; zero if absent or invalid.
	Timestamp time.Time

	// SessionID is the session identifier embedded in the record.
	SessionID string

	// Text is the textual content: the bare string content, or all
	// text-typed blocks joined with newlines.
	Text string

	// ToolUses holds every tool-invocation block in content order.
	ToolUses []ToolUse
}

// IsUser reports whether the record is a user message.
func (r *Record) IsUser() bool {
	return r.Type == "user" || r.Role == "user"
}

// IsAssistant reports whether the record is an assistant message.
func (r *Record) IsAssistant() bool {
	return r.Type == "assistant" || r.Role == "assistant"
}

// ToolUse is a single tool-invocation content block.
type ToolUse struct {
	ID    string
	Name  string
	Input ToolInput
}

// ToolInput holds the union of input fields across the tools we extract
// operations from. Fields not set by a given tool are empty.
type ToolInput struct {
	FilePath    string `json:"file_path"`
	Content     string `json:"content"`
	OldString   string `json:"old_string"`
	NewString   string `json:"new_string"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Pattern     string `json:"pattern"`
}

// rawRecord is the wire shape of a transcript line.
type rawRecord struct {
	Type      string          `json:"type"`
	Timestamp string          `json:"timestamp"`
	SessionID string          `json:"sessionId"`
	Message   json.RawMessage `json:"message"`
}

// rawMessage is the nested message object of a transcript line.
type rawMessage struct {
	Role    string          `json:"role"`
	Model   string          `json:"model"`
	Content json.RawMessage `json:"content"`
}

// contentBlock is one element of an array-shaped message content.
type contentBlock struct {
	Type  string          `json:"type"`
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Text  string          `json:"text"`
	Input json.RawMessage `json:"input"`
}

// StatsFile is the aggregate usage-statistics file maintained by Claude
// Code itself (statsCache.json). The core only reads it.
type StatsFile struct {
	Version          int                   `json:"version"`
	TotalSessions    int                   `json:"totalSessions"`
	TotalMessages    int                   `json:"totalMessages"`
	ModelUsage       map[string]ModelUsage `json:"modelUsage"`
	DailyActivity    []DailyActivity       `json:"dailyActivity"`
	DailyModelTokens []DailyModelTokens    `json:"dailyModelTokens"`
	FirstSessionDate string                `json:"firstSessionDate"`
}

// ModelUsage is the per-model token tally in the stats file.
type ModelUsage struct {
	InputTokens              int64 `json:"inputTokens"`
	OutputTokens             int64 `json:"outputTokens"`
	CacheReadInputTokens     int64 `json:"cacheReadInputTokens"`
	CacheCreationInputTokens int64 `json:"cacheCreationInputTokens"`
}

// DailyActivity is a single day's message and session counts.
type DailyActivity struct {
	Date         string `json:"date"`
	MessageCount int    `json:"messageCount"`
	SessionCount int    `json:"sessionCount"`
}

// DailyModelTokens is a single day's token usage broken down by model.
type DailyModelTokens struct {
	Date          string           `json:"date"`
	TokensByModel map[string]int64 `json:"tokensByModel"`
}

// HistoryEntry is one line of the prompt history file (history.jsonl).
type HistoryEntry struct {
	Display   string    `json:"display"`
	Project   string    `json:"project"`
	SessionID string    `json:"sessionId"`
	Timestamp FlexiTime `json:"timestamp"`
}

// FlexiTime parses a timestamp that is either a Unix-milliseconds number
// or an ISO-8601 string, both of which occur in history files.
type FlexiTime struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (ft *FlexiTime) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		ft.Time = time.Time{}
		return nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		ft.Time = time.UnixMilli(ms)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		ft.Time = ParseTimestamp(str)
		return nil
	}
	ft.Time = time.Time{}
	return nil
}

// ProjectDir is a discovered project directory under <home>/projects/.
type ProjectDir struct {
	// Key is the encoded directory name, e.g. "-Users-me-src-app".
	Key string

	// Path is the decoded filesystem path, e.g. "/Users/me/src/app".
	Path string

	// Dir is the absolute path of the directory itself.
	Dir string
}

// Name returns the project display name: the last decoded path segment.
func (p ProjectDir) Name() string {
	segs := strings.Split(strings.TrimSuffix(p.Path, "/"), "/")
	if len(segs) == 0 || segs[len(segs)-1] == "" {
		return "Unknown"
	}
	return segs[len(segs)-1]
}

// SessionFile is a session transcript file within a project directory.
type SessionFile struct {
	// ID is the filename without the .jsonl extension.
	ID string

	// Path is the absolute file path.
	Path string

	// ModTime is the file's last-modified time.
	ModTime time.Time
}
