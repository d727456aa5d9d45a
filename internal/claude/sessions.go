package claude

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// OpKind identifies the kind of a normalized assistant operation.
type OpKind string

// The six operation kinds extracted from transcripts.
const (
	OpWrite OpKind = "write"
	OpEdit  OpKind = "edit"
	OpRead  OpKind = "read"
	OpShell OpKind = "shell"
	OpGlob  OpKind = "glob"
	OpGrep  OpKind = "grep"
)

// toolKinds maps tool names, exact-match and case-sensitive, to operation
// kinds. Unrecognized tool names produce no operation: new tools are
// silently ignored rather than treated as errors.
var toolKinds = map[string]OpKind{
	"Write": OpWrite,
	"Edit":  OpEdit,
	"Read":  OpRead,
	"Bash":  OpShell,
	"Glob":  OpGlob,
	"Grep":  OpGrep,
}

// Operation is a normalized unit of assistant action. Which optional
// fields are set depends on Kind.
type Operation struct {
	Kind        OpKind    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	FilePath    string    `json:"filePath,omitempty"`
	Content     string    `json:"content,omitempty"`
	OldText     string    `json:"oldString,omitempty"`
	NewText     string    `json:"newString,omitempty"`
	Language    string    `json:"language,omitempty"`
	Command     string    `json:"command,omitempty"`
	Description string    `json:"description,omitempty"`
	Pattern     string    `json:"pattern,omitempty"`
}

// IsCode reports whether the operation writes or edits a file.
func (op Operation) IsCode() bool {
	return op.Kind == OpWrite || op.Kind == OpEdit
}

// FileName returns the base name of the operation's file path, or "".
func (op Operation) FileName() string {
	if op.FilePath == "" {
		return ""
	}
	return filepath.Base(op.FilePath)
}

// Message is a user or assistant message with non-empty textual content.
type Message struct {
	Role      string    `json:"role"`
	Text      string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Model     string    `json:"model,omitempty"`
}

// TopicGroup is a within-session slice of work: one user prompt and the
// assistant operations that followed it, up to the next prompt.
type TopicGroup struct {
	Topic          string   `json:"topic"`
	OperationCount int      `json:"operationCount"`
	Files          []string `json:"filesInvolved"`
}

// Session is the normalized model of one transcript file.
type Session struct {
	ID          string
	ProjectKey  string
	ProjectPath string

	// Date is the local calendar day of the first timestamped record;
	// empty when no record carries a timestamp.
	Date string

	StartTime time.Time
	EndTime   time.Time

	Operations  []Operation
	Messages    []Message
	TopicGroups []TopicGroup
}

// Duration returns EndTime - StartTime, or zero when either is missing.
func (s *Session) Duration() time.Duration {
	if s.StartTime.IsZero() || s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// CodeOpCount returns the number of write and edit operations.
func (s *Session) CodeOpCount() int {
	n := 0
	for _, op := range s.Operations {
		if op.IsCode() {
			n++
		}
	}
	return n
}

// ExtractOperations converts tool-invocation blocks of assistant records
// into typed operations, preserving record order. No re-sorting happens
// here: transcripts are assumed chronological.
func ExtractOperations(records []Record) []Operation {
	var ops []Operation
	for i := range records {
		rec := &records[i]
		if !rec.IsAssistant() {
			continue
		}
		for _, tu := range rec.ToolUses {
			op, ok := operationFor(tu, rec.Timestamp)
			if !ok {
				continue
			}
			ops = append(ops, op)
		}
	}
	return ops
}

// operationFor maps a single tool use to an operation.
func operationFor(tu ToolUse, ts time.Time) (Operation, bool) {
	kind, ok := toolKinds[tu.Name]
	if !ok {
		return Operation{}, false
	}

	op := Operation{Kind: kind, Timestamp: ts}
	switch kind {
	case OpWrite:
		op.FilePath = tu.Input.FilePath
		op.Content = tu.Input.Content
		op.Language = LanguageForPath(tu.Input.FilePath)
	case OpEdit:
		op.FilePath = tu.Input.FilePath
		op.OldText = tu.Input.OldString
		op.NewText = tu.Input.NewString
		op.Language = LanguageForPath(tu.Input.FilePath)
	case OpRead:
		op.FilePath = tu.Input.FilePath
	case OpShell:
		op.Command = tu.Input.Command
		op.Description = tu.Input.Description
	case OpGlob, OpGrep:
		op.Pattern = tu.Input.Pattern
	}
	return op, true
}

// topicSnippetLen bounds the prompt excerpt used as a topic-group label.
const topicSnippetLen = 60

// BuildSession aggregates the records of one transcript file into a
// Session. Topic groups partition the stream at user-message boundaries:
// each prompt opens a group, every assistant operation up to the next
// prompt belongs to it, and the final group is flushed at end of file.
func BuildSession(file SessionFile, projectKey string, records []Record) Session {
	s := Session{
		ID:          file.ID,
		ProjectKey:  projectKey,
		ProjectPath: DecodeProjectPath(projectKey),
	}

	var group *TopicGroup
	groupFiles := map[string]bool{}

	flush := func() {
		if group != nil && group.OperationCount > 0 {
			for f := range groupFiles {
				group.Files = append(group.Files, f)
			}
			sort.Strings(group.Files)
			s.TopicGroups = append(s.TopicGroups, *group)
		}
		group = nil
		groupFiles = map[string]bool{}
	}

	for i := range records {
		rec := &records[i]

		if !rec.Timestamp.IsZero() {
			if s.StartTime.IsZero() || rec.Timestamp.Before(s.StartTime) {
				s.StartTime = rec.Timestamp
			}
			if s.EndTime.IsZero() || rec.Timestamp.After(s.EndTime) {
				s.EndTime = rec.Timestamp
			}
		}

		switch {
		case rec.IsUser():
			flush()
			group = &TopicGroup{Topic: topicLabel(rec.Text, s.ID)}
			if rec.Text != "" {
				s.Messages = append(s.Messages, Message{
					Role: "user", Text: rec.Text, Timestamp: rec.Timestamp,
				})
			}

		case rec.IsAssistant():
			if rec.Text != "" {
				s.Messages = append(s.Messages, Message{
					Role: "assistant", Text: rec.Text,
					Timestamp: rec.Timestamp, Model: rec.Model,
				})
			}
			for _, tu := range rec.ToolUses {
				op, ok := operationFor(tu, rec.Timestamp)
				if !ok {
					continue
				}
				s.Operations = append(s.Operations, op)
				if group == nil {
					// Operations before any prompt still form a group.
					group = &TopicGroup{Topic: topicLabel("", s.ID)}
				}
				group.OperationCount++
				if name := op.FileName(); name != "" && op.IsCode() {
					groupFiles[name] = true
				}
			}
		}
	}
	flush()

	s.Date = DayOf(s.StartTime)
	return s
}

// topicLabel derives a group label from the opening prompt's first line,
// falling back to a session-derived placeholder for promptless groups.
func topicLabel(prompt, sessionID string) string {
	line := prompt
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		short := sessionID
		if len(short) > 8 {
			short = short[:8]
		}
		return fmt.Sprintf("Session %s", short)
	}
	if len(line) > topicSnippetLen {
		line = line[:topicSnippetLen]
	}
	return line
}

// LoadSessions rebuilds every session under the log root, fresh on each
// call. Per-file read failures drop only that file's contribution; only a
// failure to enumerate the projects root itself is returned as an error.
func LoadSessions(home string) ([]Session, error) {
	projects, err := ListProjects(home)
	if err != nil {
		return nil, err
	}

	var sessions []Session
	for _, proj := range projects {
		files, err := ListSessionFiles(proj.Dir)
		if err != nil {
			continue
		}
		for _, file := range files {
			records, err := ReadRecords(file.Path)
			if err != nil {
				continue
			}
			sessions = append(sessions, BuildSession(file, proj.Key, records))
		}
	}
	return sessions, nil
}
