package claude

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"time"
)

// maxLineBytes bounds a single transcript line. Write-tool invocations can
// carry whole files, so lines run far past the bufio default.
const maxLineBytes = 10 * 1024 * 1024

// ReadRecords parses a JSONL transcript file into records. Malformed lines
// are skipped: one corrupted line must never abort the rest of the file.
// A missing file yields an empty slice and a nil error; any other open
// failure is returned so the caller can drop that file's contribution.
func ReadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var records []Record

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		rec, ok := parseRecord(line)
		if !ok {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		// Records parsed before the failure still count.
		return records, err
	}
	return records, nil
}

// parseRecord decodes one transcript line, resolving the content union
// (bare string vs. array of blocks) into text plus tool uses.
func parseRecord(line []byte) (Record, bool) {
	var raw rawRecord
	if err := json.Unmarshal(line, &raw); err != nil {
		return Record{}, false
	}

	rec := Record{
		Type:      raw.Type,
		Timestamp: ParseTimestamp(raw.Timestamp),
		SessionID: raw.SessionID,
	}

	if len(raw.Message) == 0 {
		return rec, true
	}

	var msg rawMessage
	if err := json.Unmarshal(raw.Message, &msg); err != nil {
		return rec, true
	}
	rec.Role = msg.Role
	rec.Model = msg.Model
	rec.Text, rec.ToolUses = parseContent(msg.Content)
	return rec, true
}

// parseContent resolves message content. A bare string is the entire text.
// For block arrays, text-typed blocks are joined with newlines and
// tool_use blocks are collected; every other block type is ignored.
func parseContent(content json.RawMessage) (string, []ToolUse) {
	if len(content) == 0 {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(content, &s); err == nil {
		return s, nil
	}

	var blocks []contentBlock
	if err := json.Unmarshal(content, &blocks); err != nil {
		return "", nil
	}

	var texts []string
	var tools []ToolUse
	for _, b := range blocks {
		switch b.Type {
		case "text":
			texts = append(texts, b.Text)
		case "tool_use":
			tu := ToolUse{ID: b.ID, Name: b.Name}
			if len(b.Input) > 0 {
				// Input shape varies by tool; unknown fields are dropped.
				_ = json.Unmarshal(b.Input, &tu.Input)
			}
			tools = append(tools, tu)
		}
	}
	return strings.Join(texts, "\n"), tools
}

// ParseTimestamp parses an ISO-8601 timestamp. It tries RFC3339Nano,
// RFC3339, and a plain datetime without timezone. Returns the zero time
// for empty or unparseable input.
func ParseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			t, err = time.Parse("2006-01-02T15:04:05", s)
			if err != nil {
				return time.Time{}
			}
		}
	}
	return t
}

// DayOf formats a timestamp as its local calendar day (YYYY-MM-DD).
// Returns "" for the zero time.
func DayOf(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02")
}
