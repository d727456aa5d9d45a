package analyzer

import (
	"time"

	"github.com/prabinb19/ClaudeBuddy/internal/claude"
)

// localTime builds a timestamp in the local zone so calendar-day logic
// is deterministic regardless of where tests run.
func localTime(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.Local)
}

// testSession builds a session whose times and date derive from start.
func testSession(id string, start time.Time, dur time.Duration, ops ...claude.Operation) claude.Session {
	return claude.Session{
		ID:         id,
		Date:       claude.DayOf(start),
		StartTime:  start,
		EndTime:    start.Add(dur),
		Operations: ops,
	}
}

func writeOp(ts time.Time, path, content string) claude.Operation {
	return claude.Operation{Kind: claude.OpWrite, Timestamp: ts, FilePath: path, Content: content}
}

func editOp(ts time.Time, path, oldText, newText string) claude.Operation {
	return claude.Operation{Kind: claude.OpEdit, Timestamp: ts, FilePath: path, OldText: oldText, NewText: newText}
}

func readOp(ts time.Time, path string) claude.Operation {
	return claude.Operation{Kind: claude.OpRead, Timestamp: ts, FilePath: path}
}

func shellOp(ts time.Time, command string) claude.Operation {
	return claude.Operation{Kind: claude.OpShell, Timestamp: ts, Command: command}
}

// repeatEdits produces n edits of the same file one minute apart.
func repeatEdits(start time.Time, path string, n int) []claude.Operation {
	ops := make([]claude.Operation, 0, n)
	for i := 0; i < n; i++ {
		ops = append(ops, editOp(start.Add(time.Duration(i)*time.Minute), path, "a", "b"))
	}
	return ops
}
