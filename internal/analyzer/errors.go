package analyzer

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/prabinb19/ClaudeBuddy/internal/claude"
)

// Struggle-file thresholds: edits to the same file within one session.
const (
	struggleMinEdits    = 5
	struggleMediumEdits = 7
	struggleHighEdits   = 10
)

// Thrashing thresholds: many code operations over very few files in a
// short session usually means going in circles.
const (
	thrashMinOps     = 20
	thrashMaxFiles   = 3
	thrashMaxMinutes = 30
)

const repeatedCommandMinRun = 3

// errorKeywords are matched case-insensitively against user prompts.
var errorKeywords = []string{
	"error", "not working", "failing", "broken", "bug",
	"crash", "fix", "issue", "problem", "wrong",
}

// DetectErrorPatterns scans sessions for signals of friction: files
// edited repeatedly within one session, commands re-run in succession,
// error language in prompts, and thrashing sessions.
func DetectErrorPatterns(sessions []claude.Session) ErrorPatterns {
	p := ErrorPatterns{}
	p.StruggleFiles = struggleFiles(sessions)
	p.RepeatedCommands = repeatedCommands(sessions)
	p.ErrorMentions = errorMentions(sessions)
	p.ThrashingSessions = thrashingSessions(sessions)
	return p
}

func struggleFiles(sessions []claude.Session) []StruggleFile {
	var out []StruggleFile
	for _, s := range sessions {
		edits := map[string]int{}
		paths := map[string]string{}
		for _, op := range s.Operations {
			if op.Kind != claude.OpEdit {
				continue
			}
			name := op.FileName()
			if name == "" {
				continue
			}
			edits[name]++
			paths[name] = op.FilePath
		}
		for name, count := range edits {
			if count < struggleMinEdits {
				continue
			}
			out = append(out, StruggleFile{
				FileName:  name,
				FilePath:  paths[name],
				EditCount: count,
				Severity:  struggleSeverity(count),
				Date:      s.Date,
				SessionID: s.ID,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EditCount > out[j].EditCount
	})
	if len(out) > 20 {
		out = out[:20]
	}
	return out
}

func struggleSeverity(editCount int) string {
	switch {
	case editCount >= struggleHighEdits:
		return "high"
	case editCount >= struggleMediumEdits:
		return "medium"
	default:
		return "low"
	}
}

// repeatedCommands finds consecutive shell operations sharing the same
// leading token. Three or more in a row is worth surfacing.
func repeatedCommands(sessions []claude.Session) []RepeatedCommand {
	var out []RepeatedCommand
	for _, s := range sessions {
		var prev string
		run := 0
		flush := func() {
			if run >= repeatedCommandMinRun {
				out = append(out, RepeatedCommand{
					Command:     prev,
					Occurrences: run,
					Note:        fmt.Sprintf("Ran %d times in succession", run),
					Date:        s.Date,
				})
			}
		}
		for _, op := range s.Operations {
			if op.Kind != claude.OpShell {
				continue
			}
			head := commandHead(op.Command)
			if head == "" {
				continue
			}
			if head == prev {
				run++
				continue
			}
			flush()
			prev, run = head, 1
		}
		flush()
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Occurrences > out[j].Occurrences
	})
	if len(out) > 10 {
		out = out[:10]
	}
	return out
}

// commandHead returns the first whitespace-delimited token of a command.
func commandHead(command string) string {
	command = strings.TrimSpace(command)
	if i := strings.IndexByte(command, ' '); i >= 0 {
		return command[:i]
	}
	return command
}

func errorMentions(sessions []claude.Session) []ErrorMention {
	counts := map[string]int{}
	samples := map[string][]string{}
	for _, s := range sessions {
		for _, msg := range s.Messages {
			if msg.Role != "user" {
				continue
			}
			lower := strings.ToLower(msg.Text)
			for _, kw := range errorKeywords {
				if !strings.Contains(lower, kw) {
					continue
				}
				counts[kw]++
				if len(samples[kw]) < 3 {
					samples[kw] = append(samples[kw], snippet(msg.Text, 80))
				}
			}
		}
	}

	out := make([]ErrorMention, 0, len(counts))
	for _, kw := range errorKeywords {
		if counts[kw] == 0 {
			continue
		}
		out = append(out, ErrorMention{Keyword: kw, Count: counts[kw], Samples: samples[kw]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > 8 {
		out = out[:8]
	}
	return out
}

func thrashingSessions(sessions []claude.Session) []ThrashingSession {
	var out []ThrashingSession
	for _, s := range sessions {
		codeOps := 0
		files := map[string]bool{}
		for _, op := range s.Operations {
			if !op.IsCode() {
				continue
			}
			codeOps++
			if op.FilePath != "" {
				files[op.FilePath] = true
			}
		}
		minutes := int(s.Duration().Minutes())
		if codeOps < thrashMinOps || len(files) > thrashMaxFiles || minutes >= thrashMaxMinutes {
			continue
		}

		names := make([]string, 0, len(files))
		for path := range files {
			names = append(names, filepath.Base(path))
		}
		sort.Strings(names)

		out = append(out, ThrashingSession{
			SessionID:       s.ID,
			OperationCount:  codeOps,
			UniqueFileCount: len(files),
			DurationMinutes: minutes,
			Date:            s.Date,
			Files:           names,
		})
		if len(out) == 10 {
			break
		}
	}
	return out
}

// snippet truncates text to at most n runes on a single line.
func snippet(text string, n int) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	runes := []rune(text)
	if len(runes) > n {
		return string(runes[:n]) + "..."
	}
	return text
}
