package analyzer

import (
	"testing"
	"time"

	"github.com/prabinb19/ClaudeBuddy/internal/claude"
)

func TestDetectErrorPatterns_StruggleSeverity(t *testing.T) {
	now := localTime(2026, 2, 10, 10, 0)

	tests := []struct {
		edits        int
		wantDetected bool
		wantSeverity string
	}{
		{4, false, ""},
		{5, true, "low"},
		{6, true, "low"},
		{7, true, "medium"},
		{9, true, "medium"},
		{10, true, "high"},
		{15, true, "high"},
	}

	for _, tc := range tests {
		s := testSession("s", now, time.Hour, repeatEdits(now, "/app/tricky.go", tc.edits)...)
		p := DetectErrorPatterns([]claude.Session{s})

		if !tc.wantDetected {
			if len(p.StruggleFiles) != 0 {
				t.Errorf("%d edits: expected no struggle file", tc.edits)
			}
			continue
		}
		if len(p.StruggleFiles) != 1 {
			t.Fatalf("%d edits: expected 1 struggle file, got %d", tc.edits, len(p.StruggleFiles))
		}
		sf := p.StruggleFiles[0]
		if sf.Severity != tc.wantSeverity {
			t.Errorf("%d edits: Severity = %q, want %q", tc.edits, sf.Severity, tc.wantSeverity)
		}
		if sf.FileName != "tricky.go" || sf.EditCount != tc.edits {
			t.Errorf("struggle file = %+v", sf)
		}
	}
}

func TestDetectErrorPatterns_StruggleIsPerSession(t *testing.T) {
	now := localTime(2026, 2, 10, 10, 0)
	// Three edits in each of two sessions: never crosses the threshold.
	a := testSession("a", now, time.Hour, repeatEdits(now, "/app/x.go", 3)...)
	b := testSession("b", now.Add(2*time.Hour), time.Hour, repeatEdits(now.Add(2*time.Hour), "/app/x.go", 3)...)

	p := DetectErrorPatterns([]claude.Session{a, b})
	if len(p.StruggleFiles) != 0 {
		t.Errorf("expected no struggle files across sessions, got %d", len(p.StruggleFiles))
	}
}

func TestDetectErrorPatterns_RepeatedCommands(t *testing.T) {
	now := localTime(2026, 2, 10, 10, 0)
	s := testSession("s", now, time.Hour,
		shellOp(now, "go test ./..."),
		shellOp(now.Add(time.Minute), "go build ./..."),
		shellOp(now.Add(2*time.Minute), "go vet ./..."),
		// A non-shell op between runs does not break the run.
		readOp(now.Add(3*time.Minute), "/app/x.go"),
		shellOp(now.Add(4*time.Minute), "go test -run TestX"),
		shellOp(now.Add(5*time.Minute), "npm install"),
	)

	p := DetectErrorPatterns([]claude.Session{s})
	if len(p.RepeatedCommands) != 1 {
		t.Fatalf("expected 1 repeated command, got %d", len(p.RepeatedCommands))
	}
	rc := p.RepeatedCommands[0]
	if rc.Command != "go" || rc.Occurrences != 4 {
		t.Errorf("repeated command = %+v", rc)
	}
	if rc.Note != "Ran 4 times in succession" {
		t.Errorf("Note = %q", rc.Note)
	}
}

func TestDetectErrorPatterns_RepeatedCommandsBelowThreshold(t *testing.T) {
	now := localTime(2026, 2, 10, 10, 0)
	s := testSession("s", now, time.Hour,
		shellOp(now, "go test"),
		shellOp(now.Add(time.Minute), "go build"),
		shellOp(now.Add(2*time.Minute), "npm install"),
	)

	p := DetectErrorPatterns([]claude.Session{s})
	if len(p.RepeatedCommands) != 0 {
		t.Errorf("expected no repeated commands, got %+v", p.RepeatedCommands)
	}
}

func TestDetectErrorPatterns_ErrorMentions(t *testing.T) {
	now := localTime(2026, 2, 10, 10, 0)
	s := testSession("s", now, time.Hour)
	s.Messages = []claude.Message{
		{Role: "user", Text: "there is an Error in the build"},
		{Role: "user", Text: "still broken after the change"},
		{Role: "user", Text: "another error showed up"},
		{Role: "assistant", Text: "error messages from me don't count"},
	}

	p := DetectErrorPatterns([]claude.Session{s})
	byKeyword := map[string]ErrorMention{}
	for _, m := range p.ErrorMentions {
		byKeyword[m.Keyword] = m
	}

	if byKeyword["error"].Count != 2 {
		t.Errorf("error count = %d, want 2", byKeyword["error"].Count)
	}
	if byKeyword["broken"].Count != 1 {
		t.Errorf("broken count = %d, want 1", byKeyword["broken"].Count)
	}
	if len(byKeyword["error"].Samples) != 2 {
		t.Errorf("samples = %v", byKeyword["error"].Samples)
	}
	if p.ErrorMentions[0].Keyword != "error" {
		t.Errorf("expected highest-count keyword first, got %q", p.ErrorMentions[0].Keyword)
	}
}

func TestDetectErrorPatterns_Thrashing(t *testing.T) {
	now := localTime(2026, 2, 10, 10, 0)

	// 20 code ops over 2 files in 20 minutes: thrashing.
	var ops []claude.Operation
	ops = append(ops, repeatEdits(now, "/app/a.go", 10)...)
	ops = append(ops, repeatEdits(now.Add(10*time.Minute), "/app/b.go", 10)...)
	thrash := testSession("thrash", now, 20*time.Minute, ops...)

	// Same ops but over a full hour: focused work, not thrashing.
	calm := testSession("calm", now.Add(2*time.Hour), time.Hour, ops...)

	p := DetectErrorPatterns([]claude.Session{thrash, calm})
	if len(p.ThrashingSessions) != 1 {
		t.Fatalf("expected 1 thrashing session, got %d", len(p.ThrashingSessions))
	}
	ts := p.ThrashingSessions[0]
	if ts.SessionID != "thrash" {
		t.Errorf("SessionID = %q", ts.SessionID)
	}
	if ts.OperationCount != 20 || ts.UniqueFileCount != 2 {
		t.Errorf("thrashing = %+v", ts)
	}
	if len(ts.Files) != 2 || ts.Files[0] != "a.go" {
		t.Errorf("Files = %v", ts.Files)
	}
}

func TestDetectErrorPatterns_EndToEnd(t *testing.T) {
	now := localTime(2026, 2, 10, 10, 0)

	var ops []claude.Operation
	ops = append(ops, repeatEdits(now, "/app/flaky.go", 8)...)
	for i := 0; i < 3; i++ {
		ops = append(ops, shellOp(now.Add(time.Duration(8+i)*time.Minute), "go test ./..."))
	}
	s := testSession("e2e", now, 25*time.Minute, ops...)
	s.Messages = []claude.Message{
		{Role: "user", Text: "the test keeps failing, fix it"},
	}

	p := DetectErrorPatterns([]claude.Session{s})
	if len(p.StruggleFiles) != 1 || p.StruggleFiles[0].Severity != "medium" {
		t.Errorf("StruggleFiles = %+v", p.StruggleFiles)
	}
	if len(p.RepeatedCommands) != 1 || p.RepeatedCommands[0].Occurrences != 3 {
		t.Errorf("RepeatedCommands = %+v", p.RepeatedCommands)
	}
	if len(p.ErrorMentions) == 0 {
		t.Error("expected error mentions")
	}
}
