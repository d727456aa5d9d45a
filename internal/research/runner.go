package research

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// StubRunner stands in for the external research automation. It walks
// the task through the standard phases and writes a placeholder notes
// file into the target project, so the full start/stream/cancel flow is
// exercisable without the real agent.
type StubRunner struct {
	// StepDelay paces the phases; tests set it to zero.
	StepDelay time.Duration
}

// Run implements Runner.
func (r *StubRunner) Run(ctx context.Context, req Request, report func(Progress)) error {
	phases := []string{"searching", "analyzing", "writing"}
	for i, phase := range phases {
		if err := sleepCtx(ctx, r.StepDelay); err != nil {
			return err
		}
		report(Progress{
			Phase:         phase,
			SearchCount:   i + 1,
			FindingsCount: i,
		})
	}

	if err := sleepCtx(ctx, r.StepDelay); err != nil {
		return err
	}

	path, err := r.save(req)
	if err != nil {
		return err
	}
	report(Progress{Phase: "writing", SavedPath: path})
	return nil
}

func (r *StubRunner) save(req Request) (string, error) {
	if req.TargetProject == "" {
		return "", nil
	}
	dir := filepath.Join(req.TargetProject, "research")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create research dir: %w", err)
	}

	name := fmt.Sprintf("research-%s.md", time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	body := strings.Join([]string{
		"# Research notes",
		"",
		"Query: " + req.Query,
		"",
		"_No research agent is configured; this is a placeholder._",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return "", fmt.Errorf("write research notes: %w", err)
	}
	return path, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
