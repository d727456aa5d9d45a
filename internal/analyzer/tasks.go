package analyzer

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/prabinb19/ClaudeBuddy/internal/claude"
)

// Similarity scoring weights for session clustering. Two sessions join
// the same task when their combined score reaches taskScoreThreshold.
const (
	taskScoreThreshold  = 50.0
	taskFileWeight      = 40.0
	taskTimeWeight      = 30.0
	taskDateWeight      = 20.0
	taskTimeWindowHours = 2.0
)

const taskNameMaxLen = 60

// taskVerbPattern matches prompts that open with an action verb; those
// make the best task names.
var taskVerbPattern = regexp.MustCompile(`(?i)^(add|create|fix|update|implement|build|make|write|refactor|test|debug)\b`)

// GroupTasks clusters sessions into inferred tasks. Sessions are walked
// newest-first; each unassigned session seeds a task and pulls in every
// later unassigned session scoring at or above the threshold against the
// seed. Scoring weighs file overlap, start-time proximity, and sharing a
// calendar date, so the grouping is stable under input reordering.
func GroupTasks(sessions []claude.Session) []Task {
	ordered := make([]claude.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.Date != "" {
			ordered = append(ordered, s)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].StartTime.Equal(ordered[j].StartTime) {
			return ordered[i].StartTime.After(ordered[j].StartTime)
		}
		return ordered[i].ID < ordered[j].ID
	})

	touched := make([]map[string]bool, len(ordered))
	for i, s := range ordered {
		touched[i] = touchedFiles(s)
	}

	assigned := make([]bool, len(ordered))
	var tasks []Task
	for i := range ordered {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		members := []int{i}
		for j := i + 1; j < len(ordered); j++ {
			if assigned[j] {
				continue
			}
			if sessionSimilarity(ordered[i], touched[i], ordered[j], touched[j]) >= taskScoreThreshold {
				assigned[j] = true
				members = append(members, j)
			}
		}
		tasks = append(tasks, buildTask(ordered, touched, members))
	}
	return tasks
}

// sessionSimilarity scores candidate t against cluster seed base.
func sessionSimilarity(base claude.Session, baseFiles map[string]bool, t claude.Session, tFiles map[string]bool) float64 {
	score := 0.0

	if len(baseFiles) > 0 {
		shared := 0
		for f := range baseFiles {
			if tFiles[f] {
				shared++
			}
		}
		score += taskFileWeight * float64(shared) / float64(len(baseFiles))
	}

	if !base.StartTime.IsZero() && !t.StartTime.IsZero() {
		gap := base.StartTime.Sub(t.StartTime).Hours()
		if gap < 0 {
			gap = -gap
		}
		if closeness := 1 - gap/taskTimeWindowHours; closeness > 0 {
			score += taskTimeWeight * closeness
		}
	}

	if base.Date == t.Date {
		score += taskDateWeight
	}

	return score
}

// touchedFiles collects the full paths of operations that reference a file.
func touchedFiles(s claude.Session) map[string]bool {
	files := map[string]bool{}
	for _, op := range s.Operations {
		if op.FilePath != "" {
			files[op.FilePath] = true
		}
	}
	return files
}

func buildTask(ordered []claude.Session, touched []map[string]bool, members []int) Task {
	base := ordered[members[0]]

	task := Task{
		ID: fmt.Sprintf("task-%s-%s", base.Date, shortID(base.ID)),
		DateRange: TaskDateRange{
			Start: base.Date,
			End:   base.Date,
		},
		SessionCount: len(members),
	}

	fileNames := map[string]bool{}
	fileCounts := map[string]int{}
	for _, idx := range members {
		s := ordered[idx]
		if s.Date < task.DateRange.Start {
			task.DateRange.Start = s.Date
		}
		if s.Date > task.DateRange.End {
			task.DateRange.End = s.Date
		}
		if d := s.Duration(); d > 0 {
			task.TotalMinutes += int(d.Minutes() + 0.5)
		}
		for path := range touched[idx] {
			name := filepath.Base(path)
			fileNames[name] = true
			fileCounts[name]++
		}
	}
	for name := range fileNames {
		task.FilesInvolved = append(task.FilesInvolved, name)
	}
	sort.Strings(task.FilesInvolved)

	task.Name, task.InferredFrom = taskName(ordered, members, fileCounts)
	return task
}

// taskName infers a label for the cluster: the first member prompt
// opening with an action verb wins; otherwise the most-touched file;
// otherwise a placeholder.
func taskName(ordered []claude.Session, members []int, fileCounts map[string]int) (string, string) {
	for _, idx := range members {
		for _, msg := range ordered[idx].Messages {
			if msg.Role != "user" {
				continue
			}
			text := strings.TrimSpace(msg.Text)
			if !taskVerbPattern.MatchString(text) {
				continue
			}
			if i := strings.IndexByte(text, '\n'); i >= 0 {
				text = strings.TrimSpace(text[:i])
			}
			runes := []rune(text)
			if len(runes) > taskNameMaxLen {
				text = string(runes[:taskNameMaxLen])
			}
			return text, "prompt"
		}
	}

	best, bestCount := "", 0
	for name, count := range fileCounts {
		if count > bestCount || (count == bestCount && name < best) {
			best, bestCount = name, count
		}
	}
	if best != "" {
		return best, "file"
	}
	return "Unnamed task", "fallback"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// SummarizeTasks rolls up totals across a task list.
func SummarizeTasks(tasks []Task) TaskSummary {
	s := TaskSummary{TotalTasks: len(tasks)}
	for _, t := range tasks {
		s.TotalTimeMinutes += t.TotalMinutes
	}
	if s.TotalTasks > 0 {
		s.AvgMinutesPerTask = s.TotalTimeMinutes / s.TotalTasks
	}
	return s
}
