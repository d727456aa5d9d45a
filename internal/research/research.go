// Package research manages long-running research tasks: start, status,
// progress events, and cancellation. Execution itself lives behind the
// Runner interface; the manager only tracks lifecycle and fan-out.
package research

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Task statuses.
const (
	StatusPending     = "pending"
	StatusResearching = "researching"
	StatusWriting     = "writing"
	StatusCompleted   = "completed"
	StatusFailed      = "failed"
	StatusCancelled   = "cancelled"
)

// ErrTaskNotFound reports an unknown task id.
var ErrTaskNotFound = errors.New("research task not found")

// ErrTaskFinished reports a cancel attempt on an already-finished task.
var ErrTaskFinished = errors.New("research task already finished")

// Request describes a research task to start.
type Request struct {
	Query         string `json:"query"`
	TargetProject string `json:"target_project"`
	MaxSearches   int    `json:"max_searches"`
}

// Event is one progress notification, streamable over SSE.
type Event struct {
	Type      string    `json:"type"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// Status is the externally visible state of a task.
type Status struct {
	TaskID        string     `json:"task_id"`
	Status        string     `json:"status"`
	Query         string     `json:"query"`
	SearchCount   int        `json:"search_count"`
	MaxSearches   int        `json:"max_searches"`
	CurrentPhase  string     `json:"current_phase"`
	FindingsCount int        `json:"findings_count"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	SavedPath     string     `json:"saved_path,omitempty"`
	Error         string     `json:"error,omitempty"`
}

// Progress is what a Runner reports back as it works.
type Progress struct {
	Phase         string
	SearchCount   int
	FindingsCount int
	SavedPath     string
}

// Runner executes one research task. Implementations report progress
// through report and honor ctx cancellation. The bundled StubRunner is
// a placeholder for the external research automation.
type Runner interface {
	Run(ctx context.Context, req Request, report func(Progress)) error
}

type task struct {
	status Status
	events []Event
	cancel context.CancelFunc
}

// Manager tracks research tasks in memory for the process lifetime.
type Manager struct {
	mu     sync.RWMutex
	tasks  map[string]*task
	runner Runner
	now    func() time.Time
}

// NewManager builds a Manager executing tasks with the given runner.
func NewManager(runner Runner) *Manager {
	return &Manager{
		tasks:  make(map[string]*task),
		runner: runner,
		now:    time.Now,
	}
}

// Start registers a new task and launches its runner in the background.
func (m *Manager) Start(req Request) Status {
	if req.MaxSearches <= 0 {
		req.MaxSearches = 5
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())

	t := &task{
		status: Status{
			TaskID:       id,
			Status:       StatusPending,
			Query:        req.Query,
			MaxSearches:  req.MaxSearches,
			CurrentPhase: "initializing",
			StartedAt:    m.now(),
		},
		cancel: cancel,
	}

	// Snapshot before the runner goroutine exists; it starts mutating
	// t.status immediately.
	st := t.status

	m.mu.Lock()
	m.tasks[id] = t
	m.mu.Unlock()

	go m.run(ctx, id, req)
	return st
}

func (m *Manager) run(ctx context.Context, id string, req Request) {
	m.update(id, func(t *task) {
		t.status.Status = StatusResearching
		t.status.CurrentPhase = "researching"
	})
	m.addEvent(id, "status", "Research started")

	err := m.runner.Run(ctx, req, func(p Progress) {
		m.update(id, func(t *task) {
			if p.Phase != "" {
				t.status.CurrentPhase = p.Phase
				if p.Phase == "writing" {
					t.status.Status = StatusWriting
				}
			}
			if p.SearchCount > t.status.SearchCount {
				t.status.SearchCount = p.SearchCount
			}
			if p.FindingsCount > t.status.FindingsCount {
				t.status.FindingsCount = p.FindingsCount
			}
			if p.SavedPath != "" {
				t.status.SavedPath = p.SavedPath
			}
		})
		m.addEvent(id, "progress", map[string]any{
			"phase":          p.Phase,
			"search_count":   p.SearchCount,
			"findings_count": p.FindingsCount,
		})
	})

	if s, serr := m.Status(id); serr == nil && s.Status == StatusCancelled {
		return
	}

	done := m.now()
	switch {
	case errors.Is(err, context.Canceled):
		// Cancel already finalized the status; nothing more to record.
	case err != nil:
		m.update(id, func(t *task) {
			t.status.Status = StatusFailed
			t.status.Error = err.Error()
			t.status.CompletedAt = &done
		})
		m.addEvent(id, "error", err.Error())
	default:
		m.update(id, func(t *task) {
			t.status.Status = StatusCompleted
			t.status.CurrentPhase = "completed"
			t.status.CompletedAt = &done
		})
		m.addEvent(id, "complete", nil)
	}
}

// Status returns the current state of a task.
func (m *Manager) Status(id string) (Status, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tasks[id]
	if !ok {
		return Status{}, ErrTaskNotFound
	}
	return t.status, nil
}

// List returns every known task, unordered.
func (m *Manager) List() []Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Status, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t.status)
	}
	return out
}

// Events returns the events recorded so far, starting at offset. The
// second result is the next offset to poll from, and the third reports
// whether the task has reached a terminal state.
func (m *Manager) Events(id string, offset int) ([]Event, int, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, offset, false, ErrTaskNotFound
	}
	events := t.events
	if offset > len(events) {
		offset = len(events)
	}
	fresh := events[offset:]
	return fresh, len(events), terminal(t.status.Status), nil
}

// Cancel stops a running task. Finished tasks cannot be cancelled.
func (m *Manager) Cancel(id string) error {
	m.mu.Lock()
	t, ok := m.tasks[id]
	if !ok {
		m.mu.Unlock()
		return ErrTaskNotFound
	}
	if terminal(t.status.Status) {
		m.mu.Unlock()
		return ErrTaskFinished
	}
	done := m.now()
	t.status.Status = StatusCancelled
	t.status.CompletedAt = &done
	cancel := t.cancel
	m.mu.Unlock()

	cancel()
	m.addEvent(id, "cancelled", "Task cancelled by user")
	return nil
}

func (m *Manager) update(id string, fn func(*task)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; ok {
		// Terminal states are final; a late runner update cannot revive
		// a cancelled task.
		if t.status.Status == StatusCancelled {
			return
		}
		fn(t)
	}
}

func (m *Manager) addEvent(id string, eventType string, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t, ok := m.tasks[id]; ok {
		t.events = append(t.events, Event{
			Type:      eventType,
			Data:      data,
			Timestamp: m.now(),
		})
	}
}

func terminal(status string) bool {
	switch status {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}
