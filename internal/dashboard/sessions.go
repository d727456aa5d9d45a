package dashboard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prabinb19/ClaudeBuddy/internal/claude"
)

// ErrSessionNotFound reports a session id with no transcript on disk.
var ErrSessionNotFound = errors.New("session not found")

// messageTextLimit bounds message content in the detail view.
const messageTextLimit = 2000

// SessionDetail is the full view of one session.
type SessionDetail struct {
	ID              string              `json:"id"`
	ProjectKey      string              `json:"projectKey"`
	ProjectPath     string              `json:"projectPath"`
	StartTime       time.Time           `json:"startTime"`
	EndTime         time.Time           `json:"endTime"`
	MessageCount    int                 `json:"messageCount"`
	Messages        []claude.Message    `json:"messages"`
	Operations      []claude.Operation  `json:"codeOperations"`
	TopicGroups     []claude.TopicGroup `json:"topicGroups"`
	OperationCounts map[string]int      `json:"operationCounts"`
}

// Session loads one transcript and returns its detail view.
// ErrSessionNotFound is returned when the transcript does not exist.
func (s *Service) Session(projectID, sessionID string) (SessionDetail, error) {
	path := filepath.Join(s.home, "projects", projectID, sessionID+".jsonl")
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return SessionDetail{}, ErrSessionNotFound
		}
		return SessionDetail{}, fmt.Errorf("stat session: %w", err)
	}

	records, err := claude.ReadRecords(path)
	if err != nil {
		return SessionDetail{}, fmt.Errorf("read session: %w", err)
	}

	file := claude.SessionFile{ID: sessionID, Path: path, ModTime: info.ModTime()}
	sess := claude.BuildSession(file, projectID, records)

	detail := SessionDetail{
		ID:          sess.ID,
		ProjectKey:  sess.ProjectKey,
		ProjectPath: sess.ProjectPath,
		StartTime:   sess.StartTime,
		EndTime:     sess.EndTime,
		Operations:  sess.Operations,
		TopicGroups: sess.TopicGroups,
		OperationCounts: map[string]int{
			"writes": 0, "edits": 0, "reads": 0, "commands": 0,
		},
	}

	for _, msg := range sess.Messages {
		// Truncate on a rune boundary so multi-byte characters at the
		// cutoff don't become invalid UTF-8.
		if runes := []rune(msg.Text); len(runes) > messageTextLimit {
			msg.Text = string(runes[:messageTextLimit])
		}
		detail.Messages = append(detail.Messages, msg)
	}
	detail.MessageCount = len(detail.Messages)

	for _, op := range sess.Operations {
		switch op.Kind {
		case claude.OpWrite:
			detail.OperationCounts["writes"]++
		case claude.OpEdit:
			detail.OperationCounts["edits"]++
		case claude.OpRead:
			detail.OperationCounts["reads"]++
		case claude.OpShell:
			detail.OperationCounts["commands"]++
		}
	}

	return detail, nil
}
