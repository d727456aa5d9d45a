package dashboard

import (
	"fmt"

	"github.com/prabinb19/ClaudeBuddy/internal/analyzer"
	"github.com/prabinb19/ClaudeBuddy/internal/claude"
)

// DailyResult is the daily-summary view with navigation.
type DailyResult struct {
	Summary     analyzer.DailySummary   `json:"summary"`
	DisplayDate string                  `json:"displayDate"`
	Navigation  analyzer.DateNavigation `json:"navigation"`
}

// ErrorsResult is the error-pattern view.
type ErrorsResult struct {
	Days     int                    `json:"days"`
	Patterns analyzer.ErrorPatterns `json:"patterns"`
}

// TasksResult is the inferred-task view.
type TasksResult struct {
	Days    int                  `json:"days"`
	Tasks   []analyzer.Task      `json:"tasks"`
	Summary analyzer.TaskSummary `json:"summary"`
}

// InsightsDaily summarizes the sessions of one date. An empty date
// means today.
func (s *Service) InsightsDaily(date string, refresh bool) (DailyResult, error) {
	if date == "" {
		date = claude.DayOf(s.now())
	}
	key := "insights:daily:" + date
	return cached(s, key, s.insightsTTL, refresh, func() (DailyResult, error) {
		sessions, err := claude.LoadSessions(s.home)
		if err != nil {
			return DailyResult{}, fmt.Errorf("load sessions: %w", err)
		}
		return DailyResult{
			Summary:     analyzer.SummarizeDay(sessions, date),
			DisplayDate: analyzer.DisplayDate(date, s.now()),
			Navigation:  analyzer.NavigationFor(sessions, date),
		}, nil
	})
}

// InsightsErrors detects friction patterns over a trailing window.
// days <= 0 selects the configured default.
func (s *Service) InsightsErrors(days int, refresh bool) (ErrorsResult, error) {
	if days <= 0 {
		days = s.errorDays
	}
	key := fmt.Sprintf("insights:errors:%d", days)
	return cached(s, key, s.insightsTTL, refresh, func() (ErrorsResult, error) {
		sessions, err := s.loadWindow(days)
		if err != nil {
			return ErrorsResult{}, err
		}
		return ErrorsResult{
			Days:     days,
			Patterns: analyzer.DetectErrorPatterns(sessions),
		}, nil
	})
}

// InsightsTasks clusters sessions of a trailing window into tasks.
// days <= 0 selects the configured default.
func (s *Service) InsightsTasks(days int, refresh bool) (TasksResult, error) {
	if days <= 0 {
		days = s.taskDays
	}
	key := fmt.Sprintf("insights:tasks:%d", days)
	return cached(s, key, s.insightsTTL, refresh, func() (TasksResult, error) {
		sessions, err := s.loadWindow(days)
		if err != nil {
			return TasksResult{}, err
		}
		tasks := analyzer.GroupTasks(sessions)
		return TasksResult{
			Days:    days,
			Tasks:   tasks,
			Summary: analyzer.SummarizeTasks(tasks),
		}, nil
	})
}

// History returns the prompt history grouped by day and session.
func (s *Service) History(refresh bool) ([]analyzer.HistoryDay, error) {
	return cached(s, "history", s.insightsTTL, refresh, func() ([]analyzer.HistoryDay, error) {
		entries, err := claude.ParseHistory(s.home)
		if err != nil {
			return nil, fmt.Errorf("read history: %w", err)
		}
		days := analyzer.GroupHistory(entries)
		if days == nil {
			days = []analyzer.HistoryDay{}
		}
		return days, nil
	})
}

func (s *Service) loadWindow(days int) ([]claude.Session, error) {
	sessions, err := claude.LoadSessions(s.home)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	return analyzer.FilterByDays(sessions, days, s.now()), nil
}
