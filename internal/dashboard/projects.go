package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/prabinb19/ClaudeBuddy/internal/analyzer"
	"github.com/prabinb19/ClaudeBuddy/internal/claude"
)

// Insight sampling bounds for the project list. Only the most recent
// sessions are analyzed so the listing stays fast on big histories.
const (
	projectSampleSessions = 3
	projectMaxTopics      = 5
	projectMaxTech        = 6
	projectMaxTasks       = 4
	projectMaxSessions    = 5
)

// SessionRef is a lightweight session reference in the project list.
type SessionRef struct {
	ID           string    `json:"id"`
	File         string    `json:"file"`
	LastModified time.Time `json:"lastModified"`
}

// ProjectSummary is one project with sampled insights.
type ProjectSummary struct {
	ID            string       `json:"id"`
	Path          string       `json:"path"`
	Name          string       `json:"name"`
	SessionCount  int          `json:"sessionCount"`
	LastActivity  time.Time    `json:"lastActivity"`
	TotalMessages int          `json:"totalMessages"`
	Topics        []string     `json:"topics"`
	Technologies  []string     `json:"technologies"`
	RecentTasks   []string     `json:"recentTasks"`
	Sessions      []SessionRef `json:"sessions"`
}

// Projects lists every project with insights sampled from its most
// recent sessions: detected topics and technologies, task-like prompt
// phrases, and a short session list.
func (s *Service) Projects() ([]ProjectSummary, error) {
	dirs, err := claude.ListProjects(s.home)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	var projects []ProjectSummary
	for _, dir := range dirs {
		files, err := claude.ListSessionFiles(dir.Dir)
		if err != nil {
			continue
		}

		p := ProjectSummary{
			ID:           dir.Key,
			Path:         dir.Path,
			Name:         dir.Name(),
			SessionCount: len(files),
			Topics:       []string{},
			Technologies: []string{},
			RecentTasks:  []string{},
		}

		seenTopic := map[string]bool{}
		seenTech := map[string]bool{}

		sample := files
		if len(sample) > projectSampleSessions {
			sample = sample[:projectSampleSessions]
		}
		for _, file := range sample {
			records, err := claude.ReadRecords(file.Path)
			if err != nil {
				continue
			}
			for i := range records {
				rec := &records[i]
				if rec.Text == "" {
					continue
				}
				p.TotalMessages++

				for _, topic := range analyzer.DetectTopics(rec.Text) {
					if !seenTopic[topic] && len(p.Topics) < projectMaxTopics {
						seenTopic[topic] = true
						p.Topics = append(p.Topics, topic)
					}
				}
				for _, tech := range analyzer.DetectTechnologies(rec.Text) {
					if !seenTech[tech] && len(p.Technologies) < projectMaxTech {
						seenTech[tech] = true
						p.Technologies = append(p.Technologies, tech)
					}
				}
				if rec.IsUser() && len(p.RecentTasks) < projectMaxTasks {
					if phrase := analyzer.TaskPhrase(rec.Text); phrase != "" {
						p.RecentTasks = append(p.RecentTasks, phrase)
					}
				}

				if !rec.Timestamp.IsZero() && rec.Timestamp.After(p.LastActivity) {
					p.LastActivity = rec.Timestamp
				}
			}
		}

		refs := files
		if len(refs) > projectMaxSessions {
			refs = refs[:projectMaxSessions]
		}
		for _, f := range refs {
			p.Sessions = append(p.Sessions, SessionRef{
				ID:           f.ID,
				File:         f.ID + ".jsonl",
				LastModified: f.ModTime,
			})
		}
		if p.LastActivity.IsZero() && len(files) > 0 {
			p.LastActivity = files[0].ModTime
		}

		projects = append(projects, p)
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].LastActivity.After(projects[j].LastActivity)
	})
	return projects, nil
}
