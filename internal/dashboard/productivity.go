package dashboard

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/prabinb19/ClaudeBuddy/internal/analyzer"
	"github.com/prabinb19/ClaudeBuddy/internal/claude"
)

// ProductivitySummary is the headline row of the productivity view.
type ProductivitySummary struct {
	TotalActiveDays    int    `json:"totalActiveDays"`
	MostProductiveDay  string `json:"mostProductiveDay"`
	MostProductiveHour int    `json:"mostProductiveHour"`
}

// ProductivityResult bundles the four metric families and a summary.
type ProductivityResult struct {
	Velocity   analyzer.VelocityMetrics   `json:"velocity"`
	Efficiency analyzer.EfficiencyMetrics `json:"efficiency"`
	Patterns   analyzer.PatternMetrics    `json:"patterns"`
	ToolUsage  analyzer.ToolUsageMetrics  `json:"toolUsage"`
	Summary    ProductivitySummary        `json:"summary"`
	ComputedAt time.Time                  `json:"computedAt"`
}

// Productivity computes (or serves from cache) the full productivity
// view. The four metric families are independent passes over the same
// session slice, so they run concurrently.
func (s *Service) Productivity(refresh bool) (ProductivityResult, error) {
	return cached(s, "productivity", s.productivityTTL, refresh, func() (ProductivityResult, error) {
		sessions, err := claude.LoadSessions(s.home)
		if err != nil {
			return ProductivityResult{}, fmt.Errorf("load sessions: %w", err)
		}
		stats, err := claude.ParseStatsFile(s.home)
		if err != nil {
			return ProductivityResult{}, fmt.Errorf("read stats file: %w", err)
		}

		now := s.now()
		result := ProductivityResult{ComputedAt: now}

		var g errgroup.Group
		g.Go(func() error {
			result.Velocity = analyzer.AnalyzeVelocity(sessions, now)
			return nil
		})
		g.Go(func() error {
			result.Efficiency = analyzer.AnalyzeEfficiency(sessions, stats)
			return nil
		})
		g.Go(func() error {
			result.Patterns = analyzer.AnalyzePatterns(sessions, now)
			return nil
		})
		g.Go(func() error {
			result.ToolUsage = analyzer.AnalyzeToolUsage(sessions, now)
			return nil
		})
		if err := g.Wait(); err != nil {
			return ProductivityResult{}, err
		}

		result.Summary = summarize(result)
		return result, nil
	})
}

// summarize derives the headline row from the computed families.
func summarize(r ProductivityResult) ProductivitySummary {
	s := ProductivitySummary{TotalActiveDays: r.Patterns.TotalActiveDays}

	best := 0.0
	for _, wd := range r.Patterns.ByDayOfWeek {
		if wd.AvgOps > best {
			best = wd.AvgOps
			s.MostProductiveDay = wd.Day
		}
	}

	peak := 0
	for _, day := range r.Efficiency.PeakHoursHeatmap {
		for hour, count := range day {
			if count > peak {
				peak = count
				s.MostProductiveHour = hour
			}
		}
	}
	return s
}
