package dashboard

import (
	"fmt"

	"github.com/prabinb19/ClaudeBuddy/internal/analyzer"
	"github.com/prabinb19/ClaudeBuddy/internal/claude"
)

// chartDays is the span of the daily chart series.
const chartDays = 14

// ActivityPoint is one day of the message/session chart.
type ActivityPoint struct {
	Date     string `json:"date"`
	Messages int    `json:"messages"`
	Sessions int    `json:"sessions"`
}

// TokenPoint is one day of total token usage across models.
type TokenPoint struct {
	Date   string `json:"date"`
	Tokens int64  `json:"tokens"`
}

// Charts bundles the chart series of the stats view.
type Charts struct {
	DailyActivity []ActivityPoint `json:"dailyActivity"`
	DailyTokens   []TokenPoint    `json:"dailyTokens"`
}

// StatsResult is the usage-statistics view: the raw stats file, the
// derived cost breakdown, and chart-ready series.
type StatsResult struct {
	Stats   *claude.StatsFile      `json:"stats"`
	Costs   analyzer.CostBreakdown `json:"costs"`
	Charts  Charts                 `json:"charts"`
	Message string                 `json:"message,omitempty"`
}

// Stats reads the aggregate stats file and derives costs and charts.
// A missing stats file yields an empty result with a hint message.
func (s *Service) Stats() (StatsResult, error) {
	stats, err := claude.ParseStatsFile(s.home)
	if err != nil {
		return StatsResult{}, fmt.Errorf("read stats file: %w", err)
	}

	result := StatsResult{
		Stats:  stats,
		Costs:  analyzer.CostBreakdown{ByModel: map[string]analyzer.ModelCost{}},
		Charts: Charts{DailyActivity: []ActivityPoint{}, DailyTokens: []TokenPoint{}},
	}
	if stats == nil {
		result.Stats = &claude.StatsFile{}
		result.Message = "No Claude Code data found. Start using Claude Code to see your stats here!"
		return result, nil
	}

	result.Costs = analyzer.CalculateModelCosts(stats.ModelUsage)

	activity := stats.DailyActivity
	if len(activity) > chartDays {
		activity = activity[len(activity)-chartDays:]
	}
	for _, day := range activity {
		result.Charts.DailyActivity = append(result.Charts.DailyActivity, ActivityPoint{
			Date:     day.Date,
			Messages: day.MessageCount,
			Sessions: day.SessionCount,
		})
	}

	tokens := stats.DailyModelTokens
	if len(tokens) > chartDays {
		tokens = tokens[len(tokens)-chartDays:]
	}
	for _, day := range tokens {
		var total int64
		for _, n := range day.TokensByModel {
			total += n
		}
		result.Charts.DailyTokens = append(result.Charts.DailyTokens, TokenPoint{
			Date:   day.Date,
			Tokens: total,
		})
	}

	return result, nil
}
