package app

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/prabinb19/ClaudeBuddy/internal/dashboard"
	"github.com/prabinb19/ClaudeBuddy/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Token usage and cost breakdown",
	Long: `Read the aggregate usage statistics Claude Code maintains and show
per-model token counts, estimated costs, and recent activity.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		return err
	}

	result, err := svc.Stats()
	if err != nil {
		return fmt.Errorf("computing stats: %w", err)
	}

	if flagJSON {
		return printJSON(result)
	}

	if result.Message != "" {
		fmt.Println(output.StyleMuted.Render(result.Message))
		return nil
	}

	renderOverview(result)
	renderCosts(result)
	renderActivityChart(result)
	return nil
}

func renderOverview(r dashboard.StatsResult) {
	fmt.Println(output.Section("Overview"))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Total sessions"),
		output.StyleValue.Render(fmt.Sprintf("%d", r.Stats.TotalSessions)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Total messages"),
		output.StyleValue.Render(fmt.Sprintf("%d", r.Stats.TotalMessages)))
	if r.Stats.FirstSessionDate != "" {
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("First session"),
			output.StyleValue.Render(r.Stats.FirstSessionDate))
	}
	fmt.Println()
}

func renderCosts(r dashboard.StatsResult) {
	fmt.Println(output.Section("Estimated Costs"))

	models := make([]string, 0, len(r.Costs.ByModel))
	for m := range r.Costs.ByModel {
		models = append(models, m)
	}
	sort.Slice(models, func(i, j int) bool {
		return r.Costs.ByModel[models[i]].Cost > r.Costs.ByModel[models[j]].Cost
	})

	tbl := output.NewTable("Model", "Input", "Output", "Cost").AlignRight(1, 2, 3)
	for _, m := range models {
		mc := r.Costs.ByModel[m]
		tbl.AddRow(m,
			formatTokenCount(mc.InputTokens),
			formatTokenCount(mc.OutputTokens),
			output.Money(mc.Cost))
	}
	fmt.Println()
	tbl.Print()

	fmt.Printf("\n %s %s\n\n",
		output.StyleLabel.Render("Total"),
		output.StyleBold.Render(output.Money(r.Costs.Total)))
}

func renderActivityChart(r dashboard.StatsResult) {
	if len(r.Charts.DailyActivity) == 0 {
		return
	}

	fmt.Println(output.Section("Recent Activity"))

	max := 0.0
	for _, p := range r.Charts.DailyActivity {
		if float64(p.Messages) > max {
			max = float64(p.Messages)
		}
	}
	fmt.Println()
	for _, p := range r.Charts.DailyActivity {
		fmt.Printf(" %s %s\n",
			output.StyleMuted.Render(p.Date),
			output.Bar(float64(p.Messages), max, 30))
	}
	fmt.Println()
}

// formatTokenCount formats large token counts with K/M suffixes.
func formatTokenCount(tokens int64) string {
	switch {
	case tokens >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(tokens)/1_000_000)
	case tokens >= 1_000:
		return fmt.Sprintf("%.1fK", float64(tokens)/1_000)
	default:
		return fmt.Sprintf("%d", tokens)
	}
}
