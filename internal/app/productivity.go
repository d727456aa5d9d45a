package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prabinb19/ClaudeBuddy/internal/analyzer"
	"github.com/prabinb19/ClaudeBuddy/internal/output"
)

var productivityCmd = &cobra.Command{
	Use:   "productivity",
	Short: "Velocity, efficiency, and habit metrics",
	Long: `Compute productivity metrics from every session transcript: code
operation velocity, peak-hour efficiency, working-habit patterns, and the
tool usage distribution. Results are cached; pass --refresh to recompute.`,
	RunE: runProductivity,
}

func init() {
	rootCmd.AddCommand(productivityCmd)
}

func runProductivity(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		return err
	}

	result, err := svc.Productivity(flagRefresh)
	if err != nil {
		return fmt.Errorf("computing productivity: %w", err)
	}

	if flagJSON {
		return printJSON(result)
	}

	renderVelocity(result.Velocity)
	renderEfficiency(result.Efficiency)
	renderPatterns(result.Patterns)
	renderToolUsage(result.ToolUsage)

	fmt.Println(output.Section("Summary"))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Active days"),
		output.StyleValue.Render(fmt.Sprintf("%d", result.Summary.TotalActiveDays)))
	if result.Summary.MostProductiveDay != "" {
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Best weekday"),
			output.StyleValue.Render(result.Summary.MostProductiveDay))
	}
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Peak hour"),
		output.StyleValue.Render(fmt.Sprintf("%02d:00", result.Summary.MostProductiveHour)))
	fmt.Println()

	return nil
}

func renderVelocity(v analyzer.VelocityMetrics) {
	fmt.Println(output.Section("Velocity"))

	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Writes"),
		output.StyleValue.Render(fmt.Sprintf("%d", v.TotalWrites)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Edits"),
		output.StyleValue.Render(fmt.Sprintf("%d", v.TotalEdits)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Lines changed (est)"),
		output.StyleValue.Render(fmt.Sprintf("%d", v.LinesChangedEstimate)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Avg ops/day"),
		output.StyleValue.Render(fmt.Sprintf("%.1f", v.AverageOpsPerDay)))

	if len(v.DailyTrend) > 0 {
		max := 0.0
		for _, d := range v.DailyTrend {
			if total := float64(d.Writes + d.Edits); total > max {
				max = total
			}
		}
		fmt.Printf("\n %s\n", output.StyleMuted.Render("Last 14 days:"))
		for _, d := range v.DailyTrend {
			fmt.Printf("   %s %s\n",
				output.StyleMuted.Render(d.Date),
				output.Bar(float64(d.Writes+d.Edits), max, 24))
		}
	}

	fmt.Println()
}

func renderEfficiency(e analyzer.EfficiencyMetrics) {
	fmt.Println(output.Section("Efficiency"))

	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Ops/session"),
		output.StyleValue.Render(fmt.Sprintf("%.1f", e.OpsPerSession)))
	if e.TokensPerCodeOp > 0 {
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Tokens/code op"),
			output.StyleValue.Render(fmt.Sprintf("%.0f", e.TokensPerCodeOp)))
	}

	if len(e.SessionDurations) > 0 {
		fmt.Printf("\n %s\n", output.StyleMuted.Render("Session lengths:"))
		for _, bucket := range []string{"0-15", "15-30", "30-60", "60+"} {
			fmt.Printf("   %s %s\n",
				output.StyleLabel.Render(bucket+" min"),
				output.StyleValue.Render(fmt.Sprintf("%d", e.SessionDurations[bucket])))
		}
	}

	fmt.Println()
}

func renderPatterns(p analyzer.PatternMetrics) {
	fmt.Println(output.Section("Patterns"))

	streak := output.StyleValue.Render(fmt.Sprintf("%d days", p.CurrentStreak))
	if p.CurrentStreak > 0 {
		streak = output.StyleSuccess.Render(fmt.Sprintf("%d days", p.CurrentStreak))
	}
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Current streak"), streak)
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Longest streak"),
		output.StyleValue.Render(fmt.Sprintf("%d days", p.LongestStreak)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Focus sessions"),
		output.StyleValue.Render(fmt.Sprintf("%d", p.FocusSessions)))

	if len(p.ByDayOfWeek) > 0 {
		max := 0.0
		for _, d := range p.ByDayOfWeek {
			if d.AvgOps > max {
				max = d.AvgOps
			}
		}
		fmt.Printf("\n %s\n", output.StyleMuted.Render("Avg ops by weekday:"))
		for _, d := range p.ByDayOfWeek {
			fmt.Printf("   %s %s\n",
				output.StyleMuted.Render(fmt.Sprintf("%-9s", d.Day)),
				output.Bar(d.AvgOps, max, 24))
		}
	}

	if len(p.MostEditedFiles) > 0 {
		fmt.Printf("\n %s\n", output.StyleMuted.Render("Most edited files:"))
		for _, f := range p.MostEditedFiles {
			fmt.Printf("   %s %s\n",
				output.StyleLabel.Render(f.FileName),
				output.StyleValue.Render(fmt.Sprintf("%d", f.Count)))
		}
	}

	fmt.Println()
}

func renderToolUsage(t analyzer.ToolUsageMetrics) {
	fmt.Println(output.Section("Tool Usage"))

	for _, kind := range []string{"write", "edit", "read", "shell", "glob", "grep"} {
		if t.Distribution[kind] == 0 {
			continue
		}
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render(kind),
			output.StyleValue.Render(fmt.Sprintf("%d", t.Distribution[kind])))
	}
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Read/write ratio"),
		output.StyleValue.Render(fmt.Sprintf("%.2f", t.ReadWriteRatio)))
	if t.RatioInsight != "" {
		fmt.Printf(" %s\n", output.StyleMuted.Render(t.RatioInsight))
	}

	fmt.Println()
}
