package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prabinb19/ClaudeBuddy/internal/output"
)

var (
	insightsDate string
	insightsDays int
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Daily summaries, error patterns, tasks",
}

var insightsDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Summarize one day of activity",
	Long: `Aggregate one calendar day of sessions: active time, operation counts,
topics worked on, and the files modified. Defaults to today.`,
	RunE: runInsightsDaily,
}

var insightsErrorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "Detect struggle and error patterns",
	Long: `Scan recent sessions for signs of friction: files that took many edits,
commands run repeatedly, error mentions in prompts, and churn bursts
confined to a few files.`,
	RunE: runInsightsErrors,
}

var insightsTasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Cluster sessions into inferred tasks",
	Long: `Group recent sessions that touch the same files close together in time
into inferred tasks, named from the opening prompt where possible.`,
	RunE: runInsightsTasks,
}

func init() {
	insightsDailyCmd.Flags().StringVar(&insightsDate, "date", "", "Day to summarize (YYYY-MM-DD, default today)")
	insightsErrorsCmd.Flags().IntVar(&insightsDays, "days", 0, "Analysis window in days (default from config)")
	insightsTasksCmd.Flags().IntVar(&insightsDays, "days", 0, "Analysis window in days (default from config)")

	insightsCmd.AddCommand(insightsDailyCmd, insightsErrorsCmd, insightsTasksCmd)
	rootCmd.AddCommand(insightsCmd)
}

func runInsightsDaily(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		return err
	}

	result, err := svc.InsightsDaily(insightsDate, flagRefresh)
	if err != nil {
		return fmt.Errorf("computing daily summary: %w", err)
	}

	if flagJSON {
		return printJSON(result)
	}

	fmt.Println(output.Section(result.DisplayDate))

	s := result.Summary
	if s.SessionCount == 0 {
		fmt.Printf(" %s\n\n", output.StyleMuted.Render("No activity on this day"))
		return nil
	}

	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Sessions"),
		output.StyleValue.Render(fmt.Sprintf("%d", s.SessionCount)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Active time"),
		output.StyleValue.Render(fmt.Sprintf("%d min", s.ActiveMinutes)))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Operations"),
		output.StyleValue.Render(fmt.Sprintf("%d", s.OperationCounts["total"])))

	if len(s.Topics) > 0 {
		fmt.Printf("\n %s\n", output.StyleMuted.Render("Topics:"))
		for _, topic := range s.Topics {
			fmt.Printf("   %s %s\n",
				output.StyleBold.Render(topic.Topic),
				output.StyleMuted.Render(fmt.Sprintf("(%d ops)", topic.OperationCount)))
		}
	}
	if len(s.FilesModified) > 0 {
		fmt.Printf("\n %s %s\n",
			output.StyleMuted.Render("Files modified:"),
			strings.Join(s.FilesModified, ", "))
	}

	nav := result.Navigation
	if nav.HasPrevious || nav.HasNext {
		parts := []string{}
		if nav.HasPrevious {
			parts = append(parts, "← "+nav.PreviousDate)
		}
		if nav.HasNext {
			parts = append(parts, nav.NextDate+" →")
		}
		fmt.Printf("\n %s\n", output.StyleMuted.Render(strings.Join(parts, "   ")))
	}

	fmt.Println()
	return nil
}

func runInsightsErrors(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		return err
	}

	result, err := svc.InsightsErrors(insightsDays, flagRefresh)
	if err != nil {
		return fmt.Errorf("detecting error patterns: %w", err)
	}

	if flagJSON {
		return printJSON(result)
	}

	p := result.Patterns
	fmt.Println(output.Section(fmt.Sprintf("Error Patterns (last %d days)", result.Days)))

	if len(p.StruggleFiles) == 0 && len(p.RepeatedCommands) == 0 &&
		len(p.ErrorMentions) == 0 && len(p.ThrashingSessions) == 0 {
		fmt.Printf(" %s\n\n", output.StyleMuted.Render("No struggle patterns detected"))
		return nil
	}

	if len(p.StruggleFiles) > 0 {
		fmt.Printf("\n %s\n", output.StyleMuted.Render("Files with repeated edits:"))
		tbl := output.NewTable("File", "Edits", "Severity", "Date").AlignRight(1)
		for _, f := range p.StruggleFiles {
			tbl.AddRow(f.FileName, fmt.Sprintf("%d", f.EditCount), output.Severity(f.Severity), f.Date)
		}
		tbl.Print()
	}

	if len(p.RepeatedCommands) > 0 {
		fmt.Printf("\n %s\n", output.StyleMuted.Render("Repeated commands:"))
		for _, c := range p.RepeatedCommands {
			fmt.Printf("   %s %s\n",
				output.StyleBold.Render(c.Command),
				output.StyleMuted.Render(c.Note))
		}
	}

	if len(p.ErrorMentions) > 0 {
		fmt.Printf("\n %s\n", output.StyleMuted.Render("Error mentions in prompts:"))
		for _, m := range p.ErrorMentions {
			fmt.Printf("   %s %s\n",
				output.StyleLabel.Render(m.Keyword),
				output.StyleValue.Render(fmt.Sprintf("%d", m.Count)))
		}
	}

	if len(p.ThrashingSessions) > 0 {
		fmt.Printf("\n %s\n", output.StyleMuted.Render("Churn bursts:"))
		for _, t := range p.ThrashingSessions {
			fmt.Printf("   %s %s\n",
				output.StyleError.Render(t.Date),
				output.StyleMuted.Render(fmt.Sprintf("%d ops across %d files in %d min",
					t.OperationCount, t.UniqueFileCount, t.DurationMinutes)))
		}
	}

	fmt.Println()
	return nil
}

func runInsightsTasks(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		return err
	}

	result, err := svc.InsightsTasks(insightsDays, flagRefresh)
	if err != nil {
		return fmt.Errorf("inferring tasks: %w", err)
	}

	if flagJSON {
		return printJSON(result)
	}

	fmt.Println(output.Section(fmt.Sprintf("Inferred Tasks (last %d days)", result.Days)))

	if len(result.Tasks) == 0 {
		fmt.Printf(" %s\n\n", output.StyleMuted.Render("No tasks inferred"))
		return nil
	}

	for _, task := range result.Tasks {
		span := task.DateRange.Start
		if task.DateRange.End != task.DateRange.Start {
			span += " → " + task.DateRange.End
		}
		fmt.Printf("\n %s\n", output.StyleBold.Render(task.Name))
		fmt.Printf("   %s\n",
			output.StyleMuted.Render(fmt.Sprintf("%s  •  %d sessions  •  %d min",
				span, task.SessionCount, task.TotalMinutes)))
		if len(task.FilesInvolved) > 0 {
			fmt.Printf("   %s\n",
				output.StyleMuted.Render(strings.Join(task.FilesInvolved, ", ")))
		}
	}

	fmt.Printf("\n %s %s\n\n",
		output.StyleLabel.Render("Total time"),
		output.StyleValue.Render(fmt.Sprintf("%d min", result.Summary.TotalTimeMinutes)))
	return nil
}
