package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prabinb19/ClaudeBuddy/internal/output"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Prompt history grouped by day",
	Long: `Show the prompt history Claude Code records, grouped by calendar day
and session, with a detected topic per session.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of days to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		return err
	}

	days, err := svc.History(flagRefresh)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	if flagJSON {
		return printJSON(days)
	}

	if len(days) == 0 {
		fmt.Println(output.StyleMuted.Render("No prompt history found"))
		return nil
	}

	if historyLimit > 0 && len(days) > historyLimit {
		days = days[:historyLimit]
	}

	for _, day := range days {
		fmt.Println(output.Section(day.Date))
		for _, sess := range day.Sessions {
			fmt.Printf(" %s %s %s\n",
				output.StyleBold.Render(sess.ProjectName),
				output.StyleMuted.Render(sess.Topic),
				output.StyleMuted.Render(fmt.Sprintf("(%d prompts)", sess.PromptCount)))
			fmt.Printf("   %s\n", sess.Preview)
		}
	}

	fmt.Println()
	return nil
}
