package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prabinb19/ClaudeBuddy/internal/dashboard"
	"github.com/prabinb19/ClaudeBuddy/internal/output"
)

var sessionFull bool

var sessionCmd = &cobra.Command{
	Use:   "session <project> <session-id>",
	Short: "Inspect one session transcript",
	Long: `Show a single session: its messages, code operations grouped by topic,
and operation counts. The project argument is the encoded directory name
under the Claude projects directory (run 'claudebuddy projects --json'
to see them).`,
	Args: cobra.ExactArgs(2),
	RunE: runSession,
}

func init() {
	sessionCmd.Flags().BoolVar(&sessionFull, "full", false, "Show every message instead of a summary")
	rootCmd.AddCommand(sessionCmd)
}

func runSession(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		return err
	}

	detail, err := svc.Session(args[0], args[1])
	if err != nil {
		if errors.Is(err, dashboard.ErrSessionNotFound) {
			return fmt.Errorf("session %s not found in project %s", args[1], args[0])
		}
		return fmt.Errorf("loading session: %w", err)
	}

	if flagJSON {
		return printJSON(detail)
	}

	fmt.Println(output.Section("Session " + detail.ID))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Project"),
		output.StyleMuted.Render(detail.ProjectPath))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Started"),
		output.StyleValue.Render(detail.StartTime.Format("2006-01-02 15:04")))
	fmt.Printf(" %s %s\n",
		output.StyleLabel.Render("Messages"),
		output.StyleValue.Render(fmt.Sprintf("%d", detail.MessageCount)))

	fmt.Printf("\n %s\n", output.StyleMuted.Render("Operations:"))
	for _, kind := range []string{"writes", "edits", "reads", "commands"} {
		fmt.Printf("   %s %s\n",
			output.StyleLabel.Render(kind),
			output.StyleValue.Render(fmt.Sprintf("%d", detail.OperationCounts[kind])))
	}

	if len(detail.TopicGroups) > 0 {
		fmt.Printf("\n %s\n", output.StyleMuted.Render("Topics:"))
		for _, g := range detail.TopicGroups {
			fmt.Printf("   %s %s\n",
				output.StyleBold.Render(g.Topic),
				output.StyleMuted.Render(fmt.Sprintf("(%d ops)", g.OperationCount)))
		}
	}

	if sessionFull {
		fmt.Println(output.Section("Transcript"))
		for _, m := range detail.Messages {
			role := output.StyleSuccess.Render(m.Role)
			if m.Role == "assistant" {
				role = output.StyleHeader.Render(m.Role)
			}
			text := strings.TrimSpace(m.Text)
			if text == "" {
				continue
			}
			fmt.Printf("\n %s\n %s\n", role, text)
		}
	}

	fmt.Println()
	return nil
}
