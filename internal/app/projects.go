package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prabinb19/ClaudeBuddy/internal/output"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Per-project activity and topics",
	Long: `List every project Claude Code has been used in, with session counts,
detected topics and technologies, and recent task-like prompts sampled
from the newest transcripts.`,
	RunE: runProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

func runProjects(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		return err
	}

	projects, err := svc.Projects()
	if err != nil {
		return fmt.Errorf("listing projects: %w", err)
	}

	if flagJSON {
		return printJSON(projects)
	}

	if len(projects) == 0 {
		fmt.Println(output.StyleMuted.Render("No projects found"))
		return nil
	}

	for _, p := range projects {
		fmt.Println(output.Section(p.Name))
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Path"),
			output.StyleMuted.Render(p.Path))
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Sessions"),
			output.StyleValue.Render(fmt.Sprintf("%d", p.SessionCount)))
		fmt.Printf(" %s %s\n",
			output.StyleLabel.Render("Last activity"),
			output.StyleValue.Render(p.LastActivity.Format("2006-01-02 15:04")))

		if len(p.Topics) > 0 {
			fmt.Printf(" %s %s\n",
				output.StyleLabel.Render("Topics"),
				strings.Join(p.Topics, ", "))
		}
		if len(p.Technologies) > 0 {
			fmt.Printf(" %s %s\n",
				output.StyleLabel.Render("Technologies"),
				strings.Join(p.Technologies, ", "))
		}
		if len(p.RecentTasks) > 0 {
			fmt.Printf("\n %s\n", output.StyleMuted.Render("Recent tasks:"))
			for _, task := range p.RecentTasks {
				fmt.Printf("   • %s\n", task)
			}
		}
		fmt.Println()
	}

	return nil
}
