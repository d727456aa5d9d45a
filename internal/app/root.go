// Package app contains the Cobra command tree for claudebuddy.
package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/prabinb19/ClaudeBuddy/internal/config"
	"github.com/prabinb19/ClaudeBuddy/internal/dashboard"
	"github.com/prabinb19/ClaudeBuddy/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagRefresh bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "claudebuddy",
	Short: "Local analytics for Claude Code usage",
	Long: `claudebuddy reads the Claude Code data directory on this machine and
turns it into usage analytics: token costs, per-project insights, session
transcripts, productivity metrics, error patterns, and inferred tasks.

All analysis happens locally. Nothing leaves your machine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("claudebuddy", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  stats         Token usage and cost breakdown")
		fmt.Println("  projects      Per-project activity and topics")
		fmt.Println("  session       Inspect one session transcript")
		fmt.Println("  productivity  Velocity, efficiency, and habit metrics")
		fmt.Println("  insights      Daily summaries, error patterns, tasks")
		fmt.Println("  history       Prompt history grouped by day")
		fmt.Println("  serve         Run the local dashboard API")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/claudebuddy/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagRefresh, "refresh", false, "Bypass cached results")
}

// newService loads configuration and builds the dashboard service every
// leaf command runs against. Output styling is settled here too.
func newService() (*dashboard.Service, *config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	output.AutoDetect()
	if flagNoColor || !cfg.Output.Color {
		output.SetNoColor(true)
	}
	output.SetWidth(cfg.Output.Width)

	return dashboard.New(cfg), cfg, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
