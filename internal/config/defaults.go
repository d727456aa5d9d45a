// Package config provides configuration loading and defaults for claudebuddy.
package config

// DefaultClaudeHome is the default location of Claude Code's data directory.
const DefaultClaudeHome = "~/.claude"

// DefaultConfigDir is the default location for claudebuddy configuration.
const DefaultConfigDir = "~/.config/claudebuddy"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultCacheTTL holds the default cache lifetimes, in seconds.
var DefaultCacheTTL = CacheTTL{
	Productivity: 300,
	Insights:     300,
}

// DefaultServer holds the default HTTP server settings.
var DefaultServer = Server{
	Host: "127.0.0.1",
	Port: 8765,
}

// DefaultInsights holds the default analysis windows, in days.
var DefaultInsights = Insights{
	ErrorDays: 7,
	TaskDays:  30,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
