package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level claudebuddy configuration.
type Config struct {
	ClaudeHome string   `mapstructure:"claude_home"`
	Cache      CacheTTL `mapstructure:"cache"`
	Server     Server   `mapstructure:"server"`
	Insights   Insights `mapstructure:"insights"`
	Output     Output   `mapstructure:"output"`
}

// CacheTTL defines cache lifetimes in seconds.
type CacheTTL struct {
	Productivity int `mapstructure:"productivity_ttl"`
	Insights     int `mapstructure:"insights_ttl"`
}

// ProductivityTTL returns the productivity cache lifetime as a duration.
func (c CacheTTL) ProductivityTTL() time.Duration {
	return time.Duration(c.Productivity) * time.Second
}

// InsightsTTL returns the insights cache lifetime as a duration.
func (c CacheTTL) InsightsTTL() time.Duration {
	return time.Duration(c.Insights) * time.Second
}

// Server defines HTTP server settings.
type Server struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Insights defines the analysis windows, in days.
type Insights struct {
	ErrorDays int `mapstructure:"error_days"`
	TaskDays  int `mapstructure:"task_days"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("claude_home", DefaultClaudeHome)
	v.SetDefault("cache.productivity_ttl", DefaultCacheTTL.Productivity)
	v.SetDefault("cache.insights_ttl", DefaultCacheTTL.Insights)
	v.SetDefault("server.host", DefaultServer.Host)
	v.SetDefault("server.port", DefaultServer.Port)
	v.SetDefault("insights.error_days", DefaultInsights.ErrorDays)
	v.SetDefault("insights.task_days", DefaultInsights.TaskDays)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.ClaudeHome = expandPath(cfg.ClaudeHome)
	return &cfg, nil
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
