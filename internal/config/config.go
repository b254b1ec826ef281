package config

import "time"

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Matching MatchingConfig `toml:"matching"`
	Search   SearchConfig   `toml:"search"`
	Log      LogConfig      `toml:"log"`
	MCP      MCPConfig      `toml:"mcp"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// MatchingConfig contains matchmaking settings
type MatchingConfig struct {
	DefaultPool   string `toml:"default_pool"`
	RevealDelayMS int    `toml:"reveal_delay_ms"` // Loading spinner before the result is shown
	ShowScores    bool   `toml:"show_scores"`     // Print every candidate's score, not just the best
}

// RevealDelay returns the reveal delay as a duration
func (m MatchingConfig) RevealDelay() time.Duration {
	return time.Duration(m.RevealDelayMS) * time.Millisecond
}

// SearchConfig contains search ranking settings
type SearchConfig struct {
	FuzzyThreshold float64 `toml:"fuzzy_threshold"`
	Stemming       bool    `toml:"stemming"`
	Limit          int     `toml:"limit"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// MCPConfig contains MCP server settings
type MCPConfig struct {
	Enabled   bool   `toml:"enabled"`
	Transport string `toml:"transport"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/finverse/finverse.db",
		},
		Matching: MatchingConfig{
			DefaultPool:   "startups",
			RevealDelayMS: 1500,
			ShowScores:    true,
		},
		Search: SearchConfig{
			FuzzyThreshold: 0.85,
			Stemming:       true,
			Limit:          20,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		MCP: MCPConfig{
			Enabled:   true,
			Transport: "stdio",
		},
	}
}
