package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".config", "finverse")
	dataDir := filepath.Join(home, ".local", "share", "finverse")

	// Create directories
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	configFile := filepath.Join(configDir, "config.toml")

	// Check if config already exists
	if _, err := os.Stat(configFile); err == nil {
		fmt.Printf("Config file already exists at %s\n", configFile)
		fmt.Println("Use 'finverse config show' to view current configuration")
		return nil
	}

	// Write default config
	if err := os.WriteFile(configFile, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Create your profile:   finverse profile add \"Ada\" --interests ai,saas")
	fmt.Println("  2. List a startup:        finverse startup add Kite --keywords saas,fintech")
	fmt.Println("  3. Find your best match:  finverse match --profile Ada")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No config file found. Run 'finverse config init' to create one.")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Printf("# Config file: %s\n\n", configPath)
	fmt.Println(string(data))
	return nil
}

const defaultConfig = `# FinVerse Configuration

[database]
path = "~/.local/share/finverse/finverse.db"
# Overridden by FINVERSE_DATABASE_PATH

[matching]
default_pool = "startups"   # startups or profiles
reveal_delay_ms = 1500      # Spinner shown before the match is revealed (0 disables)
show_scores = true          # Print every candidate's score, not just the best

[search]
fuzzy_threshold = 0.85      # Jaro-Winkler similarity needed for a typo match (0.0-1.0)
stemming = true             # Match "engineers" with "engineering"
limit = 20

[log]
level = "warn"              # debug, info, warn, error (FINVERSE_LOG_LEVEL)
format = "text"             # text or json

[mcp]
enabled = true
transport = "stdio"
`
