package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/finverse/matchmaker/internal/matchmaker"
	"github.com/finverse/matchmaker/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio transport)",
	Long: `Start the MCP (Model Context Protocol) server using stdio transport.

This allows AI assistants to browse startups and profiles and run matchmaking.

Example assistant config:

{
  "mcpServers": {
    "finverse": {
      "command": "/path/to/finverse",
      "args": ["mcp"]
    }
  }
}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, db, logger, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	if !cfg.MCP.Enabled {
		return fmt.Errorf("MCP server is disabled in config")
	}

	mcp.Version = version
	server := mcp.New(db, matchmaker.New(db, db, logger), cfg, logger)

	// Handle interrupt
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		cancel()
	}()

	logger.Info("mcp server starting", "transport", cfg.MCP.Transport)
	return server.Start(ctx)
}
