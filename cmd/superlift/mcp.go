// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/superlift/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout. Logs go to stderr.

CONFIGURATION:

  {
    "mcpServers": {
      "superlift": {
        "command": "superlift",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_workouts        List workouts with exercises and sets
  get_workout          Get one workout by ID or prefix
  add_workout          Log a workout
  delete_workout       Delete a workout
  get_strength_score   Current score with personal records
  get_strength_series  Score after each workout
  get_coach_context    Text summary of recent workouts

AVAILABLE RESOURCES:

  superlift://history  Detailed log of recent workouts
  superlift://score    Score, records and series as JSON`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo, logger)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		logger.Info("mcp server starting", "backend", repo.Backend().Kind())
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
