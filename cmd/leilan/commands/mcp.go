// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Exposes retrieve_context and ask_leilan tools to LLM agents via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mwatkins1970/leilan-portal/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the Leilan engine as an MCP (Model Context Protocol) server,
exposing retrieve_context and ask_leilan tools over stdio.

Configure in Claude Desktop's config file to enable the tools.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an MCP client)
  leilan mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "leilan": {
  #       "command": "leilan",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	// Verify we have required API keys
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		log.Println("Warning: ANTHROPIC_API_KEY not set - ask_leilan will not work")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Corpus load may download artifacts on first run
	retriever, client, err := newEngine(ctx, cfg)
	if err != nil {
		return err
	}

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Leilan Portal",
		"0.1.0",
	)

	// Register MCP tools
	mcp.RegisterTools(server, retriever, client, cfg)

	if !quiet {
		log.Println("Leilan MCP server starting on stdio...")
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}

	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
