// ABOUTME: Main entry point for the Leilan MCP server with stdio transport
// ABOUTME: Loads the corpus and registers retrieval and generation tools
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mwatkins1970/leilan-portal/internal/config"
	"github.com/mwatkins1970/leilan-portal/internal/core"
	"github.com/mwatkins1970/leilan-portal/internal/corpus"
	"github.com/mwatkins1970/leilan-portal/internal/llm"
	"github.com/mwatkins1970/leilan-portal/internal/mcp"
	"github.com/mwatkins1970/leilan-portal/internal/models"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	// Verify we have required API keys
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		log.Println("Warning: ANTHROPIC_API_KEY not set - ask_leilan will not work")
	}

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load the corpus, downloading artifacts on first run
	store, err := corpus.Load(context.Background(), corpus.Options{
		Dir:     cfg.EmbeddingsDir,
		BaseURL: cfg.RemoteBaseURL,
	})
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	template := ""
	if cfg.TemplateFile != "" {
		data, err := os.ReadFile(cfg.TemplateFile)
		if err != nil {
			log.Fatalf("Failed to read template file: %v", err)
		}
		template = string(data)
	}
	builder, err := core.NewPromptBuilder(template)
	if err != nil {
		log.Fatalf("Failed to build prompt template: %v", err)
	}

	policy, err := core.ParsePolicy(cfg.Aggregation)
	if err != nil {
		log.Fatalf("Invalid aggregation policy: %v", err)
	}

	caps := models.CategoryCaps{
		GPT:       cfg.GPTResults,
		Opus:      cfg.OpusResults,
		Essay:     cfg.EssayResults,
		Interview: cfg.InterviewResults,
	}
	retriever := core.NewRetriever(store, client, policy, caps, builder)

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"Leilan Portal",
		"0.1.0",
	)

	// Register MCP tools
	mcp.RegisterTools(server, retriever, client, cfg)

	// Start server with stdio transport
	log.Println("Leilan MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
