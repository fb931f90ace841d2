// ABOUTME: MCP tool handler implementations for the Leilan server
// ABOUTME: Validates arguments, runs retrieval/generation, and reports errors in-band
package mcp

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mwatkins1970/leilan-portal/internal/config"
	"github.com/mwatkins1970/leilan-portal/internal/llm"
)

// ContextRetriever produces a fully assembled prompt for a query.
type ContextRetriever interface {
	RetrieveContext(ctx context.Context, query string) (string, error)
}

// Generator produces a model reply for an assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt, model string) (string, error)
}

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	retriever ContextRetriever
	generator Generator
	cfg       *config.Config
}

// RetrieveContext handles the retrieve_context tool
func (h *Handlers) RetrieveContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	if strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query must not be empty"), nil
	}

	requestID := uuid.New().String()[:8]
	log.Printf("[%s] retrieve_context: %s", requestID, logQuery(query))

	prompt, err := h.retriever.RetrieveContext(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("context retrieval failed: %v", err)), nil
	}

	log.Printf("[%s] retrieved %d characters of context", requestID, len(prompt))
	return mcp.NewToolResultText(prompt), nil
}

// AskLeilan handles the ask_leilan tool
func (h *Handlers) AskLeilan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	if strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("query must not be empty"), nil
	}
	if h.generator == nil {
		return mcp.NewToolResultError("no generation client is configured"), nil
	}

	aspect := request.GetString("aspect", "")
	model, err := h.cfg.ModelForAspect(aspect)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	requestID := uuid.New().String()[:8]
	log.Printf("[%s] ask_leilan via %s: %s", requestID, model, logQuery(query))

	prompt, err := h.retriever.RetrieveContext(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("context retrieval failed: %v", err)), nil
	}

	response, err := h.generator.Generate(ctx, prompt, model)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
	}
	response = llm.TruncateAtQueryMarker(response)

	log.Printf("[%s] response: %d characters", requestID, len(response))
	return mcp.NewToolResultText(response), nil
}

// logQuery shortens long queries for log lines.
func logQuery(query string) string {
	runes := []rune(query)
	if len(runes) <= 80 {
		return fmt.Sprintf("%q", query)
	}
	return fmt.Sprintf("%q...", string(runes[:80]))
}
