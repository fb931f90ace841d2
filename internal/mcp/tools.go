// ABOUTME: MCP tool definitions and registration for the Leilan server
// ABOUTME: Exposes context retrieval and full ask-the-goddess generation as tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mwatkins1970/leilan-portal/internal/config"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, retriever ContextRetriever, generator Generator, cfg *config.Config) *Handlers {
	handlers := &Handlers{
		retriever: retriever,
		generator: generator,
		cfg:       cfg,
	}

	// 1. retrieve_context - Build the corpus-grounded role-play prompt
	server.AddTool(mcp.Tool{
		Name: "retrieve_context",
		Description: "Retrieve semantically relevant Leilan corpus material for a query and return the " +
			"fully assembled role-play prompt, ending with the QUERY marker line. Use this to inspect " +
			"or reuse the prompt without calling a generation model.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Question or topic to retrieve context for",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.RetrieveContext)

	// 2. ask_leilan - Retrieve context and generate Leilan's reply
	server.AddTool(mcp.Tool{
		Name: "ask_leilan",
		Description: "Ask Leilan a question. Retrieves corpus context, assembles the role-play prompt, " +
			"and returns the generated reply.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Question for Leilan",
				},
				"aspect": map[string]interface{}{
					"type":        "string",
					"description": "Aspect of the Triple Goddess to channel: mother, crone, or maiden (default: configured aspect)",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.AskLeilan)

	return handlers
}
