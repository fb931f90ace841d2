// ABOUTME: CLI command to retrieve corpus context for a query
// ABOUTME: Prints the fully assembled role-play prompt without calling a chat model
package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
)

var (
	retrieveAggregation string
)

// NewRetrieveCmd creates the retrieve command
func NewRetrieveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retrieve <query>",
		Short: "Build the role-play prompt for a query",
		Long: `Build the role-play prompt for a query.

Embeds the query, scores it against every corpus subchunk, selects the
top matches per category, and prints the assembled prompt. No chat
model is called; use this to inspect exactly what 'ask' would send.

Examples:
  leilan retrieve "what is the nature of the moon?"
  leilan retrieve --aggregation mean "tell me about holes"
  leilan retrieve --format json "who is Leilan?"`,
		Args: cobra.ExactArgs(1),
		RunE: runRetrieve,
	}

	cmd.Flags().StringVar(&retrieveAggregation, "aggregation", "", "Override the subchunk aggregation policy (max or mean)")

	return cmd
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	query := strings.TrimSpace(args[0])
	if query == "" {
		return fmt.Errorf("query must not be empty")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if retrieveAggregation != "" {
		cfg.Aggregation = retrieveAggregation
	}

	retriever, _, err := newEngine(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	prompt, err := retriever.RetrieveContext(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("retrieving context: %w", err)
	}

	if outputFormat == "json" {
		payload := map[string]string{
			"query":  query,
			"prompt": prompt,
		}
		jsonData, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), prompt)
	return nil
}
