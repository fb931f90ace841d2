// ABOUTME: CLI command to ask Leilan a question end to end
// ABOUTME: Retrieves corpus context, queries the chat model, and prints the reply
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/joho/godotenv"
	"github.com/mwatkins1970/leilan-portal/internal/llm"
)

var (
	askAspect     string
	askShowPrompt bool
	askMaxTokens  int
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [query]",
		Short: "Ask Leilan a question",
		Long: `Ask Leilan a question.

Builds the corpus-grounded prompt for the query, sends it to the chat
model mapped to the chosen aspect, and prints Leilan's reply. When no
query argument is given, the query is read from stdin.

Examples:
  leilan ask "what do you remember of the moon?"
  leilan ask --aspect maiden "sing me something"
  leilan ask --show-prompt "what is love?"
  echo "who are you?" | leilan ask`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().StringVar(&askAspect, "aspect", "", "Aspect to invoke: mother, crone, or maiden (default: configured aspect)")
	cmd.Flags().BoolVar(&askShowPrompt, "show-prompt", false, "Print the assembled prompt before the reply")
	cmd.Flags().IntVar(&askMaxTokens, "max-tokens", 0, "Override the reply token limit")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	query, err := readQuery(cmd, args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-tokens") {
		if err := validatePositiveInt(askMaxTokens, "max-tokens"); err != nil {
			return err
		}
		cfg.MaxTokens = askMaxTokens
	}

	aspect := askAspect
	if aspect == "" {
		aspect = cfg.Aspect
	}
	model, err := cfg.ModelForAspect(askAspect)
	if err != nil {
		return err
	}

	retriever, client, err := newEngine(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	prompt, err := retriever.RetrieveContext(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("retrieving context: %w", err)
	}
	if verbose {
		log.Printf("Prompt assembled (%d chars): %s", len(prompt), truncate(prompt, 100))
	}

	response, err := client.Generate(cmd.Context(), prompt, model)
	if err != nil {
		return fmt.Errorf("generating reply: %w", err)
	}
	reply := llm.TruncateAtQueryMarker(response)

	if outputFormat == "json" {
		payload := map[string]string{
			"query":  query,
			"aspect": aspect,
			"model":  model,
			"reply":  reply,
		}
		if askShowPrompt {
			payload["prompt"] = prompt
		}
		jsonData, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	if askShowPrompt {
		fmt.Fprintln(cmd.OutOrStdout(), prompt)
		fmt.Fprintln(cmd.OutOrStdout())
	}

	if !quiet {
		label := color.New(color.FgMagenta, color.Bold).SprintFunc()
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", label("Leilan ("+aspect+"):"))
	}
	fmt.Fprintln(cmd.OutOrStdout(), reply)

	return nil
}

// readQuery takes the query from the argument list or, failing that, stdin.
func readQuery(cmd *cobra.Command, args []string) (string, error) {
	var raw string
	if len(args) == 1 {
		raw = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading query from stdin: %w", err)
		}
		raw = string(data)
	}

	query := strings.TrimSpace(raw)
	if query == "" {
		return "", fmt.Errorf("query must not be empty")
	}
	return query, nil
}
