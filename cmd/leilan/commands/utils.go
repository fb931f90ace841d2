// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Consolidates config loading and engine wiring used by several commands
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/mwatkins1970/leilan-portal/internal/config"
	"github.com/mwatkins1970/leilan-portal/internal/core"
	"github.com/mwatkins1970/leilan-portal/internal/corpus"
	"github.com/mwatkins1970/leilan-portal/internal/llm"
	"github.com/mwatkins1970/leilan-portal/internal/models"
)

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}

// formatBytes renders a byte count in binary units
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// loadConfig reads the config file selected by --config (or the default
// search path) and applies environment overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// loadTemplate returns the configured prompt template override, or empty
// for the built-in default.
func loadTemplate(cfg *config.Config) (string, error) {
	if cfg.TemplateFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(cfg.TemplateFile)
	if err != nil {
		return "", fmt.Errorf("reading template file: %w", err)
	}
	return string(data), nil
}

// newEngine wires the corpus store, LLM client, and prompt builder into a
// ready retriever. The client is returned separately so callers can also
// generate chat completions.
func newEngine(ctx context.Context, cfg *config.Config) (*core.Retriever, *llm.Client, error) {
	store, err := corpus.Load(ctx, corpus.Options{
		Dir:     cfg.EmbeddingsDir,
		BaseURL: cfg.RemoteBaseURL,
		Quiet:   quiet,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("loading corpus: %w", err)
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing LLM client: %w", err)
	}

	template, err := loadTemplate(cfg)
	if err != nil {
		return nil, nil, err
	}
	builder, err := core.NewPromptBuilder(template)
	if err != nil {
		return nil, nil, err
	}

	policy, err := core.ParsePolicy(cfg.Aggregation)
	if err != nil {
		return nil, nil, err
	}

	caps := models.CategoryCaps{
		GPT:       cfg.GPTResults,
		Opus:      cfg.OpusResults,
		Essay:     cfg.EssayResults,
		Interview: cfg.InterviewResults,
	}

	return core.NewRetriever(store, client, policy, caps, builder), client, nil
}
