// ABOUTME: CLI command to summarize the loaded corpus
// ABOUTME: Reports chunk, subchunk, and dialogue label counts per category
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mwatkins1970/leilan-portal/internal/corpus"
	"github.com/mwatkins1970/leilan-portal/internal/models"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show corpus statistics",
		Long: `Show corpus statistics.

Loads the corpus (downloading artifacts if needed) and reports chunk
counts, subchunk counts, and embedding dimensions per category, plus
the GPT-3/Opus label split within the dialogue corpus.

Examples:
  leilan stats
  leilan stats --format json`,
		RunE: runStats,
	}
}

type categoryStats struct {
	Chunks    int `json:"chunks"`
	Subchunks int `json:"subchunks"`
	Dimension int `json:"dimension"`
}

type corpusStats struct {
	Dialogue   categoryStats `json:"dialogue"`
	GPTChunks  int           `json:"gpt_chunks"`
	OpusChunks int           `json:"opus_chunks"`
	Essay      categoryStats `json:"essay"`
	Interview  categoryStats `json:"interview"`
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := corpus.Load(cmd.Context(), corpus.Options{
		Dir:     cfg.EmbeddingsDir,
		BaseURL: cfg.RemoteBaseURL,
		Quiet:   quiet,
	})
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}

	stats := collectStats(store)

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "CATEGORY\tCHUNKS\tSUBCHUNKS\tDIMENSION\n")
	fmt.Fprintf(w, "--------\t------\t---------\t---------\n")
	fmt.Fprintf(w, "dialogue\t%d\t%d\t%d\n", stats.Dialogue.Chunks, stats.Dialogue.Subchunks, stats.Dialogue.Dimension)
	fmt.Fprintf(w, "essay\t%d\t%d\t%d\n", stats.Essay.Chunks, stats.Essay.Subchunks, stats.Essay.Dimension)
	fmt.Fprintf(w, "interview\t%d\t%d\t%d\n", stats.Interview.Chunks, stats.Interview.Subchunks, stats.Interview.Dimension)
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nDialogue labels: %d gpt / %d opus\n", stats.GPTChunks, stats.OpusChunks)
	}
	return nil
}

func collectStats(store *corpus.Store) corpusStats {
	var s corpusStats
	s.Dialogue = summarizeCategory(&store.Dialogue)
	s.Essay = summarizeCategory(&store.Essay)
	s.Interview = summarizeCategory(&store.Interview)

	for _, meta := range store.Dialogue.Meta {
		switch meta.Type {
		case models.CategoryGPT:
			s.GPTChunks++
		case models.CategoryOpus:
			s.OpusChunks++
		}
	}
	return s
}

func summarizeCategory(data *corpus.CategoryData) categoryStats {
	return categoryStats{
		Chunks:    len(data.Chunks),
		Subchunks: data.Sub.Embeddings.Rows,
		Dimension: data.Sub.Embeddings.Cols,
	}
}
