// ABOUTME: CLI commands to inspect, prefetch, and wipe corpus artifacts
// ABOUTME: Manages the local cache of chunk texts, metadata, and embeddings
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mwatkins1970/leilan-portal/internal/corpus"
)

var (
	wipeConfirm bool
)

// NewArtifactsCmd creates the artifacts command group
func NewArtifactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifacts",
		Short: "Manage corpus artifacts",
		Long: `Manage the corpus artifacts (chunk texts, metadata, and embeddings).

Artifacts are downloaded from the configured remote on first use and
cached under the embeddings directory. Subcommands inspect, prefetch,
or remove the local cache.

Examples:
  leilan artifacts status
  leilan artifacts status --format json
  leilan artifacts fetch
  leilan artifacts wipe --confirm`,
	}

	cmd.AddCommand(
		newArtifactsStatusCmd(),
		newArtifactsFetchCmd(),
		newArtifactsWipeCmd(),
	)

	return cmd
}

func newArtifactsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which corpus artifacts are present locally",
		RunE:  runArtifactsStatus,
	}
}

func runArtifactsStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	statuses := corpus.Status(cfg.EmbeddingsDir)

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(statuses, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ARTIFACT\tSTATUS\tSIZE\n")
	fmt.Fprintf(w, "--------\t------\t----\n")

	present := 0
	for _, st := range statuses {
		if st.Present {
			present++
			fmt.Fprintf(w, "%s\tpresent\t%s\n", st.Path, formatBytes(st.Size))
		} else {
			fmt.Fprintf(w, "%s\tmissing\t-\n", st.Path)
		}
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d/%d artifacts present in %s\n", present, len(statuses), cfg.EmbeddingsDir)
	}
	return nil
}

func newArtifactsFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download any missing corpus artifacts",
		Long: `Download any missing corpus artifacts from the configured remote.

Already-present files are left untouched, so fetch is safe to re-run
after an interrupted download.`,
		RunE: runArtifactsFetch,
	}
}

func runArtifactsFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fetcher := corpus.NewFetcher(cfg.RemoteBaseURL)
	fetcher.Quiet = quiet
	if err := fetcher.EnsureArtifacts(cmd.Context(), cfg.EmbeddingsDir); err != nil {
		return fmt.Errorf("fetching artifacts: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "All %d artifacts present in %s\n",
			len(corpus.RequiredArtifacts), cfg.EmbeddingsDir)
	}
	return nil
}

func newArtifactsWipeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wipe",
		Short: "Delete the local artifact cache",
		Long: `Delete all locally cached corpus artifacts.

The next corpus load downloads everything again. Requires --confirm.`,
		RunE: runArtifactsWipe,
	}

	cmd.Flags().BoolVar(&wipeConfirm, "confirm", false, "Actually delete the cached artifacts")

	return cmd
}

func runArtifactsWipe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	statuses := corpus.Status(cfg.EmbeddingsDir)
	present := 0
	for _, st := range statuses {
		if st.Present {
			present++
		}
	}

	if !wipeConfirm {
		fmt.Fprintf(cmd.OutOrStdout(), "Would delete %d artifact(s) from %s\n", present, cfg.EmbeddingsDir)
		fmt.Fprintln(cmd.OutOrStdout(), "Run with --confirm to proceed")
		return nil
	}

	removed := 0
	for _, st := range statuses {
		if !st.Present {
			continue
		}
		if err := os.Remove(filepath.Join(cfg.EmbeddingsDir, st.Path)); err != nil {
			return fmt.Errorf("removing %s: %w", st.Path, err)
		}
		removed++
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d artifact(s) from %s\n", removed, cfg.EmbeddingsDir)
	}
	return nil
}
