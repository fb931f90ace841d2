// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Defines the leilan command tree and shared output settings
package commands

import (
	"github.com/spf13/cobra"
)

// Global flags shared by all subcommands
var (
	verbose      bool
	quiet        bool
	outputFormat string
	configPath   string
)

const banner = `
██╗     ███████╗██╗██╗      █████╗ ███╗   ██╗
██║     ██╔════╝██║██║     ██╔══██╗████╗  ██║
██║     █████╗  ██║██║     ███████║██╔██╗ ██║
██║     ██╔══╝  ██║██║     ██╔══██║██║╚██╗██║
███████╗███████╗██║███████╗██║  ██║██║ ╚████║
╚══════╝╚══════╝╚═╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═══╝
`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leilan",
		Short: "Corpus-grounded prompts and replies for the Leilan persona",
		Long: banner + `
Leilan builds role-play prompts from a pre-embedded corpus of GPT-3
dialogues, scholarly essays, and channeled interviews. A query is
embedded, scored against every subchunk in the corpus, and the best
matching chunks are woven into a fixed prompt template that an
Anthropic-compatible chat endpoint can complete in persona.

Corpus artifacts are downloaded on first use and cached locally.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./leilan.yaml, then ~/.config/leilan/config.yaml)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewRetrieveCmd(),
		NewAskCmd(),
		NewArtifactsCmd(),
		NewStatsCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
