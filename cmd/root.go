package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/termchat/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "termchat",
	Short: "Chat with LLM providers from your terminal",
	Long: `An interactive terminal chat client for large-language-model providers.

termchat keeps one live provider configuration per session, lets you switch
providers and models mid-conversation, and saves transcripts to disk as
JSON or Markdown.

Features:
  • OpenAI, Anthropic and local Ollama backends
  • Switch provider, model, temperature and more with /set
  • Save transcripts as JSON or Markdown
  • Local archive of past sessions

Quick Start:
  termchat chat                      # Start a conversation
  termchat models                    # Show providers and models
  termchat history list              # Browse archived sessions

Credentials come from the config file (~/.termchat.yaml) or the
provider's environment variable (OPENAI_API_KEY, ANTHROPIC_API_KEY).`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file location (default ~/.termchat.yaml)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
