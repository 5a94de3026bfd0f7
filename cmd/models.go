package cmd

import (
	"fmt"

	"github.com/iksnae/termchat/internal"
	"github.com/spf13/cobra"
)

// modelsCmd represents the models command
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available providers and models",
	Long: `List every provider in the registry with its selectable models.

The first model of each provider is its default: switching to a provider
whose list does not contain the current model selects that entry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, p := range internal.Providers() {
			fmt.Fprintln(out, providerStyle.Render(p))
			for i, m := range internal.ModelsFor(p) {
				marker := "  "
				if i == 0 {
					marker = "* "
				}
				fmt.Fprintf(out, "  %s%s\n", marker, modelStyle.Render(m))
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
