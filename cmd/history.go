package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/iksnae/termchat/internal"
	"github.com/iksnae/termchat/internal/history"
	"github.com/iksnae/termchat/internal/transcript"
	"github.com/spf13/cobra"
)

var (
	dbPath       string
	exportFormat string
	exportDir    string
)

// historyCmd represents the history command group
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse archived chat sessions",
	Long: `Browse the local archive of past chat sessions.

Every finished chat session is archived automatically (unless started
with --no-archive). Sessions can be listed, shown, or exported through
the same JSON/Markdown encoders used for /save.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		summaries, err := store.List()
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		if len(summaries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), infoStyle.Render("no archived sessions"))
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tPROVIDER\tMODEL\tMSGS\tTITLE")
		for _, s := range summaries {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
				s.ID, s.CreatedAt.Format("2006-01-02 15:04"), s.Provider, s.Model, s.MessageCount, s.Title)
		}
		return w.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show one archived session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid session id %q", args[0])
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		conv, sum, err := store.Get(id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, providerStyle.Render(fmt.Sprintf("session %d — %s / %s — %s",
			sum.ID, sum.Provider, sum.Model, sum.CreatedAt.Format("2006-01-02 15:04"))))
		for _, msg := range conv {
			fmt.Fprintf(out, "\n%s\n%s\n", promptStyle.Render(msg.Role.Display()), msg.Content)
		}
		return nil
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export one archived session to a transcript file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid session id %q", args[0])
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		conv, sum, err := store.Get(id)
		if err != nil {
			return err
		}

		// Reuse the transcript writer with a config describing the
		// archived session rather than the live one.
		cfg := internal.ProviderConfig{
			Provider:   sum.Provider,
			Model:      sum.Model,
			SaveDir:    exportDir,
			SaveFormat: exportFormat,
		}
		path, err := transcript.Save(conv, cfg, sum.Title)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), infoStyle.Render("exported "+path))
		return nil
	},
}

func openStore() (*history.Store, error) {
	path := dbPath
	if path == "" {
		var err error
		path, err = history.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	store, err := history.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	return store, nil
}

func init() {
	historyCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Archive database location (default ~/.termchat/history.db)")
	historyExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format (json, md)")
	historyExportCmd.Flags().StringVarP(&exportDir, "output", "o", "", "Output directory (default the configured save dir)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
