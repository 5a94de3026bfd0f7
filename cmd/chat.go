package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/termchat/internal"
	"github.com/iksnae/termchat/internal/history"
	"github.com/iksnae/termchat/internal/provider"
	"github.com/iksnae/termchat/internal/transcript"
	"github.com/spf13/cobra"
)

var (
	// Styles
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	replyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true)

	providerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	modelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135"))
)

var noArchive bool

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive conversation with the configured provider.

Slash commands inside the session:
  /set <field> <value>   Change one config field (provider, model, key,
                         temperature, max_tokens, system, dir, format)
  /settings              Show the current configuration
  /models                Show providers and models
  /save [title]          Save the transcript to disk
  /quit                  Exit (the session is archived unless --no-archive)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := internal.LoadConfig(configPath)
		if err != nil {
			return err
		}

		session, err := internal.NewSession(cfg, provider.New)
		if err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}

		return runChat(session, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	chatCmd.Flags().BoolVar(&noArchive, "no-archive", false, "Do not archive the session on exit")
	rootCmd.AddCommand(chatCmd)
}

// runChat drives the interactive loop. The shell owns the conversation:
// it appends the user message before each send and the assistant reply
// after, so the session stays stateless about history.
func runChat(session *internal.Session, in io.Reader, out io.Writer) error {
	cfg := session.Config()
	fmt.Fprintln(out, infoStyle.Render(fmt.Sprintf("termchat — %s / %s (/help for commands)", cfg.Provider, cfg.Model)))

	var conv internal.Conversation
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprint(out, promptStyle.Render("you ▸ ")+" ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := handleCommand(session, &conv, line, out); quit {
				break
			}
			continue
		}

		conv = append(conv, internal.Message{Role: internal.RoleUser, Content: line})

		reply, err := session.SendMessage(context.Background(), conv)
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render(err.Error()))
			continue
		}
		conv = append(conv, internal.Message{Role: internal.RoleAssistant, Content: reply})

		fmt.Fprintln(out, replyStyle.Render(reply))
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("input error: %w", err)
	}

	archiveSession(conv, session.Config(), out)
	return nil
}

// handleCommand dispatches one slash command; returns true on /quit
func handleCommand(session *internal.Session, conv *internal.Conversation, line string, out io.Writer) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true

	case "/help":
		fmt.Fprintln(out, infoStyle.Render("commands: /set /settings /models /save /quit"))

	case "/settings":
		printSettings(session.Config(), out)

	case "/models":
		for _, p := range internal.Providers() {
			fmt.Fprintf(out, "%s: %s\n", providerStyle.Render(p), modelStyle.Render(strings.Join(internal.ModelsFor(p), ", ")))
		}

	case "/save":
		title := strings.Join(fields[1:], " ")
		saveTranscript(*conv, session.Config(), title, out)

	case "/set":
		if len(fields) < 3 {
			fmt.Fprintln(out, errorStyle.Render("usage: /set <field> <value>"))
			return false
		}
		applySetting(session, fields[1], strings.Join(fields[2:], " "), out)

	default:
		fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("unknown command %s (/help for commands)", fields[0])))
	}
	return false
}

// applySetting maps one /set field to a partial config update
func applySetting(session *internal.Session, field, value string, out io.Writer) {
	var update internal.ConfigUpdate
	switch field {
	case "provider":
		update.Provider = &value
	case "model":
		update.Model = &value
	case "key", "api_key":
		update.APIKey = &value
	case "temperature":
		t := internal.ParseTemperature(value)
		update.Temperature = &t
	case "max_tokens":
		m := internal.ParseMaxTokens(value)
		update.MaxTokens = &m
	case "system":
		update.SystemPrompt = &value
	case "dir", "save_dir":
		update.SaveDir = &value
	case "format", "save_format":
		update.SaveFormat = &value
	default:
		fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf("unknown field %q", field)))
		return
	}

	if err := session.UpdateConfig(update); err != nil {
		fmt.Fprintln(out, errorStyle.Render(err.Error()))
		return
	}

	cfg := session.Config()
	fmt.Fprintln(out, infoStyle.Render(fmt.Sprintf("now using %s / %s", cfg.Provider, cfg.Model)))

	if err := internal.WriteConfig(configPath, cfg); err != nil {
		internal.LogDebug("could not persist config: %v", err)
	}
}

func printSettings(cfg internal.ProviderConfig, out io.Writer) {
	key := "(none)"
	if cfg.ResolveAPIKey() != "" {
		key = "(set)"
	}
	fmt.Fprintf(out, "  provider:    %s\n", cfg.Provider)
	fmt.Fprintf(out, "  model:       %s\n", cfg.Model)
	fmt.Fprintf(out, "  key:         %s\n", key)
	fmt.Fprintf(out, "  temperature: %.2f\n", cfg.Temperature)
	fmt.Fprintf(out, "  max_tokens:  %d\n", cfg.MaxTokens)
	fmt.Fprintf(out, "  system:      %s\n", cfg.SystemPrompt)
	fmt.Fprintf(out, "  save_dir:    %s\n", cfg.ResolveSaveDir())
	fmt.Fprintf(out, "  save_format: %s\n", cfg.SaveFormat)
}

func saveTranscript(conv internal.Conversation, cfg internal.ProviderConfig, title string, out io.Writer) {
	if len(conv) == 0 {
		fmt.Fprintln(out, infoStyle.Render("nothing to save yet"))
		return
	}
	path, err := transcript.Save(conv, cfg, title)
	if err != nil {
		fmt.Fprintln(out, errorStyle.Render(err.Error()))
		return
	}
	fmt.Fprintln(out, infoStyle.Render("saved "+path))
}

func archiveSession(conv internal.Conversation, cfg internal.ProviderConfig, out io.Writer) {
	if noArchive || len(conv) == 0 {
		return
	}

	dbPath, err := history.DefaultPath()
	if err != nil {
		internal.LogWarn("could not resolve archive path: %v", err)
		return
	}
	store, err := history.Open(dbPath)
	if err != nil {
		internal.LogWarn("could not open archive: %v", err)
		return
	}
	defer store.Close()

	id, err := store.Archive(conv, cfg, "")
	if err != nil {
		internal.LogWarn("could not archive session: %v", err)
		return
	}
	fmt.Fprintln(out, infoStyle.Render(fmt.Sprintf("archived session %d", id)))
}
