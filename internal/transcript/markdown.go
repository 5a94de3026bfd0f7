package transcript

import (
	"fmt"
	"io"

	"github.com/iksnae/termchat/internal"
)

// MarkdownEncoder writes transcripts as readable Markdown documents
type MarkdownEncoder struct{}

// Encode writes the transcript to w: a title line with a human-readable
// timestamp, the model and provider, then one section per message.
// System messages render first, the rest in conversation order.
func (e *MarkdownEncoder) Encode(t *Transcript, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# Chat Transcript - %s\n\n", t.Timestamp.Format("January 2, 2006 15:04")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "**Model:** %s (%s)\n\n", t.Model, t.Provider); err != nil {
		return err
	}

	for _, msg := range t.Messages {
		if msg.Role == internal.RoleSystem {
			if err := writeSection(w, msg); err != nil {
				return err
			}
		}
	}
	for _, msg := range t.Messages {
		if msg.Role == internal.RoleSystem {
			continue
		}
		if err := writeSection(w, msg); err != nil {
			return err
		}
	}

	return nil
}

func writeSection(w io.Writer, msg internal.Message) error {
	_, err := fmt.Fprintf(w, "## %s\n\n%s\n\n---\n\n", msg.Role.Display(), msg.Content)
	return err
}

// Extension returns the file extension for this format
func (e *MarkdownEncoder) Extension() string {
	return "md"
}
