// Package transcript persists conversations to disk as write-once files.
package transcript

import (
	"io"
	"time"

	"github.com/iksnae/termchat/internal"
)

// Transcript is the unit of persistence: one conversation plus the
// provider and model it was held with.
type Transcript struct {
	Timestamp time.Time
	Provider  string
	Model     string
	Messages  internal.Conversation
}

// Encoder defines the interface for all transcript formats
type Encoder interface {
	Encode(t *Transcript, w io.Writer) error
	Extension() string
}

// NewEncoder creates an encoder for the given format. Unrecognized or
// empty formats deterministically fall back to JSON.
func NewEncoder(format string) Encoder {
	switch format {
	case "md", "markdown":
		return &MarkdownEncoder{}
	case "json":
		return &JSONEncoder{}
	default:
		if format != "" {
			internal.LogWarn("unsupported save format %q, falling back to json", format)
		}
		return &JSONEncoder{}
	}
}
