package transcript

import (
	"encoding/json"
	"io"
	"time"

	"github.com/iksnae/termchat/internal"
)

// JSONEncoder writes transcripts as pretty-printed JSON
type JSONEncoder struct{}

type jsonTranscript struct {
	Timestamp string                `json:"timestamp"`
	Model     string                `json:"model"`
	Provider  string                `json:"provider"`
	Messages  internal.Conversation `json:"messages"`
}

// Encode writes the transcript to w. Messages keep their role, content
// and original order verbatim.
func (e *JSONEncoder) Encode(t *Transcript, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(jsonTranscript{
		Timestamp: t.Timestamp.Format(time.RFC3339),
		Model:     t.Model,
		Provider:  t.Provider,
		Messages:  t.Messages,
	})
}

// Extension returns the file extension for this format
func (e *JSONEncoder) Extension() string {
	return "json"
}
