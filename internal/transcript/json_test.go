package transcript

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/iksnae/termchat/internal"
)

func TestJSONEncoderRoundTrip(t *testing.T) {
	conv := internal.Conversation{
		{Role: internal.RoleUser, Content: "hi"},
		{Role: internal.RoleAssistant, Content: "hello"},
		{Role: internal.RoleUser, Content: "bye"},
	}
	tr := &Transcript{
		Timestamp: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
		Provider:  internal.ProviderOpenAI,
		Model:     "gpt-4o",
		Messages:  conv,
	}

	var buf bytes.Buffer
	if err := (&JSONEncoder{}).Encode(tr, &buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var got jsonTranscript
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("written file is not valid JSON: %v", err)
	}

	if got.Provider != tr.Provider || got.Model != tr.Model {
		t.Errorf("provider/model = %q/%q, want %q/%q", got.Provider, got.Model, tr.Provider, tr.Model)
	}
	if got.Timestamp != "2025-06-01T12:30:00Z" {
		t.Errorf("timestamp = %q, want RFC 3339", got.Timestamp)
	}
	if !reflect.DeepEqual(got.Messages, conv) {
		t.Errorf("messages = %+v, want original conversation in order", got.Messages)
	}
}

func TestJSONEncoderExtension(t *testing.T) {
	if got := (&JSONEncoder{}).Extension(); got != "json" {
		t.Errorf("Extension() = %q, want json", got)
	}
}
