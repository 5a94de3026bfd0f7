package transcript

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iksnae/termchat/internal"
)

// Save writes the conversation to a new uniquely named file in the
// config's save directory, creating the directory if needed. The format
// comes strictly from cfg.SaveFormat (JSON fallback). The file is
// written whole via temp-then-rename, so a failed save never leaves a
// partial file at the target path.
func Save(conv internal.Conversation, cfg internal.ProviderConfig, title string) (string, error) {
	dir := cfg.ResolveSaveDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &internal.SaveError{Path: dir, Err: err}
	}

	now := time.Now()
	enc := NewEncoder(cfg.SaveFormat)
	path := filepath.Join(dir, Filename(now, title, enc.Extension()))

	t := &Transcript{
		Timestamp: now,
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		Messages:  conv,
	}

	var buf bytes.Buffer
	if err := enc.Encode(t, &buf); err != nil {
		return "", &internal.SaveError{Path: path, Err: err}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return "", &internal.SaveError{Path: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &internal.SaveError{Path: path, Err: err}
	}

	internal.LogDebug("saved transcript to %s", path)
	return path, nil
}

// Filename builds the transcript file name from a timestamp, an
// optional title and the encoder extension:
//
//	<stamp>[-<slug>]-chat.<ext>
//
// where stamp is RFC 3339 with ':' and '.' replaced by '-'.
func Filename(ts time.Time, title, ext string) string {
	stamp := strings.NewReplacer(":", "-", ".", "-").Replace(ts.Format(time.RFC3339))
	if slug := Slugify(title); slug != "" {
		return stamp + "-" + slug + "-chat." + ext
	}
	return stamp + "-chat." + ext
}

// Slugify lower-cases the title and replaces every character outside
// [a-z0-9] with '-'
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
