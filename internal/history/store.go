// Package history keeps a local SQLite archive of completed chat
// sessions, separate from the one-file-per-save transcripts.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/iksnae/termchat/internal"
)

// DBPathEnv overrides the archive location
const DBPathEnv = "TERMCHAT_DB"

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TEXT NOT NULL,
	provider TEXT NOT NULL,
	model TEXT NOT NULL,
	title TEXT
);
CREATE TABLE IF NOT EXISTS messages (
	session_id INTEGER NOT NULL REFERENCES sessions(id),
	seq INTEGER NOT NULL,
	role TEXT NOT NULL,
	content TEXT NOT NULL,
	PRIMARY KEY (session_id, seq)
);
`

// Summary describes one archived session
type Summary struct {
	ID           int64
	CreatedAt    time.Time
	Provider     string
	Model        string
	Title        string
	MessageCount int
}

// Store is the session archive backed by a SQLite database
type Store struct {
	db *sql.DB
}

// DefaultPath resolves the archive location: TERMCHAT_DB, else
// ~/.termchat/history.db
func DefaultPath() (string, error) {
	if path := os.Getenv(DBPathEnv); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".termchat", "history.db"), nil
}

// Open opens (or creates) the archive at path and applies the schema
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Archive inserts the conversation and its session row transactionally
// and returns the new session id
func (s *Store) Archive(conv internal.Conversation, cfg internal.ProviderConfig, title string) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(
		"INSERT INTO sessions (created_at, provider, model, title) VALUES (?, ?, ?, ?)",
		time.Now().Format(time.RFC3339), cfg.Provider, cfg.Model, title,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get session id: %w", err)
	}

	for i, msg := range conv {
		if _, err := tx.Exec(
			"INSERT INTO messages (session_id, seq, role, content) VALUES (?, ?, ?, ?)",
			id, i, string(msg.Role), msg.Content,
		); err != nil {
			return 0, fmt.Errorf("failed to insert message %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit session: %w", err)
	}

	internal.LogDebug("archived session %d (%d messages)", id, len(conv))
	return id, nil
}

// List returns summaries of all archived sessions, newest first
func (s *Store) List() ([]Summary, error) {
	rows, err := s.db.Query(`
		SELECT s.id, s.created_at, s.provider, s.model, COALESCE(s.title, ''), COUNT(m.session_id)
		FROM sessions s
		LEFT JOIN messages m ON m.session_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at DESC, s.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		var createdAt string
		if err := rows.Scan(&sum.ID, &createdAt, &sum.Provider, &sum.Model, &sum.Title, &sum.MessageCount); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		sum.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return summaries, nil
}

// Get returns one archived session's conversation and summary
func (s *Store) Get(id int64) (internal.Conversation, *Summary, error) {
	var sum Summary
	var createdAt string
	err := s.db.QueryRow(
		"SELECT id, created_at, provider, model, COALESCE(title, '') FROM sessions WHERE id = ?", id,
	).Scan(&sum.ID, &createdAt, &sum.Provider, &sum.Model, &sum.Title)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("session %d not found", id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("query failed: %w", err)
	}
	sum.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	rows, err := s.db.Query(
		"SELECT role, content FROM messages WHERE session_id = ? ORDER BY seq", id,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var conv internal.Conversation
	for rows.Next() {
		var role, content string
		if err := rows.Scan(&role, &content); err != nil {
			return nil, nil, fmt.Errorf("scan failed: %w", err)
		}
		conv = append(conv, internal.Message{Role: internal.Role(role), Content: content})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("rows iteration error: %w", err)
	}

	sum.MessageCount = len(conv)
	return conv, &sum, nil
}
