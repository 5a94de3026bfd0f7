package history

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/iksnae/termchat/internal"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestArchiveAndGet(t *testing.T) {
	store := openTestStore(t)

	conv := internal.Conversation{
		{Role: internal.RoleUser, Content: "hi"},
		{Role: internal.RoleAssistant, Content: "hello"},
		{Role: internal.RoleUser, Content: "bye"},
	}
	cfg := internal.CreateTestConfig()

	id, err := store.Archive(conv, cfg, "Demo")
	if err != nil {
		t.Fatalf("Archive() error = %v", err)
	}

	got, sum, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !reflect.DeepEqual(got, conv) {
		t.Errorf("Get() conversation = %+v, want %+v", got, conv)
	}
	if sum.Provider != cfg.Provider || sum.Model != cfg.Model {
		t.Errorf("summary provider/model = %q/%q, want %q/%q", sum.Provider, sum.Model, cfg.Provider, cfg.Model)
	}
	if sum.Title != "Demo" {
		t.Errorf("summary title = %q, want Demo", sum.Title)
	}
	if sum.MessageCount != len(conv) {
		t.Errorf("summary message count = %d, want %d", sum.MessageCount, len(conv))
	}
}

func TestGetUnknownID(t *testing.T) {
	store := openTestStore(t)
	if _, _, err := store.Get(999); err == nil {
		t.Error("Get(999) succeeded, want error")
	}
}

func TestList(t *testing.T) {
	store := openTestStore(t)
	cfg := internal.CreateTestConfig()

	if _, err := store.Archive(internal.CreateTestConversation(), cfg, "first"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Archive(internal.CreateTestConversation(), cfg, "second"); err != nil {
		t.Fatal(err)
	}

	summaries, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("List() returned %d sessions, want 2", len(summaries))
	}
	// Newest first: the second archive has the higher id.
	if summaries[0].Title != "second" {
		t.Errorf("first listed title = %q, want second", summaries[0].Title)
	}
	for _, s := range summaries {
		if s.MessageCount != 2 {
			t.Errorf("session %d message count = %d, want 2", s.ID, s.MessageCount)
		}
	}
}

func TestListEmpty(t *testing.T) {
	store := openTestStore(t)
	summaries, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(summaries) != 0 {
		t.Errorf("List() on empty archive returned %d sessions", len(summaries))
	}
}

func TestDefaultPathEnvOverride(t *testing.T) {
	t.Setenv(DBPathEnv, "/custom/history.db")
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error = %v", err)
	}
	if path != "/custom/history.db" {
		t.Errorf("DefaultPath() = %q, want the env override", path)
	}
}

func TestOpenReusesExistingArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	id, err := store.Archive(internal.CreateTestConversation(), internal.CreateTestConfig(), "")
	if err != nil {
		t.Fatal(err)
	}
	store.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopening archive: %v", err)
	}
	defer reopened.Close()

	if _, _, err := reopened.Get(id); err != nil {
		t.Errorf("Get() after reopen error = %v", err)
	}
}
