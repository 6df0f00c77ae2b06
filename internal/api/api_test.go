package api

import (
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ricardofn/wagate/internal/store"
)

func testStore(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "messages.db"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func seedChat(t *testing.T, db *store.DB, jid, name string, last time.Time) {
	t.Helper()
	if _, err := db.Exec(`INSERT INTO chats (jid, name, last_message_time) VALUES (?, ?, ?)`,
		jid, name, last); err != nil {
		t.Fatal(err)
	}
}

func seedMessage(t *testing.T, db *store.DB, m store.Message) {
	t.Helper()
	if _, err := db.Exec(`
		INSERT INTO messages (id, chat_jid, sender, content, timestamp, is_from_me, media_type, filename)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ChatJID, m.Sender, m.Content, m.Timestamp, m.IsFromMe, m.MediaType, m.Filename); err != nil {
		t.Fatal(err)
	}
}

func at(second int) time.Time {
	return time.Date(2025, 6, 1, 12, 0, second, 0, time.UTC)
}

func testLogger() *zap.Logger { return zap.NewNop() }
