package api

import (
	"fmt"
	"testing"

	"github.com/ricardofn/wagate/internal/fault"
	"github.com/ricardofn/wagate/internal/store"
)

func seedThread(t *testing.T, db *store.DB, chatJID string, n int) {
	t.Helper()
	seedChat(t, db, chatJID, "", at(n))
	for i := 1; i <= n; i++ {
		seedMessage(t, db, store.Message{
			ID:        fmt.Sprintf("T%d", i),
			ChatJID:   chatJID,
			Sender:    "peer@s.whatsapp.net",
			Content:   fmt.Sprintf("message %d", i),
			Timestamp: at(i),
		})
	}
}

func TestGetMessageContextWindow(t *testing.T) {
	db := testStore(t)
	seedThread(t, db, "c@s.whatsapp.net", 5)

	svc := NewMessageService(db, testLogger())
	mc, err := svc.GetMessageContext("T3", 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if mc.Message.ID != "T3" {
		t.Errorf("target = %s, want T3", mc.Message.ID)
	}
	if len(mc.Before) != 1 || mc.Before[0].ID != "T2" {
		t.Errorf("before = %+v, want [T2]", mc.Before)
	}
	if len(mc.After) != 2 || mc.After[0].ID != "T4" || mc.After[1].ID != "T5" {
		t.Errorf("after = %+v, want [T4 T5]", mc.After)
	}
	if total := len(mc.Before) + 1 + len(mc.After); total > 1+2+1 {
		t.Errorf("window length %d exceeds before+after+1", total)
	}
}

func TestGetMessageContextShrinksAtEdges(t *testing.T) {
	db := testStore(t)
	seedThread(t, db, "c@s.whatsapp.net", 3)

	svc := NewMessageService(db, testLogger())
	mc, err := svc.GetMessageContext("T1", 5, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(mc.Before) != 0 {
		t.Errorf("before first message = %d rows, want 0", len(mc.Before))
	}
	if len(mc.After) != 2 {
		t.Errorf("after = %d rows, want 2", len(mc.After))
	}
}

func TestGetMessageContextWindowSizes(t *testing.T) {
	db := testStore(t)
	seedThread(t, db, "c@s.whatsapp.net", 5)
	svc := NewMessageService(db, testLogger())

	for _, tc := range []struct {
		name          string
		before, after int
		wantBefore    int
		wantAfter     int
	}{
		{"explicit zero means zero", 0, 0, 0, 0},
		{"zero before keeps after", 0, 2, 0, 2},
		{"negative falls back to default", -1, -1, 2, 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			mc, err := svc.GetMessageContext("T3", tc.before, tc.after)
			if err != nil {
				t.Fatal(err)
			}
			if len(mc.Before) != tc.wantBefore {
				t.Errorf("before = %d rows, want %d", len(mc.Before), tc.wantBefore)
			}
			if len(mc.After) != tc.wantAfter {
				t.Errorf("after = %d rows, want %d", len(mc.After), tc.wantAfter)
			}
		})
	}
}

func TestGetMessageContextNotFound(t *testing.T) {
	svc := NewMessageService(testStore(t), testLogger())
	_, err := svc.GetMessageContext("missing", 5, 5)
	if !fault.Is(err, fault.NotFound) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestGetMessageContextRequiresID(t *testing.T) {
	svc := NewMessageService(testStore(t), testLogger())
	if _, err := svc.GetMessageContext("", 5, 5); !fault.Is(err, fault.Validation) {
		t.Fatalf("err = %v, want Validation", err)
	}
}

func TestListMessagesForChatRequiresJID(t *testing.T) {
	svc := NewMessageService(testStore(t), testLogger())
	if _, err := svc.ListMessagesForChat("", 10, 0); !fault.Is(err, fault.Validation) {
		t.Fatalf("err = %v, want Validation", err)
	}
}

func TestListMessagesWithInlineContext(t *testing.T) {
	db := testStore(t)
	seedThread(t, db, "c@s.whatsapp.net", 5)

	svc := NewMessageService(db, testLogger())
	results, err := svc.ListMessages(store.MessageFilter{Query: "message 3"}, 0, true, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	mc := results[0]
	if mc.Message.ID != "T3" {
		t.Errorf("hit = %s, want T3", mc.Message.ID)
	}
	if len(mc.Before) != 1 || len(mc.After) != 1 {
		t.Errorf("inline window = %d/%d, want 1/1", len(mc.Before), len(mc.After))
	}
}

func TestListMessagesWithoutContext(t *testing.T) {
	db := testStore(t)
	seedThread(t, db, "c@s.whatsapp.net", 3)

	svc := NewMessageService(db, testLogger())
	results, err := svc.ListMessages(store.MessageFilter{ChatJID: "c@s.whatsapp.net"}, 0, false, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for _, mc := range results {
		if len(mc.Before) != 0 || len(mc.After) != 0 {
			t.Errorf("context expanded without include_context: %+v", mc)
		}
	}
}

func TestGetLastInteraction(t *testing.T) {
	db := testStore(t)
	seedThread(t, db, "c@s.whatsapp.net", 3)

	svc := NewMessageService(db, testLogger())
	m, err := svc.GetLastInteraction("peer@s.whatsapp.net")
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != "T3" {
		t.Errorf("got %s, want T3", m.ID)
	}

	if _, err := svc.GetLastInteraction("ghost@s.whatsapp.net"); !fault.Is(err, fault.NotFound) {
		t.Errorf("err = %v, want NotFound", err)
	}
	if _, err := svc.GetLastInteraction(""); !fault.Is(err, fault.Validation) {
		t.Errorf("err = %v, want Validation", err)
	}
}
