package api

import (
	"time"

	"github.com/ricardofn/wagate/internal/store"
)

// ChatSummary is a chat correlated with its most recent message, shaped for
// the REST surface.
type ChatSummary struct {
	JID             string    `json:"jid"`
	Name            string    `json:"name"`
	LastMessageTime time.Time `json:"last_message_time"`
	LastMessage     string    `json:"last_message"`
	LastSender      string    `json:"last_sender"`
	LastIsFromMe    bool      `json:"last_is_from_me"`
	MediaType       string    `json:"media_type,omitempty"`
	IsGroup         bool      `json:"is_group"`
}

// MessageContext is a target message with its surrounding window. Before and
// After are chronological and may be shorter than requested at chat edges.
type MessageContext struct {
	Message store.Message   `json:"message"`
	Before  []store.Message `json:"before"`
	After   []store.Message `json:"after"`
}

func summarize(row store.ChatRow) ChatSummary {
	s := ChatSummary{
		JID:             row.JID,
		Name:            row.Name,
		LastMessageTime: row.LastMessageTime,
		IsGroup:         store.IsGroupJID(row.JID),
	}
	if s.Name == "" {
		s.Name = row.JID
	}
	if m := row.LastMessage; m != nil {
		s.LastMessage = m.Content
		s.LastSender = m.Sender
		s.LastIsFromMe = m.IsFromMe
		s.MediaType = m.MediaType
	}
	return s
}
