package store

import "time"

// Chat is a row of the bridge-owned chats table.
type Chat struct {
	JID             string
	Name            string
	LastMessageTime time.Time
}

// Message is a row of the bridge-owned messages table. IDs are unique within
// a chat but not globally.
type Message struct {
	ID        string    `json:"id"`
	ChatJID   string    `json:"chat_jid"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	IsFromMe  bool      `json:"is_from_me"`
	MediaType string    `json:"media_type,omitempty"` // empty when the message carries no media
	Filename  string    `json:"filename,omitempty"`   // empty unless media is attached
}

// ChatRow is a chat correlated with its most recent message. LastMessage is
// nil when the correlation was skipped or no message matches the chat's
// last_message_time.
type ChatRow struct {
	Chat
	LastMessage *Message
}

// Contact is derived from direct chats; it is never stored.
type Contact struct {
	JID         string
	Name        string
	PhoneNumber string
}

// MessageFilter narrows ListMessages. Zero values mean "no constraint".
type MessageFilter struct {
	ChatJID string
	Sender  string
	After   time.Time
	Before  time.Time
	Query   string
	Limit   int
	Offset  int
}
