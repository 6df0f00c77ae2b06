package api

import (
	"go.uber.org/zap"

	"github.com/ricardofn/wagate/internal/fault"
	"github.com/ricardofn/wagate/internal/store"
)

// Context window defaults: the dedicated context endpoint uses a wide
// window, inline expansion during listing a narrow one.
const (
	DefaultContextWindow       = 5
	DefaultInlineContextWindow = 1
)

// MessageService lists and filters messages and assembles context windows.
type MessageService struct {
	db  *store.DB
	log *zap.Logger
}

// NewMessageService creates a message service backed by the message store.
func NewMessageService(db *store.DB, log *zap.Logger) *MessageService {
	return &MessageService{db: db, log: log}
}

// ListMessagesForChat returns one page of a chat's messages, oldest-first
// within the page.
func (s *MessageService) ListMessagesForChat(chatJID string, limit, page int) ([]store.Message, error) {
	if chatJID == "" {
		return nil, fault.New(fault.Validation, "chat_jid is required")
	}
	limit, offset, err := pageBounds(limit, page)
	if err != nil {
		return nil, err
	}

	msgs, err := s.db.ListMessagesForChat(chatJID, limit, offset)
	if err != nil {
		s.log.Error("list chat messages failed", zap.String("chat", chatJID), zap.Error(err))
		return nil, fault.Wrap(fault.Store, err, "list messages for %s", chatJID)
	}
	return msgs, nil
}

// ListMessages returns one page of messages matching the filter. When
// includeContext is set each hit is expanded into its surrounding window;
// otherwise the windows are empty.
func (s *MessageService) ListMessages(f store.MessageFilter, page int, includeContext bool, before, after int) ([]MessageContext, error) {
	limit, offset, err := pageBounds(f.Limit, page)
	if err != nil {
		return nil, err
	}
	f.Limit = limit
	f.Offset = offset

	msgs, err := s.db.ListMessages(f)
	if err != nil {
		s.log.Error("list messages failed", zap.Error(err))
		return nil, fault.Wrap(fault.Store, err, "list messages")
	}

	results := make([]MessageContext, 0, len(msgs))
	for _, m := range msgs {
		mc := MessageContext{Message: m}
		if includeContext {
			if err := s.expand(&mc, windowOrDefault(before, DefaultInlineContextWindow), windowOrDefault(after, DefaultInlineContextWindow)); err != nil {
				return nil, err
			}
		}
		results = append(results, mc)
	}
	return results, nil
}

// GetMessageContext assembles the ordered window around a message. The total
// window never exceeds before+after+1 and shrinks at chat edges. A negative
// window size falls back to the default; an explicit zero means zero.
func (s *MessageService) GetMessageContext(messageID string, before, after int) (*MessageContext, error) {
	if messageID == "" {
		return nil, fault.New(fault.Validation, "message_id is required")
	}
	target, err := s.db.GetMessageByID(messageID)
	if err != nil {
		s.log.Error("get message failed", zap.String("id", messageID), zap.Error(err))
		return nil, fault.Wrap(fault.Store, err, "get message %s", messageID)
	}
	if target == nil {
		return nil, fault.New(fault.NotFound, "message %s not found", messageID)
	}

	mc := MessageContext{Message: *target}
	if err := s.expand(&mc, windowOrDefault(before, DefaultContextWindow), windowOrDefault(after, DefaultContextWindow)); err != nil {
		return nil, err
	}
	return &mc, nil
}

// GetLastInteraction returns the most recent message sent by the contact.
func (s *MessageService) GetLastInteraction(jid string) (*store.Message, error) {
	if jid == "" {
		return nil, fault.New(fault.Validation, "jid is required")
	}
	m, err := s.db.LastMessageForSender(jid)
	if err != nil {
		s.log.Error("get last interaction failed", zap.String("jid", jid), zap.Error(err))
		return nil, fault.Wrap(fault.Store, err, "last interaction with %s", jid)
	}
	if m == nil {
		return nil, fault.New(fault.NotFound, "no interaction with %s", jid)
	}
	return m, nil
}

func (s *MessageService) expand(mc *MessageContext, before, after int) error {
	m := mc.Message
	earlier, err := s.db.ListMessagesBefore(m.ChatJID, m.Timestamp, before)
	if err != nil {
		s.log.Error("context before query failed", zap.String("id", m.ID), zap.Error(err))
		return fault.Wrap(fault.Store, err, "context before message %s", m.ID)
	}
	later, err := s.db.ListMessagesAfter(m.ChatJID, m.Timestamp, after)
	if err != nil {
		s.log.Error("context after query failed", zap.String("id", m.ID), zap.Error(err))
		return fault.Wrap(fault.Store, err, "context after message %s", m.ID)
	}
	mc.Before = earlier
	mc.After = later
	return nil
}

func windowOrDefault(n, def int) int {
	if n < 0 {
		return def
	}
	return n
}
