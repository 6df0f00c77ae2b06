package api

import (
	"go.uber.org/zap"

	"github.com/ricardofn/wagate/internal/fault"
	"github.com/ricardofn/wagate/internal/store"
)

// SortLastActive orders chats by last_message_time descending. It is the
// only supported sort key; unknown keys are rejected rather than silently
// ignored.
const SortLastActive = "last_active"

// DefaultPageSize is applied when a request leaves limit unset.
const DefaultPageSize = 20

// ChatService builds chat summaries and resolves chats by jid or contact.
type ChatService struct {
	db  *store.DB
	log *zap.Logger
}

// NewChatService creates a chat service backed by the message store.
func NewChatService(db *store.DB, log *zap.Logger) *ChatService {
	return &ChatService{db: db, log: log}
}

// ListChats returns one page of chat summaries ordered by last activity.
// When includeLastMessage is false the correlation join is skipped and the
// summaries carry identity fields only.
func (s *ChatService) ListChats(limit, page int, sortBy string, includeLastMessage bool) ([]ChatSummary, error) {
	if sortBy != "" && sortBy != SortLastActive {
		return nil, fault.New(fault.Validation, "unsupported sort_by %q, supported: %s", sortBy, SortLastActive)
	}
	limit, offset, err := pageBounds(limit, page)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.ListChats(limit, offset, includeLastMessage)
	if err != nil {
		s.log.Error("list chats failed", zap.Error(err))
		return nil, fault.Wrap(fault.Store, err, "list chats")
	}

	summaries := make([]ChatSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, summarize(row))
	}
	return summaries, nil
}

// GetChat returns a single chat summary by jid.
func (s *ChatService) GetChat(jid string, includeLastMessage bool) (*ChatSummary, error) {
	if jid == "" {
		return nil, fault.New(fault.Validation, "chat_jid is required")
	}
	row, err := s.db.GetChat(jid, includeLastMessage)
	if err != nil {
		s.log.Error("get chat failed", zap.String("jid", jid), zap.Error(err))
		return nil, fault.Wrap(fault.Store, err, "get chat %s", jid)
	}
	if row == nil {
		return nil, fault.New(fault.NotFound, "chat %s not found", jid)
	}
	summary := summarize(*row)
	return &summary, nil
}

// GetDirectChatByContact returns the direct chat for a contact's phone
// number.
func (s *ChatService) GetDirectChatByContact(phone string) (*ChatSummary, error) {
	if phone == "" {
		return nil, fault.New(fault.Validation, "sender_phone_number is required")
	}
	row, err := s.db.GetDirectChatByPhone(phone, true)
	if err != nil {
		s.log.Error("get direct chat failed", zap.String("phone", phone), zap.Error(err))
		return nil, fault.Wrap(fault.Store, err, "get direct chat for %s", phone)
	}
	if row == nil {
		return nil, fault.New(fault.NotFound, "no direct chat with %s", phone)
	}
	summary := summarize(*row)
	return &summary, nil
}

// GetContactChats returns one page of the chats a contact participates in.
func (s *ChatService) GetContactChats(jid string, limit, page int) ([]ChatSummary, error) {
	if jid == "" {
		return nil, fault.New(fault.Validation, "jid is required")
	}
	limit, offset, err := pageBounds(limit, page)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.ListChatsForContact(jid, limit, offset)
	if err != nil {
		s.log.Error("list contact chats failed", zap.String("jid", jid), zap.Error(err))
		return nil, fault.Wrap(fault.Store, err, "list chats for %s", jid)
	}

	summaries := make([]ChatSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, summarize(row))
	}
	return summaries, nil
}

func pageBounds(limit, page int) (int, int, error) {
	if limit < 0 {
		return 0, 0, fault.New(fault.Validation, "limit must not be negative")
	}
	if page < 0 {
		return 0, 0, fault.New(fault.Validation, "page must not be negative")
	}
	if limit == 0 {
		limit = DefaultPageSize
	}
	return limit, page * limit, nil
}
