package api

import (
	"go.uber.org/zap"

	"github.com/ricardofn/wagate/internal/fault"
	"github.com/ricardofn/wagate/internal/store"
)

// ContactService derives the contact directory from direct chats.
type ContactService struct {
	db  *store.DB
	log *zap.Logger
}

// NewContactService creates a contact service backed by the message store.
func NewContactService(db *store.DB, log *zap.Logger) *ContactService {
	return &ContactService{db: db, log: log}
}

// SearchContacts matches query case-insensitively against contact names and
// jids. An empty query returns all direct contacts, capped the same way.
func (s *ContactService) SearchContacts(query string) ([]store.Contact, error) {
	contacts, err := s.db.SearchContacts(query)
	if err != nil {
		s.log.Error("search contacts failed", zap.String("query", query), zap.Error(err))
		return nil, fault.Wrap(fault.Store, err, "search contacts")
	}
	return contacts, nil
}
