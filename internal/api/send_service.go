package api

import (
	"context"

	"go.uber.org/zap"

	"github.com/ricardofn/wagate/internal/bridge"
	"github.com/ricardofn/wagate/internal/fault"
)

// Sender is the subset of the bridge client the send service depends on.
type Sender interface {
	SendMessage(ctx context.Context, recipient, message string) (*bridge.Result, error)
	SendFile(ctx context.Context, recipient, mediaPath string) (*bridge.Result, error)
	SendAudio(ctx context.Context, recipient, mediaPath string) (*bridge.Result, error)
	DownloadMedia(ctx context.Context, messageID, chatJID string) (*bridge.Result, error)
}

// SendService validates mutating requests and forwards them to the
// transport bridge. Validation failures never reach the bridge.
type SendService struct {
	bridge Sender
	log    *zap.Logger
}

// NewSendService creates a send service over the given bridge client.
func NewSendService(b Sender, log *zap.Logger) *SendService {
	return &SendService{bridge: b, log: log}
}

// SendMessage forwards a text message.
func (s *SendService) SendMessage(ctx context.Context, recipient, message string) (*bridge.Result, error) {
	if recipient == "" {
		return nil, fault.New(fault.Validation, "recipient is required")
	}
	if message == "" {
		return nil, fault.New(fault.Validation, "message is required")
	}
	s.log.Info("sending message", zap.String("recipient", recipient))
	return s.bridge.SendMessage(ctx, recipient, message)
}

// SendFile forwards a media file send.
func (s *SendService) SendFile(ctx context.Context, recipient, mediaPath string) (*bridge.Result, error) {
	if recipient == "" {
		return nil, fault.New(fault.Validation, "recipient is required")
	}
	if mediaPath == "" {
		return nil, fault.New(fault.Validation, "media_path is required")
	}
	s.log.Info("sending file", zap.String("recipient", recipient), zap.String("path", mediaPath))
	return s.bridge.SendFile(ctx, recipient, mediaPath)
}

// SendAudio forwards an audio send with voice-message semantics.
func (s *SendService) SendAudio(ctx context.Context, recipient, mediaPath string) (*bridge.Result, error) {
	if recipient == "" {
		return nil, fault.New(fault.Validation, "recipient is required")
	}
	if mediaPath == "" {
		return nil, fault.New(fault.Validation, "media_path is required")
	}
	s.log.Info("sending audio", zap.String("recipient", recipient), zap.String("path", mediaPath))
	return s.bridge.SendAudio(ctx, recipient, mediaPath)
}

// DownloadMedia asks the bridge to fetch a message's media locally.
func (s *SendService) DownloadMedia(ctx context.Context, messageID, chatJID string) (*bridge.Result, error) {
	if messageID == "" {
		return nil, fault.New(fault.Validation, "message_id is required")
	}
	if chatJID == "" {
		return nil, fault.New(fault.Validation, "chat_jid is required")
	}
	s.log.Info("downloading media", zap.String("message_id", messageID), zap.String("chat_jid", chatJID))
	return s.bridge.DownloadMedia(ctx, messageID, chatJID)
}
