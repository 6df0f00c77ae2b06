// Package bridge proxies mutating actions to the WhatsApp transport bridge
// service over HTTP. The bridge owns the WhatsApp session; this client only
// forwards send and download requests and classifies failures.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ricardofn/wagate/internal/fault"
)

// Per-action timeouts. Text sends are quick; anything touching media gets
// the download bound.
const (
	sendTimeout     = 10 * time.Second
	mediaTimeout    = 30 * time.Second
	downloadTimeout = 30 * time.Second
)

// Client is a reusable handle to the transport bridge. Safe for concurrent
// use.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// Result is the bridge's own response payload, passed through unchanged on
// success.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// New creates a bridge client for the given base URL (e.g.
// "http://localhost:8080/api").
func New(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     log,
	}
}

type sendPayload struct {
	Recipient string `json:"recipient"`
	Message   string `json:"message,omitempty"`
	MediaPath string `json:"media_path,omitempty"`
	MediaType string `json:"media_type,omitempty"`
}

type downloadPayload struct {
	MessageID string `json:"message_id"`
	ChatJID   string `json:"chat_jid"`
}

// SendMessage forwards a text message to the bridge.
func (c *Client) SendMessage(ctx context.Context, recipient, message string) (*Result, error) {
	return c.post(ctx, "/send", sendPayload{Recipient: recipient, Message: message}, sendTimeout)
}

// SendFile forwards a media file send by local path.
func (c *Client) SendFile(ctx context.Context, recipient, mediaPath string) (*Result, error) {
	return c.post(ctx, "/send", sendPayload{Recipient: recipient, MediaPath: mediaPath}, mediaTimeout)
}

// SendAudio forwards an audio file send with voice-message semantics.
func (c *Client) SendAudio(ctx context.Context, recipient, mediaPath string) (*Result, error) {
	return c.post(ctx, "/send", sendPayload{Recipient: recipient, MediaPath: mediaPath, MediaType: "audio"}, mediaTimeout)
}

// DownloadMedia asks the bridge to fetch a message's media to a local file.
func (c *Client) DownloadMedia(ctx context.Context, messageID, chatJID string) (*Result, error) {
	return c.post(ctx, "/download", downloadPayload{MessageID: messageID, ChatJID: chatJID}, downloadTimeout)
}

func (c *Client) post(ctx context.Context, path string, payload any, timeout time.Duration) (*Result, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode bridge payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build bridge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("bridge unreachable", zap.String("path", path), zap.Error(err))
		return nil, fault.Wrap(fault.BridgeUnavailable, err, "failed to connect to transport bridge")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fault.Wrap(fault.BridgeUnavailable, err, "read bridge response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("bridge rejected request",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return nil, fault.Rejected(resp.StatusCode, string(respBody))
	}

	var result Result
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fault.Wrap(fault.BridgeUnavailable, err, "decode bridge response")
	}
	return &result, nil
}
