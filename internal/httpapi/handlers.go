package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ricardofn/wagate/internal/bridge"
	"github.com/ricardofn/wagate/internal/store"
)

type searchContactsRequest struct {
	Query string `json:"query"`
}

func (h *handler) searchContacts(c *gin.Context) {
	var req searchContactsRequest
	if !bindJSON(c, &req) {
		return
	}
	contacts, err := h.svc.Contacts.SearchContacts(req.Query)
	if err != nil {
		failErr(c, err)
		return
	}
	out := make([]gin.H, 0, len(contacts))
	for _, ct := range contacts {
		out = append(out, gin.H{
			"jid":          ct.JID,
			"name":         ct.Name,
			"phone_number": ct.PhoneNumber,
		})
	}
	ok(c, gin.H{"contacts": out})
}

type listChatsRequest struct {
	Limit              int    `json:"limit"`
	Page               int    `json:"page"`
	SortBy             string `json:"sort_by"`
	IncludeLastMessage *bool  `json:"include_last_message"`
}

func (h *handler) listChats(c *gin.Context) {
	var req listChatsRequest
	if !bindJSON(c, &req) {
		return
	}
	includeLast := req.IncludeLastMessage == nil || *req.IncludeLastMessage
	chats, err := h.svc.Chats.ListChats(req.Limit, req.Page, req.SortBy, includeLast)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"chats": chats})
}

type getChatRequest struct {
	ChatJID            string `json:"chat_jid"`
	IncludeLastMessage *bool  `json:"include_last_message"`
}

func (h *handler) getChat(c *gin.Context) {
	var req getChatRequest
	if !bindJSON(c, &req) {
		return
	}
	includeLast := req.IncludeLastMessage == nil || *req.IncludeLastMessage
	chat, err := h.svc.Chats.GetChat(req.ChatJID, includeLast)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"chat": chat})
}

type getChatByContactRequest struct {
	SenderPhoneNumber string `json:"sender_phone_number"`
}

func (h *handler) getChatByContact(c *gin.Context) {
	var req getChatByContactRequest
	if !bindJSON(c, &req) {
		return
	}
	chat, err := h.svc.Chats.GetDirectChatByContact(req.SenderPhoneNumber)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"chat": chat})
}

type getContactChatsRequest struct {
	JID   string `json:"jid"`
	Limit int    `json:"limit"`
	Page  int    `json:"page"`
}

func (h *handler) getContactChats(c *gin.Context) {
	var req getContactChatsRequest
	if !bindJSON(c, &req) {
		return
	}
	chats, err := h.svc.Chats.GetContactChats(req.JID, req.Limit, req.Page)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"chats": chats})
}

type listMessagesRequest struct {
	After             string `json:"after"`
	Before            string `json:"before"`
	SenderPhoneNumber string `json:"sender_phone_number"`
	ChatJID           string `json:"chat_jid"`
	Query             string `json:"query"`
	Limit             int    `json:"limit"`
	Page              int    `json:"page"`
	IncludeContext    *bool  `json:"include_context"`
	ContextBefore     *int   `json:"context_before"`
	ContextAfter      *int   `json:"context_after"`
}

func (h *handler) listMessages(c *gin.Context) {
	var req listMessagesRequest
	if !bindJSON(c, &req) {
		return
	}

	after, okParse := parseTime(c, "after", req.After)
	if !okParse {
		return
	}
	before, okParse := parseTime(c, "before", req.Before)
	if !okParse {
		return
	}

	sender := req.SenderPhoneNumber
	if sender != "" && !store.IsDirectJID(sender) {
		sender = store.DirectJID(sender)
	}

	filter := store.MessageFilter{
		ChatJID: req.ChatJID,
		Sender:  sender,
		After:   after,
		Before:  before,
		Query:   req.Query,
		Limit:   req.Limit,
	}
	includeContext := req.IncludeContext == nil || *req.IncludeContext

	results, err := h.svc.Messages.ListMessages(filter, req.Page, includeContext, windowArg(req.ContextBefore), windowArg(req.ContextAfter))
	if err != nil {
		failErr(c, err)
		return
	}
	if includeContext {
		ok(c, gin.H{"messages": results})
		return
	}
	msgs := make([]store.Message, 0, len(results))
	for _, mc := range results {
		msgs = append(msgs, mc.Message)
	}
	ok(c, gin.H{"messages": msgs})
}

type listChatMessagesRequest struct {
	ChatJID string `json:"chat_jid"`
	Limit   int    `json:"limit"`
	Page    int    `json:"page"`
}

func (h *handler) listChatMessages(c *gin.Context) {
	var req listChatMessagesRequest
	if !bindJSON(c, &req) {
		return
	}
	msgs, err := h.svc.Messages.ListMessagesForChat(req.ChatJID, req.Limit, req.Page)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"messages": msgs})
}

type getMessageContextRequest struct {
	MessageID string `json:"message_id"`
	Before    *int   `json:"before"`
	After     *int   `json:"after"`
}

func (h *handler) getMessageContext(c *gin.Context) {
	var req getMessageContextRequest
	if !bindJSON(c, &req) {
		return
	}
	mc, err := h.svc.Messages.GetMessageContext(req.MessageID, windowArg(req.Before), windowArg(req.After))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"context": mc})
}

type getLastInteractionRequest struct {
	JID string `json:"jid"`
}

func (h *handler) getLastInteraction(c *gin.Context) {
	var req getLastInteractionRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.svc.Messages.GetLastInteraction(req.JID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, gin.H{"message": m})
}

type sendMessageRequest struct {
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

func (h *handler) sendMessage(c *gin.Context) {
	var req sendMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.Sends.SendMessage(c.Request.Context(), req.Recipient, req.Message)
	if err != nil {
		failErr(c, err)
		return
	}
	writeResult(c, res)
}

type sendMediaRequest struct {
	Recipient string `json:"recipient"`
	MediaPath string `json:"media_path"`
}

func (h *handler) sendFile(c *gin.Context) {
	var req sendMediaRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.Sends.SendFile(c.Request.Context(), req.Recipient, req.MediaPath)
	if err != nil {
		failErr(c, err)
		return
	}
	writeResult(c, res)
}

func (h *handler) sendAudio(c *gin.Context) {
	var req sendMediaRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.Sends.SendAudio(c.Request.Context(), req.Recipient, req.MediaPath)
	if err != nil {
		failErr(c, err)
		return
	}
	writeResult(c, res)
}

type downloadMediaRequest struct {
	MessageID string `json:"message_id"`
	ChatJID   string `json:"chat_jid"`
}

func (h *handler) downloadMedia(c *gin.Context) {
	var req downloadMediaRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.Sends.DownloadMedia(c.Request.Context(), req.MessageID, req.ChatJID)
	if err != nil {
		failErr(c, err)
		return
	}
	writeResult(c, res)
}

// writeResult forwards the bridge's own verdict unchanged. The bridge can
// answer 200 with success=false (device not linked, recipient rejected) and
// the caller must see that, not a synthesized success.
func writeResult(c *gin.Context, res *bridge.Result) {
	body := gin.H{"success": res.Success, "message": res.Message}
	if res.Path != "" {
		body["file_path"] = res.Path
	}
	c.JSON(http.StatusOK, body)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// windowArg distinguishes an absent window size from an explicit zero. The
// services treat a negative size as "use the default".
func windowArg(p *int) int {
	if p == nil {
		return -1
	}
	return *p
}

func parseTime(c *gin.Context, field, value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		fail(c, http.StatusBadRequest, field+" must be an RFC3339 timestamp")
		return time.Time{}, false
	}
	return t, true
}
