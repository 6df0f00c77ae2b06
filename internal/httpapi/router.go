// Package httpapi binds the REST surface to the query services and the
// transport bridge. Handlers only bind request shape and translate fault
// kinds to HTTP statuses; all semantics live in internal/api.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ricardofn/wagate/internal/api"
)

// Services groups the collaborators the router binds.
type Services struct {
	Chats    *api.ChatService
	Messages *api.MessageService
	Contacts *api.ContactService
	Sends    *api.SendService
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(svc Services, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(RequestID(), Logging(log), Recovery(log))

	r.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		fail(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	h := &handler{svc: svc}

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", h.health)

		apiGroup.POST("/contacts/search", h.searchContacts)

		apiGroup.POST("/chats/list", h.listChats)
		apiGroup.POST("/chats/get", h.getChat)
		apiGroup.POST("/chats/get-by-contact", h.getChatByContact)
		apiGroup.POST("/chats/get-contact-chats", h.getContactChats)

		apiGroup.POST("/messages/list", h.listMessages)
		apiGroup.POST("/messages/list-by-chat", h.listChatMessages)
		apiGroup.POST("/messages/get-context", h.getMessageContext)
		apiGroup.POST("/interactions/get-last", h.getLastInteraction)

		apiGroup.POST("/messages/send", h.sendMessage)
		apiGroup.POST("/files/send", h.sendFile)
		apiGroup.POST("/audio/send", h.sendAudio)
		apiGroup.POST("/media/download", h.downloadMedia)
	}

	return r
}

type handler struct {
	svc Services
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
