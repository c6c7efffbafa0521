package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/thereayou/jobdesk/internal/middleware"
	ws "github.com/thereayou/jobdesk/internal/websocket"
)

// WebSocketHandler upgrades HTTP requests to websocket connections.
type WebSocketHandler struct {
	hub          *ws.Hub
	eventHandler *ChatSocketHandler
	upgrader     websocket.Upgrader
}

func NewWebSocketHandler(hub *ws.Hub, eventHandler *ChatSocketHandler) *WebSocketHandler {
	return &WebSocketHandler{
		hub:          hub,
		eventHandler: eventHandler,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// TODO: restrict origin in prod
				return true
			},
		},
	}
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, userID.(uuid.UUID))

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.eventHandler)
}
