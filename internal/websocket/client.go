package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second

	pongWait = 60 * time.Second

	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 64 * 1024 // 64KB
)

// ClientEventHandler receives the chat-level events a client sends in
// (joinChat, sendMessage). The handler does the storage work; the hub only
// moves frames.
type ClientEventHandler interface {
	HandleEvent(client *Client, event *Event) error
}

type Client struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Conn   *websocket.Conn
	Send   chan []byte
	Chats  map[uuid.UUID]bool
	Hub    *Hub
	mu     sync.RWMutex
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID) *Client {
	return &Client{
		ID:     uuid.New(),
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		Chats:  make(map[uuid.UUID]bool),
		Hub:    hub,
	}
}

// ReadPump reads frames from the connection and delegates chat events to
// the handler. It runs until the connection drops.
func (c *Client) ReadPump(handler ClientEventHandler) {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var event Event
		err := c.Conn.ReadJSON(&event)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		switch event.Type {
		case TypePong:
			continue

		case TypeLeaveChat:
			if event.ChatID != nil {
				c.Hub.LeaveChat(c, *event.ChatID)
			}
			continue
		}

		if handler != nil {
			if err := handler.HandleEvent(c, &event); err != nil {
				log.Printf("Error handling event: %v", err)
				c.SendError(err.Error())
			}
		}
	}
}

// WritePump flushes the send channel to the connection and keeps the
// connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			c.Conn.WriteMessage(websocket.TextMessage, message)

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendEvent marshals and queues a frame for this connection only.
func (c *Client) SendEvent(eventType EventType, chatID *uuid.UUID, data interface{}) error {
	event := Event{
		Type:      eventType,
		ChatID:    chatID,
		Timestamp: time.Now(),
	}

	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return err
		}
		event.Data = jsonData
	}

	frame, err := json.Marshal(event)
	if err != nil {
		return err
	}

	select {
	case c.Send <- frame:
		return nil
	default:
		return ErrClientQueueFull
	}
}

func (c *Client) SendError(errorMsg string) {
	c.SendEvent(TypeError, nil, map[string]string{
		"error": errorMsg,
	})
}

func (c *Client) IsInChat(chatID uuid.UUID) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Chats[chatID]
}
