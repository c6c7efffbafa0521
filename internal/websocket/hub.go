package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType tags frames on the realtime channel.
type EventType string

const (
	TypePing EventType = "ping"
	TypePong EventType = "pong"

	// Chat events. A client joins a chat's room, receives the stored
	// history once, and from then on gets every appended message live.
	TypeJoinChat       EventType = "joinChat"
	TypeLeaveChat      EventType = "leaveChat"
	TypeSendMessage    EventType = "sendMessage"
	TypeReceiveMessage EventType = "receiveMessage"
	TypeLoadMessages   EventType = "loadMessages"

	TypeError EventType = "error"
)

// Event is the frame exchanged with clients.
type Event struct {
	Type      EventType       `json:"type"`
	ChatID    *uuid.UUID      `json:"chat_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// Hub tracks connected clients and their chat-room membership. All state is
// in-process, single-node; delivery is at-least-once with no retry, clients
// recover missed messages through the REST history endpoint.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Clients per user; one user may hold several connections.
	userClients map[uuid.UUID]map[uuid.UUID]*Client

	// Clients joined to each chat's room.
	chats map[uuid.UUID]map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[uuid.UUID]*Client),
		userClients: make(map[uuid.UUID]map[uuid.UUID]*Client),
		chats:       make(map[uuid.UUID]map[uuid.UUID]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Run processes registration traffic and the keepalive ticker until Stop.
func (h *Hub) Run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-h.ctx.Done():
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case <-ticker.C:
			h.ping()
		}
	}
}

func (h *Hub) Stop() {
	h.cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		close(client.Send)
		if client.Conn != nil {
			client.Conn.Close()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	if _, ok := h.userClients[client.UserID]; !ok {
		h.userClients[client.UserID] = make(map[uuid.UUID]*Client)
	}
	h.userClients[client.UserID][client.ID] = client

	log.Printf("Client registered: %s (User: %s)", client.ID, client.UserID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		for chatID := range client.Chats {
			h.removeFromChatUnsafe(client, chatID)
		}

		if userClients, ok := h.userClients[client.UserID]; ok {
			delete(userClients, client.ID)
			if len(userClients) == 0 {
				delete(h.userClients, client.UserID)
			}
		}

		delete(h.clients, client.ID)
		close(client.Send)

		log.Printf("Client unregistered: %s (User: %s)", client.ID, client.UserID)
	}
}

// JoinChat subscribes the client to a chat's room. Any connection that knows
// a chat id may join; there is no authorization check at join time.
func (h *Hub) JoinChat(client *Client, chatID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.chats[chatID]; !ok {
		h.chats[chatID] = make(map[uuid.UUID]*Client)
	}

	h.chats[chatID][client.ID] = client
	client.mu.Lock()
	client.Chats[chatID] = true
	client.mu.Unlock()
}

func (h *Hub) LeaveChat(client *Client, chatID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromChatUnsafe(client, chatID)
}

func (h *Hub) removeFromChatUnsafe(client *Client, chatID uuid.UUID) {
	if room, ok := h.chats[chatID]; ok {
		if _, ok := room[client.ID]; ok {
			delete(room, client.ID)
			client.mu.Lock()
			delete(client.Chats, chatID)
			client.mu.Unlock()

			if len(room) == 0 {
				delete(h.chats, chatID)
			}
		}
	}
}

// SendToChat fans a frame out to every connection joined to the chat's room,
// the sender's own connection included.
func (h *Hub) SendToChat(chatID uuid.UUID, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if room, ok := h.chats[chatID]; ok {
		for _, client := range room {
			select {
			case client.Send <- message:
			default:
				log.Printf("Client %s send channel full", client.ID)
			}
		}
	}
}

func (h *Hub) SendToUser(userID uuid.UUID, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.userClients[userID]; ok {
		for _, client := range clients {
			select {
			case client.Send <- message:
			default:
				log.Printf("Client %s send channel full", client.ID)
			}
		}
	}
}

func (h *Hub) ping() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	msg := Event{
		Type:      TypePing,
		Timestamp: time.Now(),
	}

	if data, err := json.Marshal(msg); err == nil {
		for _, client := range h.clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

// GetChatUsers returns the distinct users currently joined to a chat's room.
func (h *Hub) GetChatUsers(chatID uuid.UUID) []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	userMap := make(map[uuid.UUID]bool)
	if room, ok := h.chats[chatID]; ok {
		for _, client := range room {
			userMap[client.UserID] = true
		}
	}

	users := make([]uuid.UUID, 0, len(userMap))
	for userID := range userMap {
		users = append(users, userID)
	}
	return users
}
