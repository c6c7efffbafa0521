package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/jobdesk/internal/handlers/dto"
	"github.com/thereayou/jobdesk/internal/models"
	"github.com/thereayou/jobdesk/internal/services"
	"github.com/thereayou/jobdesk/internal/websocket"
)

// ChatSocketHandler processes the chat events arriving on websocket
// connections: joinChat subscribes the connection to the chat's room and
// replays the stored history to it; sendMessage goes through the chat
// service, which persists and broadcasts.
type ChatSocketHandler struct {
	svc    *services.ChatService
	access *services.AccessControl
	hub    *websocket.Hub
}

func NewChatSocketHandler(svc *services.ChatService, access *services.AccessControl, hub *websocket.Hub) *ChatSocketHandler {
	return &ChatSocketHandler{svc: svc, access: access, hub: hub}
}

func (h *ChatSocketHandler) HandleEvent(client *websocket.Client, event *websocket.Event) error {
	switch event.Type {
	case websocket.TypeJoinChat:
		return h.handleJoin(client, event)

	case websocket.TypeSendMessage:
		return h.handleSend(client, event)

	default:
		log.Printf("Unknown event type: %s", event.Type)
		return nil
	}
}

func (h *ChatSocketHandler) handleJoin(client *websocket.Client, event *websocket.Event) error {
	if event.ChatID == nil {
		return websocket.ErrInvalidEvent
	}

	h.hub.JoinChat(client, *event.ChatID)

	// History goes to the joining connection only, not the room.
	history, err := h.svc.History(*event.ChatID)
	if err != nil {
		return err
	}

	return client.SendEvent(websocket.TypeLoadMessages, event.ChatID, history)
}

func (h *ChatSocketHandler) handleSend(client *websocket.Client, event *websocket.Event) error {
	if event.ChatID == nil {
		return websocket.ErrInvalidEvent
	}

	var payload dto.SendEventPayload
	if err := json.Unmarshal(event.Data, &payload); err != nil {
		return err
	}

	sender, err := h.resolveSender(client, payload)
	if err != nil {
		return err
	}

	// The service broadcasts to the room on success.
	_, err = h.svc.Append(*event.ChatID, sender, payload.Content)
	return err
}

// resolveSender picks the message's attributed origin and checks the
// connection may use it. A connection only ever speaks as its own user, or
// as a company it owns or manages; the client cannot pick another identity.
func (h *ChatSocketHandler) resolveSender(client *websocket.Client, payload dto.SendEventPayload) (models.Sender, error) {
	if payload.Type == string(models.SenderCompany) {
		companyID, err := uuid.Parse(payload.SenderID)
		if err != nil {
			return models.Sender{}, websocket.ErrInvalidEvent
		}
		if err := h.access.RequireManager(client.UserID, companyID); err != nil {
			return models.Sender{}, err
		}
		return models.CompanySender(companyID), nil
	}

	if payload.SenderID != "" {
		userID, err := uuid.Parse(payload.SenderID)
		if err != nil {
			return models.Sender{}, websocket.ErrInvalidEvent
		}
		if userID != client.UserID {
			return models.Sender{}, fmt.Errorf("%w: cannot send as another user", services.ErrForbidden)
		}
	}
	return models.UserSender(client.UserID), nil
}

// HubNotifier adapts the websocket hub to the chat service's Broadcaster.
type HubNotifier struct {
	hub *websocket.Hub
}

func NewHubNotifier(hub *websocket.Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

// MessageAppended wraps the stored message in a receiveMessage frame and
// fans it out to the chat's room, the sender's connection included. The
// chat's user-side participant additionally gets the frame on their other
// connections when none of them has joined the room, so their chat list
// stays live.
func (n *HubNotifier) MessageAppended(chat *models.Chat, message services.MessageView) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Failed to marshal message %s: %v", message.ID, err)
		return
	}

	chatID := chat.ID
	event := websocket.Event{
		Type:      websocket.TypeReceiveMessage,
		ChatID:    &chatID,
		Data:      data,
		Timestamp: time.Now(),
	}

	frame, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal event for chat %s: %v", chatID, err)
		return
	}

	n.hub.SendToChat(chatID, frame)

	for _, userID := range n.hub.GetChatUsers(chatID) {
		if userID == chat.UserID {
			return
		}
	}
	n.hub.SendToUser(chat.UserID, frame)
}
