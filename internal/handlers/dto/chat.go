package dto

// SendMessageRequest is the REST body for posting into a user↔company chat.
type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendEventPayload is the data of an inbound websocket sendMessage frame.
// Type selects which side of the conversation is speaking; an empty
// SenderID means the connection's own user.
type SendEventPayload struct {
	Content  string `json:"content"`
	SenderID string `json:"senderId"`
	Type     string `json:"type"`
}
