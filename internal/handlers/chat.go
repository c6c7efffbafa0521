package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/jobdesk/internal/handlers/dto"
	"github.com/thereayou/jobdesk/internal/middleware"
	"github.com/thereayou/jobdesk/internal/models"
	"github.com/thereayou/jobdesk/internal/services"
)

type ChatHandler struct {
	svc    *services.ChatService
	access *services.AccessControl
}

func NewChatHandler(svc *services.ChatService, access *services.AccessControl) *ChatHandler {
	return &ChatHandler{svc: svc, access: access}
}

// GetUserChats lists the caller's chats, most recently active first.
func (h *ChatHandler) GetUserChats(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	chats, err := h.svc.ListChatsForUser(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, chats)
}

// GetCompanyChats lists a company's chats. Owner/manager only.
func (h *ChatHandler) GetCompanyChats(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	companyID, err := uuid.Parse(c.Param("companyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID format"})
		return
	}

	chats, err := h.svc.ListCompanyChats(userID, companyID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, chats)
}

// GetPairMessages returns the message history of the chat between a user
// and a company.
func (h *ChatHandler) GetPairMessages(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID format"})
		return
	}

	companyID, err := uuid.Parse(c.Param("companyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID format"})
		return
	}

	messages, err := h.svc.PairHistory(userID, companyID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// SendPairMessage posts into the chat between a user and a company,
// creating the chat on first contact. The caller speaks as themselves when
// they are the user side; company staff with the owner or manager role speak
// as the company.
func (h *ChatHandler) SendPairMessage(c *gin.Context) {
	callerID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID format"})
		return
	}

	companyID, err := uuid.Parse(c.Param("companyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID format"})
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var sender models.Sender
	if callerID == userID {
		sender = models.UserSender(callerID)
	} else {
		if err := h.access.RequireManager(callerID, companyID); err != nil {
			abortWithError(c, err)
			return
		}
		sender = models.CompanySender(companyID)
	}

	chat, err := h.svc.ResolveOrCreate(userID, companyID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	message, err := h.svc.Append(chat.ID, sender, req.Content)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}
