package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/jobdesk/internal/middleware"
	"github.com/thereayou/jobdesk/internal/models"
	"github.com/thereayou/jobdesk/internal/services"
	"gorm.io/gorm"
)

// ApplicationStore is the slice of the database layer the application
// handler needs.
type ApplicationStore interface {
	GetJob(id uuid.UUID) (*models.Job, error)
	FindApplication(userID, jobID uuid.UUID) (*models.Application, error)
	SaveApplication(application *models.Application) error
}

type ApplicationHandler struct {
	db   ApplicationStore
	chat *services.ChatService
}

func NewApplicationHandler(db ApplicationStore, chat *services.ChatService) *ApplicationHandler {
	return &ApplicationHandler{db: db, chat: chat}
}

// Apply submits an application for a job. First contact between the
// applicant and the job's company also opens their chat, so the company can
// reach out immediately; the chat id is returned alongside. The chat is
// resolved before the application row is stored, so a failed resolve leaves
// nothing behind and the applicant can retry. A duplicate application still
// reports the chat id.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	jobID, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	job, err := h.db.GetJob(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	chat, err := h.chat.ResolveOrCreate(userID, job.CompanyID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if _, err := h.db.FindApplication(userID, jobID); err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "you have already applied for this job", "chatId": chat.ID})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	application := &models.Application{
		UserID:    userID,
		JobID:     jobID,
		Status:    models.ApplicationPending,
		CreatedAt: time.Now(),
	}

	if err := h.db.SaveApplication(application); err != nil {
		// Lost a race against a concurrent double-submit.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "you have already applied for this job", "chatId": chat.ID})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save application"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "application saved successfully",
		"chatId":  chat.ID,
	})
}
