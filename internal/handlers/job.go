package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/jobdesk/internal/database"
	"github.com/thereayou/jobdesk/internal/handlers/dto"
	"github.com/thereayou/jobdesk/internal/middleware"
	"github.com/thereayou/jobdesk/internal/models"
	"github.com/thereayou/jobdesk/internal/services"
)

type JobHandler struct {
	db     *database.Database
	access *services.AccessControl
}

func NewJobHandler(db *database.Database, access *services.AccessControl) *JobHandler {
	return &JobHandler{db: db, access: access}
}

// ListJobs is public; ?title= filters by substring.
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.db.ListJobs(c.Query("title"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list jobs"})
		return
	}

	result := make([]gin.H, len(jobs))
	for i := range jobs {
		result[i] = formatJobResponse(&jobs[i])
	}

	c.JSON(http.StatusOK, gin.H{"jobs": result})
}

func (h *JobHandler) GetJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	job, err := h.db.GetJob(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	c.JSON(http.StatusOK, formatJobResponse(job))
}

// CreateJob posts a job for a company. Owner/manager only.
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	companyID, err := uuid.Parse(c.Param("companyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}

	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.access.RequireManager(userID, companyID); err != nil {
		abortWithError(c, err)
		return
	}

	job := &models.Job{
		CompanyID:   companyID,
		Title:       req.Title,
		Description: req.Description,
		Salary:      req.Salary,
		CreatedAt:   time.Now(),
	}

	if err := h.db.CreateJob(job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create job"})
		return
	}

	c.JSON(http.StatusCreated, formatJobResponse(job))
}

// UpdateJob edits title/description/salary. Owner/manager only.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	jobID, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	job, err := h.db.GetJob(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	if err := h.access.RequireManager(userID, job.CompanyID); err != nil {
		abortWithError(c, err)
		return
	}

	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != "" {
		job.Title = req.Title
	}
	if req.Description != "" {
		job.Description = req.Description
	}
	if req.Salary > 0 {
		job.Salary = req.Salary
	}

	if err := h.db.UpdateJob(job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update job"})
		return
	}

	c.JSON(http.StatusOK, formatJobResponse(job))
}

// ListApplications returns a job's applications. Owner/manager only.
func (h *JobHandler) ListApplications(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	jobID, err := uuid.Parse(c.Param("jobId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	job, err := h.db.GetJob(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	if err := h.access.RequireManager(userID, job.CompanyID); err != nil {
		abortWithError(c, err)
		return
	}

	applications, err := h.db.ListJobApplications(jobID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list applications"})
		return
	}

	result := make([]gin.H, len(applications))
	for i, app := range applications {
		result[i] = gin.H{
			"id":         app.ID,
			"status":     app.Status,
			"created_at": app.CreatedAt,
			"user": gin.H{
				"id":   app.User.ID,
				"name": app.User.Name,
			},
		}
	}

	c.JSON(http.StatusOK, gin.H{"applications": result})
}

// UpdateApplicationStatus moves an application between pending, accepted
// and rejected. Owner/manager of the job's company only.
func (h *JobHandler) UpdateApplicationStatus(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	applicationID, err := uuid.Parse(c.Param("applicationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application id"})
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.ApplicationStatus(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	application, err := h.db.GetApplication(applicationID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}

	if err := h.access.RequireManager(userID, application.Job.CompanyID); err != nil {
		abortWithError(c, err)
		return
	}

	if err := h.db.UpdateApplicationStatus(applicationID, status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

func formatJobResponse(job *models.Job) gin.H {
	response := gin.H{
		"job_id":      job.ID,
		"title":       job.Title,
		"description": job.Description,
		"salary":      job.Salary,
		"created_at":  job.CreatedAt,
	}

	if job.Company.ID != uuid.Nil {
		response["company"] = gin.H{
			"company_id": job.Company.ID,
			"name":       job.Company.Name,
		}
	}

	return response
}
