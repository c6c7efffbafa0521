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

type CompanyHandler struct {
	db     *database.Database
	access *services.AccessControl
}

func NewCompanyHandler(db *database.Database, access *services.AccessControl) *CompanyHandler {
	return &CompanyHandler{db: db, access: access}
}

// CreateCompany registers a company owned by the caller. The owner also
// gets a member record with the owner role.
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company := &models.Company{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
		CreatedAt:   time.Now(),
	}

	if err := h.db.CreateCompany(company); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create company"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "company created", "company": formatCompanyResponse(company)})
}

// GetMyCompanies lists companies the caller owns or is a member of.
func (h *CompanyHandler) GetMyCompanies(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	companies, err := h.db.GetUserCompanies(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get companies"})
		return
	}

	result := make([]gin.H, len(companies))
	for i := range companies {
		result[i] = formatCompanyResponse(&companies[i])
	}

	c.JSON(http.StatusOK, gin.H{"companies": result})
}

// UpdateCompany updates name/description. Owner only.
func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	companyID, err := uuid.Parse(c.Param("companyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := h.db.GetCompany(companyID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
		return
	}

	if company.OwnerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not the owner"})
		return
	}

	company.Name = req.Name
	company.Description = req.Description

	if err := h.db.UpdateCompany(company); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update company"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "company updated"})
}

// AddMember adds a user to the company under a role. Owner/manager only.
func (h *CompanyHandler) AddMember(c *gin.Context) {
	callerID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	companyID, err := uuid.Parse(c.Param("companyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if err := h.access.AddMember(callerID, companyID, targetID, models.Role(req.Role)); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "member added"})
}

// ChangeMemberRole updates an existing member's role. The gate (caller is
// owner/manager, not changing their own role, target already a member) lives
// in the access service.
func (h *CompanyHandler) ChangeMemberRole(c *gin.Context) {
	callerID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	companyID, err := uuid.Parse(c.Param("companyId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company id"})
		return
	}

	targetID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req dto.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.access.ChangeRole(callerID, companyID, targetID, models.Role(req.Role)); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "role updated"})
}

func formatCompanyResponse(company *models.Company) gin.H {
	return gin.H{
		"company_id":  company.ID,
		"name":        company.Name,
		"description": company.Description,
		"avatar_url":  company.AvatarURL,
		"owner_id":    company.OwnerID,
	}
}
