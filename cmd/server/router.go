package main

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/thereayou/jobdesk/internal/handlers"
	"github.com/thereayou/jobdesk/internal/middleware"
	"github.com/thereayou/jobdesk/pkg/auth"
)

type Handlers struct {
	Auth        *handlers.AuthHandler
	User        *handlers.UserHandler
	Company     *handlers.CompanyHandler
	Job         *handlers.JobHandler
	Application *handlers.ApplicationHandler
	Chat        *handlers.ChatHandler
	WS          *handlers.WebSocketHandler
	JWT         *auth.JWTManager
	Redis       *redis.Client
}

func APIEndpoints(r *gin.Engine, h *Handlers) {
	authRequired := middleware.AuthMiddleware(h.JWT, h.Redis)

	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/logout", authRequired, h.Auth.Logout)
	}

	// Profile endpoints
	users := r.Group("/users")
	{
		users.GET("/me", authRequired, h.User.GetMe)
		users.GET("/:id", h.User.GetUser)
	}

	// Company endpoints
	companies := r.Group("/companies", authRequired)
	{
		companies.POST("", h.Company.CreateCompany)
		companies.GET("/my", h.Company.GetMyCompanies)
		companies.PUT("/:companyId", h.Company.UpdateCompany)
		companies.POST("/:companyId/members", h.Company.AddMember)
		companies.PUT("/:companyId/members/:userId/role", h.Company.ChangeMemberRole)
		companies.POST("/:companyId/jobs", h.Job.CreateJob)
	}

	// Job endpoints
	r.GET("/jobs", h.Job.ListJobs)
	r.GET("/job/:jobId", h.Job.GetJob)
	r.PUT("/job/:jobId", authRequired, h.Job.UpdateJob)
	r.GET("/job/:jobId/applications", authRequired, h.Job.ListApplications)

	// Application endpoints
	r.POST("/application/:jobId", authRequired, h.Application.Apply)
	r.PUT("/application/:applicationId/status", authRequired, h.Job.UpdateApplicationStatus)

	// Chat endpoints. The pair-history GET has no auth, matching the
	// public read the client relies on.
	chat := r.Group("/chat")
	{
		chat.GET("/user", authRequired, h.Chat.GetUserChats)
		chat.GET("/company/:companyId", authRequired, h.Chat.GetCompanyChats)
		chat.GET("/:userId/:companyId", h.Chat.GetPairMessages)
		chat.POST("/:userId/:companyId", authRequired, h.Chat.SendPairMessage)
	}

	// Realtime channel
	r.GET("/ws", middleware.WSAuthMiddleware(h.JWT, h.Redis), h.WS.HandleWebSocket)
}
