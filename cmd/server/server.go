package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/thereayou/jobdesk/internal/database"
	"github.com/thereayou/jobdesk/internal/handlers"
	"github.com/thereayou/jobdesk/internal/services"
	"github.com/thereayou/jobdesk/internal/websocket"
	"github.com/thereayou/jobdesk/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *websocket.Hub
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn, err := database.Connect()
	if err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)

	hub := websocket.NewHub()
	go hub.Run()

	access := services.NewAccessControl(dbConn)
	chatSvc := services.NewChatService(dbConn, handlers.NewHubNotifier(hub), access)

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, rdb)
	userH := handlers.NewUserHandler(dbConn)
	companyH := handlers.NewCompanyHandler(dbConn, access)
	jobH := handlers.NewJobHandler(dbConn, access)
	applicationH := handlers.NewApplicationHandler(dbConn, chatSvc)
	chatH := handlers.NewChatHandler(chatSvc, access)
	wsH := handlers.NewWebSocketHandler(hub, handlers.NewChatSocketHandler(chatSvc, access, hub))

	router := gin.Default()
	APIEndpoints(router, &Handlers{
		Auth:        authH,
		User:        userH,
		Company:     companyH,
		Job:         jobH,
		Application: applicationH,
		Chat:        chatH,
		WS:          wsH,
		JWT:         jwtMgr,
		Redis:       rdb,
	})

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		s.Hub.Stop()
		log.Fatalf("Server run error: %v", err)
	}
}
