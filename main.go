package main

import (
	"log"
	"net/http"
	"time"

	"quizmaster-service/configs"
	"quizmaster-service/internal/db"
	"quizmaster-service/internal/event"
	"quizmaster-service/internal/handlers"
	"quizmaster-service/internal/llm"
	"quizmaster-service/internal/repository"
	"quizmaster-service/internal/service"
	"quizmaster-service/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	configs.LoadConfig()
	cfg := configs.AppConfig

	gin.SetMode(cfg.GinMode)

	db.InitMongo(cfg.MongoURI)
	database := db.Client.Database(cfg.MongoDatabase)

	// RabbitMQ event publisher, optional
	var publisher *event.EventPublisher
	if cfg.RabbitMQURI != "" && cfg.RabbitMQExchange != "" {
		var err error
		publisher, err = event.NewEventPublisher(cfg.RabbitMQURI, cfg.RabbitMQExchange)
		if err != nil {
			log.Printf("RabbitMQ unavailable, events will not be published: %v", err)
			publisher = nil
		} else {
			defer publisher.Close()
		}
	} else {
		log.Println("RabbitMQ not configured, events will not be published")
	}

	// Repositories
	quizRepo := repository.NewQuizRepository(database)
	flashcardRepo := repository.NewFlashcardRepository(database)
	attemptRepo := repository.NewAttemptRepository(database)
	studyRepo := repository.NewStudyRepository(database)
	chatRepo := repository.NewChatRepository(database)

	// Services
	completer := llm.NewClient(cfg.OpenRouterAPIURL, cfg.OpenRouterAPIKey, cfg.DefaultModel)
	quizService := service.NewQuizService(quizRepo, attemptRepo, publisher)
	flashcardService := service.NewFlashcardService(flashcardRepo, studyRepo, publisher)
	chatService := service.NewChatService(chatRepo, completer, cfg.DefaultModel)
	generationService := service.NewGenerationService(completer, cfg.DefaultModel, quizService, flashcardService, publisher)
	adminService := service.NewAdminService(quizRepo, flashcardRepo, attemptRepo, studyRepo, chatRepo)

	// Handlers
	quizHandler := handlers.NewQuizHandler(quizService)
	flashcardHandler := handlers.NewFlashcardHandler(flashcardService)
	aiHandler := handlers.NewAIHandler(chatService, generationService)
	adminHandler := handlers.NewAdminHandler(adminService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://quizmaster.ai"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": cfg.ServiceName,
			"version": cfg.ServiceVersion,
		})
	})

	// Public routes
	public := r.Group("/api")
	{
		public.GET("/quizzes/public", quizHandler.ListPublicQuizzes)
		public.GET("/quizzes/tag/:tag", quizHandler.ListQuizzesByTag)
		public.GET("/quizzes/search", quizHandler.SearchQuizzes)
		public.GET("/quizzes/:id", quizHandler.GetQuiz)

		public.GET("/flashcards/public", flashcardHandler.ListPublicFlashcards)
		public.GET("/flashcards/tag/:tag", flashcardHandler.ListFlashcardsByTag)
		public.GET("/flashcards/search", flashcardHandler.SearchFlashcards)
		public.GET("/flashcards/:id", flashcardHandler.GetFlashcard)
	}

	// Authenticated routes
	protected := r.Group("/api", authRequired())
	{
		protected.POST("/quizzes", quizHandler.CreateQuiz)
		protected.GET("/quizzes/my", quizHandler.ListMyQuizzes)
		protected.DELETE("/quizzes/:id", quizHandler.DeleteQuiz)
		protected.POST("/quizzes/:id/attempts", quizHandler.StartQuiz)
		protected.GET("/attempts", quizHandler.ListMyAttempts)
		protected.GET("/attempts/:attemptId", quizHandler.GetAttempt)
		protected.POST("/attempts/:attemptId/submit", quizHandler.SubmitQuiz)

		protected.POST("/flashcards", flashcardHandler.CreateFlashcard)
		protected.GET("/flashcards/my", flashcardHandler.ListMyFlashcards)
		protected.DELETE("/flashcards/:id", flashcardHandler.DeleteFlashcard)
		protected.POST("/flashcards/:id/studies", flashcardHandler.StartStudy)
		protected.GET("/studies", flashcardHandler.ListMyStudies)
		protected.GET("/studies/:studyId", flashcardHandler.GetStudy)
		protected.POST("/studies/:studyId/submit", flashcardHandler.SubmitStudy)

		protected.POST("/ai/chat/sessions", aiHandler.CreateChatSession)
		protected.GET("/ai/chat/sessions", aiHandler.ListChatSessions)
		protected.GET("/ai/chat/sessions/:id", aiHandler.GetChatSession)
		protected.DELETE("/ai/chat/sessions/:id", aiHandler.DeleteChatSession)
		protected.POST("/ai/chat/sessions/:id/messages", aiHandler.SendChatMessage)
		protected.POST("/ai/generate/quiz", aiHandler.GenerateQuiz)
		protected.POST("/ai/generate/flashcard", aiHandler.GenerateFlashcard)
	}

	// Admin routes
	admin := r.Group("/api/admin", authRequired(), adminRequired())
	{
		admin.GET("/dashboard", adminHandler.DashboardStats)
		admin.GET("/quizzes", quizHandler.ListQuizzes)
		admin.GET("/quizzes/recent", adminHandler.RecentQuizzes)
		admin.GET("/flashcards", flashcardHandler.ListFlashcards)
		admin.GET("/flashcards/recent", adminHandler.RecentFlashcards)
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := utils.ClaimsFromRequest(c)
		if err != nil {
			utils.UnauthorizedResponse(c, "Authentication required")
			c.Abort()
			return
		}
		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

func adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
