package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/lhajoosten/studdit-api/internal/config"
	"github.com/lhajoosten/studdit-api/internal/constants"
	"github.com/lhajoosten/studdit-api/internal/database"
	"github.com/lhajoosten/studdit-api/internal/handlers"
	"github.com/lhajoosten/studdit-api/internal/middleware"
	"github.com/lhajoosten/studdit-api/internal/repository"
	"github.com/lhajoosten/studdit-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	tagRepo := repository.NewTagRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	questionService := services.NewQuestionService(questionRepo, tagRepo, userRepo)
	answerService := services.NewAnswerService(answerRepo, questionRepo, userRepo)
	voteService := services.NewVoteService(voteRepo, questionRepo, answerRepo, userRepo)
	tagService := services.NewTagService(tagRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, answerService)
	questionHandler := handlers.NewQuestionHandler(questionService)
	answerHandler := handlers.NewAnswerHandler(answerService)
	voteHandler := handlers.NewVoteHandler(voteService)
	tagHandler := handlers.NewTagHandler(tagService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Studdit API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// User routes (reads public, writes protected)
		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.GET("/:id/profile", userHandler.GetProfile)
			users.GET("/:id/answers", userHandler.ListUserAnswers)
			users.PUT("/:id", middleware.RequireAuth(), userHandler.UpdateUser)
			users.DELETE("/:id", middleware.RequireAuth(), userHandler.DeleteUser)
			users.POST("/:id/reputation", middleware.RequireAuth(), userHandler.GrantReputation)
		}

		// Question routes (reads public, writes protected)
		questions := api.Group("/questions")
		{
			questions.GET("", questionHandler.ListQuestions)
			questions.GET("/:id", questionHandler.GetQuestion)
			questions.GET("/:id/answers", answerHandler.ListAnswers)
			questions.POST("", middleware.RequireAuth(), questionHandler.CreateQuestion)
			questions.PUT("/:id", middleware.RequireAuth(), questionHandler.UpdateQuestion)
			questions.DELETE("/:id", middleware.RequireAuth(), questionHandler.DeleteQuestion)
			questions.POST("/:id/close", middleware.RequireAuth(), questionHandler.CloseQuestion)
			questions.POST("/:id/reopen", middleware.RequireAuth(), questionHandler.ReopenQuestion)
			questions.POST("/:id/answers", middleware.RequireAuth(), answerHandler.CreateAnswer)
			questions.POST("/:id/votes", middleware.RequireAuth(), voteHandler.CastQuestionVote)
		}

		// Answer routes (reads public, writes protected)
		answers := api.Group("/answers")
		{
			answers.GET("", answerHandler.ListAllAnswers)
			answers.GET("/accepted", answerHandler.ListAcceptedAnswers)
			answers.GET("/:id", answerHandler.GetAnswer)
			answers.PUT("/:id", middleware.RequireAuth(), answerHandler.UpdateAnswer)
			answers.DELETE("/:id", middleware.RequireAuth(), answerHandler.DeleteAnswer)
			answers.POST("/:id/accept", middleware.RequireAuth(), answerHandler.AcceptAnswer)
			answers.POST("/:id/votes", middleware.RequireAuth(), voteHandler.CastAnswerVote)
		}

		// Vote routes (reads public, writes protected)
		votes := api.Group("/votes")
		{
			votes.GET("", voteHandler.ListVotes)
			votes.GET("/:id", voteHandler.GetVote)
			votes.PUT("/:id", middleware.RequireAuth(), voteHandler.ChangeVote)
			votes.DELETE("/:id", middleware.RequireAuth(), voteHandler.RetractVote)
		}

		// Tag routes (reads public, curation protected)
		tags := api.Group("/tags")
		{
			tags.GET("", tagHandler.ListTags)
			tags.GET("/:id", tagHandler.GetTag)
			tags.PUT("/:id", middleware.RequireAuth(), tagHandler.UpdateTag)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
