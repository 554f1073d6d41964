package main

import (
	"log"
	"quizbox/config"
	"quizbox/handlers"
	"quizbox/middleware"
	"quizbox/models"
	"quizbox/routes"
	"quizbox/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.Answer{},
		&models.Result{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	tokenStore := services.NewRedisTokenStore(redisClient)
	authService := services.NewAuthService(db, tokenStore, cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	quizService := services.NewQuizService(db)
	resultService := services.NewResultService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	quizHandler := handlers.NewQuizHandler(quizService)
	resultHandler := handlers.NewResultHandler(resultService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, quizHandler, resultHandler, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
