package routes

import (
	"net/http"

	"quizbox/handlers"
	"quizbox/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	quizHandler *handlers.QuizHandler,
	resultHandler *handlers.ResultHandler,
	jwtSecret string,
) {
	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			// User profile and logout
			protected.GET("/auth/profile", authHandler.GetProfile)
			protected.POST("/auth/logout", authHandler.Logout)

			// Quiz routes
			quizzes := protected.Group("/quizzes")
			{
				quizzes.GET("", quizHandler.ListQuizzes)
				quizzes.POST("/create", quizHandler.CreateQuiz)
				quizzes.POST("/submit", resultHandler.SubmitAnswer)
				quizzes.GET("/:quizId", quizHandler.GetQuizByID)
				quizzes.GET("/:quizId/users/:userId/results", resultHandler.GetResults)
				quizzes.DELETE("/:quizId/users/:userId", resultHandler.DeleteResult)
			}
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
