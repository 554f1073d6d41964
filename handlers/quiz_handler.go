package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"quizbox/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
	}
}

func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	_, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req services.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data or incomplete fields."})
		return
	}

	quizID, err := h.quizService.CreateQuiz(&req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create quiz."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Quiz created successfully.", "quiz_id": quizID})
}

func (h *QuizHandler) GetQuizByID(c *gin.Context) {
	quizID, err := strconv.ParseUint(c.Param("quizId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz ID"})
		return
	}

	quiz, err := h.quizService.GetQuiz(uint(quizID))
	if err != nil {
		if errors.Is(err, services.ErrQuizNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load quiz."})
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// ListQuizzes returns the quizzes the caller has not attempted yet.
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	quizzes, err := h.quizService.ListQuizzes(userID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list quizzes."})
		return
	}

	c.JSON(http.StatusOK, quizzes)
}
