package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"quizbox/services"

	"github.com/gin-gonic/gin"
)

type ResultHandler struct {
	resultService *services.ResultService
}

func NewResultHandler(resultService *services.ResultService) *ResultHandler {
	return &ResultHandler{
		resultService: resultService,
	}
}

func (h *ResultHandler) SubmitAnswer(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req services.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedback, err := h.resultService.SubmitAnswer(userID.(uint), &req)
	if err != nil {
		if errors.Is(err, services.ErrQuestionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, feedback)
}

func (h *ResultHandler) GetResults(c *gin.Context) {
	quizID, err := strconv.ParseUint(c.Param("quizId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz ID"})
		return
	}

	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	result, err := h.resultService.GetResults(uint(quizID), uint(userID))
	if err != nil {
		if errors.Is(err, services.ErrQuizNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found."})
			return
		}
		if errors.Is(err, services.ErrNoResultsForUser) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Results not found for the user in this quiz."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load results."})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ResultHandler) DeleteResult(c *gin.Context) {
	quizID, err := strconv.ParseUint(c.Param("quizId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz ID"})
		return
	}

	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := h.resultService.DeleteResult(uint(quizID), uint(userID)); err != nil {
		if errors.Is(err, services.ErrResultNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Result not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete result."})
		return
	}

	c.Status(http.StatusNoContent)
}
