package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mufradat/mufradat-backend/internal/middleware"
	"github.com/mufradat/mufradat-backend/internal/model"
	"github.com/mufradat/mufradat-backend/internal/response"
	"github.com/mufradat/mufradat-backend/internal/service"
	"github.com/mufradat/mufradat-backend/internal/store"
	"github.com/mufradat/mufradat-backend/internal/validator"
)

// QuizHandler handles the quiz lifecycle endpoints.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// StartQuiz godoc
// POST /api/v1/quiz/start
// Draws questions for the selected tags and opens an expiring session.
func (h *QuizHandler) StartQuiz(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.StartQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	quiz, err := h.quizService.StartQuiz(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoWordsAvailable):
			response.Fail(c, http.StatusBadRequest, response.ErrNoWordsAvailable)
		case errors.Is(err, service.ErrInvalidTags):
			response.Fail(c, http.StatusBadRequest, response.ErrValidation)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, quiz)
}

// SubmitQuiz godoc
// POST /api/v1/quiz/submit
// Grades and persists the session's single submission. An expired, consumed,
// unknown, or foreign token is a 404 — a client fault, never a server one.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.SubmitQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.quizService.SubmitQuiz(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrQuizSessionNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetQuizResult godoc
// GET /api/v1/quiz/results/:id
func (h *QuizHandler) GetQuizResult(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	resultID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	result, err := h.quizService.GetQuizResult(c.Request.Context(), claims.UserID, resultID)
	if err != nil {
		if errors.Is(err, service.ErrResultNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// GetQuizHistory godoc
// GET /api/v1/quiz/history?page=1&limit=10
// Pages through the user's results, newest first. Non-positive page/limit is
// rejected rather than silently defaulted.
func (h *QuizHandler) GetQuizHistory(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	page, errPage := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, errLimit := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if errPage != nil || errLimit != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
		return
	}

	history, err := h.quizService.GetQuizHistory(c.Request.Context(), claims.UserID, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPagination) {
			response.Fail(c, http.StatusBadRequest, response.ErrValidation)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"results": history.Items}, &response.Pagination{
		Page:       history.Page,
		PerPage:    history.Limit,
		TotalItems: int(history.Total),
		TotalPages: int(math.Ceil(float64(history.Total) / float64(history.Limit))),
	})
}
