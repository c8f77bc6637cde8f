package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mufradat/mufradat-backend/internal/middleware"
	"github.com/mufradat/mufradat-backend/internal/model"
	"github.com/mufradat/mufradat-backend/internal/response"
	"github.com/mufradat/mufradat-backend/internal/service"
	"github.com/mufradat/mufradat-backend/internal/validator"
)

// TagHandler handles tag management endpoints.
type TagHandler struct {
	tagService *service.TagService
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// ListTags godoc
// GET /api/v1/tags
func (h *TagHandler) ListTags(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	tags, err := h.tagService.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tags": tags})
}

// CreateTag godoc
// POST /api/v1/tags
func (h *TagHandler) CreateTag(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateTagRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	tag, err := h.tagService.Create(c.Request.Context(), claims.UserID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrTagExists) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"tag": tag})
}

// UpdateTag godoc
// PUT /api/v1/tags/:id
func (h *TagHandler) UpdateTag(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpdateTagRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	tag, err := h.tagService.Update(c.Request.Context(), id, claims.UserID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTagNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrTagExists):
			response.Fail(c, http.StatusConflict, response.ErrConflict)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"tag": tag})
}

// DeleteTag godoc
// DELETE /api/v1/tags/:id
func (h *TagHandler) DeleteTag(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.tagService.Delete(c.Request.Context(), id, claims.UserID); err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
