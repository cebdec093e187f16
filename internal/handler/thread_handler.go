package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/tour-planner-go/internal/middleware"
	"github.com/jengzang/tour-planner-go/internal/models"
	"github.com/jengzang/tour-planner-go/internal/service"
	"github.com/jengzang/tour-planner-go/pkg/response"
)

// ThreadHandler handles HTTP requests for community threads
type ThreadHandler struct {
	service *service.ThreadService
}

// NewThreadHandler creates a new thread handler
func NewThreadHandler(service *service.ThreadService) *ThreadHandler {
	return &ThreadHandler{service: service}
}

// List handles GET /api/v1/threads
func (h *ThreadHandler) List(c *gin.Context) {
	var filter models.ThreadFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, "Failed to list threads", err)
		return
	}
	response.Success(c, page)
}

// Get handles GET /api/v1/threads/:id
func (h *ThreadHandler) Get(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}

	var viewer int64
	if claims := middleware.ClaimsFrom(c); claims != nil {
		viewer = claims.UserID
	}

	t, err := h.service.Get(c.Request.Context(), id, viewer)
	if err != nil {
		fail(c, "Failed to get thread", err)
		return
	}
	response.Success(c, t)
}

// Create handles POST /api/v1/threads
func (h *ThreadHandler) Create(c *gin.Context) {
	var req models.ThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	t, err := h.service.Create(c.Request.Context(), middleware.ClaimsFrom(c), req)
	if err != nil {
		fail(c, "Failed to create thread", err)
		return
	}
	response.Created(c, t)
}

// Update handles PUT /api/v1/threads/:id
func (h *ThreadHandler) Update(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}

	var req models.ThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	t, err := h.service.Update(c.Request.Context(), middleware.ClaimsFrom(c), id, req)
	if err != nil {
		fail(c, "Failed to update thread", err)
		return
	}
	response.Success(c, t)
}

// Delete handles DELETE /api/v1/threads/:id
func (h *ThreadHandler) Delete(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.ClaimsFrom(c), id); err != nil {
		fail(c, "Failed to delete thread", err)
		return
	}
	response.Success(c, gin.H{"threadId": id})
}

// ToggleLike handles POST /api/v1/threads/:id/like
func (h *ThreadHandler) ToggleLike(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}

	res, err := h.service.ToggleLike(c.Request.Context(), middleware.ClaimsFrom(c), id)
	if err != nil {
		fail(c, "Failed to toggle like", err)
		return
	}
	response.Success(c, res)
}
