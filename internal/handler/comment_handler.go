package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/tour-planner-go/internal/middleware"
	"github.com/jengzang/tour-planner-go/internal/models"
	"github.com/jengzang/tour-planner-go/internal/service"
	"github.com/jengzang/tour-planner-go/pkg/response"
)

// CommentHandler handles HTTP requests for comments
type CommentHandler struct {
	service *service.CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(service *service.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// ByThread handles GET /api/v1/comments/thread/:threadId
func (h *CommentHandler) ByThread(c *gin.Context) {
	threadID, ok := paramInt64(c, "threadId")
	if !ok {
		return
	}

	tree, err := h.service.Tree(c.Request.Context(), threadID)
	if err != nil {
		fail(c, "Failed to get comments", err)
		return
	}
	response.Success(c, tree)
}

// Create handles POST /api/v1/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var req models.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	cm, err := h.service.Create(c.Request.Context(), middleware.ClaimsFrom(c), req)
	if err != nil {
		fail(c, "Failed to create comment", err)
		return
	}
	response.Created(c, cm)
}

// Update handles PUT /api/v1/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}

	var req models.CommentUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	cm, err := h.service.Update(c.Request.Context(), middleware.ClaimsFrom(c), id, req)
	if err != nil {
		fail(c, "Failed to update comment", err)
		return
	}
	response.Success(c, cm)
}

// Delete handles DELETE /api/v1/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := paramInt64(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.ClaimsFrom(c), id); err != nil {
		fail(c, "Failed to delete comment", err)
		return
	}
	response.Success(c, gin.H{"commentId": id})
}
