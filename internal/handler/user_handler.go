package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/tour-planner-go/internal/middleware"
	"github.com/jengzang/tour-planner-go/internal/models"
	"github.com/jengzang/tour-planner-go/internal/service"
	"github.com/jengzang/tour-planner-go/pkg/response"
)

// UserHandler handles HTTP requests for accounts
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service *service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register handles POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	u, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, "Failed to register", err)
		return
	}
	response.Created(c, u)
}

// Login handles POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, "Failed to log in", err)
		return
	}
	response.Success(c, resp)
}

// Me handles GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.service.Profile(c.Request.Context(), middleware.ClaimsFrom(c).UserID)
	if err != nil {
		fail(c, "Failed to get profile", err)
		return
	}
	response.Success(c, u)
}

// UpdateMe handles PUT /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req models.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	u, err := h.service.UpdateProfile(c.Request.Context(), middleware.ClaimsFrom(c).UserID, req)
	if err != nil {
		fail(c, "Failed to update profile", err)
		return
	}
	response.Success(c, u)
}
