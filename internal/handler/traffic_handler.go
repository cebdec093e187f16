package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/tour-planner-go/internal/models"
	"github.com/jengzang/tour-planner-go/internal/service"
	"github.com/jengzang/tour-planner-go/pkg/response"
)

// TrafficHandler handles HTTP requests for traffic-cost records
type TrafficHandler struct {
	service *service.TrafficService
}

// NewTrafficHandler creates a new traffic handler
func NewTrafficHandler(service *service.TrafficService) *TrafficHandler {
	return &TrafficHandler{service: service}
}

// Create handles POST /api/v1/traffic
func (h *TrafficHandler) Create(c *gin.Context) {
	var req models.TrafficRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	t, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, "Failed to save traffic", err)
		return
	}
	response.Created(c, t)
}

// ByTour handles GET /api/v1/traffic/tour/:tourId
func (h *TrafficHandler) ByTour(c *gin.Context) {
	tourID, ok := paramInt64(c, "tourId")
	if !ok {
		return
	}

	sum, err := h.service.ByTour(c.Request.Context(), tourID)
	if err != nil {
		fail(c, "Failed to get traffic", err)
		return
	}
	response.Success(c, sum)
}

// SaveRoute handles POST /api/v1/sessions/:id/route/traffic
func (h *TrafficHandler) SaveRoute(c *gin.Context) {
	var req struct {
		TourID int64 `json:"tourId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err)
		return
	}

	sum, err := h.service.SaveSelectedRoute(c.Request.Context(), c.Param("id"), req.TourID)
	if err != nil {
		fail(c, "Failed to save route traffic", err)
		return
	}
	response.Created(c, sum)
}
