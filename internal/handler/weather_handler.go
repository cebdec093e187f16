package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/tour-planner-go/internal/service"
	"github.com/jengzang/tour-planner-go/pkg/response"
)

// WeatherHandler handles HTTP requests for forecasts
type WeatherHandler struct {
	service *service.WeatherService
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(service *service.WeatherService) *WeatherHandler {
	return &WeatherHandler{service: service}
}

type forecastQuery struct {
	Lat *float64 `form:"lat" binding:"required"`
	Lng *float64 `form:"lng" binding:"required"`
}

// Forecast handles GET /api/v1/weather?lat&lng
func (h *WeatherHandler) Forecast(c *gin.Context) {
	var q forecastQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "lat and lng are required", err)
		return
	}

	fc, err := h.service.Forecast(c.Request.Context(), *q.Lat, *q.Lng)
	if err != nil {
		fail(c, "Failed to get forecast", err)
		return
	}
	response.Success(c, fc)
}

// PlaceForecast handles GET /api/v1/sessions/:id/places/:index/weather
func (h *WeatherHandler) PlaceForecast(c *gin.Context) {
	index, ok := paramInt(c, "index")
	if !ok {
		return
	}

	fc, err := h.service.PlaceForecast(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		fail(c, "Failed to get forecast", err)
		return
	}
	response.Success(c, fc)
}
