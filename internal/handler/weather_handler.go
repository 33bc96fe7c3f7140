package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/civic-etl-go/internal/models"
	"github.com/jengzang/civic-etl-go/internal/service"
	"github.com/jengzang/civic-etl-go/pkg/response"
)

// WeatherHandler handles HTTP requests for daily weather
type WeatherHandler struct {
	service *service.WeatherService
}

// NewWeatherHandler creates a new weather handler
func NewWeatherHandler(service *service.WeatherService) *WeatherHandler {
	return &WeatherHandler{service: service}
}

// GetWeather handles GET /api/v1/weather
func (h *WeatherHandler) GetWeather(c *gin.Context) {
	var filter models.WeatherFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	obs, total, err := h.service.GetWeather(c.Request.Context(), filter)
	if err != nil {
		queryError(c, "Failed to get weather", err)
		return
	}

	response.Success(c, models.NewPage(obs, total, filter.Page, filter.PageSize))
}
