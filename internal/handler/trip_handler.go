package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/civic-etl-go/internal/models"
	"github.com/jengzang/civic-etl-go/internal/service"
	"github.com/jengzang/civic-etl-go/pkg/response"
)

// TripHandler handles HTTP requests for trips
type TripHandler struct {
	service *service.TripService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(service *service.TripService) *TripHandler {
	return &TripHandler{service: service}
}

// GetTrips handles GET /api/v1/trips
func (h *TripHandler) GetTrips(c *gin.Context) {
	var filter models.TripFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	trips, total, err := h.service.GetTrips(c.Request.Context(), filter)
	if err != nil {
		queryError(c, "Failed to get trips", err)
		return
	}

	response.Success(c, models.NewPage(trips, total, filter.Page, filter.PageSize))
}
