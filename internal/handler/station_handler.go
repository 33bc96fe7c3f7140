package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/civic-etl-go/internal/models"
	"github.com/jengzang/civic-etl-go/internal/service"
	"github.com/jengzang/civic-etl-go/pkg/response"
)

// StationHandler handles HTTP requests for stations
type StationHandler struct {
	service *service.StationService
}

// NewStationHandler creates a new station handler
func NewStationHandler(service *service.StationService) *StationHandler {
	return &StationHandler{service: service}
}

// GetStations handles GET /api/v1/stations
func (h *StationHandler) GetStations(c *gin.Context) {
	var filter models.StationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	stations, total, err := h.service.GetStations(c.Request.Context(), filter)
	if err != nil {
		queryError(c, "Failed to get stations", err)
		return
	}

	response.Success(c, models.NewPage(stations, total, filter.Page, filter.PageSize))
}

// GetStationByID handles GET /api/v1/stations/:id
func (h *StationHandler) GetStationByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid station ID", err)
		return
	}

	station, err := h.service.GetStationByID(c.Request.Context(), int32(id))
	if err != nil {
		response.InternalError(c, "Failed to get station", err)
		return
	}
	if station == nil {
		response.NotFound(c, "Station not found")
		return
	}

	response.Success(c, station)
}

// GetNearest handles GET /api/v1/stations/nearest?lat=&lon=&limit=
func (h *StationHandler) GetNearest(c *gin.Context) {
	var q models.NearestStationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "lat and lon are required", err)
		return
	}

	stations, err := h.service.Nearest(c.Request.Context(), q)
	if err != nil {
		queryError(c, "Failed to find nearest stations", err)
		return
	}

	response.Success(c, stations)
}
