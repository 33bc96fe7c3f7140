package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/civic-etl-go/internal/service"
	"github.com/jengzang/civic-etl-go/pkg/response"
)

// WardHandler handles HTTP requests for wards
type WardHandler struct {
	service *service.WardService
}

// NewWardHandler creates a new ward handler
func NewWardHandler(service *service.WardService) *WardHandler {
	return &WardHandler{service: service}
}

// GetWards handles GET /api/v1/wards
func (h *WardHandler) GetWards(c *gin.Context) {
	wards, err := h.service.GetWards(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to get wards", err)
		return
	}
	response.Success(c, wards)
}

// GetWardStats handles GET /api/v1/wards/stats
func (h *WardHandler) GetWardStats(c *gin.Context) {
	summary, err := h.service.GetWardStats(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to get ward statistics", err)
		return
	}
	response.Success(c, summary)
}

// GetWardsGeoJSON handles GET /api/v1/wards/geojson. The body is a bare
// feature collection so map clients can load it directly.
func (h *WardHandler) GetWardsGeoJSON(c *gin.Context) {
	fc, err := h.service.GetWardsGeoJSON(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to get ward boundaries", err)
		return
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		response.InternalError(c, "Failed to encode ward boundaries", err)
		return
	}
	c.Data(http.StatusOK, "application/geo+json", data)
}
