package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/civic-etl-go/internal/models"
	"github.com/jengzang/civic-etl-go/internal/service"
	"github.com/jengzang/civic-etl-go/pkg/response"
)

// AccidentHandler handles HTTP requests for collisions
type AccidentHandler struct {
	service *service.AccidentService
}

// NewAccidentHandler creates a new accident handler
func NewAccidentHandler(service *service.AccidentService) *AccidentHandler {
	return &AccidentHandler{service: service}
}

// GetAccidents handles GET /api/v1/accidents
func (h *AccidentHandler) GetAccidents(c *gin.Context) {
	var filter models.AccidentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	records, total, err := h.service.GetAccidents(c.Request.Context(), filter)
	if err != nil {
		queryError(c, "Failed to get accidents", err)
		return
	}

	response.Success(c, models.NewPage(records, total, filter.Page, filter.PageSize))
}
