package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/civic-etl-go/internal/middleware"
	"github.com/jengzang/civic-etl-go/internal/models"
	"github.com/jengzang/civic-etl-go/internal/pipeline"
	"github.com/jengzang/civic-etl-go/internal/service"
	"github.com/jengzang/civic-etl-go/pkg/response"
)

// RunHandler handles HTTP requests for pipeline runs
type RunHandler struct {
	service *service.RunService
}

// NewRunHandler creates a new run handler
func NewRunHandler(service *service.RunService) *RunHandler {
	return &RunHandler{service: service}
}

// GetRuns handles GET /api/v1/runs
func (h *RunHandler) GetRuns(c *gin.Context) {
	var filter models.RunFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	runs, total, err := h.service.GetRuns(c.Request.Context(), filter)
	if err != nil {
		response.InternalError(c, "Failed to get runs", err)
		return
	}

	response.Success(c, models.NewPage(runs, total, filter.Page, filter.PageSize))
}

// GetRun handles GET /api/v1/runs/:id
func (h *RunHandler) GetRun(c *gin.Context) {
	run, err := h.service.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.InternalError(c, "Failed to get run", err)
		return
	}
	if run == nil {
		response.NotFound(c, "Run not found")
		return
	}
	response.Success(c, run)
}

// StartRun handles POST /api/v1/runs. An empty body runs every dataset.
func (h *RunHandler) StartRun(c *gin.Context) {
	var req models.RunRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body", err)
			return
		}
	}

	datasets, err := h.service.Start(req.Datasets)
	switch {
	case errors.Is(err, pipeline.ErrUnknownDataset):
		response.BadRequest(c, "Unknown dataset", err)
		return
	case errors.Is(err, pipeline.ErrRunInProgress):
		response.Error(c, http.StatusConflict, "A run is already in progress", err)
		return
	case err != nil:
		response.InternalError(c, "Failed to start run", err)
		return
	}

	response.Accepted(c, gin.H{
		"datasets":     datasets,
		"requested_by": c.GetString(middleware.SubjectKey),
	})
}
