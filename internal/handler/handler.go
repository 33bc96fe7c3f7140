package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/civic-etl-go/internal/service"
	"github.com/jengzang/civic-etl-go/pkg/response"
)

// queryError maps a service error onto 400 or 500
func queryError(c *gin.Context, message string, err error) {
	if errors.Is(err, service.ErrInvalidQuery) {
		response.Error(c, http.StatusBadRequest, message, err)
		return
	}
	response.InternalError(c, message, err)
}
