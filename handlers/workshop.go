package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"reifenmarkt/services/search"
	"reifenmarkt/utils"
)

// WorkshopHandler serves workshop detail endpoints.
type WorkshopHandler struct {
	SearchSvc search.SearchService
	Logger    *zap.Logger
}

// GetWorkshopByID handles GET /api/workshops/id/:id.
func (h *WorkshopHandler) GetWorkshopByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing workshop ID", "you must provide a workshop ID in the path")
		return
	}

	workshop, err := h.SearchSvc.GetWorkshop(c.Request.Context(), id)
	if err != nil {
		h.Logger.Error("GetWorkshopByID: lookup failed", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch workshop", err.Error())
		return
	}
	if workshop == nil {
		utils.JSONError(c, http.StatusNotFound, "workshop not found", "no workshop with id "+id)
		return
	}
	c.JSON(http.StatusOK, workshop)
}

// HealthCheck handles GET /health.
func HealthCheck(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
