package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minhokang/signal-backend-go/internal/service"
	"github.com/minhokang/signal-backend-go/pkg/response"
)

// AnalyticsHandler serves session summaries and coverage grids
type AnalyticsHandler struct {
	service          *service.AnalyticsService
	defaultPrecision int
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service *service.AnalyticsService, defaultPrecision int) *AnalyticsHandler {
	return &AnalyticsHandler{service: service, defaultPrecision: defaultPrecision}
}

// GetSummary handles GET /api/v1/sessions/:id/summary
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	response.Success(c, summary)
}

// GetCoverage handles GET /api/v1/sessions/:id/coverage
func (h *AnalyticsHandler) GetCoverage(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	precision := h.defaultPrecision
	if raw := c.Query("precision"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 || p > 12 {
			response.Error(c, http.StatusBadRequest, "Precision must be an integer between 1 and 12", err)
			return
		}
		precision = p
	}

	grid, err := h.service.Coverage(c.Request.Context(), id, precision)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	response.Success(c, grid)
}
