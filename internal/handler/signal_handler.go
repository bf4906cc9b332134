package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minhokang/signal-backend-go/internal/signal"
	"github.com/minhokang/signal-backend-go/pkg/response"
)

// SignalHandler exposes the signal level classification
type SignalHandler struct{}

// NewSignalHandler creates a new signal handler
func NewSignalHandler() *SignalHandler {
	return &SignalHandler{}
}

// GetLevel handles GET /api/v1/signal/level?rsrp=&rsrq=
func (h *SignalHandler) GetLevel(c *gin.Context) {
	rsrp, err := strconv.Atoi(c.Query("rsrp"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "rsrp must be an integer", err)
		return
	}
	rsrq, err := strconv.Atoi(c.Query("rsrq"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "rsrq must be an integer", err)
		return
	}

	combined := signal.Combined(rsrp, rsrq)
	response.Success(c, gin.H{
		"rsrp":      rsrp,
		"rsrq":      rsrq,
		"rsrpLevel": signal.ClassifyRSRP(rsrp).Label(),
		"rsrqLevel": signal.ClassifyRSRQ(rsrq).Label(),
		"level":     combined.Label(),
		"color":     combined.Color(),
	})
}
