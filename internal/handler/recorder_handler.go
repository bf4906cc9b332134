package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhokang/signal-backend-go/internal/models"
	"github.com/minhokang/signal-backend-go/internal/recorder"
	"github.com/minhokang/signal-backend-go/internal/stream"
	"github.com/minhokang/signal-backend-go/pkg/response"
)

// RecorderHandler controls the live recorder and ingests acquisition samples
type RecorderHandler struct {
	recorder *recorder.Recorder
	bus      *stream.Bus
}

// NewRecorderHandler creates a new recorder handler
func NewRecorderHandler(rec *recorder.Recorder, bus *stream.Bus) *RecorderHandler {
	return &RecorderHandler{recorder: rec, bus: bus}
}

// Start handles POST /api/v1/recorder/start
func (h *RecorderHandler) Start(c *gin.Context) {
	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	session, err := h.recorder.Start(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, recorder.ErrAlreadyRecording) {
			response.Error(c, http.StatusConflict, "Recording already in progress", err)
			return
		}
		respondRepositoryError(c, err)
		return
	}
	response.Success(c, session)
}

// Stop handles POST /api/v1/recorder/stop
func (h *RecorderHandler) Stop(c *gin.Context) {
	session, err := h.recorder.Stop()
	if err != nil {
		response.Error(c, http.StatusConflict, "No recording in progress", err)
		return
	}
	response.Success(c, session)
}

// Status handles GET /api/v1/recorder/status
func (h *RecorderHandler) Status(c *gin.Context) {
	response.Success(c, h.recorder.Status())
}

// IngestLocation handles POST /api/v1/ingest/location
func (h *RecorderHandler) IngestLocation(c *gin.Context) {
	var fix stream.LocationFix
	if err := c.ShouldBindJSON(&fix); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid location fix", err)
		return
	}
	if fix.Timestamp == 0 {
		fix.Timestamp = time.Now().UnixMilli()
	}

	h.bus.Publish(stream.TopicLocation, fix)
	response.Success(c, nil)
}

// IngestSignal handles POST /api/v1/ingest/signal
func (h *RecorderHandler) IngestSignal(c *gin.Context) {
	var reading stream.SignalReading
	if err := c.ShouldBindJSON(&reading); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid signal reading", err)
		return
	}

	h.bus.Publish(stream.TopicSignal, reading)
	response.Success(c, nil)
}
