package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minhokang/signal-backend-go/internal/models"
	"github.com/minhokang/signal-backend-go/internal/repository"
	"github.com/minhokang/signal-backend-go/internal/service"
	"github.com/minhokang/signal-backend-go/pkg/response"
)

// SessionHandler handles HTTP requests for sessions
type SessionHandler struct {
	service *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service *service.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

func sessionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid session ID", err)
		return 0, false
	}
	return id, true
}

// respondRepositoryError maps repository sentinels onto HTTP statuses
func respondRepositoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrDuplicateName):
		response.Error(c, http.StatusConflict, "Session name already exists", err)
	case errors.Is(err, repository.ErrSessionNotFound):
		response.Error(c, http.StatusNotFound, "Session not found", err)
	default:
		response.Error(c, http.StatusInternalServerError, "Storage operation failed", err)
	}
}

// ListSessions handles GET /api/v1/sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	sessions, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list sessions", err)
		return
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	response.Success(c, sessions)
}

// CreateSession handles POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	session, err := h.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	response.Success(c, session)
}

// GetSession handles GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	session, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	response.Success(c, session)
}

// RenameSession handles PUT /api/v1/sessions/:id
func (h *SessionHandler) RenameSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req models.RenameSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.service.Rename(c.Request.Context(), id, req.Name); err != nil {
		respondRepositoryError(c, err)
		return
	}
	response.Success(c, gin.H{"id": id, "name": req.Name})
}

// DeleteSession handles DELETE /api/v1/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondRepositoryError(c, err)
		return
	}
	response.Success(c, gin.H{"id": id})
}

// GetRecords handles GET /api/v1/sessions/:id/records
func (h *SessionHandler) GetRecords(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	records, err := h.service.Records(c.Request.Context(), id)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	if records == nil {
		records = []models.AnnotatedRecord{}
	}
	response.Success(c, records)
}
