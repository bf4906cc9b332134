package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minhokang/signal-backend-go/internal/service"
	"github.com/minhokang/signal-backend-go/internal/transfer"
	"github.com/minhokang/signal-backend-go/pkg/response"
)

// TransferHandler handles CSV import and export endpoints
type TransferHandler struct {
	service *service.TransferService
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(service *service.TransferService) *TransferHandler {
	return &TransferHandler{service: service}
}

// ExportSession handles GET /api/v1/sessions/:id/export
func (h *TransferHandler) ExportSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	// Encode into a buffer first so storage failures still return JSON
	var buf bytes.Buffer
	session, err := h.service.Export(c.Request.Context(), id, &buf)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	filename := fmt.Sprintf("%s.csv", session.Name)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// ImportSession handles POST /api/v1/sessions/import
func (h *TransferHandler) ImportSession(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		response.Error(c, http.StatusBadRequest, "Session name is required", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "CSV file is required", err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to open uploaded file", err)
		return
	}
	defer file.Close()

	session, err := h.service.Import(c.Request.Context(), name, file)
	if err != nil {
		respondImportError(c, err)
		return
	}
	response.Success(c, session)
}

// respondImportError distinguishes CSV decode failures from storage failures
func respondImportError(c *gin.Context, err error) {
	var malformed *transfer.MalformedLineError
	switch {
	case errors.Is(err, transfer.ErrInvalidHeader),
		errors.Is(err, transfer.ErrEmptyImport):
		response.Error(c, http.StatusBadRequest, "Invalid CSV file", err)
	case errors.As(err, &malformed):
		response.Error(c, http.StatusBadRequest,
			fmt.Sprintf("Invalid CSV file at line %d", malformed.Line), err)
	default:
		respondRepositoryError(c, err)
	}
}
