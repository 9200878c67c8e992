// Package handler provides the HTTP handler for the admin cleanup endpoint.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festhive/registration/internal/identity"
	reconcilerModel "github.com/festhive/registration/internal/reconciler/model"
	"github.com/festhive/registration/internal/reconciler/service"
)

// Handler handles HTTP requests for reconciler endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new reconciler handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// BulkCleanup handles POST /admin/cleanup.
func (h *Handler) BulkCleanup(c *gin.Context) {
	caller, ok := identity.FromContext(c)
	if !ok {
		errorResponse(c, "UNAUTHENTICATED", "caller identity not resolved", http.StatusUnauthorized)
		return
	}

	var req reconcilerModel.CleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid cleanup request", http.StatusBadRequest)
		return
	}

	report, err := h.service.BulkCleanup(c.Request.Context(), caller, &req)
	if err != nil {
		h.writeError(c, err, "error running bulk cleanup")
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"report": report,
	})
}

// writeError maps service errors to coded HTTP responses.
func (h *Handler) writeError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, reconcilerModel.ErrAdminOnly):
		errorResponse(c, "FORBIDDEN", "admin role required", http.StatusForbidden)
	case errors.Is(err, reconcilerModel.ErrNothingSelected):
		errorResponse(c, "INVALID_REQUEST", "no cleanup category selected", http.StatusBadRequest)
	default:
		h.logger.Errorw(logMsg, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}

// errorResponse writes a coded error response.
func errorResponse(c *gin.Context, code string, message string, statusCode int) {
	resp := struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}{}
	resp.Error.Code = code
	resp.Error.Message = message
	c.JSON(statusCode, resp)
}
