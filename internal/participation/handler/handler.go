// Package handler provides HTTP handlers for participation endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	eventModel "github.com/festhive/registration/internal/event/model"
	"github.com/festhive/registration/internal/identity"
	participationModel "github.com/festhive/registration/internal/participation/model"
	"github.com/festhive/registration/internal/participation/service"
)

// Handler handles HTTP requests for participation endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new participation handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Register handles POST /events/:slug/register.
func (h *Handler) Register(c *gin.Context) {
	caller, ok := identity.FromContext(c)
	if !ok {
		errorResponse(c, "UNAUTHENTICATED", "caller identity not resolved", http.StatusUnauthorized)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), caller, c.Param("slug"))
	if err != nil {
		h.writeError(c, err, "error registering participation")
		return
	}

	c.JSON(http.StatusCreated, map[string]interface{}{
		"participation": resp,
	})
}

// SubmitPayment handles PATCH /participations/:id/payment.
func (h *Handler) SubmitPayment(c *gin.Context) {
	caller, ok := identity.FromContext(c)
	if !ok {
		errorResponse(c, "UNAUTHENTICATED", "caller identity not resolved", http.StatusUnauthorized)
		return
	}

	id, ok := h.participationID(c)
	if !ok {
		return
	}

	var req participationModel.SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.SubmitPayment(c.Request.Context(), caller, id, &req)
	if err != nil {
		h.writeError(c, err, "error submitting payment")
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"participation": resp,
	})
}

// DeletePayment handles DELETE /participations/:id/payment.
func (h *Handler) DeletePayment(c *gin.Context) {
	caller, ok := identity.FromContext(c)
	if !ok {
		errorResponse(c, "UNAUTHENTICATED", "caller identity not resolved", http.StatusUnauthorized)
		return
	}

	id, ok := h.participationID(c)
	if !ok {
		return
	}

	resp, err := h.service.DeletePayment(c.Request.Context(), caller, id)
	if err != nil {
		h.writeError(c, err, "error deleting payment")
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"participation": resp,
	})
}

// Verify handles POST /participations/:id/verify (admin only).
func (h *Handler) Verify(c *gin.Context) {
	caller, ok := identity.FromContext(c)
	if !ok {
		errorResponse(c, "UNAUTHENTICATED", "caller identity not resolved", http.StatusUnauthorized)
		return
	}

	id, ok := h.participationID(c)
	if !ok {
		return
	}

	resp, err := h.service.Verify(c.Request.Context(), caller, id)
	if err != nil {
		h.writeError(c, err, "error verifying payment")
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"participation": resp,
	})
}

// Cancel handles POST /participations/:id/cancel.
func (h *Handler) Cancel(c *gin.Context) {
	caller, ok := identity.FromContext(c)
	if !ok {
		errorResponse(c, "UNAUTHENTICATED", "caller identity not resolved", http.StatusUnauthorized)
		return
	}

	id, ok := h.participationID(c)
	if !ok {
		return
	}

	resp, err := h.service.Cancel(c.Request.Context(), caller, id)
	if err != nil {
		h.writeError(c, err, "error cancelling participation")
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"participation": resp,
	})
}

// UpdateDetails handles PATCH /participations/:id.
func (h *Handler) UpdateDetails(c *gin.Context) {
	caller, ok := identity.FromContext(c)
	if !ok {
		errorResponse(c, "UNAUTHENTICATED", "caller identity not resolved", http.StatusUnauthorized)
		return
	}

	id, ok := h.participationID(c)
	if !ok {
		return
	}

	var req participationModel.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_FAILED", "invalid registrant details", http.StatusBadRequest)
		return
	}

	resp, err := h.service.UpdateDetails(c.Request.Context(), caller, id, &req)
	if err != nil {
		h.writeError(c, err, "error updating participation details")
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"participation": resp,
	})
}

// Latest handles GET /participations/latest.
func (h *Handler) Latest(c *gin.Context) {
	caller, ok := identity.FromContext(c)
	if !ok {
		errorResponse(c, "UNAUTHENTICATED", "caller identity not resolved", http.StatusUnauthorized)
		return
	}

	resp, err := h.service.Latest(c.Request.Context(), caller)
	if err != nil {
		h.writeError(c, err, "error fetching latest participation")
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"participation": resp,
	})
}

// participationID parses the :id path parameter.
func (h *Handler) participationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorResponse(c, "INVALID_REQUEST", "invalid participation id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeError maps service errors to coded HTTP responses.
func (h *Handler) writeError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, participationModel.ErrRegistrationClosed):
		errorResponse(c, "REGISTRATION_CLOSED", "registration is currently closed", http.StatusConflict)
	case errors.Is(err, eventModel.ErrEventNotFound):
		notFoundResponse(c, "event not found")
	case errors.Is(err, participationModel.ErrAlreadyRegistered):
		errorResponse(c, "ALREADY_REGISTERED", "already registered for this event", http.StatusConflict)
	case errors.Is(err, participationModel.ErrParticipationNotFound):
		notFoundResponse(c, "participation not found")
	case errors.Is(err, participationModel.ErrScreenshotKeyRequired):
		errorResponse(c, "INVALID_REQUEST", "screenshot_key is required", http.StatusBadRequest)
	case errors.Is(err, participationModel.ErrNoPaymentEvidence):
		errorResponse(c, "NO_PAYMENT_EVIDENCE", "no payment evidence to delete", http.StatusBadRequest)
	case errors.Is(err, participationModel.ErrParticipationCancelled):
		errorResponse(c, "PARTICIPATION_CANCELLED", "participation is cancelled", http.StatusConflict)
	case errors.Is(err, participationModel.ErrNotAwaitingVerification):
		errorResponse(c, "NOT_AWAITING_VERIFICATION", "no payment awaiting verification", http.StatusConflict)
	case errors.Is(err, participationModel.ErrAdminOnly):
		errorResponse(c, "FORBIDDEN", "admin role required", http.StatusForbidden)
	case errors.Is(err, participationModel.ErrStorageFailure):
		errorResponse(c, "STORAGE_FAILURE", "blob storage operation failed", http.StatusBadGateway)
	default:
		h.logger.Errorw(logMsg, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
