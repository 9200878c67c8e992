// Package handler provides HTTP handlers for join-request endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festhive/registration/internal/identity"
	joinrequestModel "github.com/festhive/registration/internal/joinrequest/model"
	"github.com/festhive/registration/internal/joinrequest/service"
	participationModel "github.com/festhive/registration/internal/participation/model"
	teamModel "github.com/festhive/registration/internal/team/model"
)

// Handler handles HTTP requests for join-request endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new join-request handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Submit handles POST /join/:code. Open to anonymous callers: applicants do
// not have accounts yet.
func (h *Handler) Submit(c *gin.Context) {
	var req joinrequestModel.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_FAILED", "invalid applicant payload", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), c.Param("code"), &req)
	if err != nil {
		h.writeError(c, err, "error submitting join request")
		return
	}

	c.JSON(http.StatusCreated, map[string]interface{}{
		"join_request": resp,
	})
}

// Accept handles POST /join-requests/:id/accept.
func (h *Handler) Accept(c *gin.Context) {
	caller, ok := identity.FromContext(c)
	if !ok {
		errorResponse(c, "UNAUTHENTICATED", "caller identity not resolved", http.StatusUnauthorized)
		return
	}

	id, ok := h.requestID(c)
	if !ok {
		return
	}

	resp, err := h.service.Accept(c.Request.Context(), caller, id)
	if err != nil {
		h.writeError(c, err, "error accepting join request")
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"join_request": resp,
	})
}

// Reject handles POST /join-requests/:id/reject.
func (h *Handler) Reject(c *gin.Context) {
	caller, ok := identity.FromContext(c)
	if !ok {
		errorResponse(c, "UNAUTHENTICATED", "caller identity not resolved", http.StatusUnauthorized)
		return
	}

	id, ok := h.requestID(c)
	if !ok {
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), caller, id)
	if err != nil {
		h.writeError(c, err, "error rejecting join request")
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"join_request": resp,
	})
}

// Withdraw handles POST /join-requests/:id/withdraw. Authenticated by email
// match rather than identity: the applicant may have no account.
func (h *Handler) Withdraw(c *gin.Context) {
	id, ok := h.requestID(c)
	if !ok {
		return
	}

	var req joinrequestModel.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_FAILED", "invalid withdraw payload", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Withdraw(c.Request.Context(), id, &req)
	if err != nil {
		h.writeError(c, err, "error withdrawing join request")
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"join_request": resp,
	})
}

// ListPending handles GET /teams/:id/join-requests.
func (h *Handler) ListPending(c *gin.Context) {
	caller, ok := identity.FromContext(c)
	if !ok {
		errorResponse(c, "UNAUTHENTICATED", "caller identity not resolved", http.StatusUnauthorized)
		return
	}

	teamID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || teamID <= 0 {
		errorResponse(c, "INVALID_REQUEST", "invalid team id", http.StatusBadRequest)
		return
	}

	resp, listErr := h.service.ListPending(c.Request.Context(), caller, teamID)
	if listErr != nil {
		h.writeError(c, listErr, "error listing join requests")
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"join_requests": resp,
	})
}

// requestID parses the :id path parameter.
func (h *Handler) requestID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorResponse(c, "INVALID_REQUEST", "invalid join request id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeError maps service errors to coded HTTP responses.
func (h *Handler) writeError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, teamModel.ErrTeamNotFound):
		notFoundResponse(c, "team not found")
	case errors.Is(err, joinrequestModel.ErrRequestNotFound):
		notFoundResponse(c, "join request not found")
	case errors.Is(err, joinrequestModel.ErrRequestClosed):
		errorResponse(c, "REQUEST_CLOSED", "join request is already resolved", http.StatusConflict)
	case errors.Is(err, joinrequestModel.ErrNotApplicant):
		errorResponse(c, "FORBIDDEN", "email does not match the applicant", http.StatusForbidden)
	case errors.Is(err, teamModel.ErrLeaderOnly):
		errorResponse(c, "FORBIDDEN", "only the team leader may perform this action", http.StatusForbidden)
	case errors.Is(err, teamModel.ErrTeamFull):
		errorResponse(c, "TEAM_FULL", "team is at capacity", http.StatusConflict)
	case errors.Is(err, teamModel.ErrAlreadyTeamed):
		errorResponse(c, "ALREADY_TEAMED", "applicant already belongs to a team for this event", http.StatusConflict)
	case errors.Is(err, participationModel.ErrAlreadyRegistered):
		errorResponse(c, "ALREADY_REGISTERED", "applicant is already registered for this event", http.StatusConflict)
	default:
		h.logger.Errorw(logMsg, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
