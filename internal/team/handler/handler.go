// Package handler provides HTTP handlers for team endpoints.
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
	teamModel "github.com/festhive/registration/internal/team/model"
	"github.com/festhive/registration/internal/team/service"
)

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// Create handles POST /teams.
func (h *Handler) Create(c *gin.Context) {
	caller, ok := identity.FromContext(c)
	if !ok {
		errorResponse(c, "UNAUTHENTICATED", "caller identity not resolved", http.StatusUnauthorized)
		return
	}

	var req teamModel.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_FAILED", "invalid team payload", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), caller, &req)
	if err != nil {
		h.writeError(c, err, "error creating team")
		return
	}

	c.JSON(http.StatusCreated, map[string]interface{}{
		"team": resp,
	})
}

// AddMember handles POST /teams/:id/members.
func (h *Handler) AddMember(c *gin.Context) {
	caller, ok := identity.FromContext(c)
	if !ok {
		errorResponse(c, "UNAUTHENTICATED", "caller identity not resolved", http.StatusUnauthorized)
		return
	}

	teamID, ok := h.pathID(c, "id", "invalid team id")
	if !ok {
		return
	}

	var req teamModel.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.AddMember(c.Request.Context(), caller, teamID, &req)
	if err != nil {
		h.writeError(c, err, "error adding team member")
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"team": resp,
	})
}

// RemoveMember handles DELETE /teams/:id/members/:participantId.
func (h *Handler) RemoveMember(c *gin.Context) {
	caller, ok := identity.FromContext(c)
	if !ok {
		errorResponse(c, "UNAUTHENTICATED", "caller identity not resolved", http.StatusUnauthorized)
		return
	}

	teamID, ok := h.pathID(c, "id", "invalid team id")
	if !ok {
		return
	}
	participantID, ok := h.pathID(c, "participantId", "invalid participant id")
	if !ok {
		return
	}

	result, err := h.service.RemoveMember(c.Request.Context(), caller, teamID, participantID)
	if err != nil {
		h.writeError(c, err, "error removing team member")
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"removal": result,
	})
}

// PotentialMembers handles GET /teams/:id/potential-members.
func (h *Handler) PotentialMembers(c *gin.Context) {
	caller, ok := identity.FromContext(c)
	if !ok {
		errorResponse(c, "UNAUTHENTICATED", "caller identity not resolved", http.StatusUnauthorized)
		return
	}

	teamID, ok := h.pathID(c, "id", "invalid team id")
	if !ok {
		return
	}

	resp, err := h.service.PotentialMembers(c.Request.Context(), caller, teamID)
	if err != nil {
		h.writeError(c, err, "error listing potential members")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get handles GET /teams/:id.
func (h *Handler) Get(c *gin.Context) {
	teamID, ok := h.pathID(c, "id", "invalid team id")
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), teamID)
	if err != nil {
		h.writeError(c, err, "error fetching team")
		return
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"team": resp,
	})
}

// pathID parses a positive integer path parameter.
func (h *Handler) pathID(c *gin.Context, name, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorResponse(c, "INVALID_REQUEST", message, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeError maps service errors to coded HTTP responses.
func (h *Handler) writeError(c *gin.Context, err error, logMsg string) {
	switch {
	case errors.Is(err, eventModel.ErrEventNotFound):
		notFoundResponse(c, "event not found")
	case errors.Is(err, teamModel.ErrTeamNotFound):
		notFoundResponse(c, "team not found")
	case errors.Is(err, participationModel.ErrParticipationNotFound):
		notFoundResponse(c, "participation not found")
	case errors.Is(err, teamModel.ErrMemberNotFound):
		notFoundResponse(c, "team member not found")
	case errors.Is(err, teamModel.ErrLeaderOnly):
		errorResponse(c, "FORBIDDEN", "only the team leader may perform this action", http.StatusForbidden)
	case errors.Is(err, teamModel.ErrNotConfirmed):
		errorResponse(c, "NOT_CONFIRMED", "participation is not confirmed", http.StatusConflict)
	case errors.Is(err, teamModel.ErrAlreadyTeamed):
		errorResponse(c, "ALREADY_TEAMED", "participation already belongs to a team for this event", http.StatusConflict)
	case errors.Is(err, teamModel.ErrTeamFull):
		errorResponse(c, "TEAM_FULL", "team is at capacity", http.StatusConflict)
	case errors.Is(err, teamModel.ErrEventMismatch):
		errorResponse(c, "EVENT_MISMATCH", "participation belongs to a different event", http.StatusConflict)
	case errors.Is(err, teamModel.ErrCannotRemoveLeader):
		errorResponse(c, "CANNOT_REMOVE_LEADER", "the team leader cannot be removed", http.StatusConflict)
	case errors.Is(err, teamModel.ErrSlugTaken):
		errorResponse(c, "SLUG_CONFLICT", "could not allocate a unique team slug", http.StatusConflict)
	default:
		h.logger.Errorw(logMsg, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
