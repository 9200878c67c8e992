// Package router provides join-request module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	eventRepository "github.com/festhive/registration/internal/event/repository"
	"github.com/festhive/registration/internal/joinrequest/handler"
	"github.com/festhive/registration/internal/joinrequest/repository"
	"github.com/festhive/registration/internal/joinrequest/service"
	participationRepository "github.com/festhive/registration/internal/participation/repository"
	teamRepository "github.com/festhive/registration/internal/team/repository"
	userRepository "github.com/festhive/registration/internal/user/repository"
)

// RegisterPublicRoutes registers the routes open to anonymous applicants.
func RegisterPublicRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger) {
	h := newHandler(db, logger)

	// The invitation code lives in its own namespace: /teams/:id elsewhere
	// binds the parameter to the numeric team id, and gin rejects a second
	// wildcard name in the same position.
	r.POST("/join/:code", h.Submit)
	r.POST("/join-requests/:id/withdraw", h.Withdraw)
}

// RegisterRoutes registers the leader-facing join-request routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger) {
	h := newHandler(db, logger)

	r.GET("/teams/:id/join-requests", h.ListPending)
	r.POST("/join-requests/:id/accept", h.Accept)
	r.POST("/join-requests/:id/reject", h.Reject)
}

func newHandler(db *gorm.DB, logger *zap.SugaredLogger) *handler.Handler {
	svc := service.New(
		repository.New(db),
		teamRepository.New(db),
		participationRepository.New(db),
		eventRepository.New(db),
		userRepository.New(db),
		db,
		logger,
	)
	return handler.New(svc, logger)
}
