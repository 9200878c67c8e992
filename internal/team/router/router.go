// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	eventRepository "github.com/festhive/registration/internal/event/repository"
	participationRepository "github.com/festhive/registration/internal/participation/repository"
	reconcilerService "github.com/festhive/registration/internal/reconciler/service"
	"github.com/festhive/registration/internal/team/handler"
	"github.com/festhive/registration/internal/team/repository"
	"github.com/festhive/registration/internal/team/service"
)

// RegisterRoutes registers team module routes.
func RegisterRoutes(
	r gin.IRouter, db *gorm.DB, reconciler reconcilerService.Service, logger *zap.SugaredLogger,
) {
	repo := repository.New(db)
	svc := service.New(
		repo,
		participationRepository.New(db),
		eventRepository.New(db),
		reconciler,
		db,
		logger,
	)
	h := handler.New(svc, logger)

	r.POST("/teams", h.Create)
	r.GET("/teams/:id", h.Get)
	r.POST("/teams/:id/members", h.AddMember)
	r.DELETE("/teams/:id/members/:participantId", h.RemoveMember)
	r.GET("/teams/:id/potential-members", h.PotentialMembers)
}
