// Package router provides participation module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festhive/registration/internal/blob"
	eventRepository "github.com/festhive/registration/internal/event/repository"
	"github.com/festhive/registration/internal/participation/handler"
	"github.com/festhive/registration/internal/participation/repository"
	"github.com/festhive/registration/internal/participation/service"
	settingsRepository "github.com/festhive/registration/internal/settings/repository"
	userRepository "github.com/festhive/registration/internal/user/repository"
)

// RegisterRoutes registers participation module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, blobs blob.Store, logger *zap.SugaredLogger) {
	repo := repository.New(db)
	svc := service.New(
		repo,
		eventRepository.New(db),
		userRepository.New(db),
		settingsRepository.New(db),
		blobs,
		db,
		logger,
	)
	h := handler.New(svc, logger)

	r.POST("/events/:slug/register", h.Register)
	r.GET("/participations/latest", h.Latest)
	r.PATCH("/participations/:id", h.UpdateDetails)
	r.PATCH("/participations/:id/payment", h.SubmitPayment)
	r.DELETE("/participations/:id/payment", h.DeletePayment)
	r.POST("/participations/:id/verify", h.Verify)
	r.POST("/participations/:id/cancel", h.Cancel)
}
