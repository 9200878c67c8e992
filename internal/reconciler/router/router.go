// Package router provides reconciler module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festhive/registration/internal/blob"
	"github.com/festhive/registration/internal/reconciler/handler"
	"github.com/festhive/registration/internal/reconciler/repository"
	"github.com/festhive/registration/internal/reconciler/service"
)

// RegisterRoutes registers reconciler module routes and returns the service
// for the team module to delegate member removal to.
func RegisterRoutes(
	r gin.IRouter, db *gorm.DB, blobs blob.Store, logger *zap.SugaredLogger,
) service.Service {
	svc := service.New(repository.New(db), blobs, db, logger)
	h := handler.New(svc, logger)

	r.POST("/admin/cleanup", h.BulkCleanup)

	return svc
}
