// Package repository provides data access layer for the join-request module.
package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	joinrequestModel "github.com/festhive/registration/internal/joinrequest/model"
)

// Repository defines the interface for join-request data access operations.
type Repository interface {
	// Create inserts a new join request.
	Create(ctx context.Context, req *joinrequestModel.JoinRequest) error

	// GetByID finds a join request by id.
	GetByID(ctx context.Context, id int64) (*joinrequestModel.JoinRequest, error)

	// ListPendingByTeam returns the team's PENDING requests, oldest first.
	ListPendingByTeam(ctx context.Context, teamID int64) ([]joinrequestModel.JoinRequest, error)

	// Resolve moves a PENDING request to a final status. Returns
	// ErrRequestClosed when the request was already resolved.
	Resolve(ctx context.Context, id int64, status joinrequestModel.Status, resolvedAt time.Time) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new join-request repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new join request.
func (r *repository) Create(ctx context.Context, req *joinrequestModel.JoinRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

// GetByID finds a join request by id.
func (r *repository) GetByID(
	ctx context.Context, id int64,
) (*joinrequestModel.JoinRequest, error) {
	var req joinrequestModel.JoinRequest
	err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, joinrequestModel.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// ListPendingByTeam returns the team's PENDING requests, oldest first.
func (r *repository) ListPendingByTeam(
	ctx context.Context, teamID int64,
) ([]joinrequestModel.JoinRequest, error) {
	var requests []joinrequestModel.JoinRequest
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND status = ?", teamID, joinrequestModel.StatusPending).
		Order("created_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []joinrequestModel.JoinRequest{}
	}
	return requests, nil
}

// Resolve moves a PENDING request to a final status. The status guard in the
// WHERE clause makes concurrent resolutions race-safe: the loser sees zero
// affected rows.
func (r *repository) Resolve(
	ctx context.Context, id int64, status joinrequestModel.Status, resolvedAt time.Time,
) error {
	result := r.db.WithContext(ctx).
		Model(&joinrequestModel.JoinRequest{}).
		Where("id = ? AND status = ?", id, joinrequestModel.StatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"resolved_at": resolvedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var req joinrequestModel.JoinRequest
		err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return joinrequestModel.ErrRequestNotFound
		}
		if err != nil {
			return err
		}
		return joinrequestModel.ErrRequestClosed
	}
	return nil
}
