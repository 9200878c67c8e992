// Package repository provides the bulk data access used by the reconciler.
package repository

import (
	"context"

	"gorm.io/gorm"

	joinrequestModel "github.com/festhive/registration/internal/joinrequest/model"
	participationModel "github.com/festhive/registration/internal/participation/model"
	reconcilerModel "github.com/festhive/registration/internal/reconciler/model"
	teamModel "github.com/festhive/registration/internal/team/model"
	userModel "github.com/festhive/registration/internal/user/model"
)

// Repository defines the bulk collection and deletion operations of the
// reconciler. The Delete* methods return the number of rows removed.
type Repository interface {
	// CollectScreenshotKeys returns all non-empty payment screenshot keys.
	CollectScreenshotKeys(ctx context.Context) ([]string, error)

	// CollectUserImageKeys returns profile image keys of non-admin users.
	CollectUserImageKeys(ctx context.Context) ([]string, error)

	// CollectTicketAttachmentKeys returns all ticket attachment blob keys.
	CollectTicketAttachmentKeys(ctx context.Context) ([]string, error)

	// CollectResponseAttachmentKeys returns all response attachment blob keys.
	CollectResponseAttachmentKeys(ctx context.Context) ([]string, error)

	DeleteAllTeamMembers(ctx context.Context) (int64, error)
	DeleteAllJoinRequests(ctx context.Context) (int64, error)
	DeleteAllTeams(ctx context.Context) (int64, error)
	DeleteAllParticipations(ctx context.Context) (int64, error)
	DeleteAllAccommodations(ctx context.Context) (int64, error)
	DeleteAllResponseAttachments(ctx context.Context) (int64, error)
	DeleteAllTicketResponses(ctx context.Context) (int64, error)
	DeleteAllTicketAttachments(ctx context.Context) (int64, error)
	DeleteAllTickets(ctx context.Context) (int64, error)

	// DeleteNonAdminUsers removes sessions and linked accounts of non-admin
	// users, then the user rows themselves. Admin accounts survive.
	DeleteNonAdminUsers(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// New creates a new reconciler repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CollectScreenshotKeys returns all non-empty payment screenshot keys.
func (r *repository) CollectScreenshotKeys(ctx context.Context) ([]string, error) {
	return r.collectKeys(ctx, r.db.WithContext(ctx).
		Model(&participationModel.Participation{}).
		Where("payment_screenshot_key <> ''").
		Select("payment_screenshot_key"))
}

// CollectUserImageKeys returns profile image keys of non-admin users.
func (r *repository) CollectUserImageKeys(ctx context.Context) ([]string, error) {
	return r.collectKeys(ctx, r.db.WithContext(ctx).
		Model(&userModel.User{}).
		Where("role <> ? AND image_key <> ''", userModel.RoleAdmin).
		Select("image_key"))
}

// CollectTicketAttachmentKeys returns all ticket attachment blob keys.
func (r *repository) CollectTicketAttachmentKeys(ctx context.Context) ([]string, error) {
	return r.collectKeys(ctx, r.db.WithContext(ctx).
		Model(&reconcilerModel.TicketAttachment{}).
		Where("blob_key <> ''").
		Select("blob_key"))
}

// CollectResponseAttachmentKeys returns all response attachment blob keys.
func (r *repository) CollectResponseAttachmentKeys(ctx context.Context) ([]string, error) {
	return r.collectKeys(ctx, r.db.WithContext(ctx).
		Model(&reconcilerModel.ResponseAttachment{}).
		Where("blob_key <> ''").
		Select("blob_key"))
}

func (r *repository) collectKeys(ctx context.Context, q *gorm.DB) ([]string, error) {
	var keys []string
	if err := q.Find(&keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *repository) DeleteAllTeamMembers(ctx context.Context) (int64, error) {
	return r.deleteAll(ctx, &teamModel.TeamMember{})
}

func (r *repository) DeleteAllJoinRequests(ctx context.Context) (int64, error) {
	return r.deleteAll(ctx, &joinrequestModel.JoinRequest{})
}

func (r *repository) DeleteAllTeams(ctx context.Context) (int64, error) {
	return r.deleteAll(ctx, &teamModel.Team{})
}

func (r *repository) DeleteAllParticipations(ctx context.Context) (int64, error) {
	return r.deleteAll(ctx, &participationModel.Participation{})
}

func (r *repository) DeleteAllAccommodations(ctx context.Context) (int64, error) {
	return r.deleteAll(ctx, &reconcilerModel.Accommodation{})
}

func (r *repository) DeleteAllResponseAttachments(ctx context.Context) (int64, error) {
	return r.deleteAll(ctx, &reconcilerModel.ResponseAttachment{})
}

func (r *repository) DeleteAllTicketResponses(ctx context.Context) (int64, error) {
	return r.deleteAll(ctx, &reconcilerModel.SupportTicketResponse{})
}

func (r *repository) DeleteAllTicketAttachments(ctx context.Context) (int64, error) {
	return r.deleteAll(ctx, &reconcilerModel.TicketAttachment{})
}

func (r *repository) DeleteAllTickets(ctx context.Context) (int64, error) {
	return r.deleteAll(ctx, &reconcilerModel.SupportTicket{})
}

// DeleteNonAdminUsers removes sessions and linked accounts of non-admin users
// before the user rows. Anything else still referencing those users
// (participations, accommodations, support tickets) is dropped by the
// schema's ON DELETE CASCADE.
func (r *repository) DeleteNonAdminUsers(ctx context.Context) (int64, error) {
	nonAdminIDs := r.db.
		Model(&userModel.User{}).
		Select("id").
		Where("role <> ?", userModel.RoleAdmin)

	if err := r.db.WithContext(ctx).
		Where("user_id IN (?)", nonAdminIDs).
		Delete(&userModel.Session{}).Error; err != nil {
		return 0, err
	}
	if err := r.db.WithContext(ctx).
		Where("user_id IN (?)", nonAdminIDs).
		Delete(&userModel.Account{}).Error; err != nil {
		return 0, err
	}

	result := r.db.WithContext(ctx).
		Where("role <> ?", userModel.RoleAdmin).
		Delete(&userModel.User{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *repository) deleteAll(ctx context.Context, model interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(model)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
