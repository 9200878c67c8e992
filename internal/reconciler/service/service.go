// Package service implements the consistency reconciler: single-member
// removal with the user-survival rule, and the bulk admin cleanup.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festhive/registration/internal/blob"
	"github.com/festhive/registration/internal/identity"
	participationRepository "github.com/festhive/registration/internal/participation/repository"
	reconcilerModel "github.com/festhive/registration/internal/reconciler/model"
	"github.com/festhive/registration/internal/reconciler/repository"
	teamRepository "github.com/festhive/registration/internal/team/repository"
	userRepository "github.com/festhive/registration/internal/user/repository"
)

// defaultCleanupTimeout bounds the bulk cleanup transaction. The wipe touches
// every table and can outlive a normal request deadline.
const defaultCleanupTimeout = 60 * time.Second

// Service defines the reconciler operations.
type Service interface {
	// RemoveMember removes a team member and reconciles the dependent rows:
	// the membership, the member's participation, and, when no participations
	// remain, the user account itself.
	RemoveMember(ctx context.Context, teamID, participantID int64) (*reconcilerModel.RemovalResult, error)

	// BulkCleanup wipes the selected data categories and deletes orphaned
	// blobs. Admin only.
	BulkCleanup(ctx context.Context, caller identity.Identity, req *reconcilerModel.CleanupRequest) (*reconcilerModel.CleanupReport, error)
}

type service struct {
	repo           repository.Repository
	blobs          blob.Store
	db             *gorm.DB
	logger         *zap.SugaredLogger
	cleanupTimeout time.Duration
}

// New creates a new reconciler service instance.
func New(
	repo repository.Repository,
	blobs blob.Store,
	db *gorm.DB,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:           repo,
		blobs:          blobs,
		db:             db,
		logger:         logger,
		cleanupTimeout: defaultCleanupTimeout,
	}
}

// RemoveMember deletes the membership row, the member's participation and,
// when that was the user's last participation anywhere, the user account with
// its sessions and linked accounts. A user who still participates in another
// event survives. All database writes are one transaction; the payment
// screenshot blob is deleted best-effort after commit.
func (s *service) RemoveMember(
	ctx context.Context, teamID, participantID int64,
) (*reconcilerModel.RemovalResult, error) {
	var screenshotKey string
	result := &reconcilerModel.RemovalResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txTeams := teamRepository.New(tx)
		if err := txTeams.RemoveMember(ctx, teamID, participantID); err != nil {
			return err
		}

		txParticipations := participationRepository.New(tx)
		p, err := txParticipations.GetByID(ctx, participantID)
		if err != nil {
			return err
		}
		screenshotKey = p.PaymentScreenshotKey

		if err := txParticipations.Delete(ctx, participantID); err != nil {
			return err
		}

		remaining, err := txParticipations.CountByUser(ctx, p.UserID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			if err := userRepository.New(tx).DeleteWithDependents(ctx, p.UserID); err != nil {
				return err
			}
			result.UserDeleted = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if screenshotKey != "" {
		if delErr := s.blobs.Delete(ctx, screenshotKey); delErr != nil {
			s.logger.Warnw("failed to delete payment screenshot of removed member",
				"participation_id", participantID, "key", screenshotKey, "error", delErr)
		}
	}

	return result, nil
}

// BulkCleanup wipes the selected categories. Blob keys are collected before
// the transaction: once the rows are gone the keys are unrecoverable. Selected
// categories are deleted child-before-parent; rows of unselected categories
// that reference a deleted user go away through the schema's ON DELETE
// CASCADE. Blob deletion happens after commit and never rolls the database
// back; partial failures are reported instead.
func (s *service) BulkCleanup(
	ctx context.Context, caller identity.Identity, req *reconcilerModel.CleanupRequest,
) (*reconcilerModel.CleanupReport, error) {
	if !caller.IsAdmin() {
		return nil, reconcilerModel.ErrAdminOnly
	}
	if !req.Selected() {
		return nil, reconcilerModel.ErrNothingSelected
	}

	blobKeys, err := s.collectBlobKeys(ctx, req)
	if err != nil {
		return nil, err
	}

	report := &reconcilerModel.CleanupReport{}
	txCtx, cancel := context.WithTimeout(ctx, s.cleanupTimeout)
	defer cancel()

	err = s.db.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)

		if req.Participants {
			if report.TeamMembers, err = txRepo.DeleteAllTeamMembers(txCtx); err != nil {
				return err
			}
			if report.JoinRequests, err = txRepo.DeleteAllJoinRequests(txCtx); err != nil {
				return err
			}
			if report.Teams, err = txRepo.DeleteAllTeams(txCtx); err != nil {
				return err
			}
			if report.Participations, err = txRepo.DeleteAllParticipations(txCtx); err != nil {
				return err
			}
		}

		if req.Accommodations {
			if report.Accommodations, err = txRepo.DeleteAllAccommodations(txCtx); err != nil {
				return err
			}
		}

		if req.SupportTickets {
			if report.ResponseAttachments, err = txRepo.DeleteAllResponseAttachments(txCtx); err != nil {
				return err
			}
			if report.TicketResponses, err = txRepo.DeleteAllTicketResponses(txCtx); err != nil {
				return err
			}
			if report.TicketAttachments, err = txRepo.DeleteAllTicketAttachments(txCtx); err != nil {
				return err
			}
			if report.Tickets, err = txRepo.DeleteAllTickets(txCtx); err != nil {
				return err
			}
		}

		// Users go last: every category above may reference them.
		if req.Users {
			if report.Users, err = txRepo.DeleteNonAdminUsers(txCtx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if req.Files && len(blobKeys) > 0 {
		batch, batchErr := s.blobs.DeleteBatch(ctx, blobKeys)
		if batchErr != nil {
			s.logger.Errorw("bulk blob deletion failed after cleanup commit",
				"keys", len(blobKeys), "error", batchErr)
		}
		report.BlobsDeleted = batch.Deleted
		if len(batch.Failed) > 0 {
			report.BlobFailures = batch.Failed
			s.logger.Warnw("bulk blob deletion partially failed",
				"failed", len(batch.Failed), "deleted", batch.Deleted)
		}
	}

	s.logger.Infow("bulk cleanup completed",
		"admin_id", caller.UserID,
		"participations", report.Participations,
		"teams", report.Teams,
		"users", report.Users,
		"blobs_deleted", report.BlobsDeleted)

	return report, nil
}

// collectBlobKeys gathers the keys that will be orphaned by the selected
// categories. Runs before the transaction so the keys still exist to read.
func (s *service) collectBlobKeys(
	ctx context.Context, req *reconcilerModel.CleanupRequest,
) ([]string, error) {
	if !req.Files {
		return nil, nil
	}

	var keys []string
	if req.Participants {
		screenshots, err := s.repo.CollectScreenshotKeys(ctx)
		if err != nil {
			return nil, err
		}
		keys = append(keys, screenshots...)
	}
	if req.Users {
		images, err := s.repo.CollectUserImageKeys(ctx)
		if err != nil {
			return nil, err
		}
		keys = append(keys, images...)
	}
	if req.SupportTickets {
		ticketKeys, err := s.repo.CollectTicketAttachmentKeys(ctx)
		if err != nil {
			return nil, err
		}
		keys = append(keys, ticketKeys...)

		responseKeys, err := s.repo.CollectResponseAttachmentKeys(ctx)
		if err != nil {
			return nil, err
		}
		keys = append(keys, responseKeys...)
	}
	return keys, nil
}
