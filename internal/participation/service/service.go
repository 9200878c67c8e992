// Package service provides business logic layer for the participation module.
//
// It owns the participation state machine: which status transitions are legal,
// which timestamps each transition stamps, and whether the blob-store side
// effect of a transition blocks the database write or is best-effort.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festhive/registration/internal/blob"
	eventRepository "github.com/festhive/registration/internal/event/repository"
	"github.com/festhive/registration/internal/identity"
	participationModel "github.com/festhive/registration/internal/participation/model"
	"github.com/festhive/registration/internal/participation/repository"
	settingsModel "github.com/festhive/registration/internal/settings/model"
	settingsRepository "github.com/festhive/registration/internal/settings/repository"
	userRepository "github.com/festhive/registration/internal/user/repository"
)

// Service defines the interface for participation business logic operations.
type Service interface {
	// Register creates a REGISTERED participation for the caller and event.
	Register(ctx context.Context, caller identity.Identity, eventSlug string) (*participationModel.ParticipationResponse, error)

	// SubmitPayment records a payment screenshot (first upload or re-upload).
	SubmitPayment(ctx context.Context, caller identity.Identity, id int64, req *participationModel.SubmitPaymentRequest) (*participationModel.ParticipationResponse, error)

	// DeletePayment removes payment evidence and regresses the status.
	DeletePayment(ctx context.Context, caller identity.Identity, id int64) (*participationModel.ParticipationResponse, error)

	// Verify confirms a submitted payment. Admin only.
	Verify(ctx context.Context, caller identity.Identity, id int64) (*participationModel.ParticipationResponse, error)

	// Cancel moves a non-terminal participation to CANCELLED.
	Cancel(ctx context.Context, caller identity.Identity, id int64) (*participationModel.ParticipationResponse, error)

	// UpdateDetails edits registrant details and syncs them back onto the
	// user profile.
	UpdateDetails(ctx context.Context, caller identity.Identity, id int64, req *participationModel.UpdateDetailsRequest) (*participationModel.ParticipationResponse, error)

	// Latest returns the caller's most recent participation.
	Latest(ctx context.Context, caller identity.Identity) (*participationModel.ParticipationResponse, error)
}

type service struct {
	repo     repository.Repository
	events   eventRepository.Repository
	users    userRepository.Repository
	settings settingsRepository.Repository
	blobs    blob.Store
	db       *gorm.DB
	logger   *zap.SugaredLogger
}

// New creates a new participation service instance.
func New(
	repo repository.Repository,
	events eventRepository.Repository,
	users userRepository.Repository,
	settings settingsRepository.Repository,
	blobs blob.Store,
	db *gorm.DB,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:     repo,
		events:   events,
		users:    users,
		settings: settings,
		blobs:    blobs,
		db:       db,
		logger:   logger,
	}
}

// Register creates a REGISTERED participation for the caller and event.
// Duplicate registration is resolved by the (user_id, event_id) unique
// constraint, never by a check-then-insert.
func (s *service) Register(
	ctx context.Context, caller identity.Identity, eventSlug string,
) (*participationModel.ParticipationResponse, error) {
	open, err := s.settings.GetBool(ctx, settingsModel.KeyRegistrationOpen, true)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, participationModel.ErrRegistrationClosed
	}

	event, err := s.events.GetBySlug(ctx, eventSlug)
	if err != nil {
		return nil, err
	}

	// Contact fields are initialized from the session identity's user record
	// (may be blank) so the row is immediately editable.
	user, err := s.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	p := &participationModel.Participation{
		UserID:         caller.UserID,
		EventID:        event.ID,
		FullName:       user.Name,
		Email:          user.Email,
		MobileNumber:   user.MobileNumber,
		State:          user.State,
		District:       user.District,
		CollegeName:    user.CollegeName,
		CollegeAddress: user.CollegeAddress,
		Status:         participationModel.StatusRegistered,
		RegisteredAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	return participationModel.ToResponse(p), nil
}

// SubmitPayment records a payment screenshot. On re-upload the previous blob
// is deleted best-effort after the database write: the new upload is the
// priority, a stale object in storage is not.
func (s *service) SubmitPayment(
	ctx context.Context, caller identity.Identity, id int64,
	req *participationModel.SubmitPaymentRequest,
) (*participationModel.ParticipationResponse, error) {
	if req.ScreenshotKey == "" {
		return nil, participationModel.ErrScreenshotKeyRequired
	}

	var oldKey string
	var updated *participationModel.Participation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)

		p, err := s.getOwned(ctx, txRepo, caller, id)
		if err != nil {
			return err
		}
		if p.Status.IsTerminal() {
			return participationModel.ErrParticipationCancelled
		}

		oldKey = p.PaymentScreenshotKey
		now := time.Now()
		if err := txRepo.SetPaymentSubmitted(ctx, id, req.ScreenshotKey, now); err != nil {
			return err
		}

		p.PaymentScreenshotKey = req.ScreenshotKey
		p.PaymentSubmittedAt = &now
		p.PaymentVerifiedAt = nil
		p.Status = participationModel.StatusPaymentSubmitted
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if oldKey != "" && oldKey != req.ScreenshotKey {
		if delErr := s.blobs.Delete(ctx, oldKey); delErr != nil {
			s.logger.Warnw("failed to delete replaced payment screenshot",
				"participation_id", id, "key", oldKey, "error", delErr)
		}
	}

	return participationModel.ToResponse(updated), nil
}

// DeletePayment removes payment evidence. The blob deletion is a blocking
// precondition: losing verifiable proof while the database still claims it
// exists is the worse failure mode, so a storage failure aborts the update.
func (s *service) DeletePayment(
	ctx context.Context, caller identity.Identity, id int64,
) (*participationModel.ParticipationResponse, error) {
	p, err := s.getOwned(ctx, s.repo, caller, id)
	if err != nil {
		return nil, err
	}
	if p.PaymentScreenshotKey == "" {
		return nil, participationModel.ErrNoPaymentEvidence
	}

	if err := s.blobs.Delete(ctx, p.PaymentScreenshotKey); err != nil {
		return nil, fmt.Errorf("%w: %v", participationModel.ErrStorageFailure, err)
	}

	if err := s.repo.ClearPayment(ctx, id); err != nil {
		return nil, err
	}

	p.PaymentScreenshotKey = ""
	p.PaymentSubmittedAt = nil
	p.PaymentVerifiedAt = nil
	p.Status = participationModel.StatusPendingPayment
	return participationModel.ToResponse(p), nil
}

// Verify confirms a submitted payment. Admin only.
func (s *service) Verify(
	ctx context.Context, caller identity.Identity, id int64,
) (*participationModel.ParticipationResponse, error) {
	if !caller.IsAdmin() {
		return nil, participationModel.ErrAdminOnly
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != participationModel.StatusPaymentSubmitted {
		return nil, participationModel.ErrNotAwaitingVerification
	}

	now := time.Now()
	if err := s.repo.SetVerified(ctx, id, now); err != nil {
		return nil, err
	}

	p.PaymentVerifiedAt = &now
	p.Status = participationModel.StatusConfirmed
	return participationModel.ToResponse(p), nil
}

// Cancel moves a non-terminal participation to CANCELLED.
func (s *service) Cancel(
	ctx context.Context, caller identity.Identity, id int64,
) (*participationModel.ParticipationResponse, error) {
	p, err := s.getOwned(ctx, s.repo, caller, id)
	if err != nil {
		return nil, err
	}
	if p.Status.IsTerminal() {
		return nil, participationModel.ErrParticipationCancelled
	}

	if err := s.repo.SetStatus(ctx, id, participationModel.StatusCancelled); err != nil {
		return nil, err
	}

	p.Status = participationModel.StatusCancelled
	return participationModel.ToResponse(p), nil
}

// UpdateDetails edits registrant details independent of status and propagates
// them onto the user profile in the same transaction. Last editor wins.
func (s *service) UpdateDetails(
	ctx context.Context, caller identity.Identity, id int64,
	req *participationModel.UpdateDetailsRequest,
) (*participationModel.ParticipationResponse, error) {
	var updated *participationModel.Participation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)

		p, err := s.getOwned(ctx, txRepo, caller, id)
		if err != nil {
			return err
		}

		if err := txRepo.UpdateDetails(ctx, id, req); err != nil {
			return err
		}

		txUsers := userRepository.New(tx)
		if err := txUsers.SyncProfile(ctx, p.UserID, userRepository.ProfileUpdate{
			Name:           req.FullName,
			MobileNumber:   req.MobileNumber,
			State:          req.State,
			District:       req.District,
			CollegeName:    req.CollegeName,
			CollegeAddress: req.CollegeAddress,
		}); err != nil {
			return err
		}

		p.FullName = req.FullName
		p.Email = req.Email
		p.MobileNumber = req.MobileNumber
		p.WhatsappNumber = req.WhatsappNumber
		p.IDNumber = req.IDNumber
		p.State = req.State
		p.District = req.District
		p.CollegeName = req.CollegeName
		p.CollegeAddress = req.CollegeAddress
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return participationModel.ToResponse(updated), nil
}

// Latest returns the caller's most recent participation, used as a
// profile-prefill fallback.
func (s *service) Latest(
	ctx context.Context, caller identity.Identity,
) (*participationModel.ParticipationResponse, error) {
	p, err := s.repo.GetMostRecentByUser(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	return participationModel.ToResponse(p), nil
}

// getOwned loads a participation and folds the ownership check into
// ErrParticipationNotFound so existence is not leaked to other callers.
// Admins bypass the ownership check.
func (s *service) getOwned(
	ctx context.Context, repo repository.Repository, caller identity.Identity, id int64,
) (*participationModel.Participation, error) {
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.UserID != caller.UserID && !caller.IsAdmin() {
		return nil, participationModel.ErrParticipationNotFound
	}
	return p, nil
}
