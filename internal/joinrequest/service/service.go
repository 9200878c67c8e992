// Package service provides business logic layer for the join-request module.
//
// Acceptance is the one place a participation and a membership are created
// together; everything it touches happens in a single transaction so a
// failure at any step leaves no partial rows behind.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	eventRepository "github.com/festhive/registration/internal/event/repository"
	"github.com/festhive/registration/internal/identity"
	joinrequestModel "github.com/festhive/registration/internal/joinrequest/model"
	"github.com/festhive/registration/internal/joinrequest/repository"
	participationModel "github.com/festhive/registration/internal/participation/model"
	participationRepository "github.com/festhive/registration/internal/participation/repository"
	teamModel "github.com/festhive/registration/internal/team/model"
	teamRepository "github.com/festhive/registration/internal/team/repository"
	userRepository "github.com/festhive/registration/internal/user/repository"
)

// Service defines the interface for join-request business logic operations.
type Service interface {
	// Submit files a join application against the team with the given
	// invitation code. No participation is created yet.
	Submit(ctx context.Context, teamCode string, req *joinrequestModel.SubmitRequest) (*joinrequestModel.JoinRequestResponse, error)

	// Accept promotes a PENDING request into a user, a REGISTERED
	// participation and a team membership, atomically. Leader or admin only.
	Accept(ctx context.Context, caller identity.Identity, requestID int64) (*joinrequestModel.JoinRequestResponse, error)

	// Reject declines a PENDING request. Leader or admin only.
	Reject(ctx context.Context, caller identity.Identity, requestID int64) (*joinrequestModel.JoinRequestResponse, error)

	// Withdraw lets the applicant retract their own PENDING request.
	Withdraw(ctx context.Context, requestID int64, req *joinrequestModel.WithdrawRequest) (*joinrequestModel.JoinRequestResponse, error)

	// ListPending returns the team's open requests. Leader or admin only.
	ListPending(ctx context.Context, caller identity.Identity, teamID int64) ([]joinrequestModel.JoinRequestResponse, error)
}

type service struct {
	repo           repository.Repository
	teams          teamRepository.Repository
	participations participationRepository.Repository
	events         eventRepository.Repository
	users          userRepository.Repository
	db             *gorm.DB
	logger         *zap.SugaredLogger
}

// New creates a new join-request service instance.
func New(
	repo repository.Repository,
	teams teamRepository.Repository,
	participations participationRepository.Repository,
	events eventRepository.Repository,
	users userRepository.Repository,
	db *gorm.DB,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:           repo,
		teams:          teams,
		participations: participations,
		events:         events,
		users:          users,
		db:             db,
		logger:         logger,
	}
}

// Submit files a join application. The applicant may not have an account yet,
// so the request carries the full registrant payload for later promotion.
func (s *service) Submit(
	ctx context.Context, teamCode string, req *joinrequestModel.SubmitRequest,
) (*joinrequestModel.JoinRequestResponse, error) {
	team, err := s.teams.GetByCode(ctx, teamCode)
	if err != nil {
		return nil, err
	}

	request := &joinrequestModel.JoinRequest{
		TeamID:         team.ID,
		Status:         joinrequestModel.StatusPending,
		FullName:       req.FullName,
		Email:          req.Email,
		MobileNumber:   req.MobileNumber,
		WhatsappNumber: req.WhatsappNumber,
		IDNumber:       req.IDNumber,
		State:          req.State,
		District:       req.District,
		CollegeName:    req.CollegeName,
		CollegeAddress: req.CollegeAddress,
		Message:        req.Message,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, err
	}

	return joinrequestModel.ToResponse(request), nil
}

// Accept promotes a PENDING request. The team row is locked for the duration
// of the transaction so the capacity re-check and the membership insert see
// the same member count.
func (s *service) Accept(
	ctx context.Context, caller identity.Identity, requestID int64,
) (*joinrequestModel.JoinRequestResponse, error) {
	request, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != joinrequestModel.StatusPending {
		return nil, joinrequestModel.ErrRequestClosed
	}

	team, err := s.teams.GetByID(ctx, request.TeamID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeLeader(ctx, caller, team); err != nil {
		return nil, err
	}

	event, err := s.events.GetByID(ctx, team.EventID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txTeams := teamRepository.New(tx)
		txRequests := repository.New(tx)

		lockedTeam, err := txTeams.GetByIDForUpdate(ctx, team.ID)
		if err != nil {
			return err
		}

		count, err := txTeams.CountMembers(ctx, lockedTeam.ID)
		if err != nil {
			return err
		}
		if count+1 >= int64(event.TeamSize) {
			return teamModel.ErrTeamFull
		}

		user, err := userRepository.New(tx).GetOrCreateByEmail(
			ctx, request.Email, request.FullName, request.MobileNumber)
		if err != nil {
			return err
		}

		p := &participationModel.Participation{
			UserID:         user.ID,
			EventID:        lockedTeam.EventID,
			FullName:       request.FullName,
			Email:          request.Email,
			MobileNumber:   request.MobileNumber,
			WhatsappNumber: request.WhatsappNumber,
			IDNumber:       request.IDNumber,
			State:          request.State,
			District:       request.District,
			CollegeName:    request.CollegeName,
			CollegeAddress: request.CollegeAddress,
			Status:         participationModel.StatusRegistered,
			RegisteredAt:   time.Now(),
		}
		if err := participationRepository.New(tx).Create(ctx, p); err != nil {
			return err
		}

		if err := txTeams.AddMember(ctx, lockedTeam.ID, p.ID); err != nil {
			return err
		}

		return txRequests.Resolve(ctx, requestID, joinrequestModel.StatusAccepted, time.Now())
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("join request accepted",
		"request_id", requestID, "team_id", team.ID, "email", request.Email)

	request.Status = joinrequestModel.StatusAccepted
	return joinrequestModel.ToResponse(request), nil
}

// Reject declines a PENDING request.
func (s *service) Reject(
	ctx context.Context, caller identity.Identity, requestID int64,
) (*joinrequestModel.JoinRequestResponse, error) {
	request, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	team, err := s.teams.GetByID(ctx, request.TeamID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeLeader(ctx, caller, team); err != nil {
		return nil, err
	}

	if err := s.repo.Resolve(ctx, requestID, joinrequestModel.StatusRejected, time.Now()); err != nil {
		return nil, err
	}

	request.Status = joinrequestModel.StatusRejected
	return joinrequestModel.ToResponse(request), nil
}

// Withdraw retracts a PENDING request. The applicant has no account to
// authenticate with, so the email in the body must match the request.
func (s *service) Withdraw(
	ctx context.Context, requestID int64, req *joinrequestModel.WithdrawRequest,
) (*joinrequestModel.JoinRequestResponse, error) {
	request, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Email != req.Email {
		return nil, joinrequestModel.ErrNotApplicant
	}

	if err := s.repo.Resolve(ctx, requestID, joinrequestModel.StatusWithdrawn, time.Now()); err != nil {
		return nil, err
	}

	request.Status = joinrequestModel.StatusWithdrawn
	return joinrequestModel.ToResponse(request), nil
}

// ListPending returns the team's open requests, oldest first.
func (s *service) ListPending(
	ctx context.Context, caller identity.Identity, teamID int64,
) ([]joinrequestModel.JoinRequestResponse, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeLeader(ctx, caller, team); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListPendingByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	responses := make([]joinrequestModel.JoinRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, *joinrequestModel.ToResponse(&requests[i]))
	}
	return responses, nil
}

// authorizeLeader compares the caller's participation for the team's event
// against the team's leader. Admins bypass the check.
func (s *service) authorizeLeader(
	ctx context.Context, caller identity.Identity, team *teamModel.Team,
) error {
	if caller.IsAdmin() {
		return nil
	}
	own, err := s.participations.GetByUserAndEvent(ctx, caller.UserID, team.EventID)
	if err != nil {
		if errors.Is(err, participationModel.ErrParticipationNotFound) {
			return teamModel.ErrLeaderOnly
		}
		return err
	}
	if own.ID != team.LeaderID {
		return teamModel.ErrLeaderOnly
	}
	return nil
}
