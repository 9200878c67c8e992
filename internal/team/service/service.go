// Package service provides business logic layer for the team module.
//
// It enforces the formation rules: only CONFIRMED participations form or join
// teams, nobody leads or belongs to two teams of the same event, and capacity
// (members plus the leader) never exceeds the event's team size.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	eventModel "github.com/festhive/registration/internal/event/model"
	eventRepository "github.com/festhive/registration/internal/event/repository"
	"github.com/festhive/registration/internal/identity"
	participationModel "github.com/festhive/registration/internal/participation/model"
	participationRepository "github.com/festhive/registration/internal/participation/repository"
	reconcilerModel "github.com/festhive/registration/internal/reconciler/model"
	reconcilerService "github.com/festhive/registration/internal/reconciler/service"
	teamModel "github.com/festhive/registration/internal/team/model"
	"github.com/festhive/registration/internal/team/repository"
	"github.com/festhive/registration/pkg/retry"
)

// slugRetryConfig bounds the create loop on slug collisions. The random
// suffix makes a second collision vanishingly unlikely, so three attempts is
// plenty.
var slugRetryConfig = retry.Config{
	MaxAttempts:     3,
	InitialDelay:    10 * time.Millisecond,
	MaxDelay:        50 * time.Millisecond,
	Multiplier:      2.0,
	RetryableErrors: []string{teamModel.ErrSlugTaken.Error()},
}

// Service defines the interface for team business logic operations.
type Service interface {
	// Create forms a team led by the caller's participation for the event.
	Create(ctx context.Context, caller identity.Identity, req *teamModel.CreateTeamRequest) (*teamModel.TeamResponse, error)

	// AddMember adds a CONFIRMED participation of the same event to the team.
	// Leader or admin only.
	AddMember(ctx context.Context, caller identity.Identity, teamID int64, req *teamModel.AddMemberRequest) (*teamModel.TeamResponse, error)

	// RemoveMember removes a member and reconciles dependent rows. Leader or
	// admin only.
	RemoveMember(ctx context.Context, caller identity.Identity, teamID, participantID int64) (*reconcilerModel.RemovalResult, error)

	// PotentialMembers lists participations eligible to join the team.
	// Leader or admin only.
	PotentialMembers(ctx context.Context, caller identity.Identity, teamID int64) (*teamModel.PotentialMembersResponse, error)

	// Get returns the team with its leader and members.
	Get(ctx context.Context, teamID int64) (*teamModel.TeamResponse, error)
}

type service struct {
	repo           repository.Repository
	participations participationRepository.Repository
	events         eventRepository.Repository
	reconciler     reconcilerService.Service
	db             *gorm.DB
	logger         *zap.SugaredLogger
}

// New creates a new team service instance.
func New(
	repo repository.Repository,
	participations participationRepository.Repository,
	events eventRepository.Repository,
	reconciler reconcilerService.Service,
	db *gorm.DB,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		repo:           repo,
		participations: participations,
		events:         events,
		reconciler:     reconciler,
		db:             db,
		logger:         logger,
	}
}

// Create forms a team. The caller's participation for the event must be
// CONFIRMED and not already teamed. Slug collisions are resolved by retrying
// with a fresh random suffix; the unique index stays the source of truth.
func (s *service) Create(
	ctx context.Context, caller identity.Identity, req *teamModel.CreateTeamRequest,
) (*teamModel.TeamResponse, error) {
	event, err := s.events.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	leader, err := s.participations.GetByUserAndEvent(ctx, caller.UserID, event.ID)
	if err != nil {
		return nil, err
	}
	if leader.Status != participationModel.StatusConfirmed {
		return nil, teamModel.ErrNotConfirmed
	}

	teamed, err := s.repo.IsTeamedInEvent(ctx, leader.ID, event.ID)
	if err != nil {
		return nil, err
	}
	if teamed {
		return nil, teamModel.ErrAlreadyTeamed
	}

	team, err := retry.DoWithResult(ctx, slugRetryConfig, func() (*teamModel.Team, error) {
		t := &teamModel.Team{
			EventID:     event.ID,
			Name:        req.Name,
			SlugID:      generateSlug(req.Name, event.Title),
			TeamCode:    generateTeamCode(),
			LeaderID:    leader.ID,
			Description: req.Description,
		}
		if createErr := s.repo.Create(ctx, t); createErr != nil {
			return nil, createErr
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("team created",
		"team_id", team.ID, "event_id", event.ID, "leader_participation_id", leader.ID)

	return s.buildResponse(ctx, team, leader)
}

// AddMember adds a member. The capacity check runs inside the transaction
// against a locked team row so two concurrent adds cannot both pass it.
func (s *service) AddMember(
	ctx context.Context, caller identity.Identity, teamID int64,
	req *teamModel.AddMemberRequest,
) (*teamModel.TeamResponse, error) {
	event, err := s.eventForTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx)

		team, err := txRepo.GetByIDForUpdate(ctx, teamID)
		if err != nil {
			return err
		}
		if err := s.authorizeLeader(ctx, participationRepository.New(tx), caller, team); err != nil {
			return err
		}

		member, err := participationRepository.New(tx).GetByID(ctx, req.ParticipantID)
		if err != nil {
			return err
		}
		if member.EventID != team.EventID {
			return teamModel.ErrEventMismatch
		}
		if member.Status != participationModel.StatusConfirmed {
			return teamModel.ErrNotConfirmed
		}

		teamed, err := txRepo.IsTeamedInEvent(ctx, member.ID, team.EventID)
		if err != nil {
			return err
		}
		if teamed {
			return teamModel.ErrAlreadyTeamed
		}

		count, err := txRepo.CountMembers(ctx, teamID)
		if err != nil {
			return err
		}
		// The leader occupies one slot on top of the member rows.
		if count+1 >= int64(event.TeamSize) {
			return teamModel.ErrTeamFull
		}

		return txRepo.AddMember(ctx, teamID, member.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, teamID)
}

// RemoveMember authorizes the removal and hands the cascade to the
// reconciler. The leader row is not a membership and cannot be removed here.
func (s *service) RemoveMember(
	ctx context.Context, caller identity.Identity, teamID, participantID int64,
) (*reconcilerModel.RemovalResult, error) {
	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeLeader(ctx, s.participations, caller, team); err != nil {
		return nil, err
	}
	if participantID == team.LeaderID {
		return nil, teamModel.ErrCannotRemoveLeader
	}

	if _, err := s.repo.GetMember(ctx, teamID, participantID); err != nil {
		return nil, err
	}

	return s.reconciler.RemoveMember(ctx, teamID, participantID)
}

// PotentialMembers lists CONFIRMED participations of the event that are not
// yet in any of its teams.
func (s *service) PotentialMembers(
	ctx context.Context, caller identity.Identity, teamID int64,
) (*teamModel.PotentialMembersResponse, error) {
	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeLeader(ctx, s.participations, caller, team); err != nil {
		return nil, err
	}

	candidates, err := s.repo.PotentialMembers(ctx, team.EventID, team.LeaderID)
	if err != nil {
		return nil, err
	}

	resp := &teamModel.PotentialMembersResponse{Candidates: []teamModel.MemberInfo{}}
	for i := range candidates {
		resp.Candidates = append(resp.Candidates, memberInfo(&candidates[i]))
	}
	return resp, nil
}

// Get returns the team with its leader and members.
func (s *service) Get(ctx context.Context, teamID int64) (*teamModel.TeamResponse, error) {
	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	leader, err := s.participations.GetByID(ctx, team.LeaderID)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, team, leader)
}

// authorizeLeader resolves the caller's participation and compares it against
// the team's leader. Admins bypass the check. A caller with no participation
// for the event is treated as not the leader rather than surfacing a lookup
// error.
func (s *service) authorizeLeader(
	ctx context.Context, participations participationRepository.Repository,
	caller identity.Identity, team *teamModel.Team,
) error {
	if caller.IsAdmin() {
		return nil
	}
	own, err := participations.GetByUserAndEvent(ctx, caller.UserID, team.EventID)
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

func (s *service) eventForTeam(ctx context.Context, teamID int64) (*eventModel.Event, error) {
	team, err := s.repo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	return s.events.GetByID(ctx, team.EventID)
}

func (s *service) buildResponse(
	ctx context.Context, team *teamModel.Team, leader *participationModel.Participation,
) (*teamModel.TeamResponse, error) {
	members, err := s.repo.ListMembers(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	resp := &teamModel.TeamResponse{
		ID:          team.ID,
		EventID:     team.EventID,
		Name:        team.Name,
		SlugID:      team.SlugID,
		TeamCode:    team.TeamCode,
		Description: team.Description,
		Leader:      memberInfo(leader),
		Members:     []teamModel.MemberInfo{},
	}
	for i := range members {
		resp.Members = append(resp.Members, memberInfo(&members[i]))
	}
	return resp, nil
}

func memberInfo(p *participationModel.Participation) teamModel.MemberInfo {
	return teamModel.MemberInfo{
		ParticipationID: p.ID,
		FullName:        p.FullName,
		Email:           p.Email,
		Status:          string(p.Status),
	}
}
