// Package repository provides data access layer for the team module.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	participationModel "github.com/festhive/registration/internal/participation/model"
	teamModel "github.com/festhive/registration/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// Create inserts a new team. Returns ErrSlugTaken on a slug collision
	// and ErrAlreadyTeamed when the leader already leads a team.
	Create(ctx context.Context, team *teamModel.Team) error

	// GetByID finds a team by id.
	GetByID(ctx context.Context, id int64) (*teamModel.Team, error)

	// GetByIDForUpdate finds a team by id, taking a row lock where the
	// dialect supports one. Must be called inside a transaction.
	GetByIDForUpdate(ctx context.Context, id int64) (*teamModel.Team, error)

	// GetByCode finds a team by its invitation code.
	GetByCode(ctx context.Context, code string) (*teamModel.Team, error)

	// CountMembers counts member rows (the leader is not included).
	CountMembers(ctx context.Context, teamID int64) (int64, error)

	// ListMembers returns the member participations of a team.
	ListMembers(ctx context.Context, teamID int64) ([]participationModel.Participation, error)

	// AddMember inserts a member row. Returns ErrAlreadyTeamed when the
	// participation is already a member somewhere.
	AddMember(ctx context.Context, teamID, participantID int64) error

	// GetMember returns the member row for a participation in a team.
	GetMember(ctx context.Context, teamID, participantID int64) (*teamModel.TeamMember, error)

	// RemoveMember deletes a member row. Returns ErrMemberNotFound when the
	// participation is not a member of the team.
	RemoveMember(ctx context.Context, teamID, participantID int64) error

	// IsTeamedInEvent reports whether the participation already leads or
	// belongs to any team of the event.
	IsTeamedInEvent(ctx context.Context, participationID, eventID int64) (bool, error)

	// PotentialMembers returns CONFIRMED participations of the event that
	// neither lead nor belong to any of its teams, excluding the leader.
	PotentialMembers(ctx context.Context, eventID, leaderParticipationID int64) ([]participationModel.Participation, error)
}

type repository struct {
	db *gorm.DB
}

// New creates a new team repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new team.
func (r *repository) Create(ctx context.Context, team *teamModel.Team) error {
	err := r.db.WithContext(ctx).Create(team).Error
	if err != nil {
		if isDuplicateError(err) {
			if strings.Contains(err.Error(), "slug") {
				return teamModel.ErrSlugTaken
			}
			return teamModel.ErrAlreadyTeamed
		}
		return err
	}
	return nil
}

// isDuplicateError checks if error is a unique constraint violation.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// GetByID finds a team by id.
func (r *repository) GetByID(ctx context.Context, id int64) (*teamModel.Team, error) {
	return r.getTeam(r.db.WithContext(ctx), id)
}

// GetByIDForUpdate finds a team by id with a row lock. SQLite (used in tests)
// has no row locks; its single-writer model serializes the writes instead.
func (r *repository) GetByIDForUpdate(ctx context.Context, id int64) (*teamModel.Team, error) {
	q := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return r.getTeam(q, id)
}

func (r *repository) getTeam(q *gorm.DB, id int64) (*teamModel.Team, error) {
	var team teamModel.Team
	err := q.First(&team, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

// GetByCode finds a team by its invitation code.
func (r *repository) GetByCode(ctx context.Context, code string) (*teamModel.Team, error) {
	var team teamModel.Team
	err := r.db.WithContext(ctx).Where("team_code = ?", code).First(&team).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

// CountMembers counts member rows.
func (r *repository) CountMembers(ctx context.Context, teamID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&teamModel.TeamMember{}).
		Where("team_id = ?", teamID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListMembers returns the member participations of a team.
func (r *repository) ListMembers(
	ctx context.Context, teamID int64,
) ([]participationModel.Participation, error) {
	var members []participationModel.Participation
	err := r.db.WithContext(ctx).
		Table("participations").
		Joins("JOIN team_members ON team_members.participant_id = participations.id").
		Where("team_members.team_id = ?", teamID).
		Order("team_members.joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// AddMember inserts a member row.
func (r *repository) AddMember(ctx context.Context, teamID, participantID int64) error {
	member := &teamModel.TeamMember{
		TeamID:        teamID,
		ParticipantID: participantID,
		JoinedAt:      time.Now(),
	}
	err := r.db.WithContext(ctx).Create(member).Error
	if err != nil {
		if isDuplicateError(err) {
			return teamModel.ErrAlreadyTeamed
		}
		return err
	}
	return nil
}

// GetMember returns the member row for a participation in a team.
func (r *repository) GetMember(
	ctx context.Context, teamID, participantID int64,
) (*teamModel.TeamMember, error) {
	var member teamModel.TeamMember
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND participant_id = ?", teamID, participantID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

// RemoveMember deletes a member row.
func (r *repository) RemoveMember(ctx context.Context, teamID, participantID int64) error {
	result := r.db.WithContext(ctx).
		Where("team_id = ? AND participant_id = ?", teamID, participantID).
		Delete(&teamModel.TeamMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return teamModel.ErrMemberNotFound
	}
	return nil
}

// IsTeamedInEvent reports whether the participation already leads or belongs
// to any team of the event. This is recomputed on every request; there is no
// cached membership flag to go stale.
func (r *repository) IsTeamedInEvent(
	ctx context.Context, participationID, eventID int64,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&teamModel.Team{}).
		Where("event_id = ? AND leader_id = ?", eventID, participationID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	err = r.db.WithContext(ctx).
		Model(&teamModel.TeamMember{}).
		Joins("JOIN teams ON teams.id = team_members.team_id").
		Where("teams.event_id = ? AND team_members.participant_id = ?", eventID, participationID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// PotentialMembers computes the candidate pool as a set subtraction over the
// event's CONFIRMED participations.
func (r *repository) PotentialMembers(
	ctx context.Context, eventID, leaderParticipationID int64,
) ([]participationModel.Participation, error) {
	var candidates []participationModel.Participation
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND status = ?", eventID, participationModel.StatusConfirmed).
		Where("id <> ?", leaderParticipationID).
		Where("id NOT IN (?)", r.db.
			Table("team_members").
			Select("team_members.participant_id").
			Joins("JOIN teams ON teams.id = team_members.team_id").
			Where("teams.event_id = ?", eventID)).
		Where("id NOT IN (?)", r.db.
			Table("teams").
			Select("teams.leader_id").
			Where("teams.event_id = ?", eventID)).
		Order("id ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	if candidates == nil {
		candidates = []participationModel.Participation{}
	}
	return candidates, nil
}
