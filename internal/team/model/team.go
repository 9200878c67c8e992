// Package model provides domain models and DTOs for the team module.
package model

import (
	"time"

	"gorm.io/gorm"
)

// Team represents a team for one event.
// Matches the teams table schema. The leader is a Participation, never a
// bare user: leadership is scoped to the event through the participation.
type Team struct {
	ID          int64     `gorm:"primaryKey;column:id;type:bigserial"                                      json:"id"`
	EventID     int64     `gorm:"column:event_id;type:bigint;not null;index:idx_teams_event"               json:"event_id"`
	Name        string    `gorm:"column:name;type:varchar(255);not null"                                   json:"name"`
	SlugID      string    `gorm:"column:slug_id;type:varchar(255);not null;uniqueIndex:idx_teams_slug"     json:"slug_id"`
	TeamCode    string    `gorm:"column:team_code;type:varchar(32);not null;uniqueIndex:idx_teams_code"    json:"team_code"`
	LeaderID    int64     `gorm:"column:leader_id;type:bigint;not null;uniqueIndex:idx_teams_leader"       json:"leader_id"`
	Description string    `gorm:"column:description;type:text"                                             json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"                json:"-"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"                json:"-"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (t *Team) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}

// TeamMember links a team to a member participation (the leader is not
// duplicated here).
// Matches the team_members table schema.
type TeamMember struct {
	ID            int64     `gorm:"primaryKey;column:id;type:bigserial"                                            json:"id"`
	TeamID        int64     `gorm:"column:team_id;type:bigint;not null;index:idx_team_members_team"                json:"team_id"`
	ParticipantID int64     `gorm:"column:participant_id;type:bigint;not null;uniqueIndex:idx_team_members_participant" json:"participant_id"`
	JoinedAt      time.Time `gorm:"column:joined_at;type:timestamptz;not null;default:now()"                       json:"joined_at"`
}

// TableName specifies the table name for GORM.
func (TeamMember) TableName() string {
	return "team_members"
}
