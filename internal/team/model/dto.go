package model

// CreateTeamRequest represents the request to create a team.
type CreateTeamRequest struct {
	EventID     int64  `json:"event_id" binding:"required"`
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"omitempty,max=1000"`
}

// AddMemberRequest represents the request to add a member to a team.
type AddMemberRequest struct {
	ParticipantID int64 `json:"participant_id" binding:"required"`
}

// MemberInfo represents a team member (or leader) in API responses.
type MemberInfo struct {
	ParticipationID int64  `json:"participation_id"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Status          string `json:"status"`
}

// TeamResponse represents a team with its leader and members.
type TeamResponse struct {
	ID          int64        `json:"id"`
	EventID     int64        `json:"event_id"`
	Name        string       `json:"name"`
	SlugID      string       `json:"slug_id"`
	TeamCode    string       `json:"team_code"`
	Description string       `json:"description,omitempty"`
	Leader      MemberInfo   `json:"leader"`
	Members     []MemberInfo `json:"members"`
}

// PotentialMembersResponse lists participations eligible to be added.
type PotentialMembersResponse struct {
	Candidates []MemberInfo `json:"candidates"`
}
