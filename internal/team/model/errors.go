package model

import "errors"

var (
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrLeaderOnly indicates that only the team leader may perform the
	// operation.
	ErrLeaderOnly = errors.New("only the team leader may modify the team")
	// ErrNotConfirmed indicates the participation is not CONFIRMED yet.
	ErrNotConfirmed = errors.New("participation is not confirmed")
	// ErrAlreadyTeamed indicates the participation already leads or belongs
	// to a team for this event.
	ErrAlreadyTeamed = errors.New("participation already leads or belongs to a team for this event")
	// ErrTeamFull indicates the team is at the event's size limit.
	ErrTeamFull = errors.New("team is at capacity")
	// ErrEventMismatch indicates the participation belongs to a different
	// event than the team.
	ErrEventMismatch = errors.New("participation belongs to a different event")
	// ErrMemberNotFound indicates the participation is not a member of the
	// team.
	ErrMemberNotFound = errors.New("team member not found")
	// ErrCannotRemoveLeader indicates the leader cannot be removed through
	// member removal.
	ErrCannotRemoveLeader = errors.New("team leader cannot be removed as a member")
	// ErrSlugTaken indicates a slug collision; callers retry with a fresh
	// suffix.
	ErrSlugTaken = errors.New("team slug already taken")
)
