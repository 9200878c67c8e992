// Package model provides domain models and DTOs for the join-request module.
package model

import (
	"time"
)

// Status is the join-request lifecycle status.
type Status string

const (
	// StatusPending means the request awaits a leader decision.
	StatusPending Status = "PENDING"
	// StatusAccepted means the request was promoted into a participation
	// and team membership.
	StatusAccepted Status = "ACCEPTED"
	// StatusRejected means the leader declined the request.
	StatusRejected Status = "REJECTED"
	// StatusWithdrawn means the applicant withdrew the request.
	StatusWithdrawn Status = "WITHDRAWN"
)

// JoinRequest is an application to join a team from someone who may not yet
// have a participation for the event. It carries the full registrant payload
// so acceptance can create the participation without a second round-trip.
// Matches the team_join_requests table schema.
type JoinRequest struct {
	ID             int64     `gorm:"primaryKey;column:id;type:bigserial"                            json:"id"`
	TeamID         int64     `gorm:"column:team_id;type:bigint;not null;index:idx_join_requests_team" json:"team_id"`
	Status         Status    `gorm:"column:status;type:varchar(20);not null;default:PENDING"        json:"status"`
	FullName       string    `gorm:"column:full_name;type:varchar(255);not null"                    json:"full_name"`
	Email          string    `gorm:"column:email;type:varchar(255);not null"                        json:"email"`
	MobileNumber   string    `gorm:"column:mobile_number;type:varchar(20);not null"                 json:"mobile_number"`
	WhatsappNumber string    `gorm:"column:whatsapp_number;type:varchar(20)"                        json:"whatsapp_number,omitempty"`
	IDNumber       string    `gorm:"column:id_number;type:varchar(20);not null"                     json:"id_number"`
	State          string    `gorm:"column:state;type:varchar(100)"                                 json:"state"`
	District       string    `gorm:"column:district;type:varchar(100)"                              json:"district"`
	CollegeName    string    `gorm:"column:college_name;type:varchar(255)"                          json:"college_name"`
	CollegeAddress string    `gorm:"column:college_address;type:varchar(512)"                       json:"college_address"`
	Message        string    `gorm:"column:message;type:text"                                       json:"message,omitempty"`
	CreatedAt      time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"      json:"created_at"`
	ResolvedAt     *time.Time `gorm:"column:resolved_at;type:timestamptz"                           json:"resolved_at,omitempty"`
}

// TableName specifies the table name for GORM.
func (JoinRequest) TableName() string {
	return "team_join_requests"
}
