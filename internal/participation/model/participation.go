// Package model provides domain models and DTOs for the participation module.
package model

import (
	"time"

	"gorm.io/gorm"
)

// Status is the participation lifecycle status.
//
// Status only advances REGISTERED -> PENDING_PAYMENT -> PAYMENT_SUBMITTED ->
// CONFIRMED, with two explicit exceptions: payment-evidence deletion regresses
// to PENDING_PAYMENT, and CANCELLED is reachable from any non-terminal state.
type Status string

const (
	// StatusRegistered is the initial status after registration.
	StatusRegistered Status = "REGISTERED"
	// StatusPendingPayment means payment evidence was removed and must be
	// re-submitted.
	StatusPendingPayment Status = "PENDING_PAYMENT"
	// StatusPaymentSubmitted means a screenshot is uploaded and awaiting
	// admin verification.
	StatusPaymentSubmitted Status = "PAYMENT_SUBMITTED"
	// StatusConfirmed means an admin verified the payment.
	StatusConfirmed Status = "CONFIRMED"
	// StatusCancelled is the terminal escape status.
	StatusCancelled Status = "CANCELLED"
)

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled
}

// Participation represents a user's registration record for one event.
// Matches the participations table schema. Registrant details are a snapshot
// captured at registration time and independently editable thereafter.
type Participation struct {
	ID                   int64      `gorm:"primaryKey;column:id;type:bigserial"                                                          json:"id"`
	UserID               int64      `gorm:"column:user_id;type:bigint;not null;uniqueIndex:idx_participations_user_event"                json:"user_id"`
	EventID              int64      `gorm:"column:event_id;type:bigint;not null;uniqueIndex:idx_participations_user_event"               json:"event_id"`
	FullName             string     `gorm:"column:full_name;type:varchar(255);not null"                                                  json:"full_name"`
	Email                string     `gorm:"column:email;type:varchar(255);not null"                                                      json:"email"`
	MobileNumber         string     `gorm:"column:mobile_number;type:varchar(20)"                                                        json:"mobile_number"`
	WhatsappNumber       string     `gorm:"column:whatsapp_number;type:varchar(20)"                                                      json:"whatsapp_number,omitempty"`
	IDNumber             string     `gorm:"column:id_number;type:varchar(20)"                                                            json:"id_number"`
	State                string     `gorm:"column:state;type:varchar(100)"                                                               json:"state"`
	District             string     `gorm:"column:district;type:varchar(100)"                                                            json:"district"`
	CollegeName          string     `gorm:"column:college_name;type:varchar(255)"                                                        json:"college_name"`
	CollegeAddress       string     `gorm:"column:college_address;type:varchar(512)"                                                     json:"college_address"`
	Status               Status     `gorm:"column:status;type:varchar(30);not null;default:REGISTERED;index:idx_participations_status"   json:"status"`
	PaymentScreenshotKey string     `gorm:"column:payment_screenshot_key;type:varchar(512)"                                              json:"payment_screenshot_key,omitempty"`
	PaymentSubmittedAt   *time.Time `gorm:"column:payment_submitted_at;type:timestamptz"                                                 json:"payment_submitted_at,omitempty"`
	PaymentVerifiedAt    *time.Time `gorm:"column:payment_verified_at;type:timestamptz"                                                  json:"payment_verified_at,omitempty"`
	RegisteredAt         time.Time  `gorm:"column:registered_at;type:timestamptz;not null;default:now()"                                 json:"registered_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at;type:timestamptz;not null;default:now()"                                    json:"-"`
}

// TableName specifies the table name for GORM.
func (Participation) TableName() string {
	return "participations"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (p *Participation) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now()
	return nil
}
