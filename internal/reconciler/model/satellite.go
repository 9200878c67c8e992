// Package model provides the cleanup-only satellite models and DTOs for the
// reconciler module.
package model

import "time"

// Accommodation is a user's stay booking. The reconciler only deletes these;
// booking itself is handled elsewhere.
type Accommodation struct {
	ID        int64     `gorm:"primaryKey;column:id;type:bigserial"                       json:"id"`
	UserID    int64     `gorm:"column:user_id;type:bigint;not null"                       json:"user_id"`
	CheckIn   time.Time `gorm:"column:check_in;type:timestamptz;not null"                 json:"check_in"`
	CheckOut  time.Time `gorm:"column:check_out;type:timestamptz;not null"                json:"check_out"`
	Guests    int       `gorm:"column:guests;type:int;not null;default:1"                 json:"guests"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Accommodation) TableName() string {
	return "accommodations"
}

// SupportTicket is a help-desk ticket opened by a user.
type SupportTicket struct {
	ID        int64     `gorm:"primaryKey;column:id;type:bigserial"                       json:"id"`
	UserID    int64     `gorm:"column:user_id;type:bigint;not null"                       json:"user_id"`
	Subject   string    `gorm:"column:subject;type:varchar(255);not null"                 json:"subject"`
	Body      string    `gorm:"column:body;type:text"                                     json:"body"`
	Status    string    `gorm:"column:status;type:varchar(20);not null;default:OPEN"      json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM.
func (SupportTicket) TableName() string {
	return "support_tickets"
}

// SupportTicketResponse is a reply on a ticket.
type SupportTicketResponse struct {
	ID        int64     `gorm:"primaryKey;column:id;type:bigserial"                       json:"id"`
	TicketID  int64     `gorm:"column:ticket_id;type:bigint;not null"                     json:"ticket_id"`
	UserID    int64     `gorm:"column:user_id;type:bigint;not null"                       json:"user_id"`
	Body      string    `gorm:"column:body;type:text"                                     json:"body"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM.
func (SupportTicketResponse) TableName() string {
	return "support_ticket_responses"
}

// TicketAttachment is a blob attached to a ticket.
type TicketAttachment struct {
	ID       int64  `gorm:"primaryKey;column:id;type:bigserial"        json:"id"`
	TicketID int64  `gorm:"column:ticket_id;type:bigint;not null"      json:"ticket_id"`
	BlobKey  string `gorm:"column:blob_key;type:varchar(512);not null" json:"blob_key"`
}

// TableName specifies the table name for GORM.
func (TicketAttachment) TableName() string {
	return "ticket_attachments"
}

// ResponseAttachment is a blob attached to a ticket response.
type ResponseAttachment struct {
	ID         int64  `gorm:"primaryKey;column:id;type:bigserial"        json:"id"`
	ResponseID int64  `gorm:"column:response_id;type:bigint;not null"    json:"response_id"`
	BlobKey    string `gorm:"column:blob_key;type:varchar(512);not null" json:"blob_key"`
}

// TableName specifies the table name for GORM.
func (ResponseAttachment) TableName() string {
	return "response_attachments"
}
