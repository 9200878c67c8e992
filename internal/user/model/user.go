// Package model provides the user identity entities.
//
// User rows are created by the external identity provider; this core updates
// profile fields through participation edits (sync-back) and deletes accounts
// through the reconciler's survival rule.
package model

import (
	"time"

	"gorm.io/gorm"
)

// Role values mirror the identity provider's role claim.
const (
	RoleAdmin       = "admin"
	RoleParticipant = "participant"
)

// User represents a registrant or organizer account.
// Matches the users table schema.
type User struct {
	ID             int64     `gorm:"primaryKey;column:id;type:bigserial"                       json:"id"`
	Name           string    `gorm:"column:name;type:varchar(255);not null"                    json:"name"`
	Email          string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex"       json:"email"`
	MobileNumber   string    `gorm:"column:mobile_number;type:varchar(20)"                     json:"mobile_number"`
	Role           string    `gorm:"column:role;type:varchar(20);not null;default:participant" json:"role"`
	ImageKey       string    `gorm:"column:image_key;type:varchar(512)"                        json:"-"`
	State          string    `gorm:"column:state;type:varchar(100)"                            json:"state"`
	District       string    `gorm:"column:district;type:varchar(100)"                         json:"district"`
	CollegeName    string    `gorm:"column:college_name;type:varchar(255)"                     json:"college_name"`
	CollegeAddress string    `gorm:"column:college_address;type:varchar(512)"                  json:"college_address"`
	CreatedAt      time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()" json:"-"`
	UpdatedAt      time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()" json:"-"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// Session is an identity-provider session row. Owned by the identity
// provider; present so account deletion can satisfy referential constraints.
type Session struct {
	ID        int64     `gorm:"primaryKey;column:id;type:bigserial"                         json:"id"`
	UserID    int64     `gorm:"column:user_id;type:bigint;not null;index:idx_sessions_user" json:"user_id"`
	Token     string    `gorm:"column:token;type:varchar(512);not null;uniqueIndex"         json:"-"`
	ExpiresAt time.Time `gorm:"column:expires_at;type:timestamptz;not null"                 json:"expires_at"`
}

// TableName specifies the table name for GORM.
func (Session) TableName() string {
	return "sessions"
}

// Account is a linked external-identity row (OAuth provider account).
type Account struct {
	ID                int64  `gorm:"primaryKey;column:id;type:bigserial"                         json:"id"`
	UserID            int64  `gorm:"column:user_id;type:bigint;not null;index:idx_accounts_user" json:"user_id"`
	Provider          string `gorm:"column:provider;type:varchar(100);not null"                  json:"provider"`
	ProviderAccountID string `gorm:"column:provider_account_id;type:varchar(255);not null"      json:"provider_account_id"`
}

// TableName specifies the table name for GORM.
func (Account) TableName() string {
	return "accounts"
}
