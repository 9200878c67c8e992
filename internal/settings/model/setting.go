// Package model provides the process-wide key/value settings entity.
package model

import (
	"time"
)

// Setting keys read by this core.
const (
	// KeyRegistrationOpen gates the registration entry points.
	KeyRegistrationOpen = "registration_open"
)

// SystemSetting represents a process-wide flag with a lazily-created default.
// Matches the system_settings table schema.
type SystemSetting struct {
	Key       string    `gorm:"primaryKey;column:key;type:varchar(100)"                   json:"key"`
	Value     string    `gorm:"column:value;type:varchar(255);not null"                   json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()" json:"-"`
}

// TableName specifies the table name for GORM.
func (SystemSetting) TableName() string {
	return "system_settings"
}
