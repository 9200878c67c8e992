// Package model provides the event entity consumed by the registration core.
// Events are created and edited by the admin console; this core only reads
// them.
package model

import (
	"time"
)

// Event represents a festival event.
// Matches the events table schema.
type Event struct {
	ID             int64     `gorm:"primaryKey;column:id;type:bigserial"                       json:"id"`
	Title          string    `gorm:"column:title;type:varchar(255);not null"                   json:"title"`
	Slug           string    `gorm:"column:slug;type:varchar(255);not null;uniqueIndex"        json:"slug"`
	Price          int64     `gorm:"column:price;type:bigint;not null;default:0"               json:"price"`
	TeamSize       int       `gorm:"column:team_size;type:int;not null;default:1"              json:"team_size"`
	Category       string    `gorm:"column:category;type:varchar(100);not null"                json:"category"`
	EventDate      time.Time `gorm:"column:event_date;type:timestamptz;not null"               json:"event_date"`
	DescriptionKey string    `gorm:"column:description_key;type:varchar(512)"                  json:"-"`
	RulesKey       string    `gorm:"column:rules_key;type:varchar(512)"                        json:"-"`
	CreatedAt      time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()" json:"-"`
}

// TableName specifies the table name for GORM.
func (Event) TableName() string {
	return "events"
}
