// Package repository provides read-only data access for events.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	eventModel "github.com/festhive/registration/internal/event/model"
)

// Repository defines the interface for event data access operations.
type Repository interface {
	// GetByID finds an event by its id.
	GetByID(ctx context.Context, id int64) (*eventModel.Event, error)

	// GetBySlug finds an event by its human-routable slug.
	GetBySlug(ctx context.Context, slug string) (*eventModel.Event, error)
}

type repository struct {
	db *gorm.DB
}

// New creates a new event repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetByID finds an event by its id.
func (r *repository) GetByID(ctx context.Context, id int64) (*eventModel.Event, error) {
	var event eventModel.Event
	err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eventModel.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// GetBySlug finds an event by its human-routable slug.
func (r *repository) GetBySlug(ctx context.Context, slug string) (*eventModel.Event, error) {
	var event eventModel.Event
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eventModel.ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}
