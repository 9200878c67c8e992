// Package repository provides data access for system settings.
package repository

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	settingsModel "github.com/festhive/registration/internal/settings/model"
)

// Repository defines the interface for settings data access operations.
type Repository interface {
	// Get returns the value for key, lazily creating the row with
	// defaultValue when it does not exist yet.
	Get(ctx context.Context, key, defaultValue string) (string, error)

	// GetBool is Get for boolean-valued settings. Unparsable values fall
	// back to the default.
	GetBool(ctx context.Context, key string, defaultValue bool) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// New creates a new settings repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Get returns the value for key, lazily creating the default row.
func (r *repository) Get(ctx context.Context, key, defaultValue string) (string, error) {
	var setting settingsModel.SystemSetting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err == nil {
		return setting.Value, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	setting = settingsModel.SystemSetting{Key: key, Value: defaultValue}
	if createErr := r.db.WithContext(ctx).Create(&setting).Error; createErr != nil {
		// A concurrent request may have created the row first.
		var existing settingsModel.SystemSetting
		if getErr := r.db.WithContext(ctx).Where("key = ?", key).First(&existing).Error; getErr == nil {
			return existing.Value, nil
		}
		return "", createErr
	}

	return setting.Value, nil
}

// GetBool is Get for boolean-valued settings.
func (r *repository) GetBool(ctx context.Context, key string, defaultValue bool) (bool, error) {
	value, err := r.Get(ctx, key, strconv.FormatBool(defaultValue))
	if err != nil {
		return false, err
	}

	parsed, parseErr := strconv.ParseBool(value)
	if parseErr != nil {
		return defaultValue, nil
	}
	return parsed, nil
}
