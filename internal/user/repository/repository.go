// Package repository provides data access for user accounts.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	userModel "github.com/festhive/registration/internal/user/model"
)

// Repository defines the interface for user data access operations.
type Repository interface {
	// GetByID finds a user by id.
	GetByID(ctx context.Context, id int64) (*userModel.User, error)

	// GetOrCreateByEmail returns the user with the given email, creating a
	// participant account when none exists.
	GetOrCreateByEmail(ctx context.Context, email, name, mobile string) (*userModel.User, error)

	// SyncProfile overwrites the user's profile fields. Last writer wins.
	SyncProfile(ctx context.Context, userID int64, profile ProfileUpdate) error

	// DeleteWithDependents removes the user's sessions and linked accounts,
	// then the user row itself.
	DeleteWithDependents(ctx context.Context, userID int64) error
}

// ProfileUpdate carries the profile fields written back by participation
// edits.
type ProfileUpdate struct {
	Name           string
	MobileNumber   string
	State          string
	District       string
	CollegeName    string
	CollegeAddress string
}

type repository struct {
	db *gorm.DB
}

// New creates a new user repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetByID finds a user by id.
func (r *repository) GetByID(ctx context.Context, id int64) (*userModel.User, error) {
	var user userModel.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userModel.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetOrCreateByEmail returns the user with the given email, creating a
// participant account when none exists.
func (r *repository) GetOrCreateByEmail(
	ctx context.Context, email, name, mobile string,
) (*userModel.User, error) {
	var user userModel.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = userModel.User{
		Name:         name,
		Email:        email,
		MobileNumber: mobile,
		Role:         userModel.RoleParticipant,
	}
	if createErr := r.db.WithContext(ctx).Create(&user).Error; createErr != nil {
		return nil, createErr
	}
	return &user, nil
}

// SyncProfile overwrites the user's profile fields. Last writer wins.
func (r *repository) SyncProfile(ctx context.Context, userID int64, profile ProfileUpdate) error {
	result := r.db.WithContext(ctx).
		Model(&userModel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"name":            profile.Name,
			"mobile_number":   profile.MobileNumber,
			"state":           profile.State,
			"district":        profile.District,
			"college_name":    profile.CollegeName,
			"college_address": profile.CollegeAddress,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return userModel.ErrUserNotFound
	}
	return nil
}

// DeleteWithDependents removes sessions and linked accounts before the user
// row. Satellite rows of the user (accommodations, support tickets) are
// dropped by the schema's ON DELETE CASCADE.
func (r *repository) DeleteWithDependents(ctx context.Context, userID int64) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&userModel.Session{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&userModel.Account{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&userModel.User{}, "id = ?", userID).Error
}
