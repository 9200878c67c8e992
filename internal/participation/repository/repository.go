// Package repository provides data access layer for the participation module.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	participationModel "github.com/festhive/registration/internal/participation/model"
)

// Repository defines the interface for participation data access operations.
type Repository interface {
	// Create inserts a new participation. Returns ErrAlreadyRegistered when a
	// row for the same (user, event) pair exists.
	Create(ctx context.Context, p *participationModel.Participation) error

	// GetByID finds a participation by id.
	GetByID(ctx context.Context, id int64) (*participationModel.Participation, error)

	// GetByUserAndEvent finds the participation for a (user, event) pair.
	GetByUserAndEvent(ctx context.Context, userID, eventID int64) (*participationModel.Participation, error)

	// GetMostRecentByUser returns the user's latest participation by
	// registration time.
	GetMostRecentByUser(ctx context.Context, userID int64) (*participationModel.Participation, error)

	// CountByUser counts the user's participations across all events.
	CountByUser(ctx context.Context, userID int64) (int64, error)

	// SetPaymentSubmitted records a screenshot key, stamps submission time
	// and clears any previous verification.
	SetPaymentSubmitted(ctx context.Context, id int64, key string, submittedAt time.Time) error

	// ClearPayment removes payment evidence and regresses the status to
	// PENDING_PAYMENT.
	ClearPayment(ctx context.Context, id int64) error

	// SetVerified marks the payment as verified by an admin.
	SetVerified(ctx context.Context, id int64, verifiedAt time.Time) error

	// SetStatus updates the status only.
	SetStatus(ctx context.Context, id int64, status participationModel.Status) error

	// UpdateDetails overwrites the registrant detail snapshot.
	UpdateDetails(ctx context.Context, id int64, req *participationModel.UpdateDetailsRequest) error

	// Delete removes a participation row.
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new participation repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new participation.
func (r *repository) Create(ctx context.Context, p *participationModel.Participation) error {
	err := r.db.WithContext(ctx).Create(p).Error
	if err != nil {
		if isDuplicateError(err) {
			return participationModel.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

// isDuplicateError checks if error is a unique constraint violation.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// GetByID finds a participation by id.
func (r *repository) GetByID(ctx context.Context, id int64) (*participationModel.Participation, error) {
	var p participationModel.Participation
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, participationModel.ErrParticipationNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetByUserAndEvent finds the participation for a (user, event) pair.
func (r *repository) GetByUserAndEvent(
	ctx context.Context, userID, eventID int64,
) (*participationModel.Participation, error) {
	var p participationModel.Participation
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, participationModel.ErrParticipationNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetMostRecentByUser returns the user's latest participation. Timestamps are
// the source of truth for recency across events.
func (r *repository) GetMostRecentByUser(
	ctx context.Context, userID int64,
) (*participationModel.Participation, error) {
	var p participationModel.Participation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("registered_at DESC").
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, participationModel.ErrParticipationNotFound
		}
		return nil, err
	}
	return &p, nil
}

// CountByUser counts the user's participations across all events.
func (r *repository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&participationModel.Participation{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// SetPaymentSubmitted records a screenshot key and stamps submission time.
func (r *repository) SetPaymentSubmitted(
	ctx context.Context, id int64, key string, submittedAt time.Time,
) error {
	return r.updateByID(ctx, id, map[string]interface{}{
		"payment_screenshot_key": key,
		"payment_submitted_at":   submittedAt,
		"payment_verified_at":    nil,
		"status":                 participationModel.StatusPaymentSubmitted,
		"updated_at":             time.Now(),
	})
}

// ClearPayment removes payment evidence and regresses to PENDING_PAYMENT.
func (r *repository) ClearPayment(ctx context.Context, id int64) error {
	return r.updateByID(ctx, id, map[string]interface{}{
		"payment_screenshot_key": "",
		"payment_submitted_at":   nil,
		"payment_verified_at":    nil,
		"status":                 participationModel.StatusPendingPayment,
		"updated_at":             time.Now(),
	})
}

// SetVerified marks the payment as verified by an admin.
func (r *repository) SetVerified(ctx context.Context, id int64, verifiedAt time.Time) error {
	return r.updateByID(ctx, id, map[string]interface{}{
		"payment_verified_at": verifiedAt,
		"status":              participationModel.StatusConfirmed,
		"updated_at":          time.Now(),
	})
}

// SetStatus updates the status only.
func (r *repository) SetStatus(ctx context.Context, id int64, status participationModel.Status) error {
	return r.updateByID(ctx, id, map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
}

// UpdateDetails overwrites the registrant detail snapshot.
func (r *repository) UpdateDetails(
	ctx context.Context, id int64, req *participationModel.UpdateDetailsRequest,
) error {
	return r.updateByID(ctx, id, map[string]interface{}{
		"full_name":       req.FullName,
		"email":           req.Email,
		"mobile_number":   req.MobileNumber,
		"whatsapp_number": req.WhatsappNumber,
		"id_number":       req.IDNumber,
		"state":           req.State,
		"district":        req.District,
		"college_name":    req.CollegeName,
		"college_address": req.CollegeAddress,
		"updated_at":      time.Now(),
	})
}

// Delete removes a participation row.
func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Delete(&participationModel.Participation{}, "id = ?", id).Error
}

func (r *repository) updateByID(ctx context.Context, id int64, fields map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&participationModel.Participation{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return participationModel.ErrParticipationNotFound
	}
	return nil
}
