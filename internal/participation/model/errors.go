package model

import "errors"

var (
	// ErrAlreadyRegistered indicates a participation already exists for this
	// (user, event) pair.
	ErrAlreadyRegistered = errors.New("already registered for this event")
	// ErrParticipationNotFound indicates the participation does not exist or
	// does not belong to the caller.
	ErrParticipationNotFound = errors.New("participation not found")
	// ErrRegistrationClosed indicates registration is currently disabled.
	ErrRegistrationClosed = errors.New("registration is closed")
	// ErrScreenshotKeyRequired indicates an empty payment screenshot key.
	ErrScreenshotKeyRequired = errors.New("screenshot key is required")
	// ErrNoPaymentEvidence indicates there is no payment screenshot to delete.
	ErrNoPaymentEvidence = errors.New("no payment evidence to delete")
	// ErrParticipationCancelled indicates the participation is in the
	// terminal CANCELLED status.
	ErrParticipationCancelled = errors.New("participation is cancelled")
	// ErrNotAwaitingVerification indicates verification was requested while
	// no payment is awaiting review.
	ErrNotAwaitingVerification = errors.New("participation has no payment awaiting verification")
	// ErrAdminOnly indicates the caller lacks the admin role.
	ErrAdminOnly = errors.New("operation requires admin role")
	// ErrStorageFailure indicates the blob store refused an operation that
	// must succeed before the database may change.
	ErrStorageFailure = errors.New("blob storage operation failed")
)
