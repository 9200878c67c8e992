package model

import "errors"

var (
	// ErrRequestNotFound indicates that the join request does not exist.
	ErrRequestNotFound = errors.New("join request not found")
	// ErrRequestClosed indicates the request has already been resolved.
	ErrRequestClosed = errors.New("join request is already resolved")
	// ErrNotApplicant indicates a withdraw attempt by someone other than the
	// applicant.
	ErrNotApplicant = errors.New("only the applicant may withdraw the request")
)
