package model

import "errors"

var (
	// ErrAdminOnly indicates the caller lacks the admin role.
	ErrAdminOnly = errors.New("admin role required")
	// ErrNothingSelected indicates the cleanup request enabled no category.
	ErrNothingSelected = errors.New("no cleanup category selected")
)
