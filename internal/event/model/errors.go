package model

import "errors"

// ErrEventNotFound indicates that the requested event does not exist.
var ErrEventNotFound = errors.New("event not found")
