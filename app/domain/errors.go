package domain

import "errors"

// Validation errors shared across services and conversation handlers.
var (
	ErrEmptyUserID  = errors.New("user id cannot be zero")
	ErrTitleTooLong = errors.New("task title exceeds 50 characters")
)
