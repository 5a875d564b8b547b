package domain

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrStatNotFound    = errors.New("stat entry not found")
	ErrBadPagination   = errors.New("invalid pagination")
	ErrBadDate         = errors.New("invalid date")
	ErrNegativeHours   = errors.New("hours must be non-negative")
	ErrEmailTaken      = errors.New("email already registered")
	ErrVersionConflict = errors.New("user aggregate modified concurrently")
)
