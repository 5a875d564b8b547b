package auth

import "errors"

var (
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrBadCredentials = errors.New("wrong email or password")
	ErrInjuredLink    = errors.New("unknown activation link")
)
