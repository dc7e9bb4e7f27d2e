package apperr

import "errors"

// Sentinel errors services return; handlers map them onto HTTP statuses.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrValidation   = errors.New("validation failed")
	ErrUpstream     = errors.New("upstream service error")
)
