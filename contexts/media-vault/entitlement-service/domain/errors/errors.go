package errors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid object request")
	ErrObjectNotFound   = errors.New("object not found")
	ErrNotAuthenticated = errors.New("authentication required")
	ErrNotAuthorized    = errors.New("access denied")
)
