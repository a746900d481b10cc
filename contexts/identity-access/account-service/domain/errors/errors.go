package errors

import "errors"

var (
	ErrInvalidRegistration = errors.New("invalid registration data")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrEmailTaken          = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUserNotFound        = errors.New("user not found")
	ErrNotAuthenticated    = errors.New("authentication required")
	ErrForbidden           = errors.New("forbidden")
	ErrTokenInvalid        = errors.New("token is invalid")
	ErrTokenExpired        = errors.New("token has expired")
)
