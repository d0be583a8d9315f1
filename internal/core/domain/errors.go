package domain

import "errors"

// Auth errors. All of these are expected, recoverable outcomes returned to
// the boundary layer; only ErrServiceUnavailable is eligible for caller-side
// retry.
var (
	ErrMissingToken       = errors.New("missing authentication token")
	ErrInvalidToken       = errors.New("invalid authentication token")
	ErrUserNotFound       = errors.New("user not found")
	ErrInactiveAccount    = errors.New("account is inactive")
	ErrForbidden          = errors.New("access forbidden")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// Marketplace errors.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrInvalidInput      = errors.New("invalid input")
)
