package domain

import "errors"

// Validation failures. Recoverable by the caller; mapped to 4xx responses.
var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrUnknownRole       = errors.New("unknown role name")
	ErrPasswordMismatch  = errors.New("new password and confirmation do not match")
)

// Authentication and authorization failures. Sign-in and token failures are
// deliberately indistinguishable to external callers: the transport layer
// renders ErrInvalidCredentials and all token errors as the same generic
// unauthorized response.
var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUnauthenticated       = errors.New("authentication required")
	ErrForbidden             = errors.New("access forbidden")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenInvalidSignature = errors.New("token signature invalid")
	ErrTokenMalformed        = errors.New("token malformed")
)

// Missing resources.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrRoleNotFound = errors.New("role not found")
)
