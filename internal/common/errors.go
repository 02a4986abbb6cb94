package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Validation errors. Raised before any I/O happens.
	ErrInvalidArgument = errors.New("invalid argument")

	// Volunteer flow errors.
	ErrorNotVerified     = errors.New("volunteer is not verified")
	ErrorAlreadyVerified = errors.New("volunteer is already verified")
	ErrorCodeNotFound    = errors.New("code does not exist")
	ErrorInvalidCode     = errors.New("invalid code")
	ErrorEmailMismatch   = errors.New("email does not match")

	// ErrMailOffline marks a message that was queued instead of delivered.
	ErrMailOffline = errors.New("email service offline")

	// ErrSlackHookMissing means no webhook is configured for health reports.
	ErrSlackHookMissing = errors.New("slack webhook is not configured")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
