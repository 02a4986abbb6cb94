package client

import "errors"

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	// ErrMailQueued means the server accepted the request but the email
	// will be sent once its mail service is back.
	ErrMailQueued = errors.New("email queued for later delivery")
)
