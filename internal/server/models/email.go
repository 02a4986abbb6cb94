package models

import "time"

// StoredEmail is an outbound email parked while the mail service was offline.
type StoredEmail struct {
	ID         int64
	To         string
	From       string
	Subject    string
	Text       string
	HTML       string
	RetryCount int
	CreatedAt  time.Time
	ModifiedAt time.Time
}
