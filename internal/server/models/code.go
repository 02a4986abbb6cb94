package models

import "time"

// CodePurpose discriminates the independent one-time code flows.
type CodePurpose string

const (
	PurposeVerification  CodePurpose = "verification"
	PurposePasswordReset CodePurpose = "password_reset"
)

// Code is an outstanding one-time code, stored hashed. AccountID is zero when
// the stored foreign key is null.
type Code struct {
	Purpose   CodePurpose
	AccountID int64
	Digest    string
	Salt      string
	CreatedAt time.Time
}
