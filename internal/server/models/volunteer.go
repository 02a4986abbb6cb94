package models

import "time"

type Volunteer struct {
	ID                int64
	Username          string
	Email             string
	Name              string
	Password          string // hex digest
	Salt              string
	Verified          bool
	AdminPortalAccess bool
	CreatedAt         time.Time
}
