package models

import "time"

// Notification is an announcement delivered to one volunteer.
type Notification struct {
	ID             int64 // volunteer_announcement_id
	AnnouncementID int64
	Title          string
	Body           string
	CreatedAt      time.Time
}
