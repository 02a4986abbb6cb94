package models

import "time"

// ProjectStatusActive is the status value the public listing shows.
const ProjectStatusActive = 1

type Project struct {
	ID              int64
	Title           string
	Status          int
	ProjectCategory int
	Hidden          bool
	ImageDirectory  string
	Summary         string
	Description     string
	DataEntryUserID *int64
	CreatedAt       time.Time
}
