package domain

import "time"

// Application links a user to a job they applied for.
type Application struct {
	ID        string // ULID
	UserID    string
	JobID     string
	AppliedAt time.Time
}
