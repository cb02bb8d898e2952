package models

import "time"

// CheckinStatus is the closed enumeration of completion states.
type CheckinStatus string

const (
	CheckinDone    CheckinStatus = "done"
	CheckinPartial CheckinStatus = "partial"
	CheckinSkipped CheckinStatus = "skipped"
)

// Checkin represents a user-reported completion record for a habit on a
// date. At most one checkin exists per (habit, day); resubmission updates
// in place, preserving created_at and setting edited_at.
type Checkin struct {
	ID         string        `json:"id"`
	HabitID    string        `json:"habit_id"`
	Day        string        `json:"day"` // YYYY-MM-DD format
	Status     CheckinStatus `json:"status"`
	Effort     int           `json:"effort"` // 0-3
	DoseActual *float64      `json:"dose_actual,omitempty"`
	Note       string        `json:"note,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	EditedAt   *time.Time    `json:"edited_at,omitempty"`
	DeletedAt  *time.Time    `json:"deleted_at,omitempty"`
}
