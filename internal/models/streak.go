package models

import "time"

// StreakState is the rolling per-habit progress summary. Current never
// exceeds Best, and GraceTokens stays within 0-2. LastDay is empty for a
// habit that has never been folded.
type StreakState struct {
	HabitID     string    `json:"habit_id"`
	Current     int       `json:"current"`
	Best        int       `json:"best"`
	LastDay     string    `json:"last_day"` // YYYY-MM-DD format
	GraceTokens int       `json:"grace_tokens"`
	EMA         float64   `json:"ema"` // consistency score in [0,1]
	Maintenance bool      `json:"maintenance"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// XPEntry is one row of the experience-point ledger, awarded on checkin
// submission. Keyed by (habit, day) so a resubmitted checkin replaces its
// award instead of stacking.
type XPEntry struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	Day       string    `json:"day"` // YYYY-MM-DD format
	Points    int       `json:"points"`
	Streak    int       `json:"streak"`
	Effort    int       `json:"effort"`
	AwardedAt time.Time `json:"awarded_at"`
}
