package models

import "time"

// Cadence determines which calendar dates a habit is scheduled on.
type Cadence string

const (
	CadenceDaily    Cadence = "daily"
	CadenceWeekdays Cadence = "weekdays"
	CadenceCustom   Cadence = "custom"
)

// Moment is a named time-of-day bucket used to derive default windows.
type Moment string

const (
	MomentMorning Moment = "morning"
	MomentMidday  Moment = "midday"
	MomentEvening Moment = "evening"
)

// Window is the daily interval during which a habit may be completed.
type Window struct {
	Start string `json:"start"` // HH:MM format
	End   string `json:"end"`   // HH:MM format
}

// Dose is an optional target quantity (minutes, liters, etc.).
// It is informational only; the engine does not score against it.
type Dose struct {
	Unit   string  `json:"unit"`
	Target float64 `json:"target"`
}

// Habit represents a recurring commitment to track
type Habit struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Name       string     `json:"name"`
	Cadence    Cadence    `json:"cadence"`
	CustomRule string     `json:"custom_rule,omitempty"` // reserved for a future rule parser
	Moment     Moment     `json:"moment"`
	Window     Window     `json:"window"`
	Dose       *Dose      `json:"dose,omitempty"`
	Difficulty int        `json:"difficulty"` // 1-3 severity weight
	CreatedAt  time.Time  `json:"created_at"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// Occurrence is one scheduled instance of a habit on one date. Occurrences
// are derived on demand and never persisted as authoritative records; the
// id is a deterministic composite so regeneration is idempotent.
type Occurrence struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habit_id"`
	UserID      string    `json:"user_id"`
	Day         string    `json:"day"` // YYYY-MM-DD format
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	DueAt       time.Time `json:"due_at"`
}
