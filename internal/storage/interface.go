package storage

import (
	"net/url"
	"strings"

	"github.com/ascend-app/ascend/internal/models"
)

// Provider is the persistence contract consumed by the CLI and TUI. The
// engine never touches a Provider; it works on values the caller fetched.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	GetAllHabits(includeArchived, includeDeleted bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	ArchiveHabit(id string) error
	UnarchiveHabit(id string) error
	DeleteHabit(id string) error
	RestoreHabit(id string) error

	// Checkins. UpsertCheckin is keyed by (habit_id, day): a second write
	// for the same key updates status/effort/dose/note and edited_at in
	// place, preserving created_at.
	UpsertCheckin(models.Checkin) error
	GetCheckin(habitID, day string) (models.Checkin, error)
	GetCheckinsForDay(day string) ([]models.Checkin, error)
	GetCheckinsForHabit(habitID, startDay, endDay string) ([]models.Checkin, error)
	DeleteCheckin(id string) error

	// Streak states
	GetStreakState(habitID string) (models.StreakState, error)
	SaveStreakState(models.StreakState) error

	// XP ledger. Upserts are keyed by (habit_id, day) so a resubmitted
	// checkin replaces its award instead of stacking.
	UpsertXPEntry(models.XPEntry) error
	GetXPTotal(habitID string) (int, error)
	GetXPEntriesForHabit(habitID string, limit int) ([]models.XPEntry, error)

	// Bulk retrieval for data migration between backends
	GetAllCheckins() ([]models.Checkin, error)
	GetAllStreakStates() ([]models.StreakState, error)
	GetAllXPEntries() ([]models.XPEntry, error)

	// Utils
	GetConfigPath() string
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries an inline password, which is refused in favor of the OS keyring,
// environment variables, or .pgpass.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if u.User != nil {
			if _, isSet := u.User.Password(); isSet {
				return true
			}
		}
		return false
	}

	// DSN format: space-separated key=value pairs
	for _, pair := range strings.Fields(connStr) {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) == 2 && strings.EqualFold(strings.TrimSpace(kv[0]), "password") {
			return true
		}
	}
	return false
}
