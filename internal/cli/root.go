package cli

import (
	"fmt"
	"time"

	"github.com/ascend-app/ascend/internal/backup"
	"github.com/ascend-app/ascend/internal/constants"
	"github.com/ascend-app/ascend/internal/logger"
	"github.com/ascend-app/ascend/internal/models"
	"github.com/ascend-app/ascend/internal/storage"
	"github.com/ascend-app/ascend/internal/utils"
)

type Context struct {
	Store storage.Provider
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveDay returns the day to operate on: the flag value when set,
// otherwise today in the configured timezone.
func (c *Context) ResolveDay(dateFlag string) (string, error) {
	if dateFlag != "" {
		if !utils.ValidateDayFormat(dateFlag) {
			return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", dateFlag)
		}
		return dateFlag, nil
	}

	settings, err := c.Store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	return utils.GetTodayInTimezone(settings.Timezone)
}

// ResolveWindow returns the habit's completion window, falling back to the
// configured default for its moment bucket when the habit has none.
func (c *Context) ResolveWindow(habit models.Habit) (models.Window, error) {
	if habit.Window.Start != "" && habit.Window.End != "" {
		return habit.Window, nil
	}

	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.Window{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings.MomentWindow(habit.Moment), nil
}

// FormatCadence formats a cadence rule into a human-readable string
func FormatCadence(habit models.Habit) string {
	switch habit.Cadence {
	case models.CadenceDaily:
		return "daily"
	case models.CadenceWeekdays:
		return "weekdays"
	case models.CadenceCustom:
		if habit.CustomRule != "" {
			return fmt.Sprintf("custom (%s)", habit.CustomRule)
		}
		return "custom"
	default:
		return "unknown"
	}
}

// FormatWindow formats a completion window for display
func FormatWindow(w models.Window) string {
	if w.Start == "" || w.End == "" {
		return "all day"
	}
	return fmt.Sprintf("%s-%s", w.Start, w.End)
}

// WindowDuration returns the length of a completion window in minutes.
// Returns 0 if the time format is invalid (which the caller should check).
func WindowDuration(w models.Window) int {
	start, err := time.Parse(constants.TimeFormat, w.Start)
	if err != nil {
		return 0
	}
	end, err := time.Parse(constants.TimeFormat, w.End)
	if err != nil {
		return 0
	}
	return int(end.Sub(start).Minutes())
}
