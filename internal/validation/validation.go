package validation

import (
	"fmt"

	"github.com/ascend-app/ascend/internal/constants"
	"github.com/ascend-app/ascend/internal/models"
	"github.com/ascend-app/ascend/internal/utils"
)

// ParseStatus maps a user-supplied status string onto the closed checkin
// enumeration. The engine itself never validates; anything crossing the
// boundary goes through here first.
func ParseStatus(s string) (models.CheckinStatus, error) {
	switch models.CheckinStatus(s) {
	case models.CheckinDone:
		return models.CheckinDone, nil
	case models.CheckinPartial:
		return models.CheckinPartial, nil
	case models.CheckinSkipped:
		return models.CheckinSkipped, nil
	default:
		return "", fmt.Errorf("invalid status: %s (use done, partial, or skipped)", s)
	}
}

// ParseCadence maps a user-supplied cadence string onto the cadence variants.
func ParseCadence(s string) (models.Cadence, error) {
	switch models.Cadence(s) {
	case models.CadenceDaily:
		return models.CadenceDaily, nil
	case models.CadenceWeekdays:
		return models.CadenceWeekdays, nil
	case models.CadenceCustom:
		return models.CadenceCustom, nil
	default:
		return "", fmt.Errorf("invalid cadence: %s (use daily, weekdays, or custom)", s)
	}
}

// ParseMoment maps a user-supplied moment string onto the moment buckets.
func ParseMoment(s string) (models.Moment, error) {
	switch models.Moment(s) {
	case models.MomentMorning:
		return models.MomentMorning, nil
	case models.MomentMidday:
		return models.MomentMidday, nil
	case models.MomentEvening:
		return models.MomentEvening, nil
	default:
		return "", fmt.Errorf("invalid moment: %s (use morning, midday, or evening)", s)
	}
}

// ValidateEffort checks the closed effort range.
func ValidateEffort(effort int) error {
	if effort < 0 || effort > constants.MaxEffort {
		return fmt.Errorf("effort must be between 0 and %d, got %d", constants.MaxEffort, effort)
	}
	return nil
}

// ValidateDay checks date-string format.
func ValidateDay(day string) error {
	if !utils.ValidateDayFormat(day) {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", day)
	}
	return nil
}

// ValidateHabit checks structural validity of a habit before it reaches
// storage or the engine.
func ValidateHabit(h models.Habit) error {
	if h.Name == "" {
		return fmt.Errorf("habit name is required")
	}
	if _, err := ParseCadence(string(h.Cadence)); err != nil {
		return err
	}
	if _, err := ParseMoment(string(h.Moment)); err != nil {
		return err
	}
	if h.Difficulty < constants.MinDifficulty || h.Difficulty > constants.MaxDifficulty {
		return fmt.Errorf("difficulty must be between %d and %d, got %d", constants.MinDifficulty, constants.MaxDifficulty, h.Difficulty)
	}
	if !utils.ValidateTimeFormat(h.Window.Start) {
		return fmt.Errorf("invalid window start: %s (expected HH:MM)", h.Window.Start)
	}
	if !utils.ValidateTimeFormat(h.Window.End) {
		return fmt.Errorf("invalid window end: %s (expected HH:MM)", h.Window.End)
	}
	startMin, _ := utils.ParseTimeToMinutes(h.Window.Start)
	endMin, _ := utils.ParseTimeToMinutes(h.Window.End)
	if startMin >= endMin {
		return fmt.Errorf("window start %s must be before end %s", h.Window.Start, h.Window.End)
	}
	if h.Dose != nil && h.Dose.Target <= 0 {
		return fmt.Errorf("dose target must be positive, got %v", h.Dose.Target)
	}
	return nil
}

// ValidateCheckin checks a checkin record at the boundary.
func ValidateCheckin(c models.Checkin) error {
	if c.HabitID == "" {
		return fmt.Errorf("checkin habit id is required")
	}
	if err := ValidateDay(c.Day); err != nil {
		return err
	}
	if _, err := ParseStatus(string(c.Status)); err != nil {
		return err
	}
	if err := ValidateEffort(c.Effort); err != nil {
		return err
	}
	if c.DoseActual != nil && *c.DoseActual < 0 {
		return fmt.Errorf("dose actual cannot be negative, got %v", *c.DoseActual)
	}
	return nil
}
