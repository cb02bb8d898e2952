package engine

import (
	"fmt"
	"time"

	"github.com/ascend-app/ascend/internal/models"
	"github.com/ascend-app/ascend/internal/utils"
)

// OccurrenceID builds the deterministic composite id for one scheduled
// instance. Regenerating a horizon always yields the same ids.
func OccurrenceID(userID, habitID, day string) string {
	return fmt.Sprintf("%s:%s:%s", userID, habitID, day)
}

// CadenceMatches reports whether the habit's cadence schedules it on the
// given date.
func CadenceMatches(habit models.Habit, date time.Time) bool {
	switch habit.Cadence {
	case models.CadenceDaily:
		return true
	case models.CadenceWeekdays:
		wd := date.Weekday()
		return wd >= time.Monday && wd <= time.Friday
	case models.CadenceCustom:
		// Custom rules are not interpreted yet; until a rule parser is
		// supplied the habit is treated as scheduled every day.
		return true
	default:
		return false
	}
}

// GenerateOccurrences expands the habit's cadence into dated occurrences for
// the horizon [start, start+days). Output is ordered by date ascending with
// exactly one entry per qualifying date, and is deterministic for identical
// inputs. Window times are anchored to each date in start's location.
func GenerateOccurrences(habit models.Habit, start time.Time, days int) ([]models.Occurrence, error) {
	if days < 0 {
		return nil, fmt.Errorf("horizon days must be >= 0, got %d", days)
	}
	startMin, err := utils.ParseTimeToMinutes(habit.Window.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid window start %q: %w", habit.Window.Start, err)
	}
	endMin, err := utils.ParseTimeToMinutes(habit.Window.End)
	if err != nil {
		return nil, fmt.Errorf("invalid window end %q: %w", habit.Window.End, err)
	}
	if startMin >= endMin {
		return nil, fmt.Errorf("window start %s must be before end %s", habit.Window.Start, habit.Window.End)
	}

	loc := start.Location()
	occurrences := make([]models.Occurrence, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		if !CadenceMatches(habit, date) {
			continue
		}

		day := utils.FormatDay(date)
		windowStart, err := utils.CombineDayAndTime(day, habit.Window.Start, loc)
		if err != nil {
			return nil, err
		}
		windowEnd, err := utils.CombineDayAndTime(day, habit.Window.End, loc)
		if err != nil {
			return nil, err
		}

		occurrences = append(occurrences, models.Occurrence{
			ID:          OccurrenceID(habit.UserID, habit.ID, day),
			HabitID:     habit.ID,
			UserID:      habit.UserID,
			Day:         day,
			WindowStart: windowStart,
			WindowEnd:   windowEnd,
			DueAt:       windowStart,
		})
	}

	return occurrences, nil
}
