package engine

import (
	"fmt"

	"github.com/ascend-app/ascend/internal/constants"
	"github.com/ascend-app/ascend/internal/models"
	"github.com/ascend-app/ascend/internal/utils"
)

// DailyScore maps a day's checkin to its contribution to the consistency
// score: done 1.0, partial 0.5, skipped or absent 0.0.
func DailyScore(checkin *models.Checkin) float64 {
	if checkin == nil {
		return 0.0
	}
	switch checkin.Status {
	case models.CheckinDone:
		return 1.0
	case models.CheckinPartial:
		return 0.5
	default:
		return 0.0
	}
}

// UpdateEMA folds one daily score into the exponential moving average.
// Call once per processed date.
func UpdateEMA(prev, score, alpha float64) float64 {
	return alpha*score + (1-alpha)*prev
}

// findCheckin returns the checkin for the given day, or nil.
func findCheckin(checkins []models.Checkin, day string) *models.Checkin {
	for i := range checkins {
		if checkins[i].Day == day && checkins[i].DeletedAt == nil {
			return &checkins[i]
		}
	}
	return nil
}

// Advance folds one calendar date into the streak state:
//
//   - a non-skipped checkin extends the streak, earning a grace token each
//     full week of success (capped)
//   - a single missed day consumes a grace token if one is available,
//     preserving the streak without extending it
//   - a miss with no tokens, or any multi-day gap, resets the streak; grace
//     never covers multi-day gaps
//
// Re-folding the same date is a no-op; folding an earlier date than LastDay
// is a caller error. LastDay advances in every other case.
func Advance(prev models.StreakState, checkins []models.Checkin, day string) (models.StreakState, error) {
	// Empty LastDay means the habit has never been folded; treat the first
	// fold like a fresh gap so a present checkin starts the streak at 1.
	daysDiff := 1 << 20
	if prev.LastDay != "" {
		d, err := utils.DaysBetween(prev.LastDay, day)
		if err != nil {
			return prev, err
		}
		if d < 0 {
			return prev, fmt.Errorf("date %s precedes last processed date %s", day, prev.LastDay)
		}
		if d == 0 {
			return prev, nil
		}
		daysDiff = d
	}

	next := prev
	checkin := findCheckin(checkins, day)

	switch {
	case checkin != nil && checkin.Status != models.CheckinSkipped:
		next.Current++
		if next.Current > next.Best {
			next.Best = next.Current
		}
		if next.Current%constants.GraceWeek == 0 && next.GraceTokens < constants.GraceTokenCap {
			next.GraceTokens++
		}
	case daysDiff == 1 && next.GraceTokens > 0:
		next.GraceTokens--
	default:
		next.Current = 0
	}

	next.LastDay = day
	return next, nil
}

// Fold advances the streak state for one date and folds that date's score
// into the EMA, keeping the two in lockstep.
func Fold(prev models.StreakState, checkins []models.Checkin, day string) (models.StreakState, error) {
	next, err := Advance(prev, checkins, day)
	if err != nil {
		return prev, err
	}
	if next.LastDay != prev.LastDay {
		next.EMA = UpdateEMA(prev.EMA, DailyScore(findCheckin(checkins, day)), constants.EMAAlpha)
	}
	return next, nil
}

// Rebuild recomputes streak state from scratch over a habit's full checkin
// history, replaying every calendar date from the earliest checkin to the
// latest. Returns a zero state when the habit has no live checkins.
func Rebuild(habitID string, checkins []models.Checkin) (models.StreakState, error) {
	state := models.StreakState{HabitID: habitID}

	var fromDay, toDay string
	for _, c := range checkins {
		if c.DeletedAt != nil {
			continue
		}
		if fromDay == "" || c.Day < fromDay {
			fromDay = c.Day
		}
		if toDay == "" || c.Day > toDay {
			toDay = c.Day
		}
	}
	if fromDay == "" {
		return state, nil
	}

	rebuilt, err := Replay(state, checkins, fromDay, toDay)
	if err != nil {
		return state, err
	}
	rebuilt.HabitID = habitID
	return rebuilt, nil
}

// Replay rebuilds streak state by folding every calendar date in
// [fromDay, toDay] over the supplied checkins. Used to recompute state after
// a backdated or edited checkin.
func Replay(initial models.StreakState, checkins []models.Checkin, fromDay, toDay string) (models.StreakState, error) {
	span, err := utils.DaysBetween(fromDay, toDay)
	if err != nil {
		return initial, err
	}
	if span < 0 {
		return initial, fmt.Errorf("replay range %s..%s is reversed", fromDay, toDay)
	}

	state := initial
	day := fromDay
	for i := 0; i <= span; i++ {
		state, err = Fold(state, checkins, day)
		if err != nil {
			return initial, err
		}
		if i < span {
			day, err = utils.AddDays(day, 1)
			if err != nil {
				return initial, err
			}
		}
	}
	return state, nil
}
