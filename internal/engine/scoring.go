package engine

import (
	"math"
	"time"

	"github.com/ascend-app/ascend/internal/constants"
	"github.com/ascend-app/ascend/internal/models"
)

// XP computes the experience reward for a checkin. Base reward scales with
// declared difficulty, the streak bonus grows without bound, and effort
// (0-3) scales the total between 50% and 200%.
func XP(habit models.Habit, streak, effort int) int {
	base := float64(constants.XPBase * habit.Difficulty)
	streakBonus := 1 + float64(streak)/constants.XPStreakDivisor
	effortScale := 0.5 + float64(effort)*0.5
	return int(math.Round(base * streakBonus * effortScale))
}

// ShouldEnterMaintenance reports whether sustained high consistency warrants
// switching the habit into maintenance mode.
func ShouldEnterMaintenance(ema float64, currentStreak int) bool {
	return ema >= constants.MaintenanceEnterEMA && currentStreak >= constants.MaintenanceEnterStreak
}

// ShouldExitMaintenance reports whether consistency has dropped enough to
// leave maintenance mode. The exit threshold sits below the enter threshold
// so the mode does not flap.
func ShouldExitMaintenance(ema float64) bool {
	return ema < constants.MaintenanceExitEMA
}

// UpdateMaintenance applies the hysteresis transition to the current mode.
func UpdateMaintenance(inMaintenance bool, ema float64, currentStreak int) bool {
	if inMaintenance {
		return !ShouldExitMaintenance(ema)
	}
	return ShouldEnterMaintenance(ema, currentStreak)
}

// IsDue reports whether now lies within the occurrence's completion window.
func IsDue(occ models.Occurrence, now time.Time) bool {
	return !now.Before(occ.WindowStart) && !now.After(occ.WindowEnd)
}

// IsOverdue reports whether the occurrence's window has passed.
func IsOverdue(occ models.Occurrence, now time.Time) bool {
	return now.After(occ.WindowEnd)
}
