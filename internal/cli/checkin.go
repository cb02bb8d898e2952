package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ascend-app/ascend/internal/engine"
	"github.com/ascend-app/ascend/internal/models"
	"github.com/ascend-app/ascend/internal/storage"
	"github.com/ascend-app/ascend/internal/validation"
)

// checkinRange bounds habit history queries; no checkin falls outside it.
const (
	checkinRangeStart = "0001-01-01"
	checkinRangeEnd   = "9999-12-31"
)

type CheckinCmd struct {
	Name   string  `arg:"" help:"Habit name."`
	Status string  `arg:"" optional:"" help:"Checkin status: done, partial, or skipped." default:"done"`
	Date   string  `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Effort int     `help:"Perceived effort from 0 to 3." default:"1"`
	Dose   float64 `help:"Actual dose achieved (for dosed habits)." default:"0"`
	Note   string  `help:"Optional note for this checkin." default:""`
}

func (c *CheckinCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	status, err := validation.ParseStatus(c.Status)
	if err != nil {
		return err
	}
	if err := validation.ValidateEffort(c.Effort); err != nil {
		return err
	}

	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	checkin := models.Checkin{
		ID:        uuid.New().String(),
		HabitID:   habit.ID,
		Day:       day,
		Status:    status,
		Effort:    c.Effort,
		Note:      c.Note,
		CreatedAt: time.Now(),
	}
	if c.Dose > 0 {
		checkin.DoseActual = &c.Dose
	}

	state, points, resubmitted, err := RecordCheckin(ctx.Store, habit, checkin)
	if err != nil {
		return err
	}

	verb := "Recorded"
	if resubmitted {
		verb = "Updated"
	}
	fmt.Printf("%s %s checkin for %q on %s\n", verb, status, habit.Name, day)
	fmt.Printf("  Streak: %d (best %d)", state.Current, state.Best)
	if state.GraceTokens > 0 {
		fmt.Printf(", grace tokens: %d", state.GraceTokens)
	}
	fmt.Println()
	if points > 0 {
		fmt.Printf("  +%d XP\n", points)
	}
	if state.Maintenance {
		fmt.Println("  Maintenance mode active")
	}

	return nil
}

type UncheckCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *UncheckCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	state, err := RemoveCheckin(ctx.Store, habit, day)
	if err != nil {
		return err
	}

	fmt.Printf("Removed checkin for %q on %s\n", habit.Name, day)
	fmt.Printf("  Streak: %d (best %d)\n", state.Current, state.Best)
	return nil
}

// RecordCheckin persists a checkin and brings the habit's derived records up
// to date: streak state is rebuilt from the full history, maintenance mode
// follows its hysteresis thresholds, and the day's XP award is replaced.
// Reports whether an existing checkin for the same day was overwritten.
func RecordCheckin(store storage.Provider, habit models.Habit, checkin models.Checkin) (models.StreakState, int, bool, error) {
	// A resubmission keeps the original record's identity and creation
	// time; only the mutable fields change.
	resubmitted := false
	if existing, err := store.GetCheckin(habit.ID, checkin.Day); err == nil {
		checkin.ID = existing.ID
		checkin.CreatedAt = existing.CreatedAt
		now := time.Now()
		checkin.EditedAt = &now
		resubmitted = true
	}

	if err := validation.ValidateCheckin(checkin); err != nil {
		return models.StreakState{}, 0, false, err
	}
	if err := store.UpsertCheckin(checkin); err != nil {
		return models.StreakState{}, 0, false, err
	}

	// Replaying from scratch keeps backdated and edited checkins consistent
	// with same-day ones.
	checkins, err := store.GetCheckinsForHabit(habit.ID, checkinRangeStart, checkinRangeEnd)
	if err != nil {
		return models.StreakState{}, 0, false, err
	}
	state, err := engine.Rebuild(habit.ID, checkins)
	if err != nil {
		return models.StreakState{}, 0, false, err
	}

	prev, err := store.GetStreakState(habit.ID)
	inMaintenance := err == nil && prev.Maintenance
	state.Maintenance = engine.UpdateMaintenance(inMaintenance, state.EMA, state.Current)
	state.UpdatedAt = time.Now()

	if err := store.SaveStreakState(state); err != nil {
		return models.StreakState{}, 0, false, err
	}

	// XP is keyed by (habit, day) so a changed status replaces the prior
	// award instead of stacking. Effort scales the reward on partial days
	// too; only skips earn nothing.
	points := 0
	if checkin.Status != models.CheckinSkipped {
		points = engine.XP(habit, state.Current, checkin.Effort)
	}
	entry := models.XPEntry{
		ID:        uuid.New().String(),
		HabitID:   habit.ID,
		Day:       checkin.Day,
		Points:    points,
		Streak:    state.Current,
		Effort:    checkin.Effort,
		AwardedAt: time.Now(),
	}
	if err := store.UpsertXPEntry(entry); err != nil {
		return models.StreakState{}, 0, false, err
	}

	return state, points, resubmitted, nil
}

// RemoveCheckin soft-deletes the checkin for a day and recomputes the
// habit's derived records the same way RecordCheckin does: the streak
// state is rebuilt from the surviving history and the day's XP award is
// replaced with zero.
func RemoveCheckin(store storage.Provider, habit models.Habit, day string) (models.StreakState, error) {
	existing, err := store.GetCheckin(habit.ID, day)
	if err != nil {
		return models.StreakState{}, fmt.Errorf("no checkin recorded for %q on %s", habit.Name, day)
	}
	if err := store.DeleteCheckin(existing.ID); err != nil {
		return models.StreakState{}, err
	}

	checkins, err := store.GetCheckinsForHabit(habit.ID, checkinRangeStart, checkinRangeEnd)
	if err != nil {
		return models.StreakState{}, err
	}
	state, err := engine.Rebuild(habit.ID, checkins)
	if err != nil {
		return models.StreakState{}, err
	}

	prev, err := store.GetStreakState(habit.ID)
	inMaintenance := err == nil && prev.Maintenance
	state.Maintenance = engine.UpdateMaintenance(inMaintenance, state.EMA, state.Current)
	state.UpdatedAt = time.Now()

	if err := store.SaveStreakState(state); err != nil {
		return models.StreakState{}, err
	}

	entry := models.XPEntry{
		ID:        uuid.New().String(),
		HabitID:   habit.ID,
		Day:       day,
		Points:    0,
		Streak:    state.Current,
		Effort:    existing.Effort,
		AwardedAt: time.Now(),
	}
	if err := store.UpsertXPEntry(entry); err != nil {
		return models.StreakState{}, err
	}

	return state, nil
}
