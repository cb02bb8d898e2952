package cli

import (
	"fmt"

	"github.com/ascend-app/ascend/internal/engine"
	"github.com/ascend-app/ascend/internal/models"
	"github.com/ascend-app/ascend/internal/utils"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	now, err := utils.NowInTimezone(settings.Timezone)
	if err != nil {
		return err
	}
	today := utils.FormatDay(now)

	habits, err := ctx.Store.GetAllHabits(false, false)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	checkins, err := ctx.Store.GetCheckinsForDay(today)
	if err != nil {
		return err
	}
	checkinByHabit := make(map[string]models.Checkin, len(checkins))
	for _, checkin := range checkins {
		checkinByHabit[checkin.HabitID] = checkin
	}

	fmt.Printf("Habits for %s:\n\n", today)
	recorded := 0
	scheduled := 0
	for _, habit := range habits {
		window, err := ctx.ResolveWindow(habit)
		if err != nil {
			return err
		}
		habit.Window = window

		// Only habits whose cadence hits today are listed.
		occs, err := engine.GenerateOccurrences(habit, now, 1)
		if err != nil {
			return fmt.Errorf("failed to generate occurrence for %q: %w", habit.Name, err)
		}
		if len(occs) == 0 {
			continue
		}
		scheduled++
		occ := occs[0]

		marker := "[ ]"
		note := ""
		if checkin, ok := checkinByHabit[habit.ID]; ok {
			switch checkin.Status {
			case models.CheckinDone:
				marker = "[x]"
				recorded++
			case models.CheckinPartial:
				marker = "[~]"
				recorded++
			case models.CheckinSkipped:
				marker = "[-]"
				recorded++
			}
		} else if engine.IsOverdue(occ, now) {
			note = " (overdue)"
		} else if engine.IsDue(occ, now) {
			note = " (due now)"
		}

		fmt.Printf("%s %s  %s%s\n", marker, habit.Name, FormatWindow(window), note)
	}

	if scheduled == 0 {
		fmt.Println("Nothing scheduled today.")
		return nil
	}

	fmt.Printf("\nRecorded: %d/%d\n", recorded, scheduled)
	return nil
}
