package cli

import (
	"fmt"
	"sort"

	"github.com/ascend-app/ascend/internal/engine"
	"github.com/ascend-app/ascend/internal/models"
	"github.com/ascend-app/ascend/internal/utils"
)

type ScheduleCmd struct {
	Days  int    `help:"Number of days ahead to show (default: configured horizon)." default:"0"`
	Habit string `help:"Show schedule for a specific habit only."`
}

func (c *ScheduleCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	days := c.Days
	if days <= 0 {
		days = settings.HorizonDays
	}

	habits, err := ctx.Store.GetAllHabits(false, false)
	if err != nil {
		return err
	}
	if c.Habit != "" {
		var selected []models.Habit
		for _, h := range habits {
			if h.Name == c.Habit {
				selected = append(selected, h)
				break
			}
		}
		if len(selected) == 0 {
			return fmt.Errorf("habit %q not found", c.Habit)
		}
		habits = selected
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	now, err := utils.NowInTimezone(settings.Timezone)
	if err != nil {
		return err
	}

	nameByHabit := make(map[string]string, len(habits))
	var occurrences []models.Occurrence
	for _, habit := range habits {
		window, err := ctx.ResolveWindow(habit)
		if err != nil {
			return err
		}
		habit.Window = window
		nameByHabit[habit.ID] = habit.Name

		occs, err := engine.GenerateOccurrences(habit, now, days)
		if err != nil {
			return fmt.Errorf("failed to generate schedule for %q: %w", habit.Name, err)
		}
		occurrences = append(occurrences, occs...)
	}

	if len(occurrences) == 0 {
		fmt.Println("No occurrences in the selected range.")
		return nil
	}

	sort.Slice(occurrences, func(i, j int) bool {
		if occurrences[i].Day != occurrences[j].Day {
			return occurrences[i].Day < occurrences[j].Day
		}
		return occurrences[i].DueAt.Before(occurrences[j].DueAt)
	})

	fmt.Printf("Schedule (next %d days):\n\n", days)
	lastDay := ""
	for _, occ := range occurrences {
		if occ.Day != lastDay {
			if lastDay != "" {
				fmt.Println()
			}
			fmt.Printf("%s:\n", occ.Day)
			lastDay = occ.Day
		}
		fmt.Printf("  %s-%s  %s\n",
			occ.WindowStart.Format("15:04"), occ.WindowEnd.Format("15:04"),
			nameByHabit[occ.HabitID])
	}

	return nil
}
