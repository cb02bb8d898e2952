package cli

import (
	"fmt"
	"strings"

	"github.com/ascend-app/ascend/internal/models"
	"github.com/ascend-app/ascend/internal/utils"
)

type StatsCmd struct {
	Habit string `help:"Show stats for a specific habit only."`
	Days  int    `help:"Number of days of history to show." default:"14"`
	Log   bool   `help:"Show the checkin history grid."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
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

	for _, habit := range habits {
		fmt.Printf("%s (%s, difficulty %d)\n", habit.Name, FormatCadence(habit), habit.Difficulty)

		state, err := ctx.Store.GetStreakState(habit.ID)
		if err != nil {
			fmt.Println("  No checkins recorded yet.")
			fmt.Println()
			continue
		}

		fmt.Printf("  Streak:      %d (best %d)\n", state.Current, state.Best)
		fmt.Printf("  Consistency: %.0f%%\n", state.EMA*100)
		fmt.Printf("  Grace:       %d token(s)\n", state.GraceTokens)
		if state.Maintenance {
			fmt.Println("  Mode:        maintenance")
		}

		total, err := ctx.Store.GetXPTotal(habit.ID)
		if err != nil {
			return err
		}
		fmt.Printf("  XP:          %d\n", total)
		fmt.Println()
	}

	grand, err := ctx.Store.GetXPTotal("")
	if err != nil {
		return err
	}
	fmt.Printf("Total XP: %d\n", grand)

	if c.Log {
		fmt.Println()
		return c.printLog(ctx, habits)
	}

	return nil
}

// printLog renders an ASCII history grid, one row per habit: x done,
// ~ partial, s skipped, . no record.
func (c *StatsCmd) printLog(ctx *Context, habits []models.Habit) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	now, err := utils.NowInTimezone(settings.Timezone)
	if err != nil {
		return err
	}

	endDay := now
	startDay := endDay.AddDate(0, 0, -(c.Days - 1))

	fmt.Printf("Checkin log (last %d days):\n\n", c.Days)

	const maxNameLen = 20
	fmt.Print(strings.Repeat(" ", maxNameLen))
	for i := 0; i < c.Days; i++ {
		day := startDay.AddDate(0, 0, i)
		fmt.Printf(" %5s", day.Format("01/02"))
	}
	fmt.Println()

	fmt.Print(strings.Repeat("-", maxNameLen))
	for i := 0; i < c.Days; i++ {
		fmt.Print("------")
	}
	fmt.Println()

	for _, habit := range habits {
		name := habit.Name
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		} else {
			name = name + strings.Repeat(" ", maxNameLen-len(name))
		}
		fmt.Print(name)

		checkins, err := ctx.Store.GetCheckinsForHabit(
			habit.ID,
			utils.FormatDay(startDay),
			utils.FormatDay(endDay),
		)
		if err != nil {
			return err
		}

		statusByDay := make(map[string]models.CheckinStatus, len(checkins))
		for _, checkin := range checkins {
			statusByDay[checkin.Day] = checkin.Status
		}

		for i := 0; i < c.Days; i++ {
			day := startDay.AddDate(0, 0, i)
			switch statusByDay[utils.FormatDay(day)] {
			case models.CheckinDone:
				fmt.Print("  x   ")
			case models.CheckinPartial:
				fmt.Print("  ~   ")
			case models.CheckinSkipped:
				fmt.Print("  s   ")
			default:
				fmt.Print("  .   ")
			}
		}
		fmt.Println()
	}

	return nil
}
