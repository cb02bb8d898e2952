package habits

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ascend-app/ascend/internal/cli"
	"github.com/ascend-app/ascend/internal/constants"
	"github.com/ascend-app/ascend/internal/models"
	"github.com/ascend-app/ascend/internal/validation"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits."`
	Archive HabitArchiveCmd `cmd:"" help:"Archive a habit."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit (soft delete)."`
	Restore HabitRestoreCmd `cmd:"" help:"Restore a deleted habit."`
}

type HabitAddCmd struct {
	Name       string  `arg:"" help:"Habit name."`
	Cadence    string  `help:"Cadence: daily, weekdays, or custom." default:"daily"`
	Rule       string  `help:"Custom cadence rule (only with --cadence custom)." default:""`
	Moment     string  `help:"Moment bucket: morning, midday, or evening." default:"morning"`
	Start      string  `help:"Window start in HH:MM (default: moment bucket start)." default:""`
	End        string  `help:"Window end in HH:MM (default: moment bucket end)." default:""`
	Difficulty int     `help:"Difficulty from 1 to 3." default:"1"`
	Unit       string  `help:"Dose unit, e.g. ml or pages (optional)." default:""`
	Target     float64 `help:"Dose target amount (required with --unit)." default:"0"`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	// Check if habit with same name already exists
	_, err := ctx.Store.GetHabitByName(c.Name)
	if err == nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}

	cadence, err := validation.ParseCadence(c.Cadence)
	if err != nil {
		return err
	}
	moment, err := validation.ParseMoment(c.Moment)
	if err != nil {
		return err
	}

	habit := models.Habit{
		ID:         uuid.New().String(),
		UserID:     constants.LocalUserID,
		Name:       c.Name,
		Cadence:    cadence,
		CustomRule: c.Rule,
		Moment:     moment,
		Window:     models.Window{Start: c.Start, End: c.End},
		Difficulty: c.Difficulty,
		CreatedAt:  time.Now(),
	}
	if c.Unit != "" {
		habit.Dose = &models.Dose{Unit: c.Unit, Target: c.Target}
	}

	// Habits without an explicit window inherit the moment bucket default
	// at schedule time, so validate against the resolved window.
	resolved := habit
	if resolved.Window.Start == "" || resolved.Window.End == "" {
		window, err := ctx.ResolveWindow(habit)
		if err != nil {
			return err
		}
		resolved.Window = window
	}
	if err := validation.ValidateHabit(resolved); err != nil {
		return err
	}

	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s, %s)\n", c.Name, cli.FormatCadence(habit), moment)
	return nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
	Deleted  bool `help:"Include deleted habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(c.Archived, c.Deleted)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, habit := range habits {
		status := ""
		if habit.DeletedAt != nil {
			status = " [DELETED]"
		} else if habit.ArchivedAt != nil {
			status = " [ARCHIVED]"
		}

		window, err := ctx.ResolveWindow(habit)
		if err != nil {
			return err
		}
		detail := fmt.Sprintf("%s, %s %s", cli.FormatCadence(habit), habit.Moment, cli.FormatWindow(window))
		if habit.Dose != nil {
			detail += fmt.Sprintf(", %.0f %s", habit.Dose.Target, habit.Dose.Unit)
		}
		fmt.Printf("%s (%s)%s\n", habit.Name, detail, status)
	}

	return nil
}

type HabitArchiveCmd struct {
	Name      string `arg:"" help:"Habit name to archive."`
	Unarchive bool   `help:"Unarchive the habit instead."`
}

func (c *HabitArchiveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	if c.Unarchive {
		if err := ctx.Store.UnarchiveHabit(habit.ID); err != nil {
			return err
		}
		fmt.Printf("Unarchived habit: %s\n", c.Name)
	} else {
		if err := ctx.Store.ArchiveHabit(habit.ID); err != nil {
			return err
		}
		fmt.Printf("Archived habit: %s\n", c.Name)
	}

	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name to delete."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	habit, err := ctx.Store.GetHabitByName(c.Name)
	if err != nil {
		return fmt.Errorf("habit %q not found", c.Name)
	}

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", c.Name)
	fmt.Println("(This is a soft delete. Use 'ascend habit restore' to undo)")
	return nil
}

type HabitRestoreCmd struct {
	Name string `arg:"" help:"Habit name to restore."`
}

func (c *HabitRestoreCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	// Get habit including deleted ones
	habits, err := ctx.Store.GetAllHabits(true, true)
	if err != nil {
		return err
	}

	var habit *models.Habit
	for i := range habits {
		if habits[i].Name == c.Name && habits[i].DeletedAt != nil {
			habit = &habits[i]
			break
		}
	}

	if habit == nil {
		return fmt.Errorf("deleted habit %q not found", c.Name)
	}

	if err := ctx.Store.RestoreHabit(habit.ID); err != nil {
		return err
	}

	fmt.Printf("Restored habit: %s\n", c.Name)
	return nil
}
