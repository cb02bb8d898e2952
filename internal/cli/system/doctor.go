package system

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/ascend-app/ascend/internal/backup"
	"github.com/ascend-app/ascend/internal/cli"
	"github.com/ascend-app/ascend/internal/constants"
	"github.com/ascend-app/ascend/internal/migration"
	"github.com/ascend-app/ascend/internal/models"
	"github.com/ascend-app/ascend/internal/storage/sqlite"
	"github.com/ascend-app/ascend/internal/utils"
	"github.com/ascend-app/ascend/migrations"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 2: Schema version valid (only if DB is reachable)
	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	// Check 3: Backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 4: Settings sanity (only if DB is reachable)
	if dbReachable {
		if err := checkSettings(ctx); err != nil {
			fmt.Printf("❌ Settings: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Settings: OK\n")
		}
	} else {
		fmt.Printf("⊘ Settings: SKIPPED (database not reachable)\n")
	}

	// Check 5: Clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	// Check 6: Habit integrity (only if DB is reachable)
	if dbReachable {
		if err := checkHabitIntegrity(ctx); err != nil {
			fmt.Printf("❌ Habit integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Habit integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Habit integrity: SKIPPED (database not reachable)\n")
	}

	// Check 7: Checkin integrity (only if DB is reachable)
	if dbReachable {
		if err := checkCheckinIntegrity(ctx); err != nil {
			fmt.Printf("❌ Checkin integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Checkin integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Checkin integrity: SKIPPED (database not reachable)\n")
	}

	// Check 8: Streak state integrity (only if DB is reachable)
	if dbReachable {
		if err := checkStreakStates(ctx); err != nil {
			fmt.Printf("❌ Streak states: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Streak states: OK\n")
		}
	} else {
		fmt.Printf("⊘ Streak states: SKIPPED (database not reachable)\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	// For SQLite, also try a simple query
	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		// Postgres validates on Load
		return nil
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access migrations: %w", err)
	}
	runner := migration.NewRunner(db, subFS)

	currentVersion, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	latestVersion, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}

	if currentVersion > latestVersion {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", currentVersion, latestVersion)
	}
	if currentVersion < latestVersion {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'ascend migrate')", currentVersion, latestVersion)
	}

	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'ascend backup create'")
	}

	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone: %s", settings.Timezone)
	}
	if settings.HorizonDays <= 0 {
		return fmt.Errorf("horizon days must be positive, got %d", settings.HorizonDays)
	}
	for _, w := range []models.Window{
		{Start: settings.MorningStart, End: settings.MorningEnd},
		{Start: settings.MiddayStart, End: settings.MiddayEnd},
		{Start: settings.EveningStart, End: settings.EveningEnd},
	} {
		if !utils.ValidateTimeFormat(w.Start) {
			return fmt.Errorf("invalid moment window time: %s", w.Start)
		}
		if !utils.ValidateTimeFormat(w.End) {
			return fmt.Errorf("invalid moment window time: %s", w.End)
		}
		if cli.WindowDuration(w) <= 0 {
			return fmt.Errorf("moment window %s-%s has no duration", w.Start, w.End)
		}
	}

	return nil
}

func checkClockTimezone() error {
	now := time.Now()

	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	return nil
}

func checkHabitIntegrity(ctx *cli.Context) error {
	habits, err := ctx.Store.GetAllHabits(true, true)
	if err != nil {
		return fmt.Errorf("failed to get habits: %w", err)
	}

	habitIDs := make(map[string]bool)
	names := make(map[string]bool)
	for _, habit := range habits {
		if habitIDs[habit.ID] {
			return fmt.Errorf("duplicate habit ID found: %s", habit.ID)
		}
		habitIDs[habit.ID] = true

		if habit.DeletedAt == nil {
			if names[habit.Name] {
				return fmt.Errorf("duplicate habit name found: %s", habit.Name)
			}
			names[habit.Name] = true
		}

		if habit.Difficulty < constants.MinDifficulty || habit.Difficulty > constants.MaxDifficulty {
			return fmt.Errorf("habit %s has out-of-range difficulty %d", habit.ID, habit.Difficulty)
		}
	}

	return nil
}

func checkCheckinIntegrity(ctx *cli.Context) error {
	checkins, err := ctx.Store.GetAllCheckins()
	if err != nil {
		return fmt.Errorf("failed to get checkins: %w", err)
	}

	seen := make(map[string]bool)
	for _, checkin := range checkins {
		if !utils.ValidateDayFormat(checkin.Day) {
			return fmt.Errorf("checkin %s has invalid day: %s", checkin.ID, checkin.Day)
		}
		key := checkin.HabitID + ":" + checkin.Day
		if seen[key] {
			return fmt.Errorf("duplicate checkin for habit %s on %s", checkin.HabitID, checkin.Day)
		}
		seen[key] = true
	}

	return nil
}

func checkStreakStates(ctx *cli.Context) error {
	states, err := ctx.Store.GetAllStreakStates()
	if err != nil {
		return fmt.Errorf("failed to get streak states: %w", err)
	}

	for _, state := range states {
		if state.Current < 0 || state.Best < state.Current {
			return fmt.Errorf("habit %s has inconsistent streak counters (current %d, best %d)",
				state.HabitID, state.Current, state.Best)
		}
		if state.GraceTokens < 0 || state.GraceTokens > constants.GraceTokenCap {
			return fmt.Errorf("habit %s has out-of-range grace tokens: %d", state.HabitID, state.GraceTokens)
		}
		if state.EMA < 0 || state.EMA > 1 {
			return fmt.Errorf("habit %s has out-of-range consistency score: %f", state.HabitID, state.EMA)
		}
		if state.LastDay != "" && !utils.ValidateDayFormat(state.LastDay) {
			return fmt.Errorf("habit %s has invalid last day: %s", state.HabitID, state.LastDay)
		}
	}

	return nil
}
