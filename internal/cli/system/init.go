package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ascend-app/ascend/internal/cli"
	"github.com/ascend-app/ascend/internal/storage"
	"github.com/ascend-app/ascend/internal/storage/postgres"
	"github.com/ascend-app/ascend/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to migrate data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing database
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Close first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized ascend storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	// Determine source store type and instantiate it
	var sourceStore storage.Provider
	if strings.HasPrefix(sourcePath, "postgres://") || strings.HasPrefix(sourcePath, "postgresql://") {
		if valid, err := postgres.ValidateConnString(sourcePath); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
		sourceStore = postgres.New(sourcePath)
	} else {
		// Default to SQLite for file paths
		sourceStore = sqlite.NewStore(sourcePath)
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	fmt.Println("  Migrating settings...")
	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Migrating habits...")
	habits, err := sourceStore.GetAllHabits(true, true)
	if err != nil {
		return fmt.Errorf("failed to get habits from source: %w", err)
	}
	for _, habit := range habits {
		if err := ctx.Store.AddHabit(habit); err != nil {
			return fmt.Errorf("failed to add habit %s: %w", habit.ID, err)
		}
	}
	fmt.Printf("    Migrated %d habits\n", len(habits))

	fmt.Println("  Migrating checkins...")
	checkins, err := sourceStore.GetAllCheckins()
	if err != nil {
		return fmt.Errorf("failed to get checkins from source: %w", err)
	}
	for _, checkin := range checkins {
		if err := ctx.Store.UpsertCheckin(checkin); err != nil {
			return fmt.Errorf("failed to add checkin %s: %w", checkin.ID, err)
		}
	}
	fmt.Printf("    Migrated %d checkins\n", len(checkins))

	fmt.Println("  Migrating streak states...")
	states, err := sourceStore.GetAllStreakStates()
	if err != nil {
		return fmt.Errorf("failed to get streak states from source: %w", err)
	}
	for _, state := range states {
		if err := ctx.Store.SaveStreakState(state); err != nil {
			return fmt.Errorf("failed to save streak state for habit %s: %w", state.HabitID, err)
		}
	}
	fmt.Printf("    Migrated %d streak states\n", len(states))

	fmt.Println("  Migrating XP entries...")
	entries, err := sourceStore.GetAllXPEntries()
	if err != nil {
		return fmt.Errorf("failed to get XP entries from source: %w", err)
	}
	for _, entry := range entries {
		if err := ctx.Store.UpsertXPEntry(entry); err != nil {
			return fmt.Errorf("failed to add XP entry %s: %w", entry.ID, err)
		}
	}
	fmt.Printf("    Migrated %d XP entries\n", len(entries))

	return nil
}
