package system

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/ascend-app/ascend/internal/cli"
	"github.com/ascend-app/ascend/internal/migration"
	"github.com/ascend-app/ascend/internal/storage/postgres"
	"github.com/ascend-app/ascend/internal/storage/sqlite"
	"github.com/ascend-app/ascend/migrations"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	var db *sql.DB
	var dialect string
	switch store := ctx.Store.(type) {
	case *sqlite.Store:
		db = store.GetDB()
		dialect = "sqlite"
	case *postgres.Store:
		db = store.GetDB()
		dialect = "postgres"
	default:
		return fmt.Errorf("unsupported storage backend for migrate")
	}

	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, dialect)
	if err != nil {
		return fmt.Errorf("failed to access %s migrations: %w", dialect, err)
	}

	runner := migration.NewRunner(db, subFS)
	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}
