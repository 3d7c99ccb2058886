package cmd

import (
	"context"
	"log"
	"path/filepath"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run db migration files under db/migrations directory",
	}
	migrateRollback bool
	migrateDir      string
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
	migrateCmd.PersistentFlags().StringVarP(&migrateDir, "dir", "d", "", "sql migrations directory (defaults to the configured driver's directory)")
}

// migrationsDir returns the dialect-specific migration directory. The DDL
// differs per driver (BIGSERIAL vs rowid autoincrement), so each dialect
// keeps its own copy of every version.
func migrationsDir(driver string) string {
	if driver == "postgres" {
		return filepath.Join("db", "migrations", "postgres")
	}
	return filepath.Join("db", "migrations", "sqlite")
}

func runMigration(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	driver := "sqlite3"
	if cfg.Database.DriverName() == "postgres" {
		driver = "pgx"
	}

	dir := migrateDir
	if dir == "" {
		dir = migrationsDir(cfg.Database.DriverName())
	}

	db, err := goose.OpenDBWithDriver(driver, cfg.Database.Source)
	if err != nil {
		log.Fatalf("goose: failed to open DB: %v\n", err)
	}
	defer db.Close()
	goose.SetTableName("schema_migrations")

	command := "up"
	if migrateRollback {
		command = "down"
	}
	if err := goose.RunContext(ctx, command, db, dir); err != nil {
		log.Fatalf("goose %s: %v", command, err)
	}

	return nil
}
