package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/migrations"
)

func (a *app) migrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE:  a.runMigrateUp,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE:  a.runMigrateDown,
	})
	return cmd
}

// runMigrateUp applies the SQL migrations on postgres. sqlite databases are
// development only and get their schema from the models instead.
func (a *app) runMigrateUp(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if a.cfg.DBDriver != "postgres" {
		db, closeDB, err := a.openDB()
		if err != nil {
			return err
		}
		defer closeDB()
		if err := database.Migrate(db); err != nil {
			return err
		}
		fmt.Fprintln(out, "schema synchronised from models")
		return nil
	}

	db, err := database.OpenSQL(a.cfg.PostgresURL())
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := database.RunSQLMigrations(db, migrations.Files)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Fprintln(out, "no pending migrations")
		return nil
	}
	for _, name := range applied {
		fmt.Fprintf(out, "applied %s\n", name)
	}
	return nil
}

func (a *app) runMigrateDown(cmd *cobra.Command, _ []string) error {
	if a.cfg.DBDriver != "postgres" {
		return fmt.Errorf("rollback requires the postgres driver, got %q", a.cfg.DBDriver)
	}

	db, err := database.OpenSQL(a.cfg.PostgresURL())
	if err != nil {
		return err
	}
	defer db.Close()

	name, err := database.RollbackLastSQLMigration(db, migrations.Files)
	if errors.Is(err, database.ErrNoMigrations) {
		fmt.Fprintln(cmd.OutOrStdout(), "no migrations to roll back")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "rolled back %s\n", name)
	return nil
}
