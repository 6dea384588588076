// Package cli implements recipectl, the operator command line for migrations,
// reference data and admin accounts.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/logging"
)

type app struct {
	cfg *config.Config
}

// NewRootCommand builds the recipectl command tree. Configuration comes from
// the same environment variables as the API server.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "recipectl",
		Short:         "Manage the RecipeShare database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: cmd.ErrOrStderr()})
			a.cfg = cfg
			return nil
		},
	}

	root.AddCommand(a.migrateCommand())
	root.AddCommand(a.seedCommand())
	root.AddCommand(a.createAdminCommand())
	return root
}

// Execute runs recipectl with os.Args.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openDB opens the configured database. The caller runs the returned close func.
func (a *app) openDB() (*gorm.DB, func(), error) {
	db, err := database.Open(a.cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}, nil
}
