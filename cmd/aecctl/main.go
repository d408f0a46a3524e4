package main

import (
	"fmt"
	"os"

	"github.com/admin-edit-comment/internal/config"
	"github.com/admin-edit-comment/internal/database"
	"github.com/admin-edit-comment/internal/repository"
	"github.com/admin-edit-comment/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfg   *config.Config
	log   zerolog.Logger
	db    *database.DB
	repos *repository.Repositories
)

var rootCmd = &cobra.Command{
	Use:          "aecctl",
	Short:        "Administration tool for the admin edit comment service",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		log = logger.New(cfg.Log.Level, cfg.Log.Format)

		db, err = database.New(&cfg.Database, log)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		repos = repository.New(db)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(uninstallCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
