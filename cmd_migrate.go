package main

import (
	"fmt"

	"auction-marketplace/internal/config"
	"auction-marketplace/internal/repository"
	"auction-marketplace/utils"

	"github.com/spf13/cobra"
)

// migrateCmd creates the SQL schema
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the auction schema in the configured SQL store",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if cfg.Store.Driver == storeMemory {
		return fmt.Errorf("migrate: store driver %q has no schema", cfg.Store.Driver)
	}

	repo, err := repository.OpenSQLRepo(cmd.Context(), cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.Migrate(cmd.Context()); err != nil {
		return err
	}
	utils.Info("schema migrated", map[string]any{"driver": cfg.Store.Driver})
	return nil
}
