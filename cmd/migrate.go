package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/compasshq/compass/internal"
	"github.com/compasshq/compass/internal/store"
	"github.com/compasshq/compass/schema"
)

// migrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT open the store, allowing
// migrations to run on a fresh database.
func migrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.StoreBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")
	if err := store.ValidateConnString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreConnect = store.DefaultConnString(backend, connStr)

	return nil
}

// migrateSetupWrapper wraps migrateSetup to provide PreRunE for the migrate command.
func migrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return migrateSetup()
}

// migrateCmd runs database schema migrations for the telemetry store.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the telemetry store.

Migrations allow:
- Upgrading to new schema versions when Compass is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  compass migrate

  # Migrate to specific version
  compass migrate --target-version 1

  # Rollback to initial state
  compass migrate --target-version 0`,
	PreRunE: migrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := store.Migrate(cfg.StoreBackend, cfg.StoreConnect, targetVersion); err != nil {
			internal.FatalError("Failed to run migrations", err)
		}
	},
}
