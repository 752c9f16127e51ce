package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/compasshq/compass/internal"
)

// statusCmd shows store connectivity and table sizes.
//
// Note: status uses minimal initialization (storeSetup) instead of the full
// sharedSetup used by organization commands. This avoids requiring an
// organization argument for a connectivity check.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store connection details and table sizes",
	Long: `Show detailed information about the telemetry store.

Displays:
- Backend type and connection status
- Row counts per table
- Registered telemetry providers

Use this to:
- Verify the store is reachable before a batch run
- Monitor data accumulation over time
- Check that the ingestion pipeline is registering providers

Examples:
  # Check the local SQLite store
  compass status

  # Check a shared PostgreSQL store
  compass status --store-backend postgres --store-db-connect "$COMPASS_STORE_DB_CONNECT"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := st.Status(rootCtx)
		if err != nil {
			internal.FatalError("Failed to get store status", err)
		}
		if err := out.WriteStatus(status, cfg); err != nil {
			internal.FatalError("Cannot write status", err)
		}

		// Provider list goes through the TTL cache, same path the services use.
		provs, err := providers.All(rootCtx)
		if err != nil {
			internal.Warning(fmt.Sprintf("Could not list providers: %v", err))
			return
		}
		marker := ""
		if cfg.UseEmojis {
			marker = "🔌 "
		}
		fmt.Printf("%sProviders registered: %d\n", marker, len(provs))
		for _, p := range provs {
			fmt.Printf("  - %s (id %d)\n", p.Name, p.ID)
		}
	},
}
