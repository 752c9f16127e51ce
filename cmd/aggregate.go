package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/compasshq/compass/core"
	"github.com/compasshq/compass/internal"
)

// aggregateCmd recomputes and persists cached roll-ups for one organization.
var aggregateCmd = &cobra.Command{
	Use:   "aggregate [org]",
	Short: "Recompute AI-vs-human roll-ups and persist them to the store",
	Long: `Rebuild the cached AI-vs-human roll-ups for every parent author, team and
repository group in the organization.

The recompute is a full overwrite from raw contribution stats, so running it
twice in a row yields the same stored values. Linked (child) authors fold
into their parent; the ungrouped bucket is reported but never persisted.

Run this after linking identities, after editing team membership, or on a
schedule to keep dashboards fresh.

Examples:
  # Recompute and persist for org 42
  compass aggregate 42

  # Same, against MySQL
  compass aggregate 42 --store-backend mysql --store-db-connect "$COMPASS_STORE_DB_CONNECT"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		report, err := core.RecomputeAggregates(rootCtx, st, cfg.OrganizationID, nil)
		if err != nil {
			internal.FatalError("Cannot recompute aggregates", err)
		}
		marker := ""
		if cfg.UseEmojis {
			marker = "✅ "
		}
		fmt.Printf("%sRecomputed roll-ups for org %d: %d authors, %d teams, %d repo groups\n",
			marker, report.OrganizationID,
			len(report.AuthorRollups), len(report.GroupRollups), len(report.RepoGroupRollups))
	},
}
