package cmd

import (
	"github.com/spf13/cobra"

	"github.com/compasshq/compass/core"
	"github.com/compasshq/compass/internal"
)

// linkCmd resolves duplicate author identities for one organization.
var linkCmd = &cobra.Command{
	Use:   "link [org]",
	Short: "Link duplicate commit author identities to a single parent",
	Long: `Match an organization's commit authors pairwise on normalized names and
emails, elect a parent per connected group and link the remaining members
to it.

Repeated runs are idempotent: authors that are already linked, or that an
operator has explicitly split, are never touched again.

Examples:
  # Preview what would be linked, without writing
  compass link 42 --dry-run

  # Apply the links
  compass link 42

  # Same, against a shared PostgreSQL store
  compass link 42 --store-backend postgres --store-db-connect "$COMPASS_STORE_DB_CONNECT"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		report, err := core.ResolveOrganizationIdentities(rootCtx, st, cfg.OrganizationID, cfg.DryRun)
		if err != nil {
			internal.FatalError("Cannot resolve identities", err)
		}
		if err := out.WriteLinkReport(report, cfg); err != nil {
			internal.FatalError("Cannot write link report", err)
		}
	},
}
