package cmd

import (
	"github.com/spf13/cobra"

	"github.com/compasshq/compass/core"
	"github.com/compasshq/compass/internal"
	"github.com/compasshq/compass/internal/parquet"
	"github.com/compasshq/compass/schema"
)

// reportCmd displays the organization's roll-ups.
var reportCmd = &cobra.Command{
	Use:   "report [org]",
	Short: "Show AI-vs-human roll-ups per author, team and repository group",
	Long: `Display the AI-vs-human contribution breakdown for an organization.

Shows per parent author, per team and per repository group:
- Total, AI-attributed and human-written line counts
- AI percentage with a qualitative label (Human-led through Heavy AI)
- The ungrouped bucket of contributions outside any team

Roll-ups are recomputed from raw contribution stats on every invocation so
the report always reflects the current linking and grouping state.

Examples:
  # Human-readable tables
  compass report 42

  # CSV for spreadsheets
  compass report 42 --output csv --output-file rollups.csv

  # JSON for scripting
  compass report 42 --output json

  # Parquet for warehouse ingestion
  compass report 42 --output parquet --output-file rollups.parquet`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		report, err := core.RecomputeAggregates(rootCtx, st, cfg.OrganizationID, nil)
		if err != nil {
			internal.FatalError("Cannot recompute aggregates", err)
		}

		if cfg.Output == schema.ParquetOut {
			if cfg.OutputFile == "" {
				internal.FatalError("Cannot write parquet report", errOutputFileRequired)
			}
			if err := parquet.WriteAuthorRollupsParquet(parquet.AuthorRollupRows(report), cfg.OutputFile); err != nil {
				internal.FatalError("Cannot write parquet report", err)
			}
			return
		}

		if err := out.WriteAggregateReport(report, cfg); err != nil {
			internal.FatalError("Cannot write aggregate report", err)
		}
	},
}
