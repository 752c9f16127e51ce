package cmd

import (
	"github.com/spf13/cobra"

	"github.com/compasshq/compass/core"
	"github.com/compasshq/compass/internal"
	"github.com/compasshq/compass/internal/parquet"
	"github.com/compasshq/compass/schema"
)

// timeseriesCmd shows the daily AI-vs-human series for one organization.
var timeseriesCmd = &cobra.Command{
	Use:   "timeseries [org]",
	Short: "Track the daily AI-vs-human line split over a date window",
	Long: `Show one row per calendar day in the window with the organization's total,
AI-attributed and human-written line counts.

Days without any contribution appear as zero rows, so the series is always
contiguous and safe to chart directly. The window defaults to the trailing
30 days ending today; --start/--end pin it explicitly.

Examples:
  # Trailing 30 days
  compass timeseries 42

  # Trailing quarter
  compass timeseries 42 --days 90

  # Fixed window
  compass timeseries 42 --start 2026-01-01 --end 2026-03-31

  # Export for charting
  compass timeseries 42 --days 90 --output csv --output-file daily.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		seq, err := core.DailyTimeseries(rootCtx, st, cfg.OrganizationID, cfg.SeriesStart, cfg.SeriesEnd)
		if err != nil {
			internal.FatalError("Cannot compute timeseries", err)
		}
		var points []schema.DailyRollup
		for p := range seq {
			points = append(points, p)
		}

		if cfg.Output == schema.ParquetOut {
			if cfg.OutputFile == "" {
				internal.FatalError("Cannot write parquet timeseries", errOutputFileRequired)
			}
			rows := parquet.DailyRollupRows(cfg.OrganizationID, points)
			if err := parquet.WriteDailyRollupsParquet(rows, cfg.OutputFile); err != nil {
				internal.FatalError("Cannot write parquet timeseries", err)
			}
			return
		}

		if err := out.WriteTimeseries(points, cfg); err != nil {
			internal.FatalError("Cannot write timeseries", err)
		}
	},
}
