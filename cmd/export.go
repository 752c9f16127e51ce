package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/compasshq/compass/core"
	"github.com/compasshq/compass/internal"
	"github.com/compasshq/compass/internal/parquet"
	"github.com/compasshq/compass/schema"
)

var errOutputFileRequired = errors.New("--output-file is required")

// exportCmd writes both roll-up datasets to Parquet files.
var exportCmd = &cobra.Command{
	Use:   "export [org]",
	Short: "Export roll-ups and the daily series to Parquet for analytics",
	Long: `Export an organization's computed data to Parquet format for use with
analytics tools.

Exports two datasets next to each other:
- Author roll-ups - per parent author line counts and AI percentages
- Daily series   - gap-filled per-day totals for the configured window

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter. The two datasets land at
<base>_authors.parquet and <base>_daily.parquet.

Examples:
  # Export everything for org 42
  compass export 42 --output-file compass.parquet

  # Query with DuckDB
  duckdb -c "SELECT * FROM read_parquet('compass_authors.parquet') LIMIT 10"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.OutputFile == "" {
			internal.FatalError("Cannot export", errOutputFileRequired)
		}
		authorsPath, dailyPath := exportPaths(cfg.OutputFile)

		report, err := core.RecomputeAggregates(rootCtx, st, cfg.OrganizationID, nil)
		if err != nil {
			internal.FatalError("Cannot recompute aggregates", err)
		}
		if err := parquet.WriteAuthorRollupsParquet(parquet.AuthorRollupRows(report), authorsPath); err != nil {
			internal.FatalError("Cannot write author roll-ups", err)
		}

		seq, err := core.DailyTimeseries(rootCtx, st, cfg.OrganizationID, cfg.SeriesStart, cfg.SeriesEnd)
		if err != nil {
			internal.FatalError("Cannot compute timeseries", err)
		}
		var points []schema.DailyRollup
		for p := range seq {
			points = append(points, p)
		}
		if err := parquet.WriteDailyRollupsParquet(parquet.DailyRollupRows(cfg.OrganizationID, points), dailyPath); err != nil {
			internal.FatalError("Cannot write daily series", err)
		}

		marker := ""
		if cfg.UseEmojis {
			marker = "💾 "
		}
		fmt.Printf("%sExported %s and %s\n", marker, authorsPath, dailyPath)
	},
}

// exportPaths derives the two dataset paths from the configured output file.
func exportPaths(outputFile string) (string, string) {
	ext := filepath.Ext(outputFile)
	base := strings.TrimSuffix(outputFile, ext)
	if ext == "" {
		ext = ".parquet"
	}
	return base + "_authors" + ext, base + "_daily" + ext
}
