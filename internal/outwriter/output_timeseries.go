package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/compasshq/compass/schema"
)

const dateLayout = "2006-01-02"

// PrintTimeseries outputs the daily roll-up series, dispatching based on the
// output format configured.
func PrintTimeseries(points []schema.DailyRollup, cfg *schema.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONTimeseries(points, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVTimeseries(points, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := writeTimeseriesTable(os.Stdout, points, cfg); err != nil {
			return fmt.Errorf("error writing timeseries table output: %w", err)
		}
	}
	return nil
}

func printJSONTimeseries(points []schema.DailyRollup, cfg *schema.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, points)
	}, "Wrote JSON timeseries")
}

func printCSVTimeseries(points []schema.DailyRollup, cfg *schema.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := append([]string{"date"}, rollupCSVColumns...)
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, p := range points {
				row := append([]string{p.Date.Format(dateLayout)}, rollupCSVValues(p.Rollup)...)
				if err := csvWriter.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	}, "Wrote CSV timeseries")
}

// writeTimeseriesTable prints one row per calendar day, gap days included.
func writeTimeseriesTable(w io.Writer, points []schema.DailyRollup, cfg *schema.Config) error {
	table := tablewriter.NewWriter(w)

	table.Header([]string{"Date", "Total", "AI", "Human", "AI %", "Label"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range points {
		data = append(data, []string{
			p.Date.Format(dateLayout),
			strconv.Itoa(p.Rollup.TotalLines),
			strconv.Itoa(p.Rollup.AILines),
			strconv.Itoa(p.Rollup.HumanLines),
			strconv.Itoa(p.Rollup.PercentageAIOverall),
			labelFor(p.Rollup.PercentageAIOverall, cfg),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
