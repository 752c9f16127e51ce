package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/compasshq/compass/schema"
)

// PrintLinkReport outputs a linking run report, dispatching based on the
// output format configured.
func PrintLinkReport(report schema.LinkReport, cfg *schema.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONLinkReport(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVLinkReport(report, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := writeLinkTable(os.Stdout, report, cfg); err != nil {
			return fmt.Errorf("error writing link table output: %w", err)
		}
	}
	return nil
}

func printJSONLinkReport(report schema.LinkReport, cfg *schema.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, report)
	}, "Wrote JSON link report")
}

func printCSVLinkReport(report schema.LinkReport, cfg *schema.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"parent_id", "member_ids"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, set := range report.LinkSets {
				row := []string{
					strconv.FormatInt(set.ParentID, 10),
					joinIDs(set.MemberIDs),
				}
				if err := csvWriter.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	}, "Wrote CSV link report")
}

// writeLinkTable writes the planned or applied link sets as a table with a
// one-line summary underneath.
func writeLinkTable(w io.Writer, report schema.LinkReport, cfg *schema.Config) error {
	table := tablewriter.NewWriter(w)

	table.Header([]string{"Parent", "Members", "Count"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, set := range report.LinkSets {
		data = append(data, []string{
			strconv.FormatInt(set.ParentID, 10),
			joinIDs(set.MemberIDs),
			strconv.Itoa(len(set.MemberIDs)),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if len(data) > 0 {
		if err := table.Render(); err != nil {
			return err
		}
	}

	prefix := ""
	if cfg.UseEmojis {
		prefix = "🔗 "
	}
	if report.DryRun {
		fmt.Fprintf(w, "%sDry run for org %d: %d of %d authors grouped into %d components, %d skipped as decided. Nothing written.\n",
			prefix, report.OrganizationID, plannedMembers(report), report.AuthorsConsidered, report.Components, report.SkippedDecided)
		return nil
	}
	fmt.Fprintf(w, "%sLinked %d rows for org %d across %d components (%d authors considered, %d skipped as decided)\n",
		prefix, report.RowsUpdated, report.OrganizationID, report.Components, report.AuthorsConsidered, report.SkippedDecided)
	return nil
}

func plannedMembers(report schema.LinkReport) int {
	total := 0
	for _, set := range report.LinkSets {
		total += len(set.MemberIDs)
	}
	return total
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ", ")
}
