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

// PrintAggregateReport outputs an aggregation run report, dispatching based
// on the output format configured.
func PrintAggregateReport(report schema.AggregateReport, cfg *schema.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONAggregateReport(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVAggregateReport(report, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable tables
		if err := writeAggregateTables(os.Stdout, report, cfg); err != nil {
			return fmt.Errorf("error writing aggregate table output: %w", err)
		}
	}
	return nil
}

func printJSONAggregateReport(report schema.AggregateReport, cfg *schema.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, report)
	}, "Wrote JSON aggregate report")
}

func printCSVAggregateReport(report schema.AggregateReport, cfg *schema.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := append([]string{"kind", "id", "name"}, rollupCSVColumns...)
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			writeRow := func(kind schema.EntityKind, id int64, name string, r schema.Rollup) error {
				row := append([]string{string(kind), strconv.FormatInt(id, 10), name}, rollupCSVValues(r)...)
				if err := csvWriter.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
				return nil
			}

			for _, ar := range report.AuthorRollups {
				if err := writeRow(schema.AuthorKind, ar.Author.ID, ar.Author.Name, ar.Rollup); err != nil {
					return err
				}
			}
			for _, gr := range report.GroupRollups {
				if err := writeRow(gr.Kind, gr.ID, gr.Name, gr.Rollup); err != nil {
					return err
				}
			}
			for _, gr := range report.RepoGroupRollups {
				if err := writeRow(gr.Kind, gr.ID, gr.Name, gr.Rollup); err != nil {
					return err
				}
			}
			return writeRow("ungrouped", 0, "Ungrouped", report.Ungrouped)
		})
	}, "Wrote CSV aggregate report")
}

// writeAggregateTables writes the author table, then one table per group
// kind, then the synthetic ungrouped bucket.
func writeAggregateTables(w io.Writer, report schema.AggregateReport, cfg *schema.Config) error {
	nameWidth := GetMaxNameWidth(cfg)

	if len(report.AuthorRollups) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Author", "Email", "Total", "AI", "Human", "AI %", "Label"})
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		var data [][]string
		for _, ar := range report.AuthorRollups {
			data = append(data, []string{
				truncateName(ar.Author.Name, nameWidth),
				truncateName(ar.Author.Email, nameWidth),
				strconv.Itoa(ar.Rollup.TotalLines),
				strconv.Itoa(ar.Rollup.AILines),
				strconv.Itoa(ar.Rollup.HumanLines),
				strconv.Itoa(ar.Rollup.PercentageAIOverall),
				labelFor(ar.Rollup.PercentageAIOverall, cfg),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if err := writeGroupTable(w, "Team", report.GroupRollups, cfg); err != nil {
		return err
	}
	if err := writeGroupTable(w, "Repo group", report.RepoGroupRollups, cfg); err != nil {
		return err
	}

	prefix := ""
	if cfg.UseEmojis {
		prefix = "📊 "
	}
	fmt.Fprintf(w, "%sOrg %d: %d authors, ungrouped bucket %d lines (%d%% AI)\n",
		prefix, report.OrganizationID, len(report.AuthorRollups),
		report.Ungrouped.TotalLines, report.Ungrouped.PercentageAIOverall)
	return nil
}

func writeGroupTable(w io.Writer, title string, groups []schema.GroupRollup, cfg *schema.Config) error {
	if len(groups) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{title, "Total", "AI", "Blended", "Pure", "Human", "AI %", "Label"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, gr := range groups {
		data = append(data, []string{
			truncateName(gr.Name, GetMaxNameWidth(cfg)),
			strconv.Itoa(gr.Rollup.TotalLines),
			strconv.Itoa(gr.Rollup.AILines),
			strconv.Itoa(gr.Rollup.AIBlendedLines),
			strconv.Itoa(gr.Rollup.AIPureLines),
			strconv.Itoa(gr.Rollup.HumanLines),
			strconv.Itoa(gr.Rollup.PercentageAIOverall),
			labelFor(gr.Rollup.PercentageAIOverall, cfg),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
