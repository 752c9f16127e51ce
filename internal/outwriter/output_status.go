package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/compasshq/compass/schema"
)

// PrintStatus outputs store status, dispatching based on the output format
// configured.
func PrintStatus(status schema.StoreStatus, cfg *schema.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := printJSONStatus(status, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCSVStatus(status, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		if err := writeStatusTable(os.Stdout, status, cfg); err != nil {
			return fmt.Errorf("error writing status table output: %w", err)
		}
	}
	return nil
}

func printJSONStatus(status schema.StoreStatus, cfg *schema.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, status)
	}, "Wrote JSON status")
}

func printCSVStatus(status schema.StoreStatus, cfg *schema.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"table", "rows"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			for _, table := range sortedTableNames(status) {
				row := []string{table, strconv.FormatInt(status.TableSizes[table], 10)}
				if err := csvWriter.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
			return nil
		})
	}, "Wrote CSV status")
}

func writeStatusTable(w io.Writer, status schema.StoreStatus, cfg *schema.Config) error {
	table := tablewriter.NewWriter(w)

	table.Header([]string{"Table", "Rows"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, name := range sortedTableNames(status) {
		data = append(data, []string{name, strconv.FormatInt(status.TableSizes[name], 10)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	prefix := ""
	if cfg.UseEmojis {
		prefix = "🗄️  "
	}
	fmt.Fprintf(w, "%sBackend %s, connected: %v\n", prefix, status.Backend, status.Connected)
	return nil
}

func sortedTableNames(status schema.StoreStatus) []string {
	names := make([]string, 0, len(status.TableSizes))
	for name := range status.TableSizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
