package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"

	"github.com/compasshq/compass/schema"
)

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// rollupCSVColumns is the shared tail of every roll-up CSV row.
var rollupCSVColumns = []string{
	"total_lines", "ai_lines", "ai_blended_lines", "ai_pure_lines", "human_lines",
	"pct_ai_overall", "pct_ai_blended", "pct_ai_pure", "pct_human",
}

// rollupCSVValues renders the shared tail of a roll-up CSV row.
func rollupCSVValues(r schema.Rollup) []string {
	return []string{
		strconv.Itoa(r.TotalLines),
		strconv.Itoa(r.AILines),
		strconv.Itoa(r.AIBlendedLines),
		strconv.Itoa(r.AIPureLines),
		strconv.Itoa(r.HumanLines),
		strconv.Itoa(r.PercentageAIOverall),
		strconv.Itoa(r.PercentageAIBlended),
		strconv.Itoa(r.PercentageAIPure),
		strconv.Itoa(r.PercentageHuman),
	}
}

// truncateName truncates a display name to a maximum width with an ellipsis.
func truncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
}

const (
	heavyAIValue  = "Heavy AI"
	blendedValue  = "Blended"
	assistedValue = "Assisted"
	humanValue    = "Human-led"
)

var (
	heavyAIColor  = color.New(color.FgRed, color.Bold)    // Heavy AI: Red and Bold
	blendedColor  = color.New(color.FgYellow, color.Bold) // Blended: Yellow and Bold
	assistedColor = color.New(color.FgGreen)              // Assisted: Green
	humanColor    = color.New(color.FgHiBlack)            // Human-led: Dark Grey/HiBlack
)

// getPlainLabel returns a plain text label bucketing the AI share of a
// roll-up. This is the core logic used for CSV, JSON, and table printing.
// - Heavy AI (>=75)
// - Blended (>=40)
// - Assisted (>=10)
// - Human-led (<10)
func getPlainLabel(pctAIOverall int) string {
	switch {
	case pctAIOverall >= 75:
		return heavyAIValue
	case pctAIOverall >= 40:
		return blendedValue
	case pctAIOverall >= 10:
		return assistedValue
	default:
		return humanValue
	}
}

// getColorLabel returns a colored text label for console output (table).
func getColorLabel(pctAIOverall int) string {
	text := getPlainLabel(pctAIOverall)

	switch text {
	case heavyAIValue:
		return heavyAIColor.Sprint(text)
	case blendedValue:
		return blendedColor.Sprint(text)
	case assistedValue:
		return assistedColor.Sprint(text)
	default: // "Human-led"
		return humanColor.Sprint(text)
	}
}

// labelFor picks the colored or plain variant based on configuration.
func labelFor(pctAIOverall int, cfg *schema.Config) string {
	if cfg.UseColors {
		return getColorLabel(pctAIOverall)
	}
	return getPlainLabel(pctAIOverall)
}
