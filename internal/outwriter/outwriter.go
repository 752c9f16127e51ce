// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"golang.org/x/term"

	"github.com/compasshq/compass/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the
// command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteLinkReport prints a linking run report using the configured output format.
func (ow *OutWriter) WriteLinkReport(report schema.LinkReport, cfg *schema.Config) error {
	return PrintLinkReport(report, cfg)
}

// WriteAggregateReport prints an aggregation run report using the configured output format.
func (ow *OutWriter) WriteAggregateReport(report schema.AggregateReport, cfg *schema.Config) error {
	return PrintAggregateReport(report, cfg)
}

// WriteTimeseries prints a daily roll-up series using the configured output format.
func (ow *OutWriter) WriteTimeseries(points []schema.DailyRollup, cfg *schema.Config) error {
	return PrintTimeseries(points, cfg)
}

// WriteStatus prints store status using the configured output format.
func (ow *OutWriter) WriteStatus(status schema.StoreStatus, cfg *schema.Config) error {
	return PrintStatus(status, cfg)
}

// GetMaxNameWidth calculates the maximum width for author names and emails in
// table output based on terminal width.
func GetMaxNameWidth(cfg *schema.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for the numeric columns plus borders and padding.
	available := termWidth - 50
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}
