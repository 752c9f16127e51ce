// Package parquet provides data structures and functions for exporting
// roll-up data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/compasshq/compass/schema"
)

// AuthorRollupRow is one parent author's roll-up flattened for warehouse
// ingestion.
type AuthorRollupRow struct {
	OrganizationID int64  `parquet:"organization_id,snappy"`
	AuthorID       int64  `parquet:"author_id,snappy"`
	Name           string `parquet:"name,snappy"`
	Email          string `parquet:"email,snappy"`

	TotalLines        int32 `parquet:"total_lines,snappy"`
	AILines           int32 `parquet:"ai_lines,snappy"`
	AIBlendedLines    int32 `parquet:"ai_blended_lines,snappy"`
	AIPureLines       int32 `parquet:"ai_pure_lines,snappy"`
	HumanLines        int32 `parquet:"human_lines,snappy"`
	NotEvaluatedFiles int32 `parquet:"not_evaluated_files,snappy"`
	NotEvaluatedLines int32 `parquet:"not_evaluated_lines,snappy"`

	PctAIOverall int32 `parquet:"pct_ai_overall,snappy"`
	PctAIBlended int32 `parquet:"pct_ai_blended,snappy"`
	PctAIPure    int32 `parquet:"pct_ai_pure,snappy"`
	PctHuman     int32 `parquet:"pct_human,snappy"`
}

// DailyRollupRow is one gap-filled day of the series flattened for warehouse
// ingestion.
type DailyRollupRow struct {
	OrganizationID int64     `parquet:"organization_id,snappy"`
	Date           time.Time `parquet:"date,snappy"`

	TotalLines int32 `parquet:"total_lines,snappy"`
	AILines    int32 `parquet:"ai_lines,snappy"`
	HumanLines int32 `parquet:"human_lines,snappy"`

	PctAIOverall int32 `parquet:"pct_ai_overall,snappy"`
	PctAIBlended int32 `parquet:"pct_ai_blended,snappy"`
	PctAIPure    int32 `parquet:"pct_ai_pure,snappy"`
	PctHuman     int32 `parquet:"pct_human,snappy"`
}

// AuthorRollupRows flattens an aggregate report's author roll-ups.
func AuthorRollupRows(report schema.AggregateReport) []AuthorRollupRow {
	rows := make([]AuthorRollupRow, 0, len(report.AuthorRollups))
	for _, ar := range report.AuthorRollups {
		r := ar.Rollup
		rows = append(rows, AuthorRollupRow{
			OrganizationID:    report.OrganizationID,
			AuthorID:          ar.Author.ID,
			Name:              ar.Author.Name,
			Email:             ar.Author.Email,
			TotalLines:        int32(r.TotalLines),
			AILines:           int32(r.AILines),
			AIBlendedLines:    int32(r.AIBlendedLines),
			AIPureLines:       int32(r.AIPureLines),
			HumanLines:        int32(r.HumanLines),
			NotEvaluatedFiles: int32(r.NotEvaluatedFiles),
			NotEvaluatedLines: int32(r.NotEvaluatedLines),
			PctAIOverall:      int32(r.PercentageAIOverall),
			PctAIBlended:      int32(r.PercentageAIBlended),
			PctAIPure:         int32(r.PercentageAIPure),
			PctHuman:          int32(r.PercentageHuman),
		})
	}
	return rows
}

// DailyRollupRows flattens a daily series.
func DailyRollupRows(orgID int64, points []schema.DailyRollup) []DailyRollupRow {
	rows := make([]DailyRollupRow, 0, len(points))
	for _, p := range points {
		r := p.Rollup
		rows = append(rows, DailyRollupRow{
			OrganizationID: orgID,
			Date:           p.Date,
			TotalLines:     int32(r.TotalLines),
			AILines:        int32(r.AILines),
			HumanLines:     int32(r.HumanLines),
			PctAIOverall:   int32(r.PercentageAIOverall),
			PctAIBlended:   int32(r.PercentageAIBlended),
			PctAIPure:      int32(r.PercentageAIPure),
			PctHuman:       int32(r.PercentageHuman),
		})
	}
	return rows
}

// WriteAuthorRollupsParquet writes author roll-up rows to a Parquet file.
func WriteAuthorRollupsParquet(data []AuthorRollupRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteDailyRollupsParquet writes daily series rows to a Parquet file.
func WriteDailyRollupsParquet(data []DailyRollupRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes records with a schema inferred from struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}
