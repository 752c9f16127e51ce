package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compasshq/compass/schema"
)

func TestAuthorRollupRowStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	s := parquet.SchemaOf(new(AuthorRollupRow))
	require.NotNil(t, s)

	expectedColumns := []string{
		"organization_id",
		"author_id",
		"name",
		"email",
		"total_lines",
		"ai_lines",
		"ai_blended_lines",
		"ai_pure_lines",
		"human_lines",
		"not_evaluated_files",
		"not_evaluated_lines",
		"pct_ai_overall",
		"pct_ai_blended",
		"pct_ai_pure",
		"pct_human",
	}

	for _, colName := range expectedColumns {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestDailyRollupRowStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(DailyRollupRow))
	require.NotNil(t, s)

	for _, colName := range []string{"organization_id", "date", "total_lines", "pct_ai_overall"} {
		_, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestAuthorRollupRows(t *testing.T) {
	report := schema.AggregateReport{
		OrganizationID: 1,
		AuthorRollups: []schema.AuthorRollup{
			{
				Author: schema.Author{ID: 3, Name: "Ivan", Email: "ivan@x.com"},
				Rollup: schema.Rollup{TotalLines: 100, AILines: 40, HumanLines: 60, PercentageAIOverall: 40, PercentageHuman: 60},
			},
		},
	}

	rows := AuthorRollupRows(report)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].OrganizationID)
	assert.Equal(t, int64(3), rows[0].AuthorID)
	assert.Equal(t, int32(100), rows[0].TotalLines)
	assert.Equal(t, int32(40), rows[0].PctAIOverall)
}

func TestWriteAuthorRollupsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "author_rollups.parquet")

	data := []AuthorRollupRow{
		{OrganizationID: 1, AuthorID: 1, Name: "Ivan", Email: "ivan@x.com", TotalLines: 100, AILines: 40, HumanLines: 60, PctAIOverall: 40, PctHuman: 60},
		{OrganizationID: 1, AuthorID: 2, Name: "Alice", Email: "alice@x.com", TotalLines: 50, AILines: 50, PctAIOverall: 100},
	}

	err := WriteAuthorRollupsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	// Read the file back and verify contents
	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[AuthorRollupRow](file)
	defer func() { _ = reader.Close() }()

	readBack := make([]AuthorRollupRow, 2)
	n, _ := reader.Read(readBack)
	require.Equal(t, 2, n)
	assert.Equal(t, data[0], readBack[0])
	assert.Equal(t, data[1], readBack[1])
}

func TestWriteDailyRollupsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "daily.parquet")

	rows := DailyRollupRows(1, []schema.DailyRollup{
		{Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Rollup: schema.Rollup{TotalLines: 10, AILines: 5, PercentageAIOverall: 50}},
		{Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
	})
	require.Len(t, rows, 2)

	err := WriteDailyRollupsParquet(rows, outputPath)
	require.NoError(t, err)

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
