package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compasshq/compass/schema"
)

func plainConfig() *schema.Config {
	return &schema.Config{Output: schema.TextOut, Width: 120}
}

// TestWriteLinkTable renders link sets plus the applied-run summary.
func TestWriteLinkTable(t *testing.T) {
	report := schema.LinkReport{
		OrganizationID:    1,
		AuthorsConsidered: 5,
		Components:        2,
		LinkSets: []schema.LinkSet{
			{ParentID: 2, MemberIDs: []int64{1, 3}},
			{ParentID: 7, MemberIDs: []int64{8}},
		},
		SkippedDecided: 1,
		RowsUpdated:    3,
	}

	var buf bytes.Buffer
	require.NoError(t, writeLinkTable(&buf, report, plainConfig()))

	out := buf.String()
	assert.Contains(t, out, "1, 3")
	assert.Contains(t, out, "Linked 3 rows for org 1 across 2 components")
	assert.Contains(t, out, "1 skipped as decided")
}

// TestWriteLinkTableDryRun reports the plan without claiming writes.
func TestWriteLinkTableDryRun(t *testing.T) {
	report := schema.LinkReport{
		OrganizationID:    1,
		AuthorsConsidered: 3,
		Components:        1,
		LinkSets:          []schema.LinkSet{{ParentID: 2, MemberIDs: []int64{1, 3}}},
		DryRun:            true,
	}

	var buf bytes.Buffer
	require.NoError(t, writeLinkTable(&buf, report, plainConfig()))

	out := buf.String()
	assert.Contains(t, out, "Dry run for org 1")
	assert.Contains(t, out, "Nothing written")
	assert.NotContains(t, out, "Linked")
}

// TestPrintCSVAggregateReport writes one row per target plus the bucket.
func TestPrintCSVAggregateReport(t *testing.T) {
	report := schema.AggregateReport{
		OrganizationID: 1,
		AuthorRollups: []schema.AuthorRollup{
			{
				Author: schema.Author{ID: 1, Name: "Ivan Ivanov", Email: "ivan@x.com"},
				Rollup: schema.Rollup{TotalLines: 100, AILines: 40, HumanLines: 60, PercentageAIOverall: 40, PercentageHuman: 60},
			},
		},
		GroupRollups: []schema.GroupRollup{
			{ID: 7, Name: "Platform", Kind: schema.AuthorGroupKind, Rollup: schema.Rollup{TotalLines: 100}},
		},
		Ungrouped: schema.Rollup{TotalLines: 50},
	}

	outputFile := t.TempDir() + "/agg.csv"
	cfg := plainConfig()
	cfg.Output = schema.CSVOut
	cfg.OutputFile = outputFile

	require.NoError(t, PrintAggregateReport(report, cfg))

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 4, "header, author, group, ungrouped")
	assert.Contains(t, lines[0], "kind,id,name,total_lines")
	assert.Contains(t, lines[1], "author,1,Ivan Ivanov,100,40")
	assert.Contains(t, lines[2], "author_group,7,Platform")
	assert.Contains(t, lines[3], "ungrouped,0,Ungrouped,50")
}

// TestPrintJSONTimeseries round-trips through the json tags.
func TestPrintJSONTimeseries(t *testing.T) {
	points := []schema.DailyRollup{
		{
			Date:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			Rollup: schema.Rollup{TotalLines: 10, AILines: 5, PercentageAIOverall: 50},
		},
	}

	outputFile := t.TempDir() + "/series.json"
	cfg := plainConfig()
	cfg.Output = schema.JSONOut
	cfg.OutputFile = outputFile

	require.NoError(t, PrintTimeseries(points, cfg))

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var decoded []schema.DailyRollup
	require.NoError(t, json.Unmarshal(content, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, 50, decoded[0].Rollup.PercentageAIOverall)
}

// TestWriteStatusTable lists tables in stable order.
func TestWriteStatusTable(t *testing.T) {
	status := schema.StoreStatus{
		Backend:   "sqlite",
		Connected: true,
		TableSizes: map[string]int64{
			"authors":   3,
			"providers": 1,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, writeStatusTable(&buf, status, plainConfig()))

	out := buf.String()
	assert.Contains(t, out, "authors")
	assert.Contains(t, out, "Backend sqlite, connected: true")
	assert.Less(t, strings.Index(out, "authors"), strings.Index(out, "providers"))
}

// TestGetPlainLabel buckets the AI share.
func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		pct      int
		expected string
	}{
		{90, "Heavy AI"},
		{75, "Heavy AI"},
		{50, "Blended"},
		{20, "Assisted"},
		{0, "Human-led"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, getPlainLabel(tt.pct), "pct %d", tt.pct)
	}
}

// TestTruncateName shortens long names with an ellipsis.
func TestTruncateName(t *testing.T) {
	assert.Equal(t, "short", truncateName("short", 12))
	assert.Equal(t, "very long...", truncateName("very long display name", 12))
}
