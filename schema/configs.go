package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Default values for configuration.
const (
	DefaultTimeseriesDays = 30
	MaxTimeseriesDays     = 366
	DefaultProviderTTL    = 15 * time.Minute
)

// Config holds the validated runtime configuration for one invocation.
type Config struct {
	OrganizationID int64

	StoreBackend StoreBackend
	StoreConnect string // Please use env var as this is plaintext

	Output     OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool
	UseEmojis  bool

	DryRun bool // Plan identity links without writing

	// Timeseries window, inclusive of both endpoints' calendar days.
	SeriesStart time.Time
	SeriesEnd   time.Time

	ProviderTTL time.Duration
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	Org          string `mapstructure:"org"`
	StoreBackend string `mapstructure:"store-backend"`
	StoreConnect string `mapstructure:"store-db-connect"`
	Output       string `mapstructure:"output"`
	OutputFile   string `mapstructure:"output-file"`
	Width        int    `mapstructure:"width"`
	Color        string `mapstructure:"color"`
	Emoji        string `mapstructure:"emoji"`
	DryRun       bool   `mapstructure:"dry-run"`
	SeriesStart  string `mapstructure:"start"`
	SeriesEnd    string `mapstructure:"end"`
	SeriesDays   int    `mapstructure:"days"`
	ProviderTTL  string `mapstructure:"provider-ttl"`
}

// ProcessAndValidate populates cfg from the raw input, applying defaults and
// rejecting invalid combinations.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if input.Org == "" {
		return fmt.Errorf("--org is required")
	}
	orgID, err := strconv.ParseInt(input.Org, 10, 64)
	if err != nil || orgID <= 0 {
		return fmt.Errorf("invalid organization id %q", input.Org)
	}
	cfg.OrganizationID = orgID

	backend := StoreBackend(strings.ToLower(input.StoreBackend))
	switch backend {
	case SQLiteBackend, MySQLBackend, PostgreSQLBackend:
		cfg.StoreBackend = backend
	case "":
		cfg.StoreBackend = SQLiteBackend
	default:
		return fmt.Errorf("unsupported store backend: %s", input.StoreBackend)
	}
	cfg.StoreConnect = input.StoreConnect

	output := OutputMode(strings.ToLower(input.Output))
	switch output {
	case TextOut, CSVOut, JSONOut, ParquetOut:
		cfg.Output = output
	case "":
		cfg.Output = TextOut
	default:
		return fmt.Errorf("unsupported output mode: %s", input.Output)
	}
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.UseColors = parseYesNo(input.Color, true)
	cfg.UseEmojis = parseYesNo(input.Emoji, true)
	cfg.DryRun = input.DryRun

	if err := processSeriesWindow(cfg, input); err != nil {
		return err
	}

	cfg.ProviderTTL = DefaultProviderTTL
	if input.ProviderTTL != "" {
		ttl, err := time.ParseDuration(input.ProviderTTL)
		if err != nil {
			return fmt.Errorf("invalid provider-ttl: %w", err)
		}
		if ttl <= 0 {
			return fmt.Errorf("provider-ttl must be positive")
		}
		cfg.ProviderTTL = ttl
	}

	return nil
}

// processSeriesWindow resolves the timeseries date range. Explicit start/end
// win; otherwise the window is the trailing --days calendar days ending today.
func processSeriesWindow(cfg *Config, input *ConfigRawInput) error {
	const dateLayout = "2006-01-02"

	days := input.SeriesDays
	if days == 0 {
		days = DefaultTimeseriesDays
	}
	if days < 1 || days > MaxTimeseriesDays {
		return fmt.Errorf("days must be between 1 and %d", MaxTimeseriesDays)
	}

	end := time.Now().UTC()
	if input.SeriesEnd != "" {
		parsed, err := time.Parse(dateLayout, input.SeriesEnd)
		if err != nil {
			return fmt.Errorf("invalid end date %q: %w", input.SeriesEnd, err)
		}
		end = parsed
	}
	start := end.AddDate(0, 0, -(days - 1))
	if input.SeriesStart != "" {
		parsed, err := time.Parse(dateLayout, input.SeriesStart)
		if err != nil {
			return fmt.Errorf("invalid start date %q: %w", input.SeriesStart, err)
		}
		start = parsed
	}
	if start.After(end) {
		return fmt.Errorf("start date %s is after end date %s",
			start.Format(dateLayout), end.Format(dateLayout))
	}
	cfg.SeriesStart = start
	cfg.SeriesEnd = end
	return nil
}

func parseYesNo(s string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1", "on":
		return true
	case "no", "n", "false", "0", "off":
		return false
	default:
		return fallback
	}
}
