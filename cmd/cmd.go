// Package cmd defines the command-line interface for compass.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/compasshq/compass/internal"
	"github.com/compasshq/compass/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(aggregateCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(timeseriesCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("org", "o", "", "Organization id to operate on")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgres")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgres (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emoji markers in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("start", "", "Window start date in YYYY-MM-DD")
	rootCmd.PersistentFlags().String("end", "", "Window end date in YYYY-MM-DD")
	rootCmd.PersistentFlags().Int("days", schema.DefaultTimeseriesDays, "Trailing window length in days when start is omitted")
	rootCmd.PersistentFlags().String("provider-ttl", "", "Provider cache TTL as a Go duration (default 15m)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		internal.FatalError("Error binding root flags", err)
	}

	// Bind all flags of linkCmd to Viper
	linkCmd.Flags().Bool("dry-run", false, "Plan identity links without writing")
	if err := viper.BindPFlags(linkCmd.Flags()); err != nil {
		internal.FatalError("Error binding link flags", err)
	}

	// Bind all flags of migrateCmd to Viper
	migrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(migrateCmd.Flags()); err != nil {
		internal.FatalError("Error binding migrate flags", err)
	}
}
