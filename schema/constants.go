// Package schema has models, configs and shared types for all parts of compass.
package schema

// Custom string types for type safety.
type (
	// StoreBackend represents the relational backend holding telemetry data.
	StoreBackend string

	// OutputMode represents the format of the output.
	OutputMode string

	// EntityKind represents the kind of entity a roll-up is attached to.
	EntityKind string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     StoreBackend = "sqlite" // default
	MySQLBackend      StoreBackend = "mysql"
	PostgreSQLBackend StoreBackend = "postgres"
)

// All roll-up entity kinds.
const (
	AuthorKind          EntityKind = "author"
	AuthorGroupKind     EntityKind = "author_group"
	RepositoryGroupKind EntityKind = "repository_group"
)
