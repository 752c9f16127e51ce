// Package store persists organizations' telemetry entities in a relational
// backend. The ingestion pipeline owns row creation; this package reads the
// entities back for linking and aggregation and writes only the fields those
// services own (link pointers and cached roll-ups).
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/compasshq/compass/schema"
)

// Table names for telemetry entities.
const (
	providersTable        = "providers"
	authorsTable          = "authors"
	authorGroupsTable     = "author_groups"
	repositoriesTable     = "repositories"
	repositoryGroupsTable = "repository_groups"
	contributionsTable    = "contribution_stats"
)

// DefaultSQLiteFile is the local database file used when no connection
// string is given for the SQLite backend.
const DefaultSQLiteFile = "compass.db"

// DefaultConnString substitutes the default local database file for the
// SQLite backend when no connection string is given.
func DefaultConnString(backend schema.StoreBackend, connStr string) string {
	if backend == schema.SQLiteBackend && connStr == "" {
		return DefaultSQLiteFile
	}
	return connStr
}

// ValidateConnString performs basic validation of a backend and its
// connection string before any connection is attempted.
func ValidateConnString(backend schema.StoreBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return nil // Empty connection string falls back to the local file
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required for the %s backend", backend)
		}
		return nil
	default:
		return fmt.Errorf("unsupported store backend: %s", backend)
	}
}

// Store is the persistence contract for the linking service and the
// aggregation engine.
type Store interface {
	// ListProviders returns all telemetry providers.
	ListProviders(ctx context.Context) ([]schema.Provider, error)

	// ListAuthors returns every author in the organization, ordered by id.
	ListAuthors(ctx context.Context, orgID int64) ([]schema.Author, error)

	// ListMatchableAuthors returns the organization's authors that carry a
	// usable email, ordered by id so that tie-breaking stays deterministic
	// across runs.
	ListMatchableAuthors(ctx context.Context, orgID int64) ([]schema.Author, error)

	// ListParentAuthorIDs returns the ids of authors not linked to a parent.
	ListParentAuthorIDs(ctx context.Context, orgID int64) (map[int64]bool, error)

	// ListDecidedAuthorIDs returns the ids of authors with a durable linking
	// decision: already linked, or split by a human operator.
	ListDecidedAuthorIDs(ctx context.Context, orgID int64) (map[int64]bool, error)

	// BulkLinkAuthors points every member at the parent and clears member
	// group assignments in a single statement. Returns rows updated.
	BulkLinkAuthors(ctx context.Context, set schema.LinkSet) (int64, error)

	// ListAuthorGroups returns the organization's author groups by id order.
	ListAuthorGroups(ctx context.Context, orgID int64) ([]schema.AuthorGroup, error)

	// ListRepositoryGroups returns the organization's repository groups.
	ListRepositoryGroups(ctx context.Context, orgID int64) ([]schema.RepositoryGroup, error)

	// ListRepositoryGroupMembers returns the repository ids in a group.
	ListRepositoryGroupMembers(ctx context.Context, groupID int64) ([]int64, error)

	// ListContributions returns all contribution stats for the organization.
	ListContributions(ctx context.Context, orgID int64) ([]schema.Contribution, error)

	// ListContributionsBetween returns contribution stats with a commit date
	// inside [start, end].
	ListContributionsBetween(ctx context.Context, orgID int64, start, end time.Time) ([]schema.Contribution, error)

	// SaveRollup overwrites the cached roll-up fields on the target entity.
	SaveRollup(ctx context.Context, target schema.RollupTarget, r schema.Rollup) error

	// Status returns connectivity and table size information.
	Status(ctx context.Context) (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}
