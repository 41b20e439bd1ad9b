package types

import (
	"context"
	"database/sql"
)

// Table provides the five entity-agnostic operations for a single entity type.
// Every error returned is an *Error of one of the taxonomy kinds.
type Table interface {
	// Name returns the table name the view is bound to.
	Name() string

	// List returns up to limit rows starting at offset, in the store's natural
	// row order. A zero limit yields an empty, non-nil slice.
	List(ctx context.Context, offset, limit int) ([]Entity, error)

	// Get returns the row with the given primary key.
	// Returns ErrNotFound if no such row exists.
	Get(ctx context.Context, id string) (Entity, error)

	// Create validates the payload against the full schema and inserts one row.
	// Returns the persisted entity including any generated key.
	Create(ctx context.Context, payload Payload) (Entity, error)

	// Update applies merge-patch semantics: only fields present in patch change.
	// An empty patch returns the current entity without writing.
	Update(ctx context.Context, id string, patch Payload) (Entity, error)

	// Delete removes the row. It never cascades: a row still referenced by a
	// dependent fails with ErrConstraint.
	Delete(ctx context.Context, id string) error
}

// Querier is the read/write surface shared by sessions and transactions.
// Queries are written with ? placeholders; implementations rebind them for
// the underlying dialect.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Tx is one transaction opened on a Session.
type Tx interface {
	Querier
	Commit() error
	Rollback() error
}

// Session is one unit of work bound to a single store connection. Sessions
// are not safe for concurrent use and must be closed to release the connection.
type Session interface {
	Querier

	// Begin opens a transaction on the session's connection.
	Begin(ctx context.Context) (Tx, error)

	// Translate maps a store failure into the error taxonomy. Errors already
	// in the taxonomy pass through unchanged.
	Translate(table string, err error) error

	// Close releases the underlying connection. Idempotent.
	Close() error
}
