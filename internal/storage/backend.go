// Package storage provides the persistence session provider of the biobank
// store: one shared connection pool per process, one pinned connection per
// unit of work, embedded schema migrations and the mapping of driver errors
// into the error taxonomy.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

// Backend owns the process-wide connection pool. Construct one at startup
// and hand it to whatever needs sessions; there is no package-level pool.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	db       *sql.DB
	dialect  Dialect
	log      zerolog.Logger
}

// NewBackend creates a detached backend. Call Attach to open the pool.
func NewBackend(log zerolog.Logger) *Backend {
	return &Backend{log: log.With().Str("component", "storage").Logger()}
}

// Attach opens the pool for cfg.DatabaseURL, verifies connectivity and
// applies the embedded migrations of the selected dialect.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(ctx context.Context, cfg types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return ErrAlreadyAttached
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	dialect, err := ParseDatabaseURL(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if dialect.Path != "" {
		if dir := filepath.Dir(dialect.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating database directory: %w", err)
			}
		}
	}

	db, err := sql.Open(dialect.Driver, dialect.DSN)
	if err != nil {
		return fmt.Errorf("open %s: %w", dialect.Name, err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping %s: %w", dialect.Name, err)
	}
	applied, err := applyMigrations(ctx, db, dialect)
	if err != nil {
		_ = db.Close()
		return err
	}

	b.db = db
	b.dialect = dialect
	b.attached = true
	b.log.Info().
		Str("dialect", dialect.Name).
		Int("migrations_applied", applied).
		Msg("attached")
	return nil
}

// Detach closes the pool. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	db := b.db
	b.db = nil
	if err := db.Close(); err != nil {
		return fmt.Errorf("close %s: %w", b.dialect.Name, err)
	}
	b.log.Info().Str("dialect", b.dialect.Name).Msg("detached")
	return nil
}

// Dialect returns the dialect of the attached store.
func (b *Backend) Dialect() Dialect {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dialect
}

// Acquire pins one pooled connection for a unit of work. The caller must
// Close the session on every exit path.
func (b *Backend) Acquire(ctx context.Context) (*Session, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, ErrDetached
	}
	conn, err := b.db.Conn(ctx)
	if err != nil {
		return nil, TranslateError("", err)
	}
	return &Session{conn: conn, dialect: b.dialect}, nil
}

// WithSession runs fn with a fresh session and releases it afterwards,
// including when fn fails or panics.
func (b *Backend) WithSession(ctx context.Context, fn func(*Session) error) error {
	sess, err := b.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			b.log.Warn().Err(cerr).Msg("releasing session")
		}
	}()
	return fn(sess)
}

// Collector exposes connection pool statistics to prometheus.
func (b *Backend) Collector() (prometheus.Collector, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, ErrDetached
	}
	return collectors.NewDBStatsCollector(b.db, "biobank"), nil
}
