// Package biobank is the public entry point for embedding the biobank store
// in another program. It keeps the storage and engine packages internal.
//
// Example:
//
//	cfg := types.Config{DatabaseURL: "sqlite:///var/lib/biobank/biobank.db"}
//	store, err := biobank.Open(ctx, cfg, biobank.Options{Log: log})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	err = store.WithTable(ctx, types.TablePatient, func(t types.Table) error {
//	    _, err := t.Create(ctx, payload)
//	    return err
//	})
package biobank

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/biobank/internal/crud"
	"github.com/mesh-intelligence/biobank/internal/storage"
	"github.com/mesh-intelligence/biobank/pkg/types"
)

// Store is an attached biobank database.
type Store struct {
	backend *storage.Backend
	engine  *crud.Engine
}

// Options tunes an opened store.
type Options struct {
	Log        zerolog.Logger
	Registerer prometheus.Registerer // records operation metrics when set
}

// Open attaches to cfg.DatabaseURL and applies pending migrations.
func Open(ctx context.Context, cfg types.Config, opts Options) (*Store, error) {
	var metrics *crud.Metrics
	if opts.Registerer != nil {
		m, err := crud.NewMetrics(opts.Registerer)
		if err != nil {
			return nil, err
		}
		metrics = m
	}

	backend := storage.NewBackend(opts.Log)
	if err := backend.Attach(ctx, cfg); err != nil {
		return nil, err
	}
	return &Store{backend: backend, engine: crud.New(opts.Log, metrics)}, nil
}

// Close detaches the store. Close is idempotent.
func (s *Store) Close() error {
	return s.backend.Detach()
}

// WithTable runs fn against the named table in a fresh session. The table
// must not be used after fn returns.
func (s *Store) WithTable(ctx context.Context, name string, fn func(types.Table) error) error {
	return s.backend.WithSession(ctx, func(sess *storage.Session) error {
		table, err := s.engine.Table(sess, name)
		if err != nil {
			return err
		}
		return fn(table)
	})
}
