package storage

import (
	"context"
	"database/sql"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

// Session is one unit of work pinned to a single pooled connection. It is
// not safe for concurrent use.
type Session struct {
	conn    *sql.Conn
	dialect Dialect
	closed  bool
}

var _ types.Session = (*Session)(nil)

func (s *Session) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.conn.QueryContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *Session) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return s.conn.QueryRowContext(ctx, s.dialect.Rebind(query), args...)
}

func (s *Session) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.conn.ExecContext(ctx, s.dialect.Rebind(query), args...)
}

// Begin opens a transaction on the pinned connection.
func (s *Session) Begin(ctx context.Context) (types.Tx, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sessionTx{tx: tx, dialect: s.dialect}, nil
}

// Translate maps err with TranslateError.
func (s *Session) Translate(table string, err error) error {
	return TranslateError(table, err)
}

// Close returns the connection to the pool. Close is idempotent.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.conn.Close()
}

type sessionTx struct {
	tx      *sql.Tx
	dialect Dialect
}

func (t *sessionTx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, t.dialect.Rebind(query), args...)
}

func (t *sessionTx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, t.dialect.Rebind(query), args...)
}

func (t *sessionTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, t.dialect.Rebind(query), args...)
}

func (t *sessionTx) Commit() error   { return t.tx.Commit() }
func (t *sessionTx) Rollback() error { return t.tx.Rollback() }
