package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

// Backend errors.
var (
	ErrAlreadyAttached = errors.New("backend already attached")
	ErrDetached        = errors.New("backend is detached")
	ErrUnsupportedURL  = errors.New("unsupported database url")
)

// TranslateError maps a store failure into the error taxonomy. Driver error
// values never escape: only their message survives, as Detail.
func TranslateError(table string, err error) error {
	if err == nil {
		return nil
	}

	var mapped *types.Error
	if errors.As(err, &mapped) {
		return mapped
	}
	if errors.Is(err, sql.ErrNoRows) {
		return types.NotFound(table, "")
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return types.Persistence(table, err.Error())
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return &types.Error{Kind: sqliteKind(sqliteErr.Code()), Table: table, Detail: sqliteErr.Error()}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		detail := pgErr.Message
		if pgErr.Detail != "" {
			detail += ": " + pgErr.Detail
		}
		return &types.Error{Kind: postgresKind(pgErr.Code), Table: table, Detail: detail}
	}

	return types.Persistence(table, err.Error())
}

// sqliteKind classifies by primary result code; extended codes such as
// SQLITE_CONSTRAINT_FOREIGNKEY carry the primary code in their low byte.
func sqliteKind(code int) types.ErrorKind {
	switch code & 0xff {
	case sqlite3.SQLITE_CONSTRAINT:
		return types.KindConstraint
	case sqlite3.SQLITE_MISMATCH, sqlite3.SQLITE_TOOBIG, sqlite3.SQLITE_RANGE:
		return types.KindValidation
	default:
		return types.KindPersistence
	}
}

// postgresKind classifies by SQLSTATE class.
func postgresKind(state string) types.ErrorKind {
	switch {
	case strings.HasPrefix(state, "23"): // integrity constraint violation
		return types.KindConstraint
	case strings.HasPrefix(state, "40"): // serialization failure, deadlock
		return types.KindConstraint
	case strings.HasPrefix(state, "22"): // data exception
		return types.KindValidation
	default:
		return types.KindPersistence
	}
}
