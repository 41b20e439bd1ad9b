package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

func TestTranslatePostgresErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want types.ErrorKind
	}{
		{"foreign key violation", "23503", types.KindConstraint},
		{"unique violation", "23505", types.KindConstraint},
		{"not null violation", "23502", types.KindConstraint},
		{"serialization failure", "40001", types.KindConstraint},
		{"deadlock", "40P01", types.KindConstraint},
		{"string too long", "22001", types.KindValidation},
		{"invalid datetime", "22007", types.KindValidation},
		{"connection failure", "08006", types.KindPersistence},
		{"undefined table", "42P01", types.KindPersistence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: tt.code, Message: "boom", Detail: "Key (id) is referenced"}
			err := TranslateError(types.TableTumor, fmt.Errorf("exec: %w", pgErr))

			var mapped *types.Error
			require.ErrorAs(t, err, &mapped)
			assert.Equal(t, tt.want, mapped.Kind)
			assert.Equal(t, types.TableTumor, mapped.Table)
			assert.Equal(t, "boom: Key (id) is referenced", mapped.Detail)

			// The driver value must not be reachable from the mapped error.
			var leaked *pgconn.PgError
			assert.False(t, errors.As(err, &leaked))
		})
	}
}

func TestTranslateGenericErrors(t *testing.T) {
	assert.NoError(t, TranslateError("x", nil))

	err := TranslateError(types.TablePatient, sql.ErrNoRows)
	assert.ErrorIs(t, err, types.ErrNotFound)

	err = TranslateError(types.TablePatient, context.Canceled)
	assert.ErrorIs(t, err, types.ErrPersistence)

	err = TranslateError(types.TablePatient, errors.New("driver: bad connection"))
	assert.ErrorIs(t, err, types.ErrPersistence)

	already := types.Validationf(types.TableMouse, "bad")
	assert.Same(t, already, TranslateError(types.TablePatient, fmt.Errorf("wrapped: %w", already)))
}

func TestTranslateSQLiteErrors(t *testing.T) {
	b := attachTemp(t)
	ctx := context.Background()

	err := b.WithSession(ctx, func(s *Session) error {
		_, err := s.ExecContext(ctx, `INSERT INTO "tumor" ("biobank_code", "patient_nhc") VALUES (?, ?)`, "T-1", "missing")
		return s.Translate(types.TableTumor, err)
	})
	assert.ErrorIs(t, err, types.ErrConstraint, "foreign key failure")

	err = b.WithSession(ctx, func(s *Session) error {
		if _, err := s.ExecContext(ctx, `INSERT INTO "patient" ("nhc") VALUES (?)`, "P-1"); err != nil {
			return err
		}
		_, err := s.ExecContext(ctx, `INSERT INTO "patient" ("nhc") VALUES (?)`, "P-1")
		return s.Translate(types.TablePatient, err)
	})
	assert.ErrorIs(t, err, types.ErrConstraint, "primary key failure")

	err = b.WithSession(ctx, func(s *Session) error {
		_, err := s.ExecContext(ctx, `SELECT * FROM "no_such_table"`)
		return s.Translate(types.TablePatient, err)
	})
	assert.ErrorIs(t, err, types.ErrPersistence)
}
