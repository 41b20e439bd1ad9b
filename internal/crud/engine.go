package crud

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

// Operation names, used as log fields and metric labels.
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Engine runs the CRUD operations. It holds no connection state and is safe
// for concurrent use; sessions passed to it are not.
type Engine struct {
	log     zerolog.Logger
	metrics *Metrics
}

// New returns an engine. metrics may be nil.
func New(log zerolog.Logger, metrics *Metrics) *Engine {
	return &Engine{
		log:     log.With().Str("component", "crud").Logger(),
		metrics: metrics,
	}
}

// List returns up to limit rows of table starting at offset, in the store's
// natural row order. The slice is never nil.
func (e *Engine) List(ctx context.Context, sess types.Session, table string, offset, limit int) (rows []types.Entity, err error) {
	defer e.track(table, OpList, "", time.Now(), &err)

	s, err := types.SchemaFor(table)
	if err != nil {
		return nil, err
	}
	if offset < 0 || limit < 0 {
		return nil, types.Validationf(table, "offset and limit must not be negative (offset=%d, limit=%d)", offset, limit)
	}
	if limit == 0 {
		return []types.Entity{}, nil
	}

	query := fmt.Sprintf("SELECT %s FROM %s LIMIT ? OFFSET ?", quoteAll(s.ColumnNames()), quote(table))
	return scanAll(ctx, sess, sess, table, query, limit, offset)
}

// Get returns the row of table whose primary key is id.
func (e *Engine) Get(ctx context.Context, sess types.Session, table, id string) (ent types.Entity, err error) {
	defer e.track(table, OpGet, id, time.Now(), &err)

	if _, err := types.SchemaFor(table); err != nil {
		return nil, err
	}
	return selectByKey(ctx, sess, sess, table, id)
}

// Create validates payload against the full schema of table and inserts one
// row. Surrogate keys are generated when absent.
func (e *Engine) Create(ctx context.Context, sess types.Session, table string, payload types.Payload) (ent types.Entity, err error) {
	defer e.track(table, OpCreate, "", time.Now(), &err)

	row, err := types.NewEntity(table)
	if err != nil {
		return nil, err
	}
	s := row.Schema()
	if err := decode(row, payload); err != nil {
		return nil, err
	}
	if err := assignKey(row); err != nil {
		return nil, err
	}
	if err := validate(row); err != nil {
		return nil, err
	}

	tx, err := sess.Begin(ctx)
	if err != nil {
		return nil, sess.Translate(table, err)
	}
	defer e.rollback(tx, table)

	if s.Base != "" {
		if err := checkSubtype(ctx, tx, s, row.Key()); err != nil {
			return nil, sess.Translate(table, err)
		}
	}

	cols := row.Columns()
	args := make([]any, len(cols))
	for i, c := range cols {
		args[i] = columnValue(c)
	}
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(table), quoteAll(s.ColumnNames()), placeholders(len(cols)))
	if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
		return nil, sess.Translate(table, err)
	}

	created, err := selectByKey(ctx, sess, tx, table, row.Key())
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, sess.Translate(table, err)
	}
	return created, nil
}

// Update applies patch to the row of table whose primary key is id with
// merge-patch semantics: only supplied fields change, and the merged entity
// must pass full validation before anything is written. An empty patch
// returns the current row without writing.
func (e *Engine) Update(ctx context.Context, sess types.Session, table, id string, patch types.Payload) (ent types.Entity, err error) {
	defer e.track(table, OpUpdate, id, time.Now(), &err)

	s, err := types.SchemaFor(table)
	if err != nil {
		return nil, err
	}
	id = canonicalKey(s, id)

	tx, err := sess.Begin(ctx)
	if err != nil {
		return nil, sess.Translate(table, err)
	}
	defer e.rollback(tx, table)

	current, err := selectByKey(ctx, sess, tx, table, id)
	if err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return current, nil
	}

	merged, _ := types.NewEntity(table)
	copyColumns(merged, current)
	if err := decode(merged, patch); err != nil {
		return nil, err
	}
	merged.SetKey(canonicalKey(s, merged.Key()))
	if merged.Key() != current.Key() {
		return nil, types.Validationf(table, "%s: primary key cannot be changed", s.Key)
	}
	if err := validate(merged); err != nil {
		return nil, err
	}

	var sets []string
	var args []any
	cols := merged.Columns()
	for i, f := range s.Fields {
		if _, ok := patch[f.Name]; !ok || f.Name == s.Key {
			continue
		}
		sets = append(sets, quote(f.Name)+" = ?")
		args = append(args, columnValue(cols[i]))
	}
	if len(sets) == 0 {
		return current, nil
	}
	args = append(args, id)

	update := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", quote(table), strings.Join(sets, ", "), quote(s.Key))
	res, err := tx.ExecContext(ctx, update, args...)
	if err != nil {
		return nil, sess.Translate(table, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, types.NotFound(table, id)
	}

	updated, err := selectByKey(ctx, sess, tx, table, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, sess.Translate(table, err)
	}
	return updated, nil
}

// Delete removes the row of table whose primary key is id. Dependent rows
// are never removed: a referenced row fails with a constraint violation.
func (e *Engine) Delete(ctx context.Context, sess types.Session, table, id string) (err error) {
	defer e.track(table, OpDelete, id, time.Now(), &err)

	s, err := types.SchemaFor(table)
	if err != nil {
		return err
	}
	id = canonicalKey(s, id)

	tx, err := sess.Begin(ctx)
	if err != nil {
		return sess.Translate(table, err)
	}
	defer e.rollback(tx, table)

	res, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = ?", quote(table), quote(s.Key)), id)
	if err != nil {
		return sess.Translate(table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return sess.Translate(table, err)
	}
	if n == 0 {
		return types.NotFound(table, id)
	}
	if err := tx.Commit(); err != nil {
		return sess.Translate(table, err)
	}
	return nil
}

// assignKey generates a surrogate key when none was supplied and brings a
// supplied UUID key into canonical form. Subtype keys are the base row's
// UUID and are canonicalized the same way.
func assignKey(row types.Entity) error {
	s := row.Schema()
	if !uuidKeyed(s) {
		return nil
	}
	if row.Key() == "" {
		if !s.GeneratedKey {
			return nil
		}
		id, err := uuid.NewV7()
		if err != nil {
			return types.Persistence(s.Table, fmt.Sprintf("generating id: %v", err))
		}
		row.SetKey(id.String())
		return nil
	}
	id, err := uuid.Parse(row.Key())
	if err != nil {
		return types.Validationf(s.Table, "%s: must be a UUID", s.Key)
	}
	row.SetKey(id.String())
	return nil
}

func uuidKeyed(s *types.Schema) bool { return s.GeneratedKey || s.Base != "" }

// canonicalKey returns id in the lower-case form Create stores. Ids that are
// not UUIDs come back unchanged, so lookups report NotFound.
func canonicalKey(s *types.Schema, id string) string {
	if !uuidKeyed(s) {
		return id
	}
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return id
}

func selectByKey(ctx context.Context, sess types.Session, q types.Querier, table, id string) (types.Entity, error) {
	row, err := types.NewEntity(table)
	if err != nil {
		return nil, err
	}
	s := row.Schema()
	id = canonicalKey(s, id)
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", quoteAll(s.ColumnNames()), quote(table), quote(s.Key))
	if err := q.QueryRowContext(ctx, query, id).Scan(row.Columns()...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.NotFound(table, id)
		}
		return nil, sess.Translate(table, err)
	}
	return row, nil
}

func scanAll(ctx context.Context, sess types.Session, q types.Querier, table, query string, args ...any) ([]types.Entity, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, sess.Translate(table, err)
	}
	defer rows.Close()

	out := []types.Entity{}
	for rows.Next() {
		row, err := types.NewEntity(table)
		if err != nil {
			return nil, err
		}
		if err := rows.Scan(row.Columns()...); err != nil {
			return nil, sess.Translate(table, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, sess.Translate(table, err)
	}
	return out, nil
}

// rollback is deferred after Begin; after a successful commit it is a no-op.
func (e *Engine) rollback(tx types.Tx, table string) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		e.log.Warn().Err(err).Str("table", table).Msg("rollback failed")
	}
}

func (e *Engine) track(table, op, id string, start time.Time, errp *error) {
	elapsed := time.Since(start)
	err := *errp
	e.metrics.observe(table, op, elapsed, err)

	ev := e.log.Debug()
	if err != nil {
		ev = ev.Str("outcome", types.KindOf(err).String()).Err(err)
	} else {
		ev = ev.Str("outcome", "ok")
	}
	if id != "" {
		ev = ev.Str("id", id)
	}
	ev.Str("table", table).Str("op", op).Dur("elapsed", elapsed).Msg("crud")
}
