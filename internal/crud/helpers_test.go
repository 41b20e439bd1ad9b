package crud

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/biobank/internal/storage"
	"github.com/mesh-intelligence/biobank/pkg/types"
)

// fixture holds an engine and an open session on a fresh sqlite database.
type fixture struct {
	t      *testing.T
	ctx    context.Context
	engine *Engine
	sess   *storage.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, New(zerolog.Nop(), nil))
}

func newFixtureWith(t *testing.T, engine *Engine) *fixture {
	t.Helper()
	ctx := context.Background()
	backend := storage.NewBackend(zerolog.Nop())
	url := "sqlite:///" + filepath.Join(t.TempDir(), "biobank.db")
	require.NoError(t, backend.Attach(ctx, types.Config{DatabaseURL: url}))
	t.Cleanup(func() { _ = backend.Detach() })

	sess, err := backend.Acquire(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })

	return &fixture{t: t, ctx: ctx, engine: engine, sess: sess}
}

func payload(t *testing.T, values map[string]any) types.Payload {
	t.Helper()
	p, err := types.PayloadFrom(values)
	require.NoError(t, err)
	return p
}

func (f *fixture) create(table string, values map[string]any) types.Entity {
	f.t.Helper()
	e, err := f.engine.Create(f.ctx, f.sess, table, payload(f.t, values))
	require.NoError(f.t, err)
	return e
}

func (f *fixture) count(table string) int {
	f.t.Helper()
	var n int
	require.NoError(f.t, f.sess.QueryRowContext(f.ctx, `SELECT COUNT(*) FROM "`+table+`"`).Scan(&n))
	return n
}

// lineage creates a patient, tumor, biomodel, passage and trial and returns
// the trial.
func (f *fixture) lineage() *types.Trial {
	f.t.Helper()
	f.create(types.TablePatient, map[string]any{"nhc": "NHC-1", "sex": "F"})
	f.create(types.TableTumor, map[string]any{"biobank_code": "TUM-001", "patient_nhc": "NHC-1"})
	bm := f.create(types.TableBiomodel, map[string]any{"tumor_biobank_code": "TUM-001", "type": "PDX"})
	ps := f.create(types.TablePassage, map[string]any{"biomodel_id": bm.Key(), "number": 1})
	tr := f.create(types.TableTrial, map[string]any{"passage_id": ps.Key(), "description": "first"})
	return tr.(*types.Trial)
}

func strPtr(s string) *string { return &s }
