package crud

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

func TestExportImportRoundTrip(t *testing.T) {
	src := newFixture(t)
	src.create(types.TablePatient, map[string]any{"nhc": "NHC-1", "birth_date": "1970-01-01"})
	src.create(types.TablePatient, map[string]any{"nhc": "NHC-2", "sex": "M"})
	src.create(types.TableTumor, map[string]any{"biobank_code": "TUM-001", "patient_nhc": "NHC-1"})
	bm := src.create(types.TableBiomodel, map[string]any{"tumor_biobank_code": "TUM-001", "viability": 87.5})

	dir := t.TempDir()
	for _, table := range []string{types.TablePatient, types.TableTumor, types.TableBiomodel} {
		n, err := src.engine.Export(src.ctx, src.sess, table, filepath.Join(dir, table+".jsonl"))
		require.NoError(t, err)
		assert.Equal(t, src.count(table), n)
	}

	dst := newFixture(t)
	for _, table := range []string{types.TablePatient, types.TableTumor, types.TableBiomodel} {
		n, err := dst.engine.Import(dst.ctx, dst.sess, table, filepath.Join(dir, table+".jsonl"))
		require.NoError(t, err)
		assert.Equal(t, src.count(table), n)
	}

	got, err := dst.engine.Get(dst.ctx, dst.sess, types.TableBiomodel, bm.Key())
	require.NoError(t, err)
	assert.Equal(t, bm, got, "surrogate keys survive the round trip")
}

func TestImportSkipsMalformedLines(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "patient.jsonl")
	content := `{"nhc":"NHC-1"}

not json at all
{"nhc":"NHC-2","sex":"F"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	n, err := f.engine.Import(f.ctx, f.sess, types.TablePatient, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestImportStopsAtFirstFailure(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "patient.jsonl")
	content := `{"nhc":"NHC-1"}
{"sex":"F"}
{"nhc":"NHC-3"}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	n, err := f.engine.Import(f.ctx, f.sess, types.TablePatient, path)
	assert.ErrorIs(t, err, types.ErrValidation)
	assert.Contains(t, err.Error(), "record 2")
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, f.count(types.TablePatient))
}

func TestExportReplacesFile(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "patient.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("stale\nstale\nstale\n"), 0o644))

	f.create(types.TablePatient, map[string]any{"nhc": "NHC-1"})
	n, err := f.engine.Export(f.ctx, f.sess, types.TablePatient, path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nhc":"NHC-1","sex":null,"birth_date":null}`, string(data[:len(data)-1]))
}

func TestImportMissingFile(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.Import(f.ctx, f.sess, types.TablePatient, filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.Error(t, err)
}
