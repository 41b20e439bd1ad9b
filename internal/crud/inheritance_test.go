package crud

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

func TestSubtypeSharesBaseKey(t *testing.T) {
	f := newFixture(t)
	tr := f.lineage()

	f.create(types.TablePDXTrial, map[string]any{
		"id":                    tr.ID,
		"ffpe":                  true,
		"latency_weeks":         6,
		"scanner_magnification": "20x",
	})

	sub, err := f.engine.Get(f.ctx, f.sess, types.TablePDXTrial, tr.ID)
	require.NoError(t, err)
	pdx := sub.(*types.PDXTrial)
	require.NotNil(t, pdx.FFPE)
	assert.True(t, *pdx.FFPE)
	require.NotNil(t, pdx.LatencyWeeks)
	assert.Equal(t, int64(6), *pdx.LatencyWeeks)

	base, err := f.engine.Get(f.ctx, f.sess, types.TableTrial, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, tr, base, "the base row is independent of its subtype")
}

func TestSubtypeRequiresBase(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.Create(f.ctx, f.sess, types.TableLCTrial, payload(t, map[string]any{"id": uuid.NewString()}))
	assert.ErrorIs(t, err, types.ErrConstraint)
	assert.Equal(t, 0, f.count(types.TableLCTrial))
}

func TestSubtypesAreExclusive(t *testing.T) {
	f := newFixture(t)
	tr := f.lineage()
	f.create(types.TablePDOTrial, map[string]any{"id": tr.ID, "organoid_count": 12})

	for _, table := range []string{types.TablePDXTrial, types.TableLCTrial} {
		_, err := f.engine.Create(f.ctx, f.sess, table, payload(t, map[string]any{"id": tr.ID}))
		assert.ErrorIs(t, err, types.ErrConstraint, table)
		assert.Equal(t, 0, f.count(table))
	}

	_, err := f.engine.Create(f.ctx, f.sess, types.TablePDOTrial, payload(t, map[string]any{"id": tr.ID}))
	assert.ErrorIs(t, err, types.ErrConstraint, "same subtype twice")
}

func TestBaseDeleteBlockedBySubtype(t *testing.T) {
	f := newFixture(t)
	tr := f.lineage()
	f.create(types.TablePDXTrial, map[string]any{"id": tr.ID})

	assert.ErrorIs(t, f.engine.Delete(f.ctx, f.sess, types.TableTrial, tr.ID), types.ErrConstraint)

	require.NoError(t, f.engine.Delete(f.ctx, f.sess, types.TablePDXTrial, tr.ID))
	require.NoError(t, f.engine.Delete(f.ctx, f.sess, types.TableTrial, tr.ID))
}

func TestUUIDKeysMatchAnyCase(t *testing.T) {
	f := newFixture(t)
	tr := f.lineage()
	upper := strings.ToUpper(tr.ID)

	got, err := f.engine.Get(f.ctx, f.sess, types.TableTrial, upper)
	require.NoError(t, err)
	assert.Equal(t, tr.ID, got.Key())

	updated, err := f.engine.Update(f.ctx, f.sess, types.TableTrial, upper, payload(t, map[string]any{
		"id":          upper,
		"description": "second",
	}))
	require.NoError(t, err)
	assert.Equal(t, strPtr("second"), updated.(*types.Trial).Description)

	sub := f.create(types.TablePDXTrial, map[string]any{"id": upper})
	assert.Equal(t, tr.ID, sub.Key(), "subtype keys are stored in canonical form")

	require.NoError(t, f.engine.Delete(f.ctx, f.sess, types.TablePDXTrial, upper))
	assert.Equal(t, 0, f.count(types.TablePDXTrial))
}
