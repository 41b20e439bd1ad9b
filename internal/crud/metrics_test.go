package crud

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

func TestMetricsCountOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)
	f := newFixtureWith(t, New(zerolog.Nop(), m))

	f.create(types.TablePatient, map[string]any{"nhc": "NHC-1"})
	_, err = f.engine.Get(f.ctx, f.sess, types.TablePatient, "NHC-404")
	require.Error(t, err)
	_, err = f.engine.Create(f.ctx, f.sess, types.TablePatient, payload(t, map[string]any{"nhc": "NHC-1"}))
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues(types.TablePatient, OpCreate, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues(types.TablePatient, OpCreate, "constraint_violation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operations.WithLabelValues(types.TablePatient, OpGet, "not_found")))
}

func TestMetricsShareRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMetrics(reg)
	require.NoError(t, err)
	second, err := NewMetrics(reg)
	require.NoError(t, err)
	assert.Same(t, first.operations, second.operations)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.observe(types.TablePatient, OpList, 0, nil) })
}

func TestMetricsFoldUnknownTables(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)
	f := newFixtureWith(t, New(zerolog.Nop(), m))

	for i := 0; i < 50; i++ {
		_, err := f.engine.Get(f.ctx, f.sess, fmt.Sprintf("junk%d", i), "x")
		require.ErrorIs(t, err, types.ErrNotFound)
	}

	assert.Equal(t, 1, testutil.CollectAndCount(m.operations))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
	assert.Equal(t, 50.0, testutil.ToFloat64(m.operations.WithLabelValues(unknownTable, OpGet, "not_found")))
}
