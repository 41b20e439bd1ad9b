package crud

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

// Metrics records per-table operation counts and latencies. A nil *Metrics
// records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "biobank",
			Subsystem: "crud",
			Name:      "operations_total",
			Help:      "CRUD operations by table, operation and outcome.",
		}, []string{"table", "op", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "biobank",
			Subsystem: "crud",
			Name:      "operation_duration_seconds",
			Help:      "CRUD operation latency by table and operation.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"table", "op"}),
	}
	if err := reg.Register(m.operations); err != nil {
		existing, err := reuse(err)
		if err != nil {
			return nil, err
		}
		m.operations = existing.(*prometheus.CounterVec)
	}
	if err := reg.Register(m.duration); err != nil {
		existing, err := reuse(err)
		if err != nil {
			return nil, err
		}
		m.duration = existing.(*prometheus.HistogramVec)
	}
	return m, nil
}

func (m *Metrics) observe(table, op string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = types.KindOf(err).String()
	}
	table = tableLabel(table)
	m.operations.WithLabelValues(table, op, outcome).Inc()
	m.duration.WithLabelValues(table, op).Observe(elapsed.Seconds())
}

// unknownTable is the label for every name outside the registry, so callers
// cannot mint new series by inventing table names.
const unknownTable = "unknown"

func tableLabel(table string) string {
	if _, err := types.SchemaFor(table); err != nil {
		return unknownTable
	}
	return table
}

// reuse returns the collector already registered under the same name, so
// several engines in one process share their series.
func reuse(err error) (prometheus.Collector, error) {
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		return already.ExistingCollector, nil
	}
	return nil, err
}
