package prometheus

import (
	"errors"
	"fmt"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/AttenSteph/geoenrich"
)

// PrometheusMetrics is a Prometheus-backed implementation of
// geoenrich.Metrics.
type PrometheusMetrics struct {
	rowsTotal    *prom.CounterVec
	lookupsTotal *prom.CounterVec
}

var _ geoenrich.Metrics = (*PrometheusMetrics)(nil)

// New creates PrometheusMetrics and registers its collectors on
// prom.DefaultRegisterer.
func New() (*PrometheusMetrics, error) {
	return NewWithRegisterer(prom.DefaultRegisterer)
}

// NewWithRegisterer creates PrometheusMetrics and registers its collectors on
// the given registerer.
//
// If registerer is nil, prom.DefaultRegisterer is used. If the metrics are
// already registered, existing compatible collectors are reused.
func NewWithRegisterer(registerer prom.Registerer) (*PrometheusMetrics, error) {
	if registerer == nil {
		registerer = prom.DefaultRegisterer
	}

	rowsTotalCollector := prom.NewCounterVec(
		prom.CounterOpts{
			Name: "geoip_rows_total",
			Help: "Total number of rows processed, labeled by IP classification (public, private, loopback, link_local, reserved, malformed).",
		},
		[]string{"classification"},
	)
	lookupsTotalCollector := prom.NewCounterVec(
		prom.CounterOpts{
			Name: "geoip_lookups_total",
			Help: "Database lookups for public addresses, labeled by database (city, asn) and outcome (hit, miss, error).",
		},
		[]string{"database", "outcome"},
	)

	rowsTotal, err := registerCounterVec(registerer, rowsTotalCollector, "geoip_rows_total")
	if err != nil {
		return nil, err
	}

	lookupsTotal, err := registerCounterVec(registerer, lookupsTotalCollector, "geoip_lookups_total")
	if err != nil {
		return nil, err
	}

	return &PrometheusMetrics{
		rowsTotal:    rowsTotal,
		lookupsTotal: lookupsTotal,
	}, nil
}

func registerCounterVec(registerer prom.Registerer, collector *prom.CounterVec, metricName string) (*prom.CounterVec, error) {
	if err := registerer.Register(collector); err != nil {
		var alreadyRegistered prom.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			existing, ok := alreadyRegistered.ExistingCollector.(*prom.CounterVec)
			if ok {
				return existing, nil
			}
			return nil, fmt.Errorf("metric %q already registered with incompatible collector type %T", metricName, alreadyRegistered.ExistingCollector)
		}

		return nil, fmt.Errorf("register metric %q: %w", metricName, err)
	}

	return collector, nil
}

// RecordRow increments geoip_rows_total for the provided classification.
func (m *PrometheusMetrics) RecordRow(classification string) {
	m.rowsTotal.WithLabelValues(classification).Inc()
}

// RecordLookup increments geoip_lookups_total for the provided database and
// outcome labels.
func (m *PrometheusMetrics) RecordLookup(database, outcome string) {
	m.lookupsTotal.WithLabelValues(database, outcome).Inc()
}
