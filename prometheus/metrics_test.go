package prometheus

import (
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewWithRegisterer(t *testing.T) {
	registry := prom.NewRegistry()

	metrics, err := NewWithRegisterer(registry)
	if err != nil {
		t.Fatalf("NewWithRegisterer() error: %v", err)
	}

	metrics.RecordRow("public")
	metrics.RecordRow("public")
	metrics.RecordRow("private")
	metrics.RecordLookup("city", "hit")
	metrics.RecordLookup("asn", "miss")

	if got := testutil.ToFloat64(metrics.rowsTotal.WithLabelValues("public")); got != 2 {
		t.Errorf("rows_total{public} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(metrics.rowsTotal.WithLabelValues("private")); got != 1 {
		t.Errorf("rows_total{private} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.lookupsTotal.WithLabelValues("city", "hit")); got != 1 {
		t.Errorf("lookups_total{city,hit} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(metrics.lookupsTotal.WithLabelValues("asn", "miss")); got != 1 {
		t.Errorf("lookups_total{asn,miss} = %v, want 1", got)
	}
}

func TestNewWithRegisterer_ReusesExistingCollectors(t *testing.T) {
	registry := prom.NewRegistry()

	first, err := NewWithRegisterer(registry)
	if err != nil {
		t.Fatalf("first NewWithRegisterer() error: %v", err)
	}

	second, err := NewWithRegisterer(registry)
	if err != nil {
		t.Fatalf("second NewWithRegisterer() error: %v", err)
	}

	first.RecordRow("public")
	second.RecordRow("public")

	if got := testutil.ToFloat64(first.rowsTotal.WithLabelValues("public")); got != 2 {
		t.Errorf("shared rows_total{public} = %v, want 2", got)
	}
}

func TestNewWithRegisterer_NilUsesDefault(t *testing.T) {
	// Registering on the default registerer must not fail even when metrics
	// from a previous test run already exist.
	if _, err := NewWithRegisterer(nil); err != nil {
		t.Fatalf("NewWithRegisterer(nil) error: %v", err)
	}
	if _, err := New(); err != nil {
		t.Fatalf("New() error: %v", err)
	}
}
