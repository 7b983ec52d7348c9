package geoenrich

// Metrics records per-row classification and database lookup outcomes emitted
// by the Enricher.
//
// Implementations should be safe for concurrent use so a single instance can
// be shared across enrichers.
type Metrics interface {
	// RecordRow is called once per data row with the classification of its
	// IP cell.
	RecordRow(classification string)
	// RecordLookup is called for every database query on a public address,
	// with the database kind ("city" or "asn") and the outcome ("hit",
	// "miss", or "error").
	RecordLookup(database, outcome string)
}

// noopMetrics is the default Metrics implementation when metrics are not
// explicitly configured.
type noopMetrics struct{}

func (noopMetrics) RecordRow(string) {}

func (noopMetrics) RecordLookup(string, string) {}
