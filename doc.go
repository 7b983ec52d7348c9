// Package geoenrich enriches delimiter-separated tabular data with geolocation
// and network-ownership metadata resolved from an IP address column.
//
// # Features
//
//   - Inserts exactly one derived column immediately to the right of the IP
//     column, preserving row order and the rest of the column order
//   - Classifies addresses before lookup: private, loopback, link-local, and
//     reserved ranges never touch the database
//   - City-level geolocation (required) plus optional ASN ownership data
//   - Pluggable database backends behind a small capability interface:
//     MaxMind GeoLite2/GeoIP2 (.mmdb) and IP2Location (.bin) supported
//   - Whole-file and chunked processing with byte-identical output, so chunk
//     size is purely a memory bound
//   - Optional observability with context-aware logging and pluggable metrics
//
// # Basic Usage
//
// Open a database and process a CSV stream:
//
//	resolver, err := geoenrich.OpenMaxMind("GeoLite2-City.mmdb", "GeoLite2-ASN.mmdb")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer resolver.Close()
//
//	enricher, err := geoenrich.New(resolver)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	stats, err := enricher.Process(ctx, in, out)
//
// The IP column is auto-detected from the header. When the header contains
// zero or multiple IP-like columns, Process fails before writing anything;
// pass the column name explicitly to disambiguate:
//
//	enricher, err := geoenrich.New(resolver,
//	    geoenrich.WithColumn("src_ip"),
//	    geoenrich.WithOutputColumn("geo"),
//	)
//
// # Large Inputs
//
// Bound peak memory with a chunk size; each completed chunk is flushed (and
// synced when the output supports it) before the next chunk begins:
//
//	enricher, err := geoenrich.New(resolver, geoenrich.WithChunkSize(10000))
//
// Chunked and whole-file runs produce byte-for-byte identical output.
//
// # Output Format
//
// The inserted cell is a compact pipe-delimited value:
//
//	country_iso|region|city|lat|lon|ASn|org
//
// for example US|California|Mountain View|37.386000|-122.083800|AS15169|Google LLC.
// Fields absent from database coverage render as empty substrings, keeping
// the delimiter positions stable. Non-public addresses render as an empty
// cell, or as a configurable marker when invalid-IP marking is enabled.
//
// # Observability
//
// Add logging and metrics for long-running batch jobs:
// (Prometheus adapter package: github.com/AttenSteph/geoenrich/prometheus)
//
//	metrics, _ := geoenrichprom.New()
//
//	enricher, err := geoenrich.New(resolver,
//	    geoenrich.WithLogger(slog.Default()),
//	    geoenrich.WithMetrics(metrics),
//	)
package geoenrich
