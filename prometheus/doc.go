// Package prometheus provides a Prometheus adapter for
// github.com/AttenSteph/geoenrich.
//
// The package exposes a geoenrich.Metrics implementation backed by Prometheus
// counters, registered on either the default registerer or a caller-provided
// registerer.
package prometheus
