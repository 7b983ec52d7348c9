package geoenrich

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/netip"

	"golang.org/x/text/transform"
)

// Stats summarizes one Process run.
type Stats struct {
	// Rows is the number of data rows processed (the header excluded).
	Rows int
	// Public is the number of rows whose IP cell classified as public.
	Public int
	// Found is the number of public rows with at least one database hit.
	Found int
}

// Enricher applies the enrichment pipeline to a tabular stream: classify the
// IP cell, look up public addresses, format the result, and insert it as one
// new column immediately to the right of the IP column.
//
// Enricher instances are safe for concurrent reuse when their Resolver is.
type Enricher struct {
	config   *config
	resolver Resolver
}

// New creates an Enricher from a Resolver and zero or more Option builders.
func New(resolver Resolver, opts ...Option) (*Enricher, error) {
	if isNilInterface(resolver) {
		return nil, fmt.Errorf("invalid configuration: resolver cannot be nil")
	}

	cfg, err := configFromOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Enricher{config: cfg, resolver: resolver}, nil
}

// Process reads delimited rows from r, enriches each, and writes the result
// to w. Row order and row count are preserved; exactly one column is added to
// the header and to every row.
//
// Configuration errors (an unresolvable IP column, an empty input) surface
// before anything is written to w. Per-row anomalies never do: malformed
// cells, non-public addresses, and lookup misses render as empty or marker
// cells and processing continues.
//
// With a chunk size configured, rows are read and written in bounded windows
// and each completed window is flushed, and synced when w supports it, before
// the next begins. A terminated run therefore leaves a valid row-prefix of
// the output. Output bytes are identical across chunk sizes.
func (e *Enricher) Process(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	var stats Stats

	// The sync target is the caller's writer, not the encoding wrapper.
	sync := syncTarget(w)

	var closeEncoder func() error
	if enc := e.config.encoding; enc != nil {
		r = transform.NewReader(r, enc.NewDecoder())
		tw := transform.NewWriter(w, enc.NewEncoder())
		w = tw
		closeEncoder = tw.Close
	}

	in := csv.NewReader(r)
	in.Comma = e.config.delimiter
	in.FieldsPerRecord = -1
	in.LazyQuotes = true

	header, err := in.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return stats, fmt.Errorf("input has no header row")
		}
		return stats, fmt.Errorf("read header: %w", err)
	}

	ipIndex, insertIndex, err := resolveColumn(header, e.config.column)
	if err != nil {
		return stats, err
	}

	out := csv.NewWriter(w)
	out.Comma = e.config.delimiter

	if err := out.Write(insertCell(header, insertIndex, e.config.outputColumn)); err != nil {
		return stats, fmt.Errorf("write header: %w", err)
	}

	if e.config.chunkSize <= 0 {
		rows, err := in.ReadAll()
		if err != nil {
			return stats, fmt.Errorf("read input: %w", err)
		}
		if err := e.writeRows(ctx, out, rows, ipIndex, insertIndex, &stats); err != nil {
			return stats, err
		}
	} else {
		for {
			if err := ctx.Err(); err != nil {
				return stats, err
			}

			rows, readErr := readChunk(in, e.config.chunkSize)
			if len(rows) > 0 {
				if err := e.writeRows(ctx, out, rows, ipIndex, insertIndex, &stats); err != nil {
					return stats, err
				}
				out.Flush()
				if err := out.Error(); err != nil {
					return stats, fmt.Errorf("write output: %w", err)
				}
				if sync != nil {
					if err := sync(); err != nil {
						return stats, fmt.Errorf("sync output: %w", err)
					}
				}
			}

			if readErr != nil {
				if errors.Is(readErr, io.EOF) {
					break
				}
				return stats, fmt.Errorf("read input: %w", readErr)
			}
		}
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return stats, fmt.Errorf("write output: %w", err)
	}
	if closeEncoder != nil {
		if err := closeEncoder(); err != nil {
			return stats, fmt.Errorf("finish output encoding: %w", err)
		}
	}

	return stats, nil
}

func (e *Enricher) writeRows(ctx context.Context, out *csv.Writer, rows [][]string, ipIndex, insertIndex int, stats *Stats) error {
	for _, row := range rows {
		cell := e.deriveCell(ctx, row, ipIndex, stats)
		if err := out.Write(insertCell(row, insertIndex, cell)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
		stats.Rows++
	}
	return nil
}

// deriveCell computes the value of the inserted column for one row.
func (e *Enricher) deriveCell(ctx context.Context, row []string, ipIndex int, stats *Stats) string {
	var raw string
	if ipIndex < len(row) {
		raw = row[ipIndex]
	} else {
		e.config.logger.WarnContext(ctx, "row has no IP cell",
			"row_number", stats.Rows+1, "cells", len(row))
	}

	if e.config.naFilter && isNACell(raw) {
		e.config.metrics.RecordRow(ClassMalformed.String())
		return ""
	}

	addr := parseCell(raw)
	class := classifyAddr(addr)
	e.config.metrics.RecordRow(class.String())

	if !class.Public() {
		if e.config.markInvalid {
			return e.config.invalidMarker
		}
		return ""
	}

	stats.Public++
	addr = normalizeAddr(addr)

	geo := e.lookupCity(ctx, addr)
	asn := e.lookupASN(ctx, addr)
	if geo != nil || asn != nil {
		stats.Found++
	}

	return FormatCell(geo, asn)
}

func (e *Enricher) lookupCity(ctx context.Context, addr netip.Addr) *GeoRecord {
	geo, err := e.resolver.City(addr)
	switch {
	case err == nil:
		e.config.metrics.RecordLookup(lookupDatabaseCity, lookupOutcomeHit)
		return geo
	case errors.Is(err, ErrNotFound):
		e.config.metrics.RecordLookup(lookupDatabaseCity, lookupOutcomeMiss)
	default:
		// Transient lookup failures degrade to a miss; only database-open
		// failures at startup are fatal.
		e.config.metrics.RecordLookup(lookupDatabaseCity, lookupOutcomeError)
		e.config.logger.WarnContext(ctx, "city lookup failed", "addr", addr.String(), "error", err)
	}
	return nil
}

func (e *Enricher) lookupASN(ctx context.Context, addr netip.Addr) *ASNRecord {
	asn, err := e.resolver.ASN(addr)
	switch {
	case err == nil:
		e.config.metrics.RecordLookup(lookupDatabaseASN, lookupOutcomeHit)
		return asn
	case errors.Is(err, ErrNoASNDatabase):
		// Not configured; both ASN fields render empty.
	case errors.Is(err, ErrNotFound):
		e.config.metrics.RecordLookup(lookupDatabaseASN, lookupOutcomeMiss)
	default:
		e.config.metrics.RecordLookup(lookupDatabaseASN, lookupOutcomeError)
		e.config.logger.WarnContext(ctx, "asn lookup failed", "addr", addr.String(), "error", err)
	}
	return nil
}

// readChunk reads up to size rows, returning the rows it got together with
// any read error. io.EOF with a partial chunk is a normal final window.
func readChunk(in *csv.Reader, size int) ([][]string, error) {
	rows := make([][]string, 0, size)
	for len(rows) < size {
		row, err := in.Read()
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// insertCell returns row with value inserted at index. The index is clamped
// for rows shorter than the header, so ragged input never panics.
func insertCell(row []string, index int, value string) []string {
	if index > len(row) {
		index = len(row)
	}
	out := make([]string, 0, len(row)+1)
	out = append(out, row[:index]...)
	out = append(out, value)
	return append(out, row[index:]...)
}

func syncTarget(w io.Writer) func() error {
	if s, ok := w.(interface{ Sync() error }); ok {
		return s.Sync
	}
	return nil
}
