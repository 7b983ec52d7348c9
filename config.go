package geoenrich

import (
	"strings"

	"golang.org/x/text/encoding"
)

const (
	// DefaultOutputColumn is the name of the inserted column when none is
	// configured.
	DefaultOutputColumn = "geoip"

	// DefaultInvalidMarker is the cell value written for non-public addresses
	// when invalid-IP marking is enabled and no marker is configured.
	DefaultInvalidMarker = "invalid_ip"

	// DefaultDelimiter is the field delimiter when none is configured.
	DefaultDelimiter = ','

	// QuoteChar is the only supported quote character. CSV quoting follows
	// RFC 4180, where the quote is fixed to the double quote.
	QuoteChar = '"'
)

// naCellValues are cell literals treated as empty when permissive NA handling
// is enabled. Comparison is case-insensitive.
var naCellValues = []string{"na", "n/a", "nan", "null"}

// Option configures an Enricher.
//
// Construct options using package-provided option builder functions.
type Option func(*config) error

// config holds enricher configuration state.
//
// It is mutated by Option functions during construction.
type config struct {
	column        string
	outputColumn  string
	chunkSize     int
	delimiter     rune
	quote         rune
	encodingName  string
	encoding      encoding.Encoding
	naFilter      bool
	markInvalid   bool
	invalidMarker string

	logger  Logger
	metrics Metrics
}

func defaultConfig() *config {
	return &config{
		outputColumn:  DefaultOutputColumn,
		delimiter:     DefaultDelimiter,
		quote:         QuoteChar,
		invalidMarker: DefaultInvalidMarker,
		logger:        noopLogger{},
		metrics:       noopMetrics{},
	}
}

func configFromOptions(opts ...Option) (*config, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isNACell reports whether a raw cell should be treated as an intentionally
// empty value under permissive NA handling.
func isNACell(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return true
	}
	for _, na := range naCellValues {
		if strings.EqualFold(trimmed, na) {
			return true
		}
	}
	return false
}
