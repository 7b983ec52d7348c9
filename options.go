package geoenrich

// WithColumn names the IP column explicitly. An explicit name must be present
// in the header exactly; auto-detection is not consulted and no cross-check
// is performed.
func WithColumn(name string) Option {
	return func(c *config) error {
		c.column = name
		return nil
	}
}

// WithOutputColumn sets the name of the inserted column. Default "geoip".
func WithOutputColumn(name string) Option {
	return func(c *config) error {
		c.outputColumn = name
		return nil
	}
}

// WithChunkSize bounds peak memory to windows of n rows. Zero (the default)
// loads and processes the whole input at once. Output bytes are identical
// across chunk sizes.
func WithChunkSize(n int) Option {
	return func(c *config) error {
		c.chunkSize = n
		return nil
	}
}

// WithDelimiter sets the field delimiter for input and output. Default ','.
func WithDelimiter(delimiter rune) Option {
	return func(c *config) error {
		c.delimiter = delimiter
		return nil
	}
}

// WithQuote sets the quote character. Only the RFC 4180 double quote is
// supported; any other rune is rejected at construction.
func WithQuote(quote rune) Option {
	return func(c *config) error {
		c.quote = quote
		return nil
	}
}

// WithEncoding sets the text encoding of input and output by IANA name, for
// example "windows-1252" or "ISO-8859-1". Default UTF-8.
func WithEncoding(name string) Option {
	return func(c *config) error {
		c.encodingName = name
		return nil
	}
}

// WithNAFilter enables permissive NA handling: cells like "NA", "N/A", "NaN",
// and "null" render as empty derived cells even when invalid-IP marking is
// enabled.
func WithNAFilter(enabled bool) Option {
	return func(c *config) error {
		c.naFilter = enabled
		return nil
	}
}

// MarkInvalid enables a literal marker cell for non-public addresses instead
// of an empty string.
func MarkInvalid(enabled bool) Option {
	return func(c *config) error {
		c.markInvalid = enabled
		return nil
	}
}

// WithInvalidMarker sets the marker text used when invalid-IP marking is
// enabled. Default "invalid_ip".
func WithInvalidMarker(marker string) Option {
	return func(c *config) error {
		c.invalidMarker = marker
		return nil
	}
}

// WithLogger sets the logger implementation used for warning events.
//
// *slog.Logger satisfies Logger directly.
func WithLogger(logger Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics implementation that records row and lookup
// outcomes.
func WithMetrics(metrics Metrics) Option {
	return func(c *config) error {
		c.metrics = metrics
		return nil
	}
}
