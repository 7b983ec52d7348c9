package geoenrich

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

func (c *config) validate() error {
	if c.chunkSize < 0 {
		return fmt.Errorf("chunk size must be >= 0, got %d (0 processes the whole file at once)", c.chunkSize)
	}
	if c.outputColumn == "" {
		return fmt.Errorf("output column name cannot be empty")
	}
	if c.delimiter == 0 || c.delimiter == '\r' || c.delimiter == '\n' || c.delimiter == utf8.RuneError {
		return fmt.Errorf("invalid delimiter %q", c.delimiter)
	}
	if c.quote != QuoteChar {
		return fmt.Errorf("unsupported quote character %q: only %q is supported", c.quote, QuoteChar)
	}
	if c.delimiter == c.quote {
		return fmt.Errorf("delimiter %q conflicts with the quote character", c.delimiter)
	}
	if c.markInvalid && c.invalidMarker == "" {
		return fmt.Errorf("invalid-IP marking is enabled but the marker is empty")
	}

	if err := c.resolveEncoding(); err != nil {
		return err
	}

	if isNilLogger(c.logger) {
		return fmt.Errorf("logger cannot be nil")
	}
	if isNilMetrics(c.metrics) {
		return fmt.Errorf("metrics cannot be nil")
	}
	return nil
}

// resolveEncoding maps the configured IANA encoding name to an
// encoding.Encoding. UTF-8 input needs no transformation and resolves to nil.
func (c *config) resolveEncoding() error {
	name := strings.TrimSpace(c.encodingName)
	switch strings.ToLower(name) {
	case "", "utf8", "utf-8":
		c.encoding = nil
		return nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return fmt.Errorf("unknown encoding %q", name)
	}
	if enc == unicode.UTF8 {
		c.encoding = nil
		return nil
	}

	c.encoding = enc
	return nil
}

func isNilLogger(logger Logger) bool {
	return isNilInterface(logger)
}

func isNilMetrics(metrics Metrics) bool {
	return isNilInterface(metrics)
}

func isNilInterface(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
