package geoenrich

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrColumnNotFound reports that an explicitly named IP column is absent
	// from the header.
	ErrColumnNotFound = errors.New("IP column not found in header")

	// ErrNoColumnDetected reports that auto-detection found no IP-like column.
	ErrNoColumnDetected = errors.New("no IP column detected in header")

	// ErrAmbiguousColumn reports that auto-detection found more than one
	// IP-like column. Ambiguity is never silently resolved.
	ErrAmbiguousColumn = errors.New("multiple IP column candidates in header")
)

// commonIPColumnNames lists conventional IP column names matched exactly
// (case-insensitively) during auto-detection.
var commonIPColumnNames = []string{
	"ip",
	"ip_address",
	"client_ip",
	"source_ip",
	"src_ip",
	"dst_ip",
	"remote_ip",
}

// ColumnNotFoundError carries the header for the actionable message when an
// explicit column name is missing.
type ColumnNotFoundError struct {
	Name   string
	Header []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("%v: column %q not in header %v", ErrColumnNotFound, e.Name, e.Header)
}

func (e *ColumnNotFoundError) Unwrap() error {
	return ErrColumnNotFound
}

// AmbiguousColumnError lists every auto-detection candidate so the caller can
// pick one explicitly.
type AmbiguousColumnError struct {
	Candidates []string
}

func (e *AmbiguousColumnError) Error() string {
	return fmt.Sprintf("%v: candidates %v; name the column explicitly", ErrAmbiguousColumn, e.Candidates)
}

func (e *AmbiguousColumnError) Unwrap() error {
	return ErrAmbiguousColumn
}

// NoColumnDetectedError carries the header that yielded zero candidates.
type NoColumnDetectedError struct {
	Header []string
}

func (e *NoColumnDetectedError) Error() string {
	return fmt.Sprintf("%v %v; name the column explicitly", ErrNoColumnDetected, e.Header)
}

func (e *NoColumnDetectedError) Unwrap() error {
	return ErrNoColumnDetected
}

// resolveColumn finds the IP column index in header and the insertion index
// for the derived column, which is always the IP column index plus one.
//
// When explicit is non-empty its exact presence is required and
// auto-detection is not consulted. Otherwise every header name is tested
// against the common-name list and a token rule (any letter run equal to
// "ip", so "src_ip" and "ip1" match while "description" does not); exactly
// one candidate must remain.
func resolveColumn(header []string, explicit string) (ipIndex, insertIndex int, err error) {
	if explicit != "" {
		for i, name := range header {
			if name == explicit {
				return i, i + 1, nil
			}
		}
		return 0, 0, &ColumnNotFoundError{Name: explicit, Header: cloneStrings(header)}
	}

	var (
		indices    []int
		candidates []string
	)
	for i, name := range header {
		if isIPColumnName(name) {
			indices = append(indices, i)
			candidates = append(candidates, name)
		}
	}

	switch len(indices) {
	case 0:
		return 0, 0, &NoColumnDetectedError{Header: cloneStrings(header)}
	case 1:
		return indices[0], indices[0] + 1, nil
	default:
		return 0, 0, &AmbiguousColumnError{Candidates: candidates}
	}
}

func isIPColumnName(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))

	for _, common := range commonIPColumnNames {
		if lower == common {
			return true
		}
	}

	for _, token := range strings.FieldsFunc(lower, isNonLetter) {
		if token == "ip" {
			return true
		}
	}

	return false
}

func isNonLetter(r rune) bool {
	return !unicode.IsLetter(r)
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	cloned := make([]string, len(values))
	copy(cloned, values)
	return cloned
}
