// Package names parses "first last" input records and derives the base
// username conventions from them.
package names

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRecord is the sentinel wrapped by every InvalidRecordError.
var ErrInvalidRecord = errors.New("invalid record")

// InvalidRecordError reports an input line that cannot be turned into a Record.
type InvalidRecordError struct {
	Line   string
	Reason string
}

func (e *InvalidRecordError) Error() string {
	if e == nil {
		return ""
	}
	if e.Line == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidRecord.Error(), e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", ErrInvalidRecord.Error(), e.Line, e.Reason)
}

func (e *InvalidRecordError) Unwrap() error { return ErrInvalidRecord }

// Record is one parsed (first name, last name) pair.
type Record struct {
	First string
	Last  string
}

// Lower returns the record with both names fully lowercased.
func (r Record) Lower() Record {
	return Record{First: lower(r.First), Last: lower(r.Last)}
}

// IsBlank reports whether a raw input line carries no record at all.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// ParseRecord turns one input line into a Record. The line is trimmed and split
// on a single space; exactly two non-empty tokens are required.
func ParseRecord(line string) (Record, error) {
	trimmed := strings.TrimSpace(line)
	tokens := strings.Split(trimmed, " ")
	if len(tokens) != 2 {
		return Record{}, &InvalidRecordError{
			Line:   trimmed,
			Reason: fmt.Sprintf("expected 2 space-separated names, got %d", len(tokens)),
		}
	}
	rec := Record{First: tokens[0], Last: tokens[1]}
	if rec.First == "" || rec.Last == "" {
		return Record{}, &InvalidRecordError{Line: trimmed, Reason: "empty name"}
	}
	return rec, nil
}
