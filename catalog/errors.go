package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDataFormat matches every *DataFormatError with errors.Is.
var ErrDataFormat = errors.New("data format error")

// DataFormatError reports why a catalog source could not be loaded. Line is
// the 1-based line of the CSV file (the header is line 1) or 0 when the
// source has no line numbers.
type DataFormatError struct {
	Source string
	Line   int
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *DataFormatError) Error() string {
	var b strings.Builder
	b.WriteString(e.Source)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": field %q", e.Field)
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " value %q", e.Value)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	if e.Err != nil && e.Reason != e.Err.Error() {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}

func (e *DataFormatError) Is(target error) bool {
	return target == ErrDataFormat
}
