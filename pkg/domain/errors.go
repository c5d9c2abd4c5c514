package domain

import (
	"errors"
	"fmt"
)

// ErrMalformedConditional is returned when a "[if" or "[do" tag is opened but
// never closed on the same line.
var ErrMalformedConditional = errors.New("malformed conditional")

// ParseError reports a script that could not be parsed.
// It wraps ErrMalformedConditional for errors.Is() compatibility.
type ParseError struct {
	Message string // Human readable reason, e.g. "Malformed conditional"
	Line    int    // 1-based physical line number
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s on line %d", e.Message, e.Line)
}

func (e *ParseError) Unwrap() error { return ErrMalformedConditional }

// LineNumber returns the failing line if err is (or wraps) a ParseError, or 0.
func LineNumber(err error) int {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr.Line
	}
	return 0
}
