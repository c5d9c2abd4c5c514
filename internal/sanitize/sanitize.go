// Package sanitize guards script text received from outside the process.
package sanitize

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxSize is the largest script accepted when no limit is configured (1MB).
const DefaultMaxSize = 1 << 20

var (
	ErrTooLarge    = errors.New("script exceeds maximum allowed size")
	ErrInvalidUTF8 = errors.New("script contains invalid UTF-8 sequences")
)

// Script enforces maxSize (DefaultMaxSize when <= 0), validates UTF-8 and
// strips control characters other than newline, tab and carriage return.
// Oversized input is rejected, never truncated.
func Script(text string, maxSize int) (string, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if len(text) > maxSize {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrTooLarge, len(text), maxSize)
	}
	if !utf8.ValidString(text) {
		return "", ErrInvalidUTF8
	}

	// Fast path: nothing to strip.
	if strings.IndexFunc(text, unsafeControl) < 0 {
		return text, nil
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if !unsafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func unsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}
