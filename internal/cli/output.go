package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/parley/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Encode writes v to w in the given format.
func Encode(w io.Writer, v any, format string) error {
	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}

// ErrorMessage renders err for the terminal. Parse errors read
// "line N: <reason>".
func ErrorMessage(err error) string {
	var perr *domain.ParseError
	if errors.As(err, &perr) {
		return fmt.Sprintf("line %d: %s", perr.Line, perr.Message)
	}
	return err.Error()
}
