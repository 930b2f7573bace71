package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// Print writes v to w in the given format. Text uses v's String method when
// it has one and falls back to YAML.
func Print(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	case FormatText, "":
		if s, ok := v.(fmt.Stringer); ok {
			_, err := fmt.Fprintln(w, s.String())
			return err
		}
		return Print(w, FormatYAML, v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// DefaultFormat is text on a terminal and JSON when piped.
func DefaultFormat(f *os.File) string {
	if term.IsTerminal(int(f.Fd())) {
		return FormatText
	}
	return FormatJSON
}
