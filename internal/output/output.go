// Package output renders extraction results.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agusespa/classweave/internal/types"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var SupportedFormats = []Format{FormatJSON, FormatYAML}

// FormatNames lists the supported formats for help and error text.
func FormatNames() string {
	names := make([]string, 0, len(SupportedFormats))
	for _, f := range SupportedFormats {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}

// ParseFormat accepts "json", "yaml" or "yml", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported output format %q (supported: %s)", s, FormatNames())
}

// Write renders results as a list of {file, structure, error} entries.
func Write(w io.Writer, results []types.FileResult, format Format) error {
	if results == nil {
		results = []types.FileResult{}
	}

	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported output format %q (supported: %s)", format, FormatNames())
}
