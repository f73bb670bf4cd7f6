// =============================================================================
// Sales Analytics System - Line Source Module
// =============================================================================
//
// This module reads the raw sales data file and produces the ordered sequence
// of data lines consumed by the record parser. It handles:
//   - Encoding resolution with a fallback chain (UTF-8, Windows-1252, Latin-1),
//     since exports from the legacy system arrive in mixed encodings
//   - Header removal (the first line is always the column header)
//   - Blank line removal and line-ending normalization
//
// The reader performs no parsing beyond line splitting; malformed records are
// the parser's concern.
//
// =============================================================================

package linesource

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// fallbackDecoders are tried in order when the file is not valid UTF-8.
// Windows-1252 covers the usual legacy exports; Latin-1 is the last resort.
var fallbackDecoders = []*encoding.Decoder{
	charmap.Windows1252.NewDecoder(),
	charmap.ISO8859_1.NewDecoder(),
}

// ReadLines reads a sales data file and returns its data lines in file order.
//
// PARAMETERS:
//   - path: The path to the sales data file.
//
// RETURNS:
//   - The data lines with the header excluded, line endings stripped, and
//     blank lines removed.
//   - An error if the file cannot be read or decoded.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sales data file: %w", err)
	}

	text, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return splitDataLines(text), nil
}

// decode resolves the file encoding. Valid UTF-8 is used as-is; otherwise the
// fallback decoders are tried in order.
func decode(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	for _, dec := range fallbackDecoders {
		out, err := dec.Bytes(data)
		if err != nil {
			continue
		}
		return string(out), nil
	}

	return "", fmt.Errorf("file is not valid UTF-8, Windows-1252, or Latin-1")
}

// splitDataLines splits decoded text into data lines, dropping the header
// line and any blank lines.
func splitDataLines(text string) []string {
	raw := strings.Split(text, "\n")

	lines := make([]string, 0, len(raw))
	for i, line := range raw {
		if i == 0 {
			// Header row.
			continue
		}
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	return lines
}
