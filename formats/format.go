// Package formats defines the Decoder interface and a registry for
// pluggable tabular source decoders. To add a new format, create a
// package that implements Decoder and calls Register from its init
// function. The registry auto-detects formats by content (magic bytes)
// first and falls back to file extension matching.
package formats

import (
	"path/filepath"
	"strings"
)

// Table is a decoded spreadsheet-like source: an optional header row and
// the data rows beneath it. Rows may be shorter than Header.
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]string
}

// Options selects what a decoder reads.
type Options struct {
	// Sheet names the sheet to read; empty means the first sheet.
	// Formats without sheets ignore it.
	Sheet string
	// NoHeader treats the first row as data (positional sources).
	NoHeader bool
}

// Decoder handles detection and decoding of a specific tabular format.
type Decoder interface {
	// Name returns a human-readable format name.
	Name() string

	// Extensions returns file extensions this decoder handles,
	// including the leading dot (e.g. ".xlsx").
	Extensions() []string

	// Match returns true if data begins with recognized magic bytes.
	Match(data []byte) bool

	// Decode parses raw file data into a Table.
	Decode(data []byte, opts Options) (*Table, error)
}

var registry []Decoder

// Register adds a decoder to the global registry. Call this from
// an init function in your format package.
func Register(d Decoder) {
	registry = append(registry, d)
}

// Detect identifies the correct decoder for a file. It checks content
// (magic bytes) first, then falls back to extension matching.
func Detect(filename string, data []byte) Decoder {
	for _, d := range registry {
		if d.Match(data) {
			return d
		}
	}
	ext := strings.ToLower(filepath.Ext(filename))
	for _, d := range registry {
		for _, e := range d.Extensions() {
			if ext == e {
				return d
			}
		}
	}
	return nil
}

// All returns every registered decoder.
func All() []Decoder {
	return registry
}

// Column returns the index of the named header column, or -1. An exact
// match wins; otherwise the comparison ignores case, surrounding spaces
// and underscores.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	want := foldName(name)
	for i, h := range t.Header {
		if foldName(h) == want {
			return i
		}
	}
	return -1
}

// Cell returns row[col] trimmed, or "" when the row is too short.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// Width returns the widest row (or header) length.
func (t *Table) Width() int {
	w := len(t.Header)
	for _, r := range t.Rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

func foldName(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", " "))
}

// SanitizeFilename replaces characters that are unsafe in file paths
// and strips control characters to prevent header injection.
func SanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1 // drop control characters
		}
		return r
	}, name)
	for _, c := range []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"} {
		name = strings.ReplaceAll(name, c, "_")
	}
	if name == "" {
		name = "unnamed"
	}
	return name
}

// splitHeader separates the header from the data rows and trims header
// names. Trailing rows that are entirely blank are dropped.
func splitHeader(rows [][]string, opts Options) (header []string, data [][]string) {
	for len(rows) > 0 && blankRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	if opts.NoHeader || len(rows) == 0 {
		return nil, rows
	}
	header = make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}
	return header, rows[1:]
}

// NewTable builds a Table from raw rows according to opts. Decoders
// share it so header handling is identical across formats.
func NewTable(sheet string, rows [][]string, opts Options) *Table {
	header, data := splitHeader(rows, opts)
	return &Table{Sheet: sheet, Header: header, Rows: data}
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
