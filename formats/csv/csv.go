// Package csv implements the comma-separated table decoder.
// It is automatically registered with the formats registry on import.
package csv

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/avaropoint/pledgebook/formats"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func init() {
	formats.Register(&decoder{})
}

type decoder struct{}

func (d *decoder) Name() string {
	return "CSV"
}

func (d *decoder) Extensions() []string {
	return []string{".csv", ".txt"}
}

// Match always returns false: CSV has no signature and is selected by
// extension only.
func (d *decoder) Match(data []byte) bool {
	return false
}

func (d *decoder) Decode(data []byte, opts formats.Options) (*formats.Table, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1 // Allow variable column counts

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return formats.NewTable("", rows, opts), nil
}
