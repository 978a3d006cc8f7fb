// Package xlsx implements the Excel workbook decoder using excelize.
// It is automatically registered with the formats registry on import.
package xlsx

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/avaropoint/pledgebook/formats"
)

func init() {
	formats.Register(&decoder{})
}

type decoder struct{}

func (d *decoder) Name() string {
	return "Excel workbook (.xlsx)"
}

func (d *decoder) Extensions() []string {
	return []string{".xlsx", ".xlsm"}
}

// Match checks for the ZIP local file header (PK\x03\x04) that starts
// every OOXML package.
func (d *decoder) Match(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04
}

// Decode reads one sheet of the workbook. Cells come back as stored
// values rather than displayed text: numbers keep full precision and
// date cells arrive as serial numbers, which the position normalizer
// converts. Text cells such as "1,234,567.89" are returned as typed.
func (d *decoder) Decode(data []byte, opts formats.Options) (*formats.Table, error) {
	if isOLE2(data) {
		return nil, fmt.Errorf("legacy .xls workbooks are not supported, save as .xlsx")
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("xlsx has no sheets")
		}
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("xlsx has no sheet named %q", sheet)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read xlsx rows: %w", err)
	}
	return formats.NewTable(sheet, rows, opts), nil
}

// isOLE2 reports the Compound Document signature (\xD0\xCF\x11\xE0)
// used by legacy .xls files.
func isOLE2(data []byte) bool {
	return len(data) >= 4 && data[0] == 0xD0 && data[1] == 0xCF && data[2] == 0x11 && data[3] == 0xE0
}
