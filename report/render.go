package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Render writes the model into a new excelize file. Formulas are stored
// unevaluated; whatever opens the file computes them.
func Render(wb *Workbook) (*excelize.File, error) {
	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	f := excelize.NewFile()

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create bold style: %w", err)
	}

	for i, s := range wb.Sheets {
		if i == 0 {
			err = f.SetSheetName(f.GetSheetName(0), s.Name)
		} else {
			_, err = f.NewSheet(s.Name)
		}
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to add sheet %s: %w", s.Name, err)
		}
		if err := writeSheet(f, s, bold); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeSheet(f *excelize.File, s *Sheet, bold int) error {
	err := s.each(func(row, col int, c Cell) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if c.Formula != "" {
			err = f.SetCellFormula(s.Name, cell, strings.TrimPrefix(c.Formula, "="))
		} else {
			err = f.SetCellValue(s.Name, cell, c.Value)
		}
		if err != nil {
			return fmt.Errorf("%s!%s: %w", s.Name, cell, err)
		}
		if c.Bold {
			return f.SetCellStyle(s.Name, cell, cell, bold)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Approximate widths for the name-like leading columns.
	for col, width := range map[string]float64{"A": 14, "B": 20} {
		if err := f.SetColWidth(s.Name, col, col, width); err != nil {
			return err
		}
	}
	for _, c := range s.hidden {
		if err := f.SetColVisible(s.Name, colName(c), false); err != nil {
			return fmt.Errorf("failed to hide column %s on %s: %w", colName(c), s.Name, err)
		}
	}
	return nil
}

// Bytes renders the workbook and returns the .xlsx content.
func Bytes(wb *Workbook) ([]byte, error) {
	f, err := Render(wb)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
