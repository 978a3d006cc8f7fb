// Inspect is a low-level diagnostic tool that dumps every sheet of a
// workbook: cell values, formulas, bold cells and hidden columns.
package main

import (
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspect <file.xlsx> [sheet]")
		os.Exit(1)
	}
	f, err := excelize.OpenFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(os.Args) > 2 {
		sheets = []string{os.Args[2]}
	}
	fmt.Printf("Workbook: %s (%d sheet(s))\n", os.Args[1], len(f.GetSheetList()))
	for _, sheet := range sheets {
		if err := dumpSheet(f, sheet); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", sheet, err)
			os.Exit(1)
		}
	}
}

func dumpSheet(f *excelize.File, sheet string) error {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return err
	}
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	fmt.Printf("\n[%s] rows=%d cols=%d\n", sheet, len(rows), width)

	for c := 1; c <= width; c++ {
		name, _ := excelize.ColumnNumberToName(c)
		if visible, err := f.GetColVisible(sheet, name); err == nil && !visible {
			fmt.Printf("  hidden column %s\n", name)
		}
	}

	for r := 1; r <= len(rows); r++ {
		for c := 1; c <= width; c++ {
			cell, _ := excelize.CoordinatesToCellName(c, r)
			formula, _ := f.GetCellFormula(sheet, cell)
			value := ""
			if c <= len(rows[r-1]) {
				value = rows[r-1][c-1]
			}
			if formula == "" && value == "" {
				continue
			}
			flag := ""
			if bold(f, sheet, cell) {
				flag = " [b]"
			}
			if formula != "" {
				fmt.Printf("  %-6s =%s%s\n", cell, formula, flag)
			} else {
				fmt.Printf("  %-6s %q%s\n", cell, value, flag)
			}
		}
	}
	return nil
}

func bold(f *excelize.File, sheet, cell string) bool {
	id, err := f.GetCellStyle(sheet, cell)
	if err != nil || id == 0 {
		return false
	}
	style, err := f.GetStyle(id)
	return err == nil && style.Font != nil && style.Font.Bold
}
