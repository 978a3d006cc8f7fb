// Package report lays out the collateral workbook: two detail sheets of
// positions grouped by product and a summary sheet that aggregates the
// first detail sheet through its hidden product-key column. The layout
// produces an in-memory model; Render turns it into an .xlsx file.
package report

import "sort"

// Cell is a literal value or a formula. Formulas keep their leading "=".
type Cell struct {
	Value   any
	Formula string
	Bold    bool
}

type coord struct{ row, col int }

// Sheet is a sparse grid of cells addressed 1-based.
type Sheet struct {
	Name   string
	Blocks []Block

	cells  map[coord]Cell
	hidden []int
	rows   int
	cols   int
}

// Block records where one product was written on a detail sheet.
type Block struct {
	Product  string
	Title    int
	First    int
	Last     int
	Subtotal int
}

// NewSheet returns an empty sheet.
func NewSheet(name string) *Sheet {
	return &Sheet{Name: name, cells: make(map[coord]Cell)}
}

// Put writes a literal. nil and "" leave the cell blank.
func (s *Sheet) Put(row, col int, v any, bold bool) {
	if v == nil {
		return
	}
	if str, ok := v.(string); ok && str == "" {
		return
	}
	s.set(row, col, Cell{Value: v, Bold: bold})
}

// PutFormula writes a formula string such as "=C2*D2".
func (s *Sheet) PutFormula(row, col int, formula string, bold bool) {
	s.set(row, col, Cell{Formula: formula, Bold: bold})
}

func (s *Sheet) set(row, col int, c Cell) {
	s.cells[coord{row, col}] = c
	s.rows = max(s.rows, row)
	s.cols = max(s.cols, col)
}

// Get returns the cell at row, col.
func (s *Sheet) Get(row, col int) (Cell, bool) {
	c, ok := s.cells[coord{row, col}]
	return c, ok
}

// Formula returns the formula at row, col, or "".
func (s *Sheet) Formula(row, col int) string {
	return s.cells[coord{row, col}].Formula
}

// Value returns the literal at row, col, or nil.
func (s *Sheet) Value(row, col int) any {
	return s.cells[coord{row, col}].Value
}

// Rows returns the last used row.
func (s *Sheet) Rows() int { return s.rows }

// Cols returns the last used column.
func (s *Sheet) Cols() int { return s.cols }

// Hide marks a column as hidden.
func (s *Sheet) Hide(col int) {
	for _, c := range s.hidden {
		if c == col {
			return
		}
	}
	s.hidden = append(s.hidden, col)
	sort.Ints(s.hidden)
}

// Hidden returns the hidden columns in ascending order.
func (s *Sheet) Hidden() []int {
	return append([]int(nil), s.hidden...)
}

// each visits every cell in row-major order.
func (s *Sheet) each(fn func(row, col int, c Cell) error) error {
	keys := make([]coord, 0, len(s.cells))
	for k := range s.cells {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].row != keys[j].row {
			return keys[i].row < keys[j].row
		}
		return keys[i].col < keys[j].col
	})
	for _, k := range keys {
		if err := fn(k.row, k.col, s.cells[k]); err != nil {
			return err
		}
	}
	return nil
}

// Workbook is the ordered set of output sheets.
type Workbook struct {
	Sheets []*Sheet
}

// Sheet returns the sheet with the given name, or nil.
func (w *Workbook) Sheet(name string) *Sheet {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s
		}
	}
	return nil
}
