package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/avaropoint/pledgebook/config"
	"github.com/avaropoint/pledgebook/parsers/bank"
	"github.com/avaropoint/pledgebook/parsers/position"
)

// Fixed detail columns, 1-indexed.
const (
	ColCode = iota + 1
	ColName
	ColQuantity
	ColPledgeRate
	ColPledgeValue
	ColRating
	ColPerpetual
	ColProvince
	ColValuation
	ColExercise
	ColMaturity
)

// SubtotalLabel heads every product subtotal row.
const SubtotalLabel = "汇总"

var detailHeaders = []string{
	"债券代码", "债券简称", "数量(万元)", "质押率(D)", "金额(E)",
	"主体评级", "是否永续", "省份", "估值向下取整", "行权", "到期",
}

// Detail is everything a detail sheet is laid out from.
type Detail struct {
	Config *config.Config
	Index  *position.Index
	// Rates holds one lookup per roster bank, in roster order.
	Rates    []bank.RateMap
	Products []string
	// Targets adds the borrow label to title rows when set.
	Targets *position.Targets
}

// LayoutSheet writes the header row and one block per product: a bold
// title row, the product's positions, a bold subtotal row and a blank
// separator row. The product key is written on every detail row in the
// configured helper column; hiding it is left to the caller.
func LayoutSheet(name string, d Detail) *Sheet {
	s := NewSheet(name)
	l := d.Config.Layout
	banks := d.Config.BankIDs()

	for i, h := range detailHeaders {
		s.Put(1, i+1, h, true)
	}
	for i, b := range banks {
		s.Put(1, l.DiscountStart+i, b+"折扣", true)
		s.Put(1, l.ResultStart+i, b, true)
	}

	qty := colName(ColQuantity)
	rate := colName(ColPledgeRate)

	row := 2
	for _, product := range d.Products {
		blk := Block{Product: product, Title: row}
		s.Put(row, ColCode, product, true)
		if d.Targets != nil {
			s.Put(row, ColName, d.Targets.Label(product), true)
		}
		row++

		blk.First = row
		for _, rec := range d.Index.Records(product) {
			s.Put(row, ColCode, rec.Code, false)
			s.Put(row, ColName, rec.Name, false)
			s.Put(row, ColQuantity, rec.Balance.InexactFloat64(), false)
			s.Put(row, ColPledgeRate, 0, false)
			s.PutFormula(row, ColPledgeValue, fmt.Sprintf("=%s%d*%s%d", qty, row, rate, row), false)
			s.Put(row, ColRating, rec.Rating, false)
			s.Put(row, ColPerpetual, rec.Perpetual, false)
			s.Put(row, ColProvince, rec.Province, false)
			s.Put(row, ColValuation, rec.Valuation, false)
			s.Put(row, ColExercise, rec.Exercise, false)
			s.Put(row, ColMaturity, rec.Maturity, false)
			s.Put(row, l.ProductKey, product, false)

			for i := range banks {
				if i < len(d.Rates) {
					if r, ok := d.Rates[i].Lookup(rec.Name); ok {
						s.Put(row, l.DiscountStart+i, r.Cell(), false)
					}
				}
				disc := colName(l.DiscountStart + i)
				s.PutFormula(row, l.ResultStart+i, fmt.Sprintf("=%s%d*%s%d", qty, row, disc, row), false)
			}
			row++
		}
		blk.Last = row - 1

		blk.Subtotal = row
		s.Put(row, ColCode, SubtotalLabel, true)
		for _, c := range subtotalColumns(l, len(banks)) {
			col := colName(c)
			s.PutFormula(row, c, fmt.Sprintf("=SUM(%s%d:%s%d)", col, blk.First, col, blk.Last), true)
		}
		s.Blocks = append(s.Blocks, blk)
		row += 2
	}
	return s
}

// subtotalColumns are quantity, pledge value and every bank value column.
func subtotalColumns(l config.Layout, banks int) []int {
	cols := []int{ColQuantity, ColPledgeValue}
	for i := 0; i < banks; i++ {
		cols = append(cols, l.ResultStart+i)
	}
	return cols
}

// colName converts a 1-based column number to its letter name. Columns
// come from a validated layout, so the conversion cannot fail.
func colName(n int) string {
	name, _ := excelize.ColumnNumberToName(n)
	return name
}

// quoteSheet renders a sheet name for use in a cross-sheet reference.
func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
