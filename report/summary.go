package report

import (
	"fmt"

	"github.com/avaropoint/pledgebook/config"
	"github.com/avaropoint/pledgebook/parsers/position"
)

// Summary columns, 1-indexed. Bank columns start at SumColBanks.
const (
	SumColProduct = iota + 1
	SumColTarget
	SumColAvailable
	SumColAdjust
	SumColFinal
	SumColBanks
)

var summaryHeaders = []string{"产品名字", "今日借", "可用券总计", "调节比例", "最终金额"}

// BuildSummary writes one row per planned product. Available and
// per-bank totals are SUMIF formulas over the detail sheet named
// source, keyed on its hidden product column, so a bond held by several
// products is counted once per holder.
func BuildSummary(name, source string, cfg *config.Config, targets *position.Targets) *Sheet {
	s := NewSheet(name)
	l := cfg.Layout
	banks := cfg.BankIDs()

	for i, h := range summaryHeaders {
		s.Put(1, i+1, h, true)
	}
	for i, b := range banks {
		s.Put(1, SumColBanks+i, b, true)
	}

	src := quoteSheet(source)
	key := colName(l.ProductKey)
	value := colName(ColPledgeValue)
	sumif := func(row int, target string) string {
		return fmt.Sprintf("=SUMIF(%s!$%s:$%s, $%s%d, %s!%s)",
			src, key, key, colName(SumColProduct), row, src, target)
	}

	for i, tg := range targets.All() {
		row := i + 2
		s.Put(row, SumColProduct, tg.Product, false)
		s.Put(row, SumColTarget, tg.Amount.InexactFloat64(), false)
		s.PutFormula(row, SumColAvailable, sumif(row, "$"+value+":$"+value), false)
		s.Put(row, SumColAdjust, 1.0, false)
		s.PutFormula(row, SumColFinal, fmt.Sprintf("=%s%d*%s%d",
			colName(SumColAvailable), row, colName(SumColAdjust), row), false)
		for b := range banks {
			col := colName(l.ResultStart + b)
			s.PutFormula(row, SumColBanks+b, sumif(row, col+":"+col), false)
		}
	}
	return s
}
