// Package bank builds per-bank discount (pledge rate) lookups from each
// bank's eligible-collateral list.
package bank

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Rate is one bank's discount for a bond. Numeric rates carry Value;
// a cell that is not a number keeps its text in Raw and is written to
// the workbook unchanged.
type Rate struct {
	Value   decimal.Decimal
	Raw     string
	Numeric bool
}

// Cell returns the literal to place in a rate column.
func (r Rate) Cell() any {
	if r.Numeric {
		return r.Value.InexactFloat64()
	}
	return r.Raw
}

// RateMap maps a bond display name to its rate for one bank.
type RateMap map[string]Rate

// Lookup returns the rate for name and whether the bank lists it.
func (m RateMap) Lookup(name string) (Rate, bool) {
	r, ok := m[name]
	return r, ok
}

// Warning records a degradation that did not stop the build.
type Warning struct {
	Bank   string
	Row    int // 1-based row in the source, 0 for whole-source warnings
	Field  string
	Value  string
	Reason string
}

func (w Warning) String() string {
	if w.Row == 0 {
		return fmt.Sprintf("%s: %s", w.Bank, w.Reason)
	}
	return fmt.Sprintf("%s row %d %s=%q: %s", w.Bank, w.Row, w.Field, w.Value, w.Reason)
}
