// Package position turns a raw bond-position export into cleaned
// records grouped by owning product, and reads the daily borrowing
// targets that choose which products are worked today.
package position

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Record is one bond holding of one product after normalization.
// Balance is in units of ten thousand and always positive.
type Record struct {
	Row       int // 1-based row in the source sheet
	Code      string
	Name      string
	Balance   decimal.Decimal
	Product   string
	Rating    string
	Perpetual string
	Province  string
	Valuation int
	Days      int
	Exercise  string
	Maturity  string
}

// Warning records a cell or row that was degraded to a default instead
// of aborting the batch.
type Warning struct {
	Source string
	Row    int
	Field  string
	Value  string
	Reason string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s row %d %s=%q: %s", w.Source, w.Row, w.Field, w.Value, w.Reason)
}
