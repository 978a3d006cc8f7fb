package position

import (
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/avaropoint/pledgebook/errors"
	"github.com/avaropoint/pledgebook/formats"
)

// Target is the amount a product wants to borrow today, in ten thousands.
type Target struct {
	Product string
	Amount  decimal.Decimal
}

// Targets is the ordered borrowing plan. A product listed twice keeps
// its first position and takes the later amount.
type Targets struct {
	list []Target
	pos  map[string]int
}

// NewTargets builds a plan from products in the given order.
func NewTargets(list ...Target) *Targets {
	t := &Targets{pos: make(map[string]int)}
	for _, tg := range list {
		t.set(tg.Product, tg.Amount)
	}
	return t
}

func (t *Targets) set(product string, amount decimal.Decimal) {
	if i, ok := t.pos[product]; ok {
		t.list[i].Amount = amount
		return
	}
	t.pos[product] = len(t.list)
	t.list = append(t.list, Target{Product: product, Amount: amount})
}

// All returns the targets in plan order.
func (t *Targets) All() []Target {
	return append([]Target(nil), t.list...)
}

// Products returns product names in plan order.
func (t *Targets) Products() []string {
	out := make([]string, len(t.list))
	for i, tg := range t.list {
		out[i] = tg.Product
	}
	return out
}

// Amount returns the target for product, zero when it is not planned.
func (t *Targets) Amount(product string) (decimal.Decimal, bool) {
	i, ok := t.pos[product]
	if !ok {
		return decimal.Zero, false
	}
	return t.list[i].Amount, true
}

// Label renders the title-row borrow label, e.g. "借 500w".
func (t *Targets) Label(product string) string {
	amt, _ := t.Amount(product)
	return "借 " + amt.String() + "w"
}

// Len returns the number of planned products.
func (t *Targets) Len() int { return len(t.list) }

// ReadTargets reads a positional two-column table: product name, then
// amount. Blank product cells are skipped and unreadable amounts become
// zero, both with a warning. A table without two columns is an error.
func ReadTargets(t *formats.Table) (*Targets, []Warning, error) {
	if t == nil {
		return nil, nil, apperrors.ErrBaseInputs
	}
	if len(t.Rows) == 0 || t.Width() < 2 {
		return nil, nil, apperrors.WithMessage(apperrors.ErrMissingColumn,
			"today file needs two columns: product name and borrow amount")
	}

	targets := NewTargets()
	var warnings []Warning
	for i, row := range t.Rows {
		n := i + 1
		product := formats.Cell(row, 0)
		raw := formats.Cell(row, 1)
		if product == "" {
			if raw != "" {
				warnings = append(warnings, Warning{Source: "today", Row: n, Field: "product", Value: raw, Reason: "product is empty, row skipped"})
			}
			continue
		}
		amount, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
		if err != nil {
			warnings = append(warnings, Warning{Source: "today", Row: n, Field: "amount", Value: raw, Reason: "amount is not a number, using 0"})
			amount = decimal.Zero
		}
		targets.set(product, amount)
	}
	return targets, warnings, nil
}
