package position

import "github.com/shopspring/decimal"

// Index groups records by product. Products keep the order in which
// they first appear; records keep source order within a product.
type Index struct {
	order []string
	rows  map[string][]Record
}

// NewIndex builds the product index once for all consumers.
func NewIndex(records []Record) *Index {
	idx := &Index{rows: make(map[string][]Record)}
	for _, r := range records {
		if _, ok := idx.rows[r.Product]; !ok {
			idx.order = append(idx.order, r.Product)
		}
		idx.rows[r.Product] = append(idx.rows[r.Product], r)
	}
	return idx
}

// Products returns product names in first-appearance order.
func (x *Index) Products() []string {
	return append([]string(nil), x.order...)
}

// Has reports whether the product holds at least one position.
func (x *Index) Has(product string) bool {
	_, ok := x.rows[product]
	return ok
}

// Records returns the positions of one product.
func (x *Index) Records(product string) []Record {
	return x.rows[product]
}

// Quantity sums the balances of one product.
func (x *Index) Quantity(product string) decimal.Decimal {
	total := decimal.Zero
	for _, r := range x.rows[product] {
		total = total.Add(r.Balance)
	}
	return total
}

// Len returns the number of positions across all products.
func (x *Index) Len() int {
	n := 0
	for _, rs := range x.rows {
		n += len(rs)
	}
	return n
}
