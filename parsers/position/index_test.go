package position

import (
	"testing"

	"github.com/shopspring/decimal"
)

func rec(product, code, balance string) Record {
	return Record{Product: product, Code: code, Balance: decimal.RequireFromString(balance)}
}

func TestIndexOrder(t *testing.T) {
	idx := NewIndex([]Record{
		rec("产品B", "1", "1"),
		rec("产品A", "2", "2.5"),
		rec("产品B", "3", "3"),
	})

	got := idx.Products()
	if len(got) != 2 || got[0] != "产品B" || got[1] != "产品A" {
		t.Fatalf("expected first-appearance order, got %v", got)
	}
	b := idx.Records("产品B")
	if len(b) != 2 || b[0].Code != "1" || b[1].Code != "3" {
		t.Fatalf("expected source order within product, got %+v", b)
	}
	if !idx.Quantity("产品B").Equal(decimal.RequireFromString("4")) {
		t.Errorf("unexpected quantity %s", idx.Quantity("产品B"))
	}
	if !idx.Has("产品A") || idx.Has("产品C") {
		t.Error("Has returned wrong membership")
	}
	if idx.Len() != 3 {
		t.Errorf("expected 3 records, got %d", idx.Len())
	}
}

func TestIndexProductsIsCopy(t *testing.T) {
	idx := NewIndex([]Record{rec("产品A", "1", "1")})
	p := idx.Products()
	p[0] = "changed"
	if idx.Products()[0] != "产品A" {
		t.Fatal("Products must not expose internal order slice")
	}
}
