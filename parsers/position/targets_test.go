package position

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "github.com/avaropoint/pledgebook/errors"
	"github.com/avaropoint/pledgebook/formats"
)

func TestReadTargets(t *testing.T) {
	tbl := &formats.Table{Rows: [][]string{
		{"产品B", "500"},
		{"产品A", "1,200.5"},
		{"", ""},
		{"", "30"},
		{"产品C", "tbd"},
		{"产品B", "600"},
	}}
	targets, warnings, err := ReadTargets(tbl)
	if err != nil {
		t.Fatalf("ReadTargets: %v", err)
	}

	got := targets.Products()
	want := []string{"产品B", "产品A", "产品C"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("product %d = %s, want %s", i, got[i], want[i])
		}
	}

	amt, ok := targets.Amount("产品B")
	if !ok || !amt.Equal(decimal.NewFromInt(600)) {
		t.Errorf("expected repeated product to take last amount 600, got %s", amt)
	}
	if a, _ := targets.Amount("产品A"); !a.Equal(decimal.RequireFromString("1200.5")) {
		t.Errorf("expected 1200.5, got %s", a)
	}
	if a, _ := targets.Amount("产品C"); !a.IsZero() {
		t.Errorf("expected unreadable amount to be zero, got %s", a)
	}
	if len(warnings) != 2 {
		t.Errorf("expected 2 warnings, got %+v", warnings)
	}
}

func TestTargetsLabel(t *testing.T) {
	targets := NewTargets(
		Target{Product: "产品A", Amount: decimal.NewFromInt(500)},
		Target{Product: "产品B", Amount: decimal.RequireFromString("120.50")},
	)
	if l := targets.Label("产品A"); l != "借 500w" {
		t.Errorf("unexpected label %q", l)
	}
	if l := targets.Label("产品B"); l != "借 120.5w" {
		t.Errorf("unexpected label %q", l)
	}
	if l := targets.Label("产品Z"); l != "借 0w" {
		t.Errorf("unexpected label for unplanned product %q", l)
	}
	if targets.Len() != 2 {
		t.Errorf("expected 2 targets, got %d", targets.Len())
	}
}

func TestTargetsLabelFloatCell(t *testing.T) {
	targets, _, err := ReadTargets(&formats.Table{Rows: [][]string{{"产品A", "500.0"}}})
	if err != nil {
		t.Fatalf("ReadTargets: %v", err)
	}
	if l := targets.Label("产品A"); l != "借 500w" {
		t.Errorf("expected trailing zeros dropped, got %q", l)
	}
}

func TestReadTargetsFatal(t *testing.T) {
	tests := []struct {
		name string
		tbl  *formats.Table
		want error
	}{
		{"nil", nil, apperrors.ErrBaseInputs},
		{"empty", &formats.Table{}, apperrors.ErrMissingColumn},
		{"one_column", &formats.Table{Rows: [][]string{{"产品A"}}}, apperrors.ErrMissingColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReadTargets(tt.tbl)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
