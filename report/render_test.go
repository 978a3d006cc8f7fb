package report

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func renderFixture(t *testing.T) *excelize.File {
	t.Helper()
	d := fixture()
	all := LayoutSheet("银行间可用券", d)
	all.Hide(d.Config.Layout.ProductKey)
	summary := NewSheet("汇总")
	summary.Put(1, 1, "产品名字", true)

	data, err := Bytes(&Workbook{Sheets: []*Sheet{all, summary}})
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestRenderSheetsAndHiddenColumn(t *testing.T) {
	f := renderFixture(t)

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "银行间可用券" || sheets[1] != "汇总" {
		t.Fatalf("unexpected sheet order %v", sheets)
	}
	visible, err := f.GetColVisible("银行间可用券", "Z")
	if err != nil {
		t.Fatal(err)
	}
	if visible {
		t.Error("column Z should be hidden")
	}
	if visible, _ := f.GetColVisible("银行间可用券", "Y"); !visible {
		t.Error("column Y should stay visible")
	}
}

func TestRenderFormulasAndValues(t *testing.T) {
	f := renderFixture(t)

	formula, err := f.GetCellFormula("银行间可用券", "T3")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimPrefix(formula, "=") != "C3*M3" {
		t.Errorf("T3 formula = %q", formula)
	}
	formula, _ = f.GetCellFormula("银行间可用券", "C5")
	if strings.TrimPrefix(formula, "=") != "SUM(C3:C4)" {
		t.Errorf("C5 formula = %q", formula)
	}
	code, _ := f.GetCellValue("银行间可用券", "A3")
	if code != "019641" {
		t.Errorf("A3 = %q, want code with leading zero", code)
	}
	key, _ := f.GetCellValue("银行间可用券", "Z3")
	if key != "产品A" {
		t.Errorf("Z3 = %q", key)
	}
	blank, _ := f.GetCellValue("银行间可用券", "L3")
	if blank != "" {
		t.Errorf("L3 should be blank, got %q", blank)
	}
}

func TestRenderBoldStyle(t *testing.T) {
	f := renderFixture(t)

	for _, cell := range []string{"A1", "A2", "A5", "C5"} {
		id, err := f.GetCellStyle("银行间可用券", cell)
		if err != nil {
			t.Fatal(err)
		}
		style, err := f.GetStyle(id)
		if err != nil {
			t.Fatal(err)
		}
		if style.Font == nil || !style.Font.Bold {
			t.Errorf("%s should be bold", cell)
		}
	}
	id, _ := f.GetCellStyle("银行间可用券", "A3")
	if id != 0 {
		style, _ := f.GetStyle(id)
		if style != nil && style.Font != nil && style.Font.Bold {
			t.Error("detail cells should not be bold")
		}
	}
}

func TestRenderEvaluatesBankValue(t *testing.T) {
	f := renderFixture(t)

	// 123.456789 (ten thousands) at a 0.9 rate.
	got, err := f.CalcCellValue("银行间可用券", "T3", excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("CalcCellValue: %v", err)
	}
	v, err := strconv.ParseFloat(got, 64)
	if err != nil {
		t.Fatalf("parse %q: %v", got, err)
	}
	if math.Abs(v-111.1111101) > 1e-9 {
		t.Errorf("T3 = %v, want 111.1111101", v)
	}
}

func TestRenderEmptyWorkbook(t *testing.T) {
	if _, err := Render(&Workbook{}); err == nil {
		t.Fatal("expected error for workbook without sheets")
	}
}
