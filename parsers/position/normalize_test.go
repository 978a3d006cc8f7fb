package position

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/avaropoint/pledgebook/config"
	apperrors "github.com/avaropoint/pledgebook/errors"
	"github.com/avaropoint/pledgebook/formats"
)

var header = []string{
	"债券代码", "债券简称", "余额（元）", "持有人账户简称", "行权/到期剩余天数",
	"行权", "到期", "中债估值", "主体评级", "是否永续", "省份",
}

func positions(rows ...[]string) *formats.Table {
	return &formats.Table{Sheet: "Sheet1", Header: header, Rows: rows}
}

func normalize(t *testing.T, rows ...[]string) ([]Record, []Warning) {
	t.Helper()
	recs, warnings, err := Normalize(positions(rows...), config.Defaults().Positions)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	return recs, warnings
}

func TestNormalizeBalanceScaling(t *testing.T) {
	recs, _ := normalize(t,
		[]string{"012345", "21国债01", "1,234,567.89", "产品A", "10", "", "", "99", "AAA", "否", "江苏"},
	)
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	r := recs[0]
	if !r.Balance.Equal(decimal.RequireFromString("123.456789")) {
		t.Errorf("expected balance 123.456789, got %s", r.Balance)
	}
	if r.Code != "012345" {
		t.Errorf("expected leading zero preserved, got %q", r.Code)
	}
	if r.Rating != "AAA" || r.Perpetual != "否" || r.Province != "江苏" {
		t.Errorf("unexpected optional fields %+v", r)
	}
	if r.Row != 2 {
		t.Errorf("expected source row 2, got %d", r.Row)
	}
}

func TestNormalizeDropsNonPositive(t *testing.T) {
	recs, warnings := normalize(t,
		[]string{"1", "a", "0", "产品A", "", "", "", "", "", "", ""},
		[]string{"2", "b", "-10000", "产品A", "", "", "", "", "", "", ""},
		[]string{"3", "c", "", "产品A", "", "", "", "", "", "", ""},
		[]string{"4", "d", "abc", "产品A", "", "", "", "", "", "", ""},
		[]string{"5", "e", "10000", "产品A", "", "", "", "", "", "", ""},
	)
	if len(recs) != 1 || recs[0].Code != "5" {
		t.Fatalf("expected only row 5 to survive, got %+v", recs)
	}
	for _, r := range recs {
		if !r.Balance.IsPositive() {
			t.Errorf("non-positive balance leaked: %+v", r)
		}
	}
	if len(warnings) != 1 || warnings[0].Value != "abc" {
		t.Errorf("expected one warning for unreadable balance, got %+v", warnings)
	}
}

func TestNormalizeDateErasure(t *testing.T) {
	tests := []struct {
		name         string
		days         string
		exercise     string
		maturity     string
		wantExercise string
		wantMaturity string
		wantDays     int
	}{
		{"over_cutoff", "61", "2030-01-01", "2031-06-30", "", "", 61},
		{"at_cutoff", "60", "2030-01-01", "2031-06-30", "2030-01-01", "2031-06-30", 60},
		{"fractional_truncates", "60.9", "2030-01-01", "", "2030-01-01", "", 60},
		{"non_numeric_days", "n/a", "2030-01-01", "", "2030-01-01", "", 0},
		{"sentinels", "5", "1899-12-31", "nan", "", "", 5},
		{"none_and_nat", "5", "None", "NaT", "", "", 5},
		{"midnight_suffix", "5", "2030-01-01 00:00:00", "", "2030-01-01", "", 5},
		{"excel_serial", "5", "47484", "", "2030-01-01", "", 5},
		{"serial_zero", "5", "0", "", "", "", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, _ := normalize(t,
				[]string{"1", "a", "10000", "产品A", tt.days, tt.exercise, tt.maturity, "100", "", "", ""},
			)
			if len(recs) != 1 {
				t.Fatalf("expected 1 record, got %d", len(recs))
			}
			r := recs[0]
			if r.Days != tt.wantDays {
				t.Errorf("days = %d, want %d", r.Days, tt.wantDays)
			}
			if r.Exercise != tt.wantExercise {
				t.Errorf("exercise = %q, want %q", r.Exercise, tt.wantExercise)
			}
			if r.Maturity != tt.wantMaturity {
				t.Errorf("maturity = %q, want %q", r.Maturity, tt.wantMaturity)
			}
		})
	}
}

func TestNormalizeValuationCap(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"150", 100},
		{"100", 100},
		{"99.87", 99},
		{"-5", -5},
		{"-5.5", -5},
		{"", 0},
		{"估值缺失", 0},
	}
	for _, tt := range tests {
		recs, _ := normalize(t,
			[]string{"1", "a", "10000", "产品A", "1", "", "", tt.raw, "", "", ""},
		)
		if got := recs[0].Valuation; got != tt.want {
			t.Errorf("valuation(%q) = %d, want %d", tt.raw, got, tt.want)
		}
		if recs[0].Valuation > MaxValuation {
			t.Errorf("valuation above cap: %d", recs[0].Valuation)
		}
	}
}

func TestNormalizeWarnings(t *testing.T) {
	_, warnings := normalize(t,
		[]string{"1", "a", "10000", "产品A", "soon", "", "", "high", "", "", ""},
		[]string{"2", "b", "10000", "", "1", "", "", "1", "", "", ""},
	)
	if len(warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %+v", warnings)
	}
	fields := []string{warnings[0].Field, warnings[1].Field, warnings[2].Field}
	want := []string{"行权/到期剩余天数", "中债估值", "持有人账户简称"}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("warning %d field = %s, want %s", i, fields[i], want[i])
		}
	}
}

func TestNormalizeOptionalColumnsAbsent(t *testing.T) {
	tbl := &formats.Table{
		Header: header[:8],
		Rows:   [][]string{{"1", "a", "10000", "产品A", "1", "", "", "90"}},
	}
	recs, _, err := Normalize(tbl, config.Defaults().Positions)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if recs[0].Rating != "" || recs[0].Province != "" {
		t.Errorf("expected blank optional fields, got %+v", recs[0])
	}
}

func TestNormalizeMissingColumn(t *testing.T) {
	tbl := &formats.Table{Header: []string{"债券代码", "债券简称"}}
	_, _, err := Normalize(tbl, config.Defaults().Positions)
	if !errors.Is(err, apperrors.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}

	_, _, err = Normalize(nil, config.Defaults().Positions)
	if !errors.Is(err, apperrors.ErrBaseInputs) {
		t.Fatalf("expected ErrBaseInputs, got %v", err)
	}
}
