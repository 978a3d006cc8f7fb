package position

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/avaropoint/pledgebook/config"
	apperrors "github.com/avaropoint/pledgebook/errors"
	"github.com/avaropoint/pledgebook/formats"
)

const (
	// DateCutoffDays is the largest days-to-exercise/maturity for which
	// the dates are still shown.
	DateCutoffDays = 60
	// MaxValuation caps the clean valuation, a percentage of par.
	MaxValuation = 100
	// unitShift converts yuan to units of ten thousand.
	unitShift = -4
	// largest Excel date serial (9999-12-31)
	maxDateSerial = 2958465
)

// nullMarkers are values exports use for "no value".
var nullMarkers = map[string]bool{
	"1899-12-31": true,
	"1899-12-30": true,
	"NaT":        true,
	"nan":        true,
	"NaN":        true,
	"None":       true,
	"null":       true,
	"<NA>":       true,
}

type columns struct {
	code, name, balance, product, days, exercise, maturity, valuation int
	rating, perpetual, province                                       int
}

// Normalize cleans every row of the position table. Rows with a
// non-positive or unreadable balance are dropped; other malformed cells
// fall back to 0 or "" and are reported as warnings. Only a missing
// table or a missing required column is an error.
func Normalize(t *formats.Table, cols config.PositionColumns) ([]Record, []Warning, error) {
	if t == nil {
		return nil, nil, apperrors.ErrBaseInputs
	}
	c, err := resolve(t, cols)
	if err != nil {
		return nil, nil, err
	}

	var (
		records  []Record
		warnings []Warning
	)
	warn := func(row int, field, value, reason string) {
		warnings = append(warnings, Warning{Source: "positions", Row: row, Field: field, Value: value, Reason: reason})
	}

	for i, row := range t.Rows {
		n := i + 2 // header is row 1
		rawBalance := formats.Cell(row, c.balance)
		balance, ok := parseBalance(rawBalance)
		if !ok {
			warn(n, cols.Balance, rawBalance, "balance is not a number, row dropped")
			continue
		}
		if !balance.IsPositive() {
			continue
		}

		product := formats.Cell(row, c.product)
		if product == "" {
			warn(n, cols.Product, product, "product is empty, row dropped")
			continue
		}

		rec := Record{
			Row:       n,
			Code:      formats.Cell(row, c.code),
			Name:      formats.Cell(row, c.name),
			Balance:   balance,
			Product:   product,
			Rating:    optional(row, c.rating),
			Perpetual: optional(row, c.perpetual),
			Province:  optional(row, c.province),
		}

		rawDays := formats.Cell(row, c.days)
		days, ok := parseInt(rawDays)
		if !ok {
			warn(n, cols.Days, rawDays, "days is not a number, using 0")
		}
		rec.Days = days

		rec.Exercise = cleanDate(formats.Cell(row, c.exercise))
		rec.Maturity = cleanDate(formats.Cell(row, c.maturity))
		if rec.Days > DateCutoffDays {
			rec.Exercise = ""
			rec.Maturity = ""
		}

		rawVal := formats.Cell(row, c.valuation)
		val, ok := parseInt(rawVal)
		if !ok {
			warn(n, cols.Valuation, rawVal, "valuation is not a number, using 0")
		}
		rec.Valuation = min(val, MaxValuation)

		records = append(records, rec)
	}
	return records, warnings, nil
}

func resolve(t *formats.Table, cols config.PositionColumns) (columns, error) {
	var missing []string
	find := func(name string) int {
		i := t.Column(name)
		if i < 0 {
			missing = append(missing, name)
		}
		return i
	}
	c := columns{
		code:      find(cols.Code),
		name:      find(cols.Name),
		balance:   find(cols.Balance),
		product:   find(cols.Product),
		days:      find(cols.Days),
		exercise:  find(cols.Exercise),
		maturity:  find(cols.Maturity),
		valuation: find(cols.Valuation),
		rating:    t.Column(cols.Rating),
		perpetual: t.Column(cols.Perpetual),
		province:  t.Column(cols.Province),
	}
	if len(missing) > 0 {
		return c, apperrors.WithMessage(apperrors.ErrMissingColumn,
			"position file is missing column "+strings.Join(missing, ", "))
	}
	return c, nil
}

// parseBalance strips thousands separators and scales yuan to ten
// thousands. Blank cells count as zero.
func parseBalance(raw string) (decimal.Decimal, bool) {
	s := strings.ReplaceAll(raw, ",", "")
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d.Shift(unitShift), true
}

// parseInt reads a number and truncates it toward zero. Blank cells are
// 0 without complaint; anything else unreadable is 0 and not ok.
func parseInt(raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(math.Trunc(f)), true
}

// cleanDate maps sentinel values to "" and converts Excel date serials
// to ISO dates. Other text is kept, minus a midnight time component.
func cleanDate(raw string) string {
	if nullMarkers[raw] {
		return ""
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if serial <= 1 {
			return ""
		}
		if serial <= maxDateSerial {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return t.Format("2006-01-02")
			}
		}
		return raw
	}
	s := strings.TrimSuffix(raw, " 00:00:00")
	if nullMarkers[s] {
		return ""
	}
	return s
}

func optional(row []string, col int) string {
	v := formats.Cell(row, col)
	if nullMarkers[v] {
		return ""
	}
	return v
}
