package bank

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/avaropoint/pledgebook/config"
	"github.com/avaropoint/pledgebook/formats"
)

// BuildRateMap zips the bank's key column (bond name) with its value
// column (rate). A nil table or one missing either column yields an
// empty map and a warning; it never fails. Later rows overwrite earlier
// rows with the same bond name. Rows whose rate cell is blank are left
// out so the bond shows no rate for this bank.
func BuildRateMap(b config.Bank, t *formats.Table) (RateMap, []Warning) {
	rates := make(RateMap)
	if t == nil {
		return rates, []Warning{{Bank: b.ID, Reason: "no collateral file, all rates left blank"}}
	}

	keyCol := t.Column(b.Key)
	valCol := t.Column(b.Value)
	var missing []string
	if keyCol < 0 {
		missing = append(missing, b.Key)
	}
	if valCol < 0 {
		missing = append(missing, b.Value)
	}
	if len(missing) > 0 {
		return rates, []Warning{{Bank: b.ID, Reason: "missing column " + strings.Join(missing, ", ") + ", all rates left blank"}}
	}

	var warnings []Warning
	for i, row := range t.Rows {
		name := formats.Cell(row, keyCol)
		raw := formats.Cell(row, valCol)
		if name == "" {
			continue
		}
		if raw == "" {
			continue
		}
		rate, ok := parseRate(raw)
		if !ok {
			warnings = append(warnings, Warning{
				Bank: b.ID, Row: i + 2, Field: b.Value, Value: raw,
				Reason: "rate is not a number, copied as text",
			})
		}
		rates[name] = rate
	}
	return rates, warnings
}

// LoadRateMap detects the file format, decodes the first sheet and
// builds the map. Unreadable data degrades to an empty map.
func LoadRateMap(b config.Bank, filename string, data []byte) (RateMap, []Warning) {
	if len(data) == 0 {
		return BuildRateMap(b, nil)
	}
	dec := formats.Detect(filename, data)
	if dec == nil {
		return make(RateMap), []Warning{{Bank: b.ID, Reason: "unsupported file " + filename + ", all rates left blank"}}
	}
	t, err := dec.Decode(data, formats.Options{})
	if err != nil {
		return make(RateMap), []Warning{{Bank: b.ID, Reason: "unreadable file " + filename + ": " + err.Error()}}
	}
	return BuildRateMap(b, t)
}

// parseRate accepts plain numbers and percent-formatted cells ("90%"),
// which excelize returns as displayed text.
func parseRate(raw string) (Rate, bool) {
	s := strings.ReplaceAll(raw, ",", "")
	pct := strings.HasSuffix(s, "%")
	v, err := decimal.NewFromString(strings.TrimSpace(strings.TrimSuffix(s, "%")))
	if err != nil {
		return Rate{Raw: raw}, false
	}
	if pct {
		v = v.Shift(-2)
	}
	return Rate{Value: v, Raw: raw, Numeric: true}, true
}
