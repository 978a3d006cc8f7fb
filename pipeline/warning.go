package pipeline

import (
	"fmt"

	"github.com/avaropoint/pledgebook/parsers/bank"
	"github.com/avaropoint/pledgebook/parsers/position"
)

// Warning is a degradation from any stage. Row is 0 when the whole
// source was affected.
type Warning struct {
	Source string
	Row    int
	Field  string
	Value  string
	Reason string
}

func (w Warning) String() string {
	if w.Row == 0 {
		return fmt.Sprintf("%s: %s", w.Source, w.Reason)
	}
	return fmt.Sprintf("%s row %d %s=%q: %s", w.Source, w.Row, w.Field, w.Value, w.Reason)
}

func fromPosition(w position.Warning) Warning {
	return Warning{Source: w.Source, Row: w.Row, Field: w.Field, Value: w.Value, Reason: w.Reason}
}

func fromBank(w bank.Warning) Warning {
	return Warning{Source: "bank " + w.Bank, Row: w.Row, Field: w.Field, Value: w.Value, Reason: w.Reason}
}
