// Package pipeline runs a whole build: it normalizes the position
// export, reads today's borrowing targets, builds every bank's rate
// lookup and lays out the three output sheets. A build either returns a
// complete workbook or an error; nothing partial is produced.
package pipeline

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avaropoint/pledgebook/config"
	apperrors "github.com/avaropoint/pledgebook/errors"
	"github.com/avaropoint/pledgebook/formats"
	_ "github.com/avaropoint/pledgebook/formats/csv"
	_ "github.com/avaropoint/pledgebook/formats/xlsx"
	"github.com/avaropoint/pledgebook/logger"
	"github.com/avaropoint/pledgebook/parsers/bank"
	"github.com/avaropoint/pledgebook/parsers/position"
	"github.com/avaropoint/pledgebook/report"
)

// Source is one uploaded or on-disk input file.
type Source struct {
	Name string
	Data []byte
}

// Inputs are the three inputs of a build. Banks is keyed by bank ID;
// banks without an entry get an empty rate lookup.
type Inputs struct {
	Positions Source
	Today     Source
	Banks     map[string]Source
}

// Result is a finished build.
type Result struct {
	Workbook *report.Workbook
	Report   Report
}

// Report summarizes a build for logs and callers.
type Report struct {
	RunID     string
	Positions int
	Products  []ProductTotal
	Warnings  []Warning
}

// ProductTotal is the quantity one product holds, with its target when
// the product is planned today.
type ProductTotal struct {
	Product   string
	Positions int
	Quantity  decimal.Decimal
	Planned   bool
	Target    decimal.Decimal
}

// Build runs the pipeline with an immutable configuration.
func Build(cfg *config.Config, in Inputs) (*Result, error) {
	runID := uuid.NewString()
	log := logger.ForRun(runID)

	if len(in.Positions.Data) == 0 || len(in.Today.Data) == 0 {
		return nil, apperrors.ErrBaseInputs
	}

	var warnings []Warning

	posTable, err := decode(in.Positions, formats.Options{Sheet: cfg.Sheets.Source})
	if err != nil {
		return nil, err
	}
	records, posWarnings, err := position.Normalize(posTable, cfg.Positions)
	if err != nil {
		return nil, err
	}
	for _, w := range posWarnings {
		warnings = append(warnings, fromPosition(w))
	}

	todayTable, err := decode(in.Today, formats.Options{NoHeader: true})
	if err != nil {
		return nil, err
	}
	targets, targetWarnings, err := position.ReadTargets(todayTable)
	if err != nil {
		return nil, err
	}
	for _, w := range targetWarnings {
		warnings = append(warnings, fromPosition(w))
	}

	rates := make([]bank.RateMap, len(cfg.Banks))
	for i, b := range cfg.Banks {
		var bw []bank.Warning
		if src, ok := in.Banks[b.ID]; ok {
			rates[i], bw = bank.LoadRateMap(b, src.Name, src.Data)
		} else {
			rates[i], bw = bank.BuildRateMap(b, nil)
		}
		for _, w := range bw {
			warnings = append(warnings, fromBank(w))
		}
		log.Debugw("rate lookup built", "bank", b.ID, "bonds", len(rates[i]))
	}

	idx := position.NewIndex(records)
	var today []string
	for _, p := range targets.Products() {
		if idx.Has(p) {
			today = append(today, p)
		}
	}

	all := report.LayoutSheet(cfg.Sheets.All, report.Detail{
		Config: cfg, Index: idx, Rates: rates, Products: idx.Products(),
	})
	todaySheet := report.LayoutSheet(cfg.Sheets.Today, report.Detail{
		Config: cfg, Index: idx, Rates: rates, Products: today, Targets: targets,
	})
	summary := report.BuildSummary(cfg.Sheets.Summary, cfg.Sheets.All, cfg, targets)
	all.Hide(cfg.Layout.ProductKey)
	todaySheet.Hide(cfg.Layout.ProductKey)

	rep := Report{RunID: runID, Positions: idx.Len(), Warnings: warnings}
	for _, p := range idx.Products() {
		amt, planned := targets.Amount(p)
		rep.Products = append(rep.Products, ProductTotal{
			Product:   p,
			Positions: len(idx.Records(p)),
			Quantity:  idx.Quantity(p),
			Planned:   planned,
			Target:    amt,
		})
	}

	log.Infow("workbook built",
		"positions", rep.Positions,
		"products", len(rep.Products),
		"today", len(today),
		"planned", targets.Len(),
		"warnings", len(warnings),
	)

	return &Result{
		Workbook: &report.Workbook{Sheets: []*report.Sheet{all, todaySheet, summary}},
		Report:   rep,
	}, nil
}

// Bytes renders the result as .xlsx content.
func (r *Result) Bytes() ([]byte, error) {
	data, err := report.Bytes(r.Workbook)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrRender, err)
	}
	return data, nil
}

// decode detects the format of a base input and decodes it. Any
// failure is fatal for the build.
func decode(src Source, opts formats.Options) (*formats.Table, error) {
	dec := formats.Detect(src.Name, src.Data)
	if dec == nil {
		return nil, apperrors.Wrap(apperrors.ErrUnsupported, fmt.Errorf("%s", src.Name))
	}
	t, err := dec.Decode(src.Data, opts)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnreadableSource, fmt.Errorf("%s: %w", src.Name, err))
	}
	return t, nil
}
