// build.go implements the CLI "build" command: it reads the inputs from
// disk, runs the pipeline and writes the workbook.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/avaropoint/pledgebook/config"
	"github.com/avaropoint/pledgebook/logger"
	"github.com/avaropoint/pledgebook/pipeline"
)

// cmdBuild builds the workbook. Arguments after the two base inputs are
// bank files (matched by name) or directories (searched for each bank's
// configured file name).
func cmdBuild(cfg *config.Config, opts options) error {
	positions, err := readSource(opts.args[0])
	if err != nil {
		return err
	}
	today, err := readSource(opts.args[1])
	if err != nil {
		return err
	}
	banks, err := collectBankFiles(cfg, opts.args[2:])
	if err != nil {
		return err
	}

	res, err := pipeline.Build(cfg, pipeline.Inputs{Positions: positions, Today: today, Banks: banks})
	if err != nil {
		return err
	}
	log := logger.ForRun(res.Report.RunID)
	for _, w := range res.Report.Warnings {
		log.Warnw("input degraded", "warning", w.String())
	}

	data, err := res.Bytes()
	if err != nil {
		return err
	}
	out := opts.out
	if out == "" {
		out = pipeline.OutputName(cfg, time.Now())
	}
	if err := writeAtomic(out, data); err != nil {
		return err
	}

	printProducts(res.Report)
	fmt.Printf("Written: %s (%s)\n", out, humanSize(len(data)))
	return nil
}

// readSource loads a base input. A missing file is reported by the
// pipeline as a missing base input.
func readSource(path string) (pipeline.Source, error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return pipeline.Source{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return pipeline.Source{Name: path, Data: data}, nil
}

func collectBankFiles(cfg *config.Config, paths []string) (map[string]pipeline.Source, error) {
	banks := make(map[string]pipeline.Source)
	var files []pipeline.Source
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("bank input %s: %w", p, err)
		}
		if fi.IsDir() {
			found, err := pipeline.BankFilesFromDir(cfg, p)
			if err != nil {
				return nil, err
			}
			for id, src := range found {
				banks[id] = src
			}
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		files = append(files, pipeline.Source{Name: p, Data: data})
	}
	for id, src := range pipeline.MatchBankFiles(cfg, files) {
		banks[id] = src
	}
	return banks, nil
}

// printProducts writes one line per product with its quantity and
// today's target.
func printProducts(rep pipeline.Report) {
	fmt.Printf("Positions:   %d in %d product(s)\n", rep.Positions, len(rep.Products))
	for _, p := range rep.Products {
		target := "-"
		if p.Planned {
			target = p.Target.String() + "w"
		}
		fmt.Printf("  %-24s %4d rows  %14sw  target %s\n", p.Product, p.Positions, p.Quantity.StringFixed(2), target)
	}
	if n := len(rep.Warnings); n > 0 {
		fmt.Printf("Warnings:    %d (see log)\n", n)
	}
}
