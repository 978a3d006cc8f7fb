// rates.go implements the CLI "rates" command that displays the rate
// lookup built from one bank's collateral file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/avaropoint/pledgebook/config"
	_ "github.com/avaropoint/pledgebook/formats/csv"
	_ "github.com/avaropoint/pledgebook/formats/xlsx"
	"github.com/avaropoint/pledgebook/parsers/bank"
)

// cmdRates prints every bond name and rate the bank's file yields,
// followed by any warnings.
func cmdRates(cfg *config.Config, bankID, path string) {
	var b *config.Bank
	for i := range cfg.Banks {
		if cfg.Banks[i].ID == bankID {
			b = &cfg.Banks[i]
		}
	}
	if b == nil {
		fmt.Fprintf(os.Stderr, "Unknown bank: %s (roster: %s)\n", bankID, strings.Join(cfg.BankIDs(), ", "))
		os.Exit(1)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
		os.Exit(1)
	}

	rates, warnings := bank.LoadRateMap(*b, filepath.Base(path), data)
	fmt.Printf("Bank:        %s (%s → %s)\n", b.ID, b.Key, b.Value)
	fmt.Printf("File:        %s (%s)\n", filepath.Base(path), humanSize(len(data)))
	fmt.Printf("Bonds:       %d\n", len(rates))
	fmt.Println(strings.Repeat("─", 60))

	names := make([]string, 0, len(rates))
	for name := range rates {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r := rates[name]
		if r.Numeric {
			fmt.Printf("  %-40s %s\n", name, r.Value.String())
		} else {
			fmt.Printf("  %-40s %q (text)\n", name, r.Raw)
		}
	}
	for _, w := range warnings {
		fmt.Printf("Warning: %s\n", w)
	}
}
