package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avaropoint/pledgebook/config"
)

// MatchBankFiles assigns uploaded files to banks by checking whether
// the file name contains the bank ID. A later file replaces an earlier
// match for the same bank.
func MatchBankFiles(cfg *config.Config, files []Source) map[string]Source {
	matched := make(map[string]Source)
	for _, f := range files {
		base := filepath.Base(f.Name)
		for _, b := range cfg.Banks {
			if strings.Contains(base, b.ID) {
				matched[b.ID] = f
			}
		}
	}
	return matched
}

// BankFilesFromDir reads each bank's file from dir using the configured
// file name. Missing files are skipped; the bank then gets an empty
// lookup. Any other read error is returned.
func BankFilesFromDir(cfg *config.Config, dir string) (map[string]Source, error) {
	out := make(map[string]Source)
	for _, b := range cfg.Banks {
		path := filepath.Join(dir, b.FileName())
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		out[b.ID] = Source{Name: path, Data: data}
	}
	return out, nil
}

// OutputName returns the default file name for a build made at now,
// e.g. 银行间对账_1015.xlsx.
func OutputName(cfg *config.Config, now time.Time) string {
	return fmt.Sprintf(cfg.Server.OutputPattern, now.Format("0102"))
}
