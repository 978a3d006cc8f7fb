// Package config holds the immutable settings shared by every pipeline
// stage: the bank roster, the workbook column layout, sheet names and
// the column names expected in the position export.
package config

import (
	"fmt"
	"strings"

	apperrors "github.com/avaropoint/pledgebook/errors"
)

// Config is the top-level configuration. Build it with Defaults or Load
// and treat it as read-only afterwards.
type Config struct {
	Env       string          `toml:"env"`
	Banks     []Bank          `toml:"banks"`
	Layout    Layout          `toml:"layout"`
	Sheets    SheetNames      `toml:"sheets"`
	Positions PositionColumns `toml:"positions"`
	Server    Server          `toml:"server"`
}

// Bank describes one lender in the roster. Key and Value name the
// columns of that bank's eligible-collateral file.
type Bank struct {
	ID    string `toml:"id"`
	Key   string `toml:"key"`
	Value string `toml:"value"`
	// File is the file name looked up in a bank directory; "%s" is
	// replaced by ID.
	File string `toml:"file"`
}

// FileName returns the file name this bank's collateral list is stored under.
func (b Bank) FileName() string {
	if strings.Contains(b.File, "%s") {
		return fmt.Sprintf(b.File, b.ID)
	}
	return b.File
}

// Layout fixes the 1-indexed column positions of the detail sheets.
type Layout struct {
	DiscountStart int `toml:"discount_start"`
	ResultStart   int `toml:"result_start"`
	ProductKey    int `toml:"product_key"`
}

// SheetNames are the output sheet titles, in workbook order.
type SheetNames struct {
	All     string `toml:"all"`
	Today   string `toml:"today"`
	Summary string `toml:"summary"`
	// Source is the sheet read from the position export.
	Source string `toml:"source"`
}

// PositionColumns are the header names of the position export.
type PositionColumns struct {
	Code      string `toml:"code"`
	Name      string `toml:"name"`
	Balance   string `toml:"balance"`
	Product   string `toml:"product"`
	Days      string `toml:"days"`
	Exercise  string `toml:"exercise"`
	Maturity  string `toml:"maturity"`
	Valuation string `toml:"valuation"`
	Rating    string `toml:"rating"`
	Perpetual string `toml:"perpetual"`
	Province  string `toml:"province"`
}

// Required lists the columns whose absence aborts a build.
func (p PositionColumns) Required() []string {
	return []string{p.Code, p.Name, p.Balance, p.Product, p.Days, p.Exercise, p.Maturity, p.Valuation}
}

// Server configures the upload front end.
type Server struct {
	Port          string `toml:"port"`
	BasePath      string `toml:"base_path"`
	MaxUploadMB   int64  `toml:"max_upload_mb"`
	OutputPattern string `toml:"output_pattern"`
	// BuildBurst caps concurrent build requests; 0 disables the limiter.
	BuildBurst int `toml:"build_burst"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() Config {
	return Config{
		Env: "development",
		Banks: []Bank{
			{ID: "光大理财", Key: "证券名称", Value: "质押率", File: "%s对券.xlsx"},
			{ID: "苏银", Key: "证券名称", Value: "质押率", File: "%s对券.xlsx"},
			{ID: "华夏", Key: "债券名称", Value: "质押率", File: "%s对券.xlsx"},
			{ID: "联储", Key: "证券名称", Value: "折扣", File: "%s对券.xlsx"},
			{ID: "申万", Key: "证券名称", Value: "质押率", File: "%s对券.xlsx"},
		},
		Layout: Layout{
			DiscountStart: 12,
			ResultStart:   19,
			ProductKey:    26,
		},
		Sheets: SheetNames{
			All:     "银行间可用券",
			Today:   "今日",
			Summary: "汇总",
			Source:  "Sheet1",
		},
		Positions: PositionColumns{
			Code:      "债券代码",
			Name:      "债券简称",
			Balance:   "余额（元）",
			Product:   "持有人账户简称",
			Days:      "行权/到期剩余天数",
			Exercise:  "行权",
			Maturity:  "到期",
			Valuation: "中债估值",
			Rating:    "主体评级",
			Perpetual: "是否永续",
			Province:  "省份",
		},
		Server: Server{
			Port:          "8080",
			MaxUploadMB:   32,
			OutputPattern: "银行间对账_%s.xlsx",
			BuildBurst:    10,
		},
	}
}

// fixedColumns is the count of leading columns (code through maturity).
const fixedColumns = 11

// Validate checks that the column blocks of the layout fit the roster
// without overlapping and that every bank is fully described.
func (c *Config) Validate() error {
	n := len(c.Banks)
	if n == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidConfig, "at least one bank is required")
	}
	seen := make(map[string]bool, n)
	for i, b := range c.Banks {
		if b.ID == "" || b.Key == "" || b.Value == "" {
			return apperrors.WithMessage(apperrors.ErrInvalidConfig,
				fmt.Sprintf("bank #%d needs id, key and value", i+1))
		}
		if seen[b.ID] {
			return apperrors.WithMessage(apperrors.ErrInvalidConfig, "duplicate bank id: "+b.ID)
		}
		seen[b.ID] = true
	}

	l := c.Layout
	if l.DiscountStart <= fixedColumns {
		return apperrors.WithMessage(apperrors.ErrInvalidConfig,
			fmt.Sprintf("discount_start must be after column %d", fixedColumns))
	}
	if l.DiscountStart+n > l.ResultStart {
		return apperrors.WithMessage(apperrors.ErrInvalidConfig,
			fmt.Sprintf("%d banks overflow the discount block into result_start %d", n, l.ResultStart))
	}
	if l.ResultStart+n > l.ProductKey {
		return apperrors.WithMessage(apperrors.ErrInvalidConfig,
			fmt.Sprintf("%d banks overflow the result block into product_key %d", n, l.ProductKey))
	}

	s := c.Sheets
	if s.All == "" || s.Today == "" || s.Summary == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidConfig, "sheet names must not be empty")
	}
	if s.All == s.Today || s.All == s.Summary || s.Today == s.Summary {
		return apperrors.WithMessage(apperrors.ErrInvalidConfig, "sheet names must be distinct")
	}
	for _, col := range c.Positions.Required() {
		if col == "" {
			return apperrors.WithMessage(apperrors.ErrInvalidConfig, "required position column name is empty")
		}
	}
	return nil
}

// BankIDs returns the roster in column order.
func (c *Config) BankIDs() []string {
	ids := make([]string, len(c.Banks))
	for i, b := range c.Banks {
		ids[i] = b.ID
	}
	return ids
}
