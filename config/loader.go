package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path (skipped when path is
// empty), merges it on top of the built-in defaults, applies
// PLEDGEBOOK_* environment variable overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		// A file that lists banks replaces the default roster entirely.
		cfg.Banks = nil
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
		if len(cfg.Banks) == 0 {
			cfg.Banks = Defaults().Banks
		}
		for i := range cfg.Banks {
			if cfg.Banks[i].File == "" {
				cfg.Banks[i].File = "%s对券.xlsx"
			}
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnvOverrides reads well-known PLEDGEBOOK_* environment variables
// and overwrites the corresponding Config fields when a variable is set.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Env, "PLEDGEBOOK_ENV")

	setStr(&cfg.Sheets.All, "PLEDGEBOOK_SHEET_ALL")
	setStr(&cfg.Sheets.Today, "PLEDGEBOOK_SHEET_TODAY")
	setStr(&cfg.Sheets.Summary, "PLEDGEBOOK_SHEET_SUMMARY")
	setStr(&cfg.Sheets.Source, "PLEDGEBOOK_SHEET_SOURCE")

	setStr(&cfg.Server.Port, "PLEDGEBOOK_PORT")
	setStr(&cfg.Server.BasePath, "PLEDGEBOOK_BASE_PATH")
	setInt64(&cfg.Server.MaxUploadMB, "PLEDGEBOOK_MAX_UPLOAD_MB")
	burst := int64(cfg.Server.BuildBurst)
	setInt64(&burst, "PLEDGEBOOK_BUILD_BURST")
	cfg.Server.BuildBurst = int(burst)

	// Comma-separated bank ids restrict and reorder the roster.
	if v := os.Getenv("PLEDGEBOOK_BANKS"); v != "" {
		byID := make(map[string]Bank, len(cfg.Banks))
		for _, b := range cfg.Banks {
			byID[b.ID] = b
		}
		var banks []Bank
		for _, id := range strings.Split(v, ",") {
			if b, ok := byID[strings.TrimSpace(id)]; ok {
				banks = append(banks, b)
			}
		}
		cfg.Banks = banks
	}
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}
