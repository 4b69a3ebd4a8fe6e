package config

import (
	"fmt"
	"strings"
)

// AppConfig is the flattened view of [StructuredConfig] consumed by
// cmd/pool and internal/app.
type AppConfig struct {
	// DSN is the SQLite database path.
	DSN string
	// Currency is the label shown next to cost figures.
	Currency string
	// LogFile is where the TUI writes its log.
	LogFile string
	// LogLevel is the zerolog level name.
	LogLevel string
	// ExportPath, when set, selects export mode.
	ExportPath string
	// ExportFormat is "json" or "yaml".
	ExportFormat string
}

// ExportMode reports whether the binary should write a snapshot instead of
// starting the interactive UI.
func (c *AppConfig) ExportMode() bool {
	return c.ExportPath != ""
}

// GetAppConfig builds and validates the application config view from the
// merged structured configuration.
func GetAppConfig() (*AppConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	appCfg := newAppConfig(cfg)
	return appCfg, appCfg.validate()
}

func newAppConfig(cfg *StructuredConfig) *AppConfig {
	return &AppConfig{
		DSN:          strings.TrimSpace(cfg.Storage.DB.DSN),
		Currency:     cfg.App.Currency,
		LogFile:      cfg.Log.File,
		LogLevel:     cfg.Log.Level,
		ExportPath:   cfg.Export.Path,
		ExportFormat: strings.ToLower(cfg.Export.Format),
	}
}
