// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// StructuredConfig is the top-level configuration container for the
// equipment-pool application. It aggregates all sub-configurations and is
// populated by merging values from built-in defaults, environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings shown in the UI.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the local record store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Log holds the log destination and verbosity.
	Log Log `envPrefix:"LOG_"`

	// Export holds the non-interactive snapshot export settings.
	Export Export `envPrefix:"EXPORT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Currency is the label printed next to maintenance cost figures.
	// Env: APP_CURRENCY
	Currency string `env:"CURRENCY"`
}

// Storage groups the configuration for the storage backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the SQLite database file.
type DB struct {
	// DSN is the path (or file: URI) of the SQLite database
	// (e.g. "equipment_pool.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Log holds logging settings.
type Log struct {
	// File is the path the TUI appends its JSON log entries to.
	// Env: LOG_FILE
	File string `env:"FILE"`

	// Level is a zerolog level name ("debug", "info", ...).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// Export holds snapshot export settings. A non-empty Path switches the
// binary into export mode: the snapshot is written and the TUI is not
// started.
type Export struct {
	// Path is the destination file of the snapshot. "-" means stdout.
	// Env: EXPORT_PATH
	Path string `env:"PATH"`

	// Format is either "json" or "yaml".
	// Env: EXPORT_FORMAT
	Format string `env:"FORMAT"`
}

// Default values applied before any other source.
const (
	DefaultDSN          = "equipment_pool.db"
	DefaultCurrency     = "EUR"
	DefaultLogLevel     = "info"
	DefaultExportFormat = "json"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App:     App{Currency: DefaultCurrency},
		Storage: Storage{DB: DB{DSN: DefaultDSN}},
		Log:     Log{Level: DefaultLogLevel},
		Export:  Export{Format: DefaultExportFormat},
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  0. Built-in defaults
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags().
		withJSON().
		build()
}
