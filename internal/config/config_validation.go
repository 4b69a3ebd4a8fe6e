// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "strings"

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants shared by every entry point.
func (cfg *StructuredConfig) validate() error {
	switch strings.ToLower(cfg.Export.Format) {
	case "", "json", "yaml":
	default:
		return ErrInvalidExportConfigs
	}

	return nil
}

// validate checks the settings the application cannot start without.
// The record store must live in a file: an in-memory database would lose
// every record when the process exits.
func (cfg *AppConfig) validate() error {
	if cfg.DSN == "" || strings.Contains(cfg.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.ExportMode() && cfg.ExportFormat != "json" && cfg.ExportFormat != "yaml" {
		return ErrInvalidExportConfigs
	}

	return nil
}
