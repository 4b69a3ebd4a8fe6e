// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// parseEnv builds a [StructuredConfig] from environ, a KEY=VALUE list as
// returned by os.Environ. Fields are mapped via the `env` and `envPrefix`
// tags. Values are trimmed, so "LOG_LEVEL= warn" still selects warn and a
// DSN never carries a trailing space into the file name.
func parseEnv(environ []string) (*StructuredConfig, error) {
	vars := env.ToMap(environ)
	for k, v := range vars {
		vars[k] = strings.TrimSpace(v)
	}

	cfg, err := env.ParseAsWithOptions[StructuredConfig](env.Options{Environment: vars})
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	return &cfg, nil
}
