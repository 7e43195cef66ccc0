// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 dsdgdxxx

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/dsdgdxxx/grok2api/internal/logger"
)

// truthy is the only set of values a boolean-typed override resolves true
// for. Comparison is case-insensitive; anything else is false.
var truthy = map[string]struct{}{
	"true": {},
	"1":    {},
	"yes":  {},
	"on":   {},
}

// applyOverrides upserts environment values into the baseline mapping
// according to the section's override table. An absent variable leaves the
// baseline entry alone. An integer value that fails to parse is discarded
// and the baseline entry is kept; the load never aborts over it.
func applyOverrides(values map[string]any, rules []overrideRule, log *logger.Logger) {
	for _, rule := range rules {
		raw, ok := os.LookupEnv(rule.env)
		if !ok {
			continue
		}

		switch rule.kind {
		case KindBool:
			_, isTrue := truthy[strings.ToLower(raw)]
			values[rule.key] = isTrue
		case KindInt:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				log.Warn().
					Str("env", rule.env).
					Str("value", raw).
					Msg("environment value is not an integer, keeping baseline value")
				continue
			}
			values[rule.key] = n
		default:
			values[rule.key] = raw
		}
	}
}

// Bootstrap holds the process-level settings needed before the resolver
// exists: where the settings document lives and how the admin API is
// exposed.
//
// Struct tags:
//   - env        — environment variable name (caarlos0/env).
//   - envDefault — value used when the variable is absent.
type Bootstrap struct {
	// SettingsPath is the path to the TOML settings document, relative to
	// the installation root.
	// Env: SETTINGS_PATH
	SettingsPath string `env:"SETTINGS_PATH" envDefault:"data/setting.toml"`

	// StorageDSN selects the SQLite persistence backend when non-empty;
	// empty keeps the direct-file path.
	// Env: STORAGE_DSN
	StorageDSN string `env:"STORAGE_DSN"`

	// ListenAddress is the TCP address the admin API listens on, in
	// "host:port" format.
	// Env: LISTEN_ADDRESS
	ListenAddress string `env:"LISTEN_ADDRESS" envDefault:":8000"`
}

// LoadBootstrap populates Bootstrap from environment variables using the
// caarlos0/env library.
func LoadBootstrap() (Bootstrap, error) {
	var b Bootstrap
	if err := env.Parse(&b); err != nil {
		return Bootstrap{}, fmt.Errorf("error getting env configs: %w", err)
	}
	return b, nil
}
