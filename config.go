// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemarst

package schemarst

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joeshaw/envdecode"
)

// DefaultExcludedKeysCSV is the default excluded key list in CLI form.
const DefaultExcludedKeysCSV = "uniqueItems,additionalProperties,$schema"

// EnvConfig holds conversion defaults read from the environment.
type EnvConfig struct {
	// ExcludedKeys is a comma separated key list. ENV: SCHEMARST_EXCLUDED_KEYS
	ExcludedKeys string `env:"SCHEMARST_EXCLUDED_KEYS"`
	// Workers bounds parallel batch conversions. ENV: SCHEMARST_WORKERS
	Workers int `env:"SCHEMARST_WORKERS,strict"`
}

// LoadEnvConfig decodes EnvConfig from environment variables.
// Unset variables leave zero values.
func LoadEnvConfig() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return EnvConfig{}, fmt.Errorf("%w: %w", ErrLoadEnvConfig, err)
	}

	return cfg, nil
}

// DefaultExcludedKeys returns keys skipped unless configured otherwise.
func DefaultExcludedKeys() []string {
	return ParseExcludedKeys(DefaultExcludedKeysCSV)
}

// ParseExcludedKeys splits comma separated keys, trimming blanks and empty items.
func ParseExcludedKeys(csv string) []string {
	out := make([]string, 0, strings.Count(csv, ",")+1)
	for key := range strings.SplitSeq(csv, ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		out = append(out, key)
	}

	return out
}
