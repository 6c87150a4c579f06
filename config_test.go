// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemarst

package schemarst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExcludedKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b", "c"}, ParseExcludedKeys(" a, b ,,c,"))
	assert.Empty(t, ParseExcludedKeys(""))
	assert.Equal(t, []string{"uniqueItems", "additionalProperties", "$schema"}, DefaultExcludedKeys())
}

func TestLoadEnvConfigUnset(t *testing.T) {
	t.Setenv("SCHEMARST_EXCLUDED_KEYS", "")
	t.Setenv("SCHEMARST_WORKERS", "")

	cfg, err := LoadEnvConfig()
	require.NoError(t, err)
	assert.Equal(t, EnvConfig{}, cfg)
}

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("SCHEMARST_EXCLUDED_KEYS", "type,format")
	t.Setenv("SCHEMARST_WORKERS", "3")

	cfg, err := LoadEnvConfig()
	require.NoError(t, err)
	assert.Equal(t, "type,format", cfg.ExcludedKeys)
	assert.Equal(t, 3, cfg.Workers)
}

func TestLoadEnvConfigInvalidWorkers(t *testing.T) {
	t.Setenv("SCHEMARST_WORKERS", "many")

	_, err := LoadEnvConfig()
	require.ErrorIs(t, err, ErrLoadEnvConfig)
}
