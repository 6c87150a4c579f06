// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemarst

package schemarst

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDirUpToDate(t *testing.T) {
	t.Parallel()

	input := schemaTree(t)
	output := t.TempDir()

	_, err := ConvertDir(context.Background(), input, output, BatchOptions{})
	require.NoError(t, err)

	drifts, err := CheckDir(context.Background(), input, output, BatchOptions{})
	require.NoError(t, err)
	assert.Empty(t, drifts)
}

func TestCheckDirReportsDrift(t *testing.T) {
	t.Parallel()

	input := schemaTree(t)
	output := t.TempDir()

	_, err := ConvertDir(context.Background(), input, output, BatchOptions{})
	require.NoError(t, err)

	writeTestFile(t, filepath.Join(input, "models", "b.yml"), "title: B2\n")
	require.NoError(t, os.Remove(filepath.Join(output, "models", "deep", "c.rst")))

	drifts, err := CheckDir(context.Background(), input, output, BatchOptions{Workers: 1})
	require.NoError(t, err)
	require.Len(t, drifts, 2)

	assert.Equal(t, "models/b", drifts[0].Name)
	assert.False(t, drifts[0].Missing)
	assert.Contains(t, drifts[0].Patch, "@@ ")
	assert.Contains(t, drifts[0].Patch, "+2")

	assert.Equal(t, "models/deep/c", drifts[1].Name)
	assert.True(t, drifts[1].Missing)
	assert.Empty(t, drifts[1].Patch)
}

func TestCheckDirOptionsMatter(t *testing.T) {
	t.Parallel()

	input := t.TempDir()
	output := t.TempDir()
	writeTestFile(t, filepath.Join(input, "a.json"), `{"uniqueItems": true}`)

	_, err := ConvertDir(context.Background(), input, output, BatchOptions{})
	require.NoError(t, err)

	drifts, err := CheckDir(context.Background(), input, output, BatchOptions{Options: Options{ExcludedKeys: []string{}}})
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.Contains(t, drifts[0].Patch, "Unique Items")
}

func TestCheckDirInvalidInput(t *testing.T) {
	t.Parallel()

	_, err := CheckDir(context.Background(), filepath.Join(t.TempDir(), "missing"), t.TempDir(), BatchOptions{})
	require.ErrorIs(t, err, ErrInputPath)
}
