// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemarst

package schemarst

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// watchResult is one report delivered by Watch.
type watchResult struct {
	report Report
	err    error
}

// nextWatchResult waits for the next report or fails the test.
func nextWatchResult(t *testing.T, results <-chan watchResult) watchResult {
	t.Helper()

	select {
	case result := <-results:
		return result
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for watch report")
		return watchResult{}
	}
}

// renameIntoPlace writes content next to path and renames it, producing one event.
func renameIntoPlace(t *testing.T, path, content string) {
	t.Helper()

	staging := path + ".tmp"
	writeTestFile(t, staging, content)
	require.NoError(t, os.Rename(staging, path))
}

func TestWatchReconvertsOnChange(t *testing.T) {
	t.Parallel()

	input := t.TempDir()
	output := t.TempDir()
	writeTestFile(t, filepath.Join(input, "a.json"), `{"type": "string"}`)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan watchResult, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, input, output, BatchOptions{Debounce: 20 * time.Millisecond}, func(report Report, err error) {
			results <- watchResult{report: report, err: err}
		})
	}()

	first := nextWatchResult(t, results)
	require.NoError(t, first.err)
	require.Len(t, first.report.Files, 1)

	renameIntoPlace(t, filepath.Join(input, "b.yml"), "type: integer\n")

	second := nextWatchResult(t, results)
	require.NoError(t, second.err)
	require.Len(t, second.report.Files, 2)
	assert.Contains(t, readTestFile(t, filepath.Join(output, "b.rst")), ":type: ``integer``")

	renameIntoPlace(t, filepath.Join(input, "broken.json"), `{"a": `)

	third := nextWatchResult(t, results)
	require.ErrorIs(t, third.err, ErrDecodeDocument)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchInvalidInput(t *testing.T) {
	t.Parallel()

	err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing"), t.TempDir(), BatchOptions{}, nil)
	require.ErrorIs(t, err, ErrInputPath)
}
