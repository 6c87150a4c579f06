// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemarst

package schemarst

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch converts inputDir once, then converts it again after schema files are
// written, created, removed or renamed, until ctx is cancelled. Every run result
// is passed to onReport; conversion errors do not stop watching.
func Watch(ctx context.Context, inputDir, outputDir string, opt BatchOptions, onReport func(Report, error)) error {
	if onReport == nil {
		onReport = func(Report, error) {}
	}

	if _, err := planBatch(inputDir, outputDir); err != nil {
		return err
	}

	logger := opt.logger()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWatch, err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	if err := addWatchDirs(watcher, inputDir); err != nil {
		return fmt.Errorf("%w: %w", ErrWatch, err)
	}

	onReport(ConvertDir(ctx, inputDir, outputDir, opt))

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addWatchDirs(watcher, event.Name); err != nil {
						logger.Warn("watch new directory", slog.String("path", event.Name), slog.String("err", err.Error()))
					}

					fire = time.After(opt.debounce())
					continue
				}
			}

			if !isSchemaFile(event.Name) {
				continue
			}

			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			logger.Debug("schema changed", slog.String("path", event.Name), slog.String("op", event.Op.String()))
			fire = time.After(opt.debounce())

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.Warn("watcher error", slog.String("err", err.Error()))

		case <-fire:
			fire = nil
			onReport(ConvertDir(ctx, inputDir, outputDir, opt))
		}
	}
}

// addWatchDirs registers root and every directory below it.
func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.IsDir() {
			return nil
		}

		return watcher.Add(path)
	})
}
