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
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// IndexFileName is the per-directory and master index page name.
	IndexFileName = "index.rst"
	// MasterIndexTitle titles the index placed at the output root.
	MasterIndexTitle = "Schemas Documentation"
	// RSTExtension is the extension of generated documents.
	RSTExtension = ".rst"

	// indexHeader opens the toctree listing of an index page.
	indexHeader = "\n.. toctree::\n\t:titlesonly:\n"
	// defaultDebounce delays watch re-conversion after the last change.
	defaultDebounce = 200 * time.Millisecond
)

// schemaExtensions are input file extensions converted by the batch driver.
var schemaExtensions = map[string]struct{}{
	".json": {},
	".yml":  {},
	".yaml": {},
}

// BatchOptions configures directory conversion.
type BatchOptions struct {
	// Logger receives progress records; nil discards them.
	Logger *slog.Logger
	// Options apply to every converted document. RootName is derived per file.
	Options
	// Workers bounds parallel conversions; zero uses runtime.NumCPU.
	Workers int
	// Debounce delays watch re-conversion after the last change; zero uses 200ms.
	Debounce time.Duration
}

// FileResult describes one converted schema file.
type FileResult struct {
	// Name is the extension-less path relative to the input root.
	Name   string
	Input  string
	Output string
}

// Report lists files written by one batch conversion.
type Report struct {
	Files   []FileResult
	Indexes []string
}

// conversionJob is one planned schema to document conversion.
type conversionJob struct {
	Name   string
	Input  string
	Output string
}

// directoryPlan pairs an input directory with its mirrored output directory.
type directoryPlan struct {
	Input  string
	Output string
	Names  []string
}

// batchPlan is the ordered list of directories and conversions of one run.
type batchPlan struct {
	Directories []directoryPlan
	Jobs        []conversionJob
}

// ConvertDir converts every schema under inputDir into outputDir, mirroring
// sub-directories and writing an index page per directory plus a master index.
// The first failed conversion cancels the remaining ones and is returned.
func ConvertDir(ctx context.Context, inputDir, outputDir string, opt BatchOptions) (Report, error) {
	logger := opt.logger()

	plan, err := planBatch(inputDir, outputDir)
	if err != nil {
		return Report{}, err
	}

	var rootNames []string
	report := Report{Indexes: make([]string, 0, len(plan.Directories)+1)}
	for _, dir := range plan.Directories {
		if err := os.MkdirAll(dir.Output, 0o750); err != nil {
			return report, fmt.Errorf("%w: create directory %q: %w", ErrWriteOutput, dir.Output, err)
		}

		// the master index takes the output root slot and lists root schemas itself
		if dir.Input == inputDir {
			rootNames = dir.Names
			continue
		}

		path := filepath.Join(dir.Output, IndexFileName)
		if err := writeOutputFile(path, indexPage(dir.Input, dir.Names)); err != nil {
			return report, err
		}

		report.Indexes = append(report.Indexes, path)
		logger.Debug("index written", slog.String("path", path))
	}

	results := make([]FileResult, len(plan.Jobs))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(opt.workers())

	for index, job := range plan.Jobs {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			rendered, err := renderJob(job, opt.Options)
			if err != nil {
				return err
			}

			if err := writeOutputFile(job.Output, rendered); err != nil {
				return err
			}

			results[index] = FileResult(job)
			logger.Debug("schema converted", slog.String("input", job.Input), slog.String("output", job.Output))
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return report, err
	}

	report.Files = results

	master, err := masterIndexPage(outputDir, rootNames)
	if err != nil {
		return report, err
	}

	masterPath := filepath.Join(outputDir, IndexFileName)
	if err := writeOutputFile(masterPath, master); err != nil {
		return report, err
	}

	report.Indexes = append(report.Indexes, masterPath)
	logger.Info("conversion finished",
		slog.Int("files", len(report.Files)),
		slog.Int("indexes", len(report.Indexes)),
	)

	return report, nil
}

// IndexPage returns index page content listing schema files of dir.
// Sub-directories are not visited.
func IndexPage(dir string) (string, error) {
	names, err := schemaFileNames(dir)
	if err != nil {
		return "", err
	}

	return indexPage(dir, names), nil
}

// MasterIndexPage returns the root index linking every nested index page under outputDir.
func MasterIndexPage(outputDir string) (string, error) {
	return masterIndexPage(outputDir, nil)
}

// masterIndexPage builds the master index, listing rootNames before nested indexes.
func masterIndexPage(outputDir string, rootNames []string) (string, error) {
	var content strings.Builder
	content.WriteString(MakeTitle(MasterIndexTitle, 0))
	content.WriteString(indexHeader)
	content.WriteString("\n")

	for _, name := range rootNames {
		content.WriteString("\t")
		content.WriteString(ChangeExtension(name, ""))
		content.WriteString("\n\n")
	}

	err := filepath.WalkDir(outputDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.IsDir() || path == outputDir {
			return nil
		}

		if _, err := os.Stat(filepath.Join(path, IndexFileName)); err != nil {
			return nil
		}

		rel, err := filepath.Rel(outputDir, path)
		if err != nil {
			return err
		}

		content.WriteString("\t")
		content.WriteString(filepath.ToSlash(filepath.Join(rel, ChangeExtension(IndexFileName, ""))))
		content.WriteString("\n\n")
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("scan output directory %q: %w", outputDir, err)
	}

	return content.String(), nil
}

// indexPage builds index page content from already collected schema names.
func indexPage(dir string, names []string) string {
	var content strings.Builder
	content.WriteString(MakeTitle(filepath.Base(filepath.Clean(dir)), 0))
	content.WriteString(indexHeader)

	for _, name := range names {
		content.WriteString("\n\t")
		content.WriteString(ChangeExtension(name, ""))
	}

	content.WriteString("\n")
	return content.String()
}

// planBatch walks inputDir and plans directories and conversions in lexical order.
func planBatch(inputDir, outputDir string) (batchPlan, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return batchPlan{}, fmt.Errorf("%w %q: %w", ErrInputPath, inputDir, err)
	}

	if !info.IsDir() {
		return batchPlan{}, fmt.Errorf("%w %q: not a directory", ErrInputPath, inputDir)
	}

	skipDir, _ := filepath.Abs(outputDir)

	var plan batchPlan
	err = filepath.WalkDir(inputDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !entry.IsDir() {
			return nil
		}

		if abs, absErr := filepath.Abs(path); absErr == nil && abs == skipDir && path != inputDir {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}

		names, err := schemaFileNames(path)
		if err != nil {
			return err
		}

		outDir := filepath.Join(outputDir, rel)
		plan.Directories = append(plan.Directories, directoryPlan{Input: path, Output: outDir, Names: names})

		for _, name := range names {
			plan.Jobs = append(plan.Jobs, conversionJob{
				Name:   filepath.ToSlash(filepath.Join(rel, ChangeExtension(name, ""))),
				Input:  filepath.Join(path, name),
				Output: filepath.Join(outDir, ChangeExtension(name, RSTExtension)),
			})
		}

		return nil
	})
	if err != nil {
		return batchPlan{}, fmt.Errorf("%w %q: %w", ErrInputPath, inputDir, err)
	}

	return plan, nil
}

// schemaFileNames lists schema files of dir sorted by name, keeping the first
// file of every extension-less name.
func schemaFileNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %q: %w", dir, err)
	}

	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isSchemaFile(entry.Name()) {
			continue
		}

		base := ChangeExtension(entry.Name(), "")
		if _, exists := seen[base]; exists {
			continue
		}

		seen[base] = struct{}{}
		out = append(out, entry.Name())
	}

	return out, nil
}

// isSchemaFile reports whether name has a convertible schema extension.
func isSchemaFile(name string) bool {
	_, ok := schemaExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// renderJob renders one planned schema file.
func renderJob(job conversionJob, opt Options) (string, error) {
	opt.RootName = ""
	opt.SourcePath = job.Input

	rendered, err := RenderFile(job.Input, opt)
	if err != nil {
		return "", fmt.Errorf("convert %q: %w", job.Input, err)
	}

	return rendered, nil
}

// writeOutputFile writes generated content to path.
func writeOutputFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("%w %q: %w", ErrWriteOutput, path, err)
	}

	return nil
}

// workers returns effective conversion parallelism.
func (opt BatchOptions) workers() int {
	if opt.Workers > 0 {
		return opt.Workers
	}

	return runtime.NumCPU()
}

// debounce returns effective watch debounce delay.
func (opt BatchOptions) debounce() time.Duration {
	if opt.Debounce > 0 {
		return opt.Debounce
	}

	return defaultDebounce
}

// logger returns configured logger or a discarding one.
func (opt BatchOptions) logger() *slog.Logger {
	if opt.Logger != nil {
		return opt.Logger
	}

	return slog.New(slog.DiscardHandler)
}
