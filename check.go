// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemarst

package schemarst

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/sync/errgroup"
)

// Drift describes a generated document that no longer matches its schema.
type Drift struct {
	// Name is the extension-less path relative to the input root.
	Name   string
	Input  string
	Output string
	// Patch is a textual patch turning the existing document into the fresh one.
	Patch string
	// Missing is set when the document was never generated.
	Missing bool
}

// CheckDir renders every schema under inputDir in memory and reports documents
// in outputDir that are missing or differ from the fresh rendering.
func CheckDir(ctx context.Context, inputDir, outputDir string, opt BatchOptions) ([]Drift, error) {
	plan, err := planBatch(inputDir, outputDir)
	if err != nil {
		return nil, err
	}

	drifts := make([]*Drift, len(plan.Jobs))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(opt.workers())

	for index, job := range plan.Jobs {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			drift, err := checkJob(job, opt.Options)
			if err != nil {
				return err
			}

			drifts[index] = drift
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	out := make([]Drift, 0, len(drifts))
	for _, drift := range drifts {
		if drift != nil {
			out = append(out, *drift)
		}
	}

	return out, nil
}

// checkJob compares one planned output with a fresh rendering.
func checkJob(job conversionJob, opt Options) (*Drift, error) {
	rendered, err := renderJob(job, opt)
	if err != nil {
		return nil, err
	}

	existing, err := os.ReadFile(job.Output)
	if errors.Is(err, fs.ErrNotExist) {
		return &Drift{Name: job.Name, Input: job.Input, Output: job.Output, Missing: true}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("read generated document %q: %w", job.Output, err)
	}

	if string(existing) == rendered {
		return nil, nil
	}

	return &Drift{
		Name:   job.Name,
		Input:  job.Input,
		Output: job.Output,
		Patch:  textPatch(string(existing), rendered),
	}, nil
}

// textPatch returns a diffmatchpatch patch from previous to current text.
func textPatch(previous, current string) string {
	dmp := diffmatchpatch.New()
	return dmp.PatchToText(dmp.PatchMake(previous, current))
}
