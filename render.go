// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemarst

package schemarst

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// defaultHeader prefixes every generated document.
	defaultHeader = ".. This file is generated by schemarst; do not edit it by hand.\n"
	// jsonExtension is the extension root labels are normalized to.
	jsonExtension = ".json"
)

// Options configures conversion of one schema document.
type Options struct {
	// RootName labels the tree root and prefixes every anchor.
	// Defaults to SourcePath base name with a .json extension, then RootLabel.
	RootName string
	// SourcePath is the schema file the document came from.
	SourcePath string
	// Header replaces the generated-file comment placed before the document.
	Header string
	// ExcludedKeys are document keys ignored while building. Nil selects
	// DefaultExcludedKeys, an empty non-nil slice excludes nothing.
	ExcludedKeys []string
	// IndexWrappers labels anonymous list members by position.
	IndexWrappers bool
	// KeepWrapperLabels keeps synthetic labels instead of adopting member titles.
	KeepWrapperLabels bool
}

// RenderFile reads schema from file and renders reStructuredText documentation.
func RenderFile(path string, opt Options) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadSchemaFile, err)
	}

	if strings.TrimSpace(opt.SourcePath) == "" {
		opt.SourcePath = path
	}

	return Render(data, opt)
}

// Render converts JSON or YAML schema bytes into a reStructuredText document.
func Render(data []byte, opt Options) (string, error) {
	document, err := DecodeDocument(data)
	if err != nil {
		return "", err
	}

	return RenderValue(document, opt)
}

// RenderValue converts a decoded document into a reStructuredText document.
func RenderValue(document Value, opt Options) (string, error) {
	root := NewNode(opt.rootName(), nil)
	tree := BuildTree(document, root, opt.buildOptions())

	body, err := RenderTree(tree)
	if err != nil {
		return "", err
	}

	header := opt.Header
	if header == "" {
		header = defaultHeader
	}

	return header + body, nil
}

// ChangeExtension replaces the extension of name with ext; empty ext strips it.
func ChangeExtension(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}

// rootName resolves the tree root label.
func (opt Options) rootName() string {
	if name := strings.TrimSpace(opt.RootName); name != "" {
		return name
	}

	if source := strings.TrimSpace(opt.SourcePath); source != "" {
		return ChangeExtension(filepath.Base(source), jsonExtension)
	}

	return RootLabel
}

// buildOptions maps conversion options to tree construction options.
func (opt Options) buildOptions() BuildOptions {
	excluded := opt.ExcludedKeys
	if excluded == nil {
		excluded = DefaultExcludedKeys()
	}

	return BuildOptions{
		ExcludedKeys:      excluded,
		IndexWrappers:     opt.IndexWrappers,
		KeepWrapperLabels: opt.KeepWrapperLabels,
	}
}
