// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemarst

package schemarst

import (
	"strconv"
	"strings"
)

const (
	// RootLabel labels the root of a tree built without a caller-provided root.
	RootLabel = "Root"
	// ElementLabel labels synthetic wrappers of anonymous list members.
	ElementLabel = "element"
	// titleKey is the member key whose text may replace a wrapper label.
	titleKey = "title"
	// fieldSeparator joins flattened "key: value" leaves.
	fieldSeparator = ": "
)

// BuildOptions configures tree construction.
type BuildOptions struct {
	// ExcludedKeys are mapping keys skipped everywhere in the document.
	ExcludedKeys []string
	// IndexWrappers labels anonymous list members by position instead of ElementLabel.
	IndexWrappers bool
	// KeepWrapperLabels disables replacing wrapper labels with member titles.
	KeepWrapperLabels bool
}

// treeBuilder walks one document; it holds only per-call configuration.
type treeBuilder struct {
	excluded          map[string]struct{}
	indexWrappers     bool
	keepWrapperLabels bool
}

// BuildTree appends the nodes of document below root and returns root.
// An empty or absent document yields a fresh childless RootLabel node.
func BuildTree(document Value, root *Node, opt BuildOptions) *Node {
	if isEmptyValue(document) {
		return NewNode(RootLabel, nil)
	}

	if root == nil {
		root = NewNode(RootLabel, nil)
	}

	builder := newTreeBuilder(opt)
	builder.buildValue(document, root, "")
	return root
}

// newTreeBuilder prepares immutable builder state from options.
func newTreeBuilder(opt BuildOptions) *treeBuilder {
	excluded := make(map[string]struct{}, len(opt.ExcludedKeys))
	for _, key := range opt.ExcludedKeys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		excluded[key] = struct{}{}
	}

	return &treeBuilder{
		excluded:          excluded,
		indexWrappers:     opt.IndexWrappers,
		keepWrapperLabels: opt.KeepWrapperLabels,
	}
}

// buildValue dispatches on document fragment shape.
func (builder *treeBuilder) buildValue(value Value, parent *Node, context string) {
	switch typed := value.(type) {
	case Mapping:
		builder.buildMapping(typed, parent, false)
	case Sequence:
		builder.buildSequence(typed, parent, context)
	case Scalar:
		NewNode(typed.Text, parent)
	}
}

// buildMapping adds mapping keys below parent in lexicographic order.
// Member mappings belong to anonymous list elements and resolve named references.
func (builder *treeBuilder) buildMapping(mapping Mapping, parent *Node, member bool) {
	for _, key := range mapping.Keys() {
		if builder.isExcluded(key) {
			continue
		}

		value, _ := mapping.Get(key)
		switch typed := value.(type) {
		case Mapping:
			child := NewNode(key, parent)
			builder.buildMapping(typed, child, false)
		case Sequence:
			child := NewNode(key, parent)
			builder.buildSequence(typed, child, key)
		case Scalar:
			if member {
				builder.buildMember(key, typed, mapping, parent)
				continue
			}

			NewField(key, typed.Text, parent)
		}
	}
}

// buildSequence adds list members below parent.
// Mapping and list members get a synthetic wrapper, scalars become leaves.
func (builder *treeBuilder) buildSequence(sequence Sequence, parent *Node, context string) {
	for index, item := range sequence {
		switch typed := item.(type) {
		case Mapping:
			wrapper := NewNode(builder.wrapperLabel("", index), parent)
			builder.buildMapping(typed, wrapper, true)
		case Sequence:
			wrapper := NewNode(builder.wrapperLabel(context, index), parent)
			builder.buildNestedSequence(typed, wrapper, context)
		case Scalar:
			NewNode(typed.Text, parent)
		}
	}
}

// buildNestedSequence inlines members of a list nested in a list into its wrapper.
func (builder *treeBuilder) buildNestedSequence(sequence Sequence, wrapper *Node, context string) {
	for index, item := range sequence {
		switch typed := item.(type) {
		case Mapping:
			builder.buildMapping(typed, wrapper, true)
		case Sequence:
			nested := NewNode(builder.wrapperLabel(context, index), wrapper)
			builder.buildNestedSequence(typed, nested, context)
		case Scalar:
			NewNode(typed.Text, wrapper)
		}
	}
}

// buildMember adds one scalar member of an anonymous list element.
// Text naming a key of the same element expands that key; otherwise a string
// title may rename the wrapper.
func (builder *treeBuilder) buildMember(key string, scalar Scalar, owner Mapping, parent *Node) {
	if scalar.Kind != ScalarString {
		NewField(key, scalar.Text, parent)
		return
	}

	if target, ok := owner.Get(scalar.Text); ok && !builder.isExcluded(scalar.Text) {
		builder.buildNamedReference(key, scalar.Text, target, parent)
		return
	}

	if key == titleKey && !builder.keepWrapperLabels {
		node := NewNode(key, parent)
		if !adoptTitle(node, scalar.Text) {
			node.Value = joinField(node.Value, strings.TrimSpace(scalar.Text))
			node.ID = node.Value
		}

		return
	}

	NewField(key, scalar.Text, parent)
}

// buildNamedReference expands a member whose text names a sibling key of the same element.
func (builder *treeBuilder) buildNamedReference(key, name string, target Value, parent *Node) {
	child := NewNode(key, parent)

	switch typed := target.(type) {
	case Scalar:
		NewField(name, typed.Text, child)
	case Mapping:
		named := NewNode(name, child)
		builder.buildMapping(typed, named, false)
	case Sequence:
		named := NewNode(name, child)
		builder.buildSequence(typed, named, name)
	}
}

// wrapperLabel returns label for a synthetic list member wrapper.
func (builder *treeBuilder) wrapperLabel(context string, index int) string {
	if builder.indexWrappers {
		return strconv.Itoa(index)
	}

	if context != "" {
		return context
	}

	return ElementLabel
}

// isExcluded reports whether key is configured to be skipped.
func (builder *treeBuilder) isExcluded(key string) bool {
	_, ok := builder.excluded[key]
	return ok
}

// adoptTitle moves title text onto a throwaway-labeled parent and blanks the title node.
// It reports false and leaves both nodes untouched when the rule does not apply.
func adoptTitle(node *Node, title string) bool {
	if node.Value != titleKey || node.Parent == nil {
		return false
	}

	if !isThrowawayLabel(node.Parent.Value) {
		return false
	}

	node.Parent.Value = strings.TrimSpace(title)
	node.Value = ""
	return true
}

// isThrowawayLabel reports whether label is a wrapper marker or a list position.
func isThrowawayLabel(label string) bool {
	if label == ElementLabel {
		return true
	}

	if label == "" {
		return false
	}

	for _, r := range label {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// joinField flattens key and scalar text into one "key: value" label.
// The separator is kept when value is empty.
func joinField(key, value string) string {
	return key + fieldSeparator + value
}
