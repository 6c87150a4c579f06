// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemarst

package schemarst

import (
	"fmt"
	"strings"
)

const (
	// schemaRefKey is the JSON Schema reference keyword.
	schemaRefKey = "$ref"
	// rstRefMarker is the reStructuredText cross-reference role.
	rstRefMarker = ":ref:"
)

// PointerOf returns the JSON-pointer-like anchor of node.
// The root label is the document prefix, ancestor IDs form the path:
// "schema.json#/properties/name". A node without ancestors yields "<id>#/".
func PointerOf(node *Node) string {
	ancestors := node.Ancestors()
	if len(ancestors) == 0 {
		return node.ID + "#/"
	}

	root := ancestors[0]
	path := ""
	if rest := ancestors[1:]; len(rest) > 0 {
		ids := make([]string, 0, len(rest))
		for _, ancestor := range rest {
			ids = append(ids, ancestor.ID)
		}

		path = "/" + strings.Join(ids, "/")
	}

	return root.Value + "#" + path + "/" + node.ID
}

// ResolveReference links key to the nearest "properties" node relative to node.
// Empty key falls back to node ID. When no target is found the bare key is linked.
func ResolveReference(node *Node, required bool, key string) string {
	if key == "" {
		key = node.ID
	}

	target := node.RelativeSearch(required)
	if target == nil {
		return CrossReference(key)
	}

	return CrossReference(PointerOf(target) + "/" + key)
}

// ParseReferenceLiteral converts "$ref: path/file.json" or ":ref:path" into a
// cross-reference to the root of the referenced file.
func ParseReferenceLiteral(text string) (string, error) {
	text = strings.TrimSpace(text)

	var target string
	if rest, ok := strings.CutPrefix(text, rstRefMarker); ok {
		target = rest
	} else {
		key, value, found := SplitFirst(text, fieldSeparator)
		if !found || key != schemaRefKey {
			return "", fmt.Errorf("%w: expected %s or %s value, got %q", ErrInvalidReferenceFormat, schemaRefKey, rstRefMarker, text)
		}

		target = value
	}

	target = strings.TrimSpace(target)
	if index := strings.LastIndex(target, "/"); index >= 0 {
		target = target[index+1:]
	}

	return CrossReference(target + "#/"), nil
}

// SplitFirst splits text at the first separator into key and remainder.
// Found is false when separator does not occur; key is then the whole text.
func SplitFirst(text, separator string) (key, rest string, found bool) {
	index := strings.Index(text, separator)
	if index < 0 || separator == "" {
		return text, "", false
	}

	return text[:index], text[index+len(separator):], true
}
