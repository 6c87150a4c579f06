// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemarst

package schemarst

import (
	"slices"
	"strconv"
	"strings"
)

// propertiesLabel names the schema node that owns named property subtrees.
const propertiesLabel = "properties"

// Node is one labeled vertex of the document tree.
//
// Value holds a structural key ("properties"), a synthetic wrapper label or a
// flattened "key: value" leaf. ID keeps the label the node was created with and
// is used in pointers even after Value changes.
type Node struct {
	Parent   *Node
	Value    string
	ID       string
	Children []*Node
	Level    int
}

// NewNode creates a node with trimmed value and appends it to parent children.
func NewNode(value string, parent *Node) *Node {
	value = strings.TrimSpace(value)
	node := &Node{
		Value:  value,
		ID:     value,
		Parent: parent,
	}

	if parent != nil {
		parent.Children = append(parent.Children, node)
		node.Level = parent.Level + 1
	}

	return node
}

// NewField creates a flattened "key: value" leaf below parent.
// Key and value are trimmed separately so an empty value keeps the separator.
func NewField(key, value string, parent *Node) *Node {
	node := NewNode(key, parent)
	node.Value = joinField(node.Value, strings.TrimSpace(value))
	node.ID = node.Value
	return node
}

// IsLeaf reports whether node has no children.
func (node *Node) IsLeaf() bool {
	return len(node.Children) == 0
}

// Ancestors returns the chain from root to parent, self excluded.
func (node *Node) Ancestors() []*Node {
	out := make([]*Node, 0, node.Level)
	for current := node.Parent; current != nil; current = current.Parent {
		out = append(out, current)
	}

	slices.Reverse(out)
	return out
}

// Equal reports structural equality: same value and equal children by position.
func (node *Node) Equal(other *Node) bool {
	if node == nil || other == nil {
		return node == other
	}

	if node.Value != other.Value || len(node.Children) != len(other.Children) {
		return false
	}

	for index, child := range node.Children {
		if !child.Equal(other.Children[index]) {
			return false
		}
	}

	return true
}

// Ancestor returns the closest ancestor whose value equals value.
func (node *Node) Ancestor(value string) *Node {
	for current := node.Parent; current != nil; current = current.Parent {
		if current.Value == value {
			return current
		}
	}

	return nil
}

// SearchParentSiblings searches depth-first through the subtrees of the
// parent's siblings and returns the first node whose value equals value.
func (node *Node) SearchParentSiblings(value string) *Node {
	if node.Parent == nil || node.Parent.Parent == nil {
		return nil
	}

	stack := make([]*Node, 0, len(node.Parent.Parent.Children))
	for _, sibling := range node.Parent.Parent.Children {
		if sibling == node.Parent {
			continue
		}

		stack = append(stack, sibling)
	}

	for len(stack) > 0 {
		current := stack[0]
		stack = stack[1:]

		if current.Value == value {
			return current
		}

		if len(current.Children) > 0 {
			stack = append(slices.Clone(current.Children), stack...)
		}
	}

	return nil
}

// RelativeSearch finds the "properties" node a reference from this node points into.
// Required items look through sibling subtrees, everything else walks ancestors.
func (node *Node) RelativeSearch(required bool) *Node {
	if required {
		return node.SearchParentSiblings(propertiesLabel)
	}

	return node.Ancestor(propertiesLabel)
}

// String renders the subtree as a tab-indented outline, one quoted value per line.
func (node *Node) String() string {
	var out strings.Builder
	node.writeOutline(&out, 0)
	return out.String()
}

// writeOutline appends node outline at the given indentation depth.
func (node *Node) writeOutline(out *strings.Builder, depth int) {
	out.WriteString(strings.Repeat("\t", depth))
	out.WriteString(strconv.Quote(node.Value))
	out.WriteByte('\n')

	for _, child := range node.Children {
		child.writeOutline(out, depth+1)
	}
}
