// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemarst

package schemarst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFromJSON decodes JSON text and builds a tree under a fresh root.
func buildFromJSON(t *testing.T, text string, opt BuildOptions) *Node {
	t.Helper()

	document, err := DecodeDocument([]byte(text))
	require.NoError(t, err)

	return BuildTree(document, NewNode("root", nil), opt)
}

// childValues lists values of node children in order.
func childValues(node *Node) []string {
	out := make([]string, 0, len(node.Children))
	for _, child := range node.Children {
		out = append(out, child.Value)
	}

	return out
}

func TestBuildTreeFlatMapping(t *testing.T) {
	t.Parallel()

	root := buildFromJSON(t, `{"value2": "bar", "value1": "foo"}`, BuildOptions{})

	assert.Equal(t, []string{"value1: foo", "value2: bar"}, childValues(root))
	for _, child := range root.Children {
		assert.True(t, child.IsLeaf())
		assert.Equal(t, 1, child.Level)
	}
}

func TestBuildTreeListOfMappings(t *testing.T) {
	t.Parallel()

	root := buildFromJSON(t, `{"list": [{"value": "foo"}]}`, BuildOptions{})

	expected := NewNode("root", nil)
	NewNode("value: foo", NewNode(ElementLabel, NewNode("list", expected)))
	assert.True(t, expected.Equal(root), root.String())
}

func TestBuildTreeEmptyDocument(t *testing.T) {
	t.Parallel()

	provided := NewNode("provided", nil)
	for _, document := range []Value{nil, Mapping{}, Sequence{}, Scalar{Kind: ScalarNull, Text: "null"}} {
		root := BuildTree(document, provided, BuildOptions{})
		assert.Equal(t, RootLabel, root.Value)
		assert.True(t, root.IsLeaf())
		assert.NotSame(t, provided, root)
	}
}

func TestBuildTreeNilRoot(t *testing.T) {
	t.Parallel()

	root := BuildTree(Mapping{Entries: []Entry{{Key: "a", Value: Scalar{Text: "1", Kind: ScalarInt}}}}, nil, BuildOptions{})
	assert.Equal(t, RootLabel, root.Value)
	assert.Equal(t, []string{"a: 1"}, childValues(root))
}

func TestBuildTreeScalarsAndBooleans(t *testing.T) {
	t.Parallel()

	root := buildFromJSON(t, `{"enabled": false, "count": 3, "ratio": 1.50, "enum": ["a", 2, true]}`, BuildOptions{})

	assert.Equal(t, []string{"count: 3", "enabled: false", "enum", "ratio: 1.50"}, childValues(root))
	assert.Equal(t, []string{"a", "2", "true"}, childValues(root.Children[2]))
}

func TestBuildTreeExcludedKeysApplyEverywhere(t *testing.T) {
	t.Parallel()

	root := buildFromJSON(t, `{
		"$schema": "x",
		"properties": {"a": {"uniqueItems": true, "items": {"additionalProperties": {"type": "string"}}}},
		"list": [{"uniqueItems": false, "type": "array"}]
	}`, BuildOptions{ExcludedKeys: DefaultExcludedKeys()})

	expected := NewNode("root", nil)
	NewNode("type: array", NewNode(ElementLabel, NewNode("list", expected)))
	NewNode("items", NewNode("a", NewNode("properties", expected)))
	assert.True(t, expected.Equal(root), root.String())
}

func TestBuildTreeNestedListWrappers(t *testing.T) {
	t.Parallel()

	root := buildFromJSON(t, `{"matrix": [[1, {"k": "v"}], "x"]}`, BuildOptions{})

	matrix := root.Children[0]
	assert.Equal(t, []string{"matrix", "x"}, childValues(matrix))
	assert.Equal(t, []string{"1", "k: v"}, childValues(matrix.Children[0]))
}

func TestBuildTreeIndexWrappers(t *testing.T) {
	t.Parallel()

	root := buildFromJSON(t, `{"list": [{"a": "1"}, {"b": "2"}]}`, BuildOptions{IndexWrappers: true, KeepWrapperLabels: true})

	assert.Equal(t, []string{"0", "1"}, childValues(root.Children[0]))
}

func TestBuildTreeAdoptsMemberTitle(t *testing.T) {
	t.Parallel()

	root := buildFromJSON(t, `{"anyOf": [{"title": "Circle", "type": "object"}, {"type": "null"}]}`, BuildOptions{})

	anyOf := root.Children[0]
	assert.Equal(t, []string{"Circle", ElementLabel}, childValues(anyOf))

	circle := anyOf.Children[0]
	assert.Equal(t, []string{"", "type: object"}, childValues(circle))
	assert.Equal(t, ElementLabel, circle.ID, "identity keeps the creation label")
}

func TestBuildTreeAdoptsTitleUnderIndexWrapper(t *testing.T) {
	t.Parallel()

	root := buildFromJSON(t, `{"oneOf": [{"title": "First"}]}`, BuildOptions{IndexWrappers: true})

	assert.Equal(t, []string{"First"}, childValues(root.Children[0]))
}

func TestBuildTreeKeepWrapperLabels(t *testing.T) {
	t.Parallel()

	root := buildFromJSON(t, `{"anyOf": [{"title": "Circle"}]}`, BuildOptions{KeepWrapperLabels: true})

	wrapper := root.Children[0].Children[0]
	assert.Equal(t, ElementLabel, wrapper.Value)
	assert.Equal(t, []string{"title: Circle"}, childValues(wrapper))
}

func TestBuildTreeTitleOutsideListStaysField(t *testing.T) {
	t.Parallel()

	root := buildFromJSON(t, `{"element": {"title": "Kept"}}`, BuildOptions{})

	assert.Equal(t, []string{"title: Kept"}, childValues(root.Children[0]))
}

func TestBuildTreeNonStringTitleStaysField(t *testing.T) {
	t.Parallel()

	root := buildFromJSON(t, `{"anyOf": [{"title": 5}, {"title": true}, {"title": null}]}`, BuildOptions{})

	anyOf := root.Children[0]
	assert.Equal(t, []string{ElementLabel, ElementLabel, ElementLabel}, childValues(anyOf))
	assert.Equal(t, []string{"title: 5"}, childValues(anyOf.Children[0]))
	assert.Equal(t, []string{"title: true"}, childValues(anyOf.Children[1]))
	assert.Equal(t, []string{"title: null"}, childValues(anyOf.Children[2]))
}

func TestBuildTreeSelfNamedMember(t *testing.T) {
	t.Parallel()

	root := buildFromJSON(t, `{"list": [{"type": "type"}]}`, BuildOptions{})

	wrapper := root.Children[0].Children[0]
	assert.Equal(t, ElementLabel, wrapper.Value)
	assert.Equal(t, []string{"type"}, childValues(wrapper))
	assert.Equal(t, []string{"type: type"}, childValues(wrapper.Children[0]))
}

func TestBuildTreeTitleNamingSiblingExpands(t *testing.T) {
	t.Parallel()

	root := buildFromJSON(t, `{"anyOf": [{"title": "name", "name": "Circle"}]}`, BuildOptions{})

	wrapper := root.Children[0].Children[0]
	assert.Equal(t, ElementLabel, wrapper.Value, "named reference wins over title adoption")
	assert.Equal(t, []string{"name: Circle", "title"}, childValues(wrapper))
	assert.Equal(t, []string{"name: Circle"}, childValues(wrapper.Children[1]))
}

func TestBuildTreeNamedReference(t *testing.T) {
	t.Parallel()

	root := buildFromJSON(t, `{"list": [{"kind": "shape", "shape": {"type": "string"}, "label": "caption", "caption": "text"}]}`, BuildOptions{})

	wrapper := root.Children[0].Children[0]
	assert.Equal(t, []string{"caption: text", "kind", "label", "shape"}, childValues(wrapper))

	label := wrapper.Children[2]
	assert.Equal(t, []string{"caption: text"}, childValues(label))

	kind := wrapper.Children[1]
	require.Len(t, kind.Children, 1)
	assert.Equal(t, "shape", kind.Children[0].Value)
	assert.Equal(t, []string{"type: string"}, childValues(kind.Children[0]))
}

func TestAdoptTitle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		parent string
		value  string
		want   bool
	}{
		{name: "wrapper", parent: ElementLabel, value: titleKey, want: true},
		{name: "index", parent: "12", value: titleKey, want: true},
		{name: "named parent", parent: "properties", value: titleKey},
		{name: "empty parent", parent: "", value: titleKey},
		{name: "not title", parent: ElementLabel, value: "type"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			parent := NewNode(tc.parent, nil)
			node := NewNode(tc.value, parent)
			got := adoptTitle(node, " Name ")

			assert.Equal(t, tc.want, got)
			if tc.want {
				assert.Equal(t, "Name", parent.Value)
				assert.Empty(t, node.Value)
				return
			}

			assert.Equal(t, tc.parent, parent.Value)
			assert.Equal(t, tc.value, node.Value)
		})
	}
}
