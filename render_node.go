// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemarst

package schemarst

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

const (
	anyOfSentence = "May satisfy *any* of the following definitions:"
	allOfSentence = "Must satisfy *all* of the following definitions:"
	oneOfSentence = "Must satisfy *exactly one* of the following definitions:"
	itemsPhrase   = "Every element of %s is:"

	propertiesHeader = "Properties:"
	enumHeader       = "Allowed values:"
	requiredField    = "Required"
	referenceField   = "Reference"

	cssTitle    = "title"
	cssSubTitle = "sub-title"
)

// priorityKeys orders leading siblings outside "properties"; earlier keys come first.
var priorityKeys = []string{
	"title",
	"description",
	"type",
	"format",
	"minimum",
	"maximum",
	"pattern",
	"required",
}

// fieldRenames maps schema keywords to human readable field names.
var fieldRenames = map[string]string{
	"additionalProperties": "Additional properties allowed",
	"$schema":              "Schema",
	"uniqueItems":          "Unique Items",
}

// valueRenames maps boolean literals of renamed fields to Yes/No.
var valueRenames = map[string]string{
	"true":  "Yes",
	"false": "No",
	"True":  "Yes",
	"False": "No",
}

// collapsedLabels are sections that do not add a nesting level for their subtree.
var collapsedLabels = map[string]struct{}{
	"items": {},
}

// descriptionRefPattern matches relative :ref: roles; absolute "file#/path" targets are left alone.
var descriptionRefPattern = regexp.MustCompile(":ref:`[^#`]*`")

// fieldRule renders a flattened "key: value" node with special meaning.
type fieldRule func(node *Node, value string) (string, error)

// sectionRule renders a structural node; consumed means its children are already rendered.
type sectionRule func(node *Node) (text string, consumed bool, err error)

// fieldRules are keys whose value is transformed instead of printed as a field.
var fieldRules = map[string]fieldRule{
	schemaRefKey:  renderReferenceField,
	"title":       renderTitleField,
	"description": renderDescriptionField,
}

// summaryRules are sections summarized from their children instead of titled.
var summaryRules = map[string]sectionRule{
	propertiesLabel: renderPropertiesSummary,
	"anyOf":         fixedSentence(anyOfSentence),
	"allOf":         fixedSentence(allOfSentence),
	"oneOf":         fixedSentence(oneOfSentence),
	"enum":          renderEnumSummary,
	"required":      renderRequiredSummary,
}

// replacementRules are sections whose title is replaced by a generated sub-title.
var replacementRules = map[string]sectionRule{
	"items": renderItemsSection,
}

// nodeRendering is the output of one node render step.
type nodeRendering struct {
	Text       string
	Consumed   bool
	ChildShift int
}

// RenderTree renders every node of tree in depth-first order.
// Each node fragment is wrapped in newlines; leaf children are rendered before
// structural children and both groups are ordered by sortNodes.
func RenderTree(root *Node) (string, error) {
	var out strings.Builder
	if err := renderSubtree(&out, root, 0); err != nil {
		return "", err
	}

	return out.String(), nil
}

// renderSubtree renders node and recurses into children that were not consumed.
// shift is the number of collapsed ancestors between node and root.
func renderSubtree(out *strings.Builder, node *Node, shift int) error {
	rendering, err := renderNode(node, shift)
	if err != nil {
		return err
	}

	if rendering.Text != "" {
		out.WriteString("\n")
		out.WriteString(rendering.Text)
		out.WriteString("\n")
	}

	if rendering.Consumed {
		return nil
	}

	leaves, inners := partitionChildren(node.Children)
	for _, group := range [][]*Node{leaves, inners} {
		for _, child := range sortNodes(group, node.Value) {
			if err := renderSubtree(out, child, rendering.ChildShift); err != nil {
				return err
			}
		}
	}

	return nil
}

// renderNode dispatches node to field or section rendering.
func renderNode(node *Node, shift int) (nodeRendering, error) {
	if node.Value == "" {
		return nodeRendering{ChildShift: shift}, nil
	}

	if key, value, ok := SplitFirst(node.Value, fieldSeparator); ok {
		text, err := renderField(node, key, value)
		if err != nil {
			return nodeRendering{}, err
		}

		return nodeRendering{Text: text, ChildShift: shift}, nil
	}

	return renderSection(node, shift)
}

// renderField renders a flattened "key: value" node.
func renderField(node *Node, key, value string) (string, error) {
	if rule, ok := fieldRules[key]; ok {
		return rule(node, value)
	}

	if renamed, ok := fieldRenames[key]; ok {
		key = renamed
		if replaced, ok := valueRenames[value]; ok {
			value = replaced
		}
	}

	return KVField(key, value), nil
}

// renderSection renders a structural node as summary, replacement or titled section.
func renderSection(node *Node, shift int) (nodeRendering, error) {
	rendering := nodeRendering{ChildShift: shift}
	if _, ok := collapsedLabels[node.Value]; ok {
		rendering.ChildShift++
	}

	rule, ok := summaryRules[node.Value]
	if !ok {
		rule, ok = replacementRules[node.Value]
	}

	if ok {
		text, consumed, err := rule(node)
		if err != nil {
			return nodeRendering{}, err
		}

		rendering.Text = text
		rendering.Consumed = consumed
		return rendering, nil
	}

	title := ChangeExtension(node.Value, "")
	rendering.Text = SectionLink(node) + MakeTitle(title, node.Level-shift)
	return rendering, nil
}

// renderReferenceField renders "$ref" as a link to the referenced file root.
func renderReferenceField(node *Node, _ string) (string, error) {
	ref, err := ParseReferenceLiteral(node.Value)
	if err != nil {
		return "", err
	}

	return KVField(referenceField, ref), nil
}

// renderTitleField renders "title" as a title container.
func renderTitleField(_ *Node, value string) (string, error) {
	return Container(strings.TrimSpace(value), cssTitle)
}

// renderDescriptionField resolves relative :ref: roles inside description text.
func renderDescriptionField(node *Node, value string) (string, error) {
	description := descriptionRefPattern.ReplaceAllStringFunc(value, func(match string) string {
		key := strings.TrimSuffix(strings.TrimPrefix(match, rstRefMarker+"`"), "`")
		return ResolveReference(node, false, key)
	})

	return strings.TrimSpace(description), nil
}

// renderPropertiesSummary lists links to every property, sorted by name.
func renderPropertiesSummary(node *Node) (string, bool, error) {
	children := slices.Clone(node.Children)
	slices.SortStableFunc(children, compareNodeValues)

	links := make([]string, 0, len(children))
	for _, child := range children {
		links = append(links, CrossReference(PointerOf(child)))
	}

	return strings.TrimSpace(Bold(propertiesHeader) + " " + strings.Join(links, ", ")), false, nil
}

// renderEnumSummary renders children as a bulleted list of allowed values.
func renderEnumSummary(node *Node) (string, bool, error) {
	bullets := make([]string, 0, len(node.Children))
	for _, child := range node.Children {
		bullets = append(bullets, Bullet(child.Value))
	}

	return Bold(enumHeader) + "\n\n" + strings.Join(bullets, "\n"), true, nil
}

// renderRequiredSummary renders required names as links into sibling properties.
func renderRequiredSummary(node *Node) (string, bool, error) {
	refs := make([]string, 0, len(node.Children))
	for _, child := range node.Children {
		refs = append(refs, ResolveReference(child, true, ""))
	}

	return KVField(requiredField, strings.Join(refs, ", ")), true, nil
}

// renderItemsSection renders the sub-title introducing array element schema.
func renderItemsSection(node *Node) (string, bool, error) {
	owner := ""
	if node.Parent != nil {
		owner = node.Parent.Value
	}

	text, err := Container(fmt.Sprintf(itemsPhrase, Bold(owner)), cssSubTitle)
	return text, false, err
}

// fixedSentence returns a rule that replaces the section with sentence.
func fixedSentence(sentence string) sectionRule {
	return func(*Node) (string, bool, error) {
		return sentence, false, nil
	}
}

// partitionChildren splits nodes into leaves and inner nodes keeping order.
func partitionChildren(nodes []*Node) (leaves, inners []*Node) {
	for _, node := range nodes {
		if node.IsLeaf() {
			leaves = append(leaves, node)
			continue
		}

		inners = append(inners, node)
	}

	return leaves, inners
}

// sortNodes pulls the first node containing each priority key to the front,
// then appends the rest by value. Children of "properties" are only sorted by value.
func sortNodes(nodes []*Node, parentValue string) []*Node {
	rest := slices.Clone(nodes)
	priority := make([]*Node, 0, len(priorityKeys))

	if parentValue != propertiesLabel {
		for _, key := range priorityKeys {
			for index, node := range rest {
				if !strings.Contains(node.Value, key) {
					continue
				}

				priority = append(priority, node)
				rest = slices.Delete(rest, index, index+1)
				break
			}
		}
	}

	slices.SortStableFunc(rest, compareNodeValues)
	return append(priority, rest...)
}

// compareNodeValues orders nodes lexicographically by value.
func compareNodeValues(left, right *Node) int {
	return strings.Compare(left.Value, right.Value)
}
