// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemarst

package schemarst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineMarkup(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "**bold**", Bold("bold"))
	assert.Equal(t, "*em*", Emphasize("em"))
	assert.Equal(t, "- item", Bullet("item"))
	assert.Equal(t, ":ref:`a#/`", CrossReference("a#/"))
	assert.Equal(t, ".. _a#/b:", Anchor("a#/b"))
}

func TestLiteral(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "``string``", Literal("string"))
	assert.Equal(t, "``a``, ``b``", Literal("a, b"))
	assert.Empty(t, Literal(""))
}

func TestKVField(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ":type: ``string``", KVField("type", "string"))
	assert.Equal(t, ":Required: :ref:`x`", KVField("Required", ":ref:`x`"))
}

func TestLineLevels(t *testing.T) {
	t.Parallel()

	symbols := "=*+-#~><."
	for level, symbol := range symbols {
		assert.Equal(t, string(symbol)+string(symbol)+string(symbol), Line(level, "abc"))
	}

	assert.Equal(t, "...", Line(9, "abc"))
	assert.Equal(t, "...", Line(42, "abc"))
	assert.Equal(t, "..", Line(-1, "ab"))
	assert.Equal(t, "====", Line(0, "äöüß"), "underline counts runes")
}

func TestMakeTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Name\n****", MakeTitle("Name", 1))
}

func TestSectionLink(t *testing.T) {
	t.Parallel()

	root := NewNode("doc.json", nil)
	node := NewNode("name", NewNode("properties", root))

	assert.Equal(t, "\n.. _doc.json#/properties/name:\n\n", SectionLink(node))
}

func TestContainer(t *testing.T) {
	t.Parallel()

	text, err := Container("Title", "title")
	require.NoError(t, err)
	assert.Equal(t, ".. container:: title\n\n Title", text)

	_, err = Container(" \n", "title")
	require.ErrorIs(t, err, ErrEmptyContainerContent)
}
