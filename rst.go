// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemarst

package schemarst

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// adornmentSymbols holds section underline characters indexed by nesting level.
var adornmentSymbols = []rune{'=', '*', '+', '-', '#', '~', '>', '<', '.'}

// Bold wraps text as strong emphasis.
func Bold(text string) string {
	return "**" + text + "**"
}

// Emphasize wraps text as emphasis.
func Emphasize(text string) string {
	return "*" + text + "*"
}

// Literal renders comma-separated words as inline literals joined by plain commas.
func Literal(text string) string {
	if text == "" {
		return ""
	}

	words := strings.Split(text, ",")
	out := make([]string, 0, len(words))
	for _, word := range words {
		out = append(out, "``"+strings.TrimSpace(word)+"``")
	}

	return strings.Join(out, ", ")
}

// KVField renders a field list item; values without markup become literals.
func KVField(key, value string) string {
	if !strings.Contains(value, "`") {
		value = Literal(value)
	}

	return ":" + key + ": " + value
}

// Bullet renders one bulleted list item.
func Bullet(text string) string {
	return "- " + text
}

// CrossReference renders a :ref: role pointing at target.
func CrossReference(target string) string {
	return rstRefMarker + "`" + target + "`"
}

// Anchor renders a hidden reference target.
func Anchor(target string) string {
	return ".. _" + target + ":"
}

// SectionLink renders the anchor placed before a node section title.
func SectionLink(node *Node) string {
	return "\n" + Anchor(PointerOf(node)) + "\n\n"
}

// Line returns the underline for text at level; out of range levels use the last symbol.
func Line(level int, text string) string {
	if level < 0 || level >= len(adornmentSymbols) {
		level = len(adornmentSymbols) - 1
	}

	return strings.Repeat(string(adornmentSymbols[level]), utf8.RuneCountInString(text))
}

// MakeTitle renders text as a section title at level.
func MakeTitle(text string, level int) string {
	return text + "\n" + Line(level, text)
}

// Container renders a container directive with css class around content.
func Container(content, css string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("%w (class %q)", ErrEmptyContainerContent, css)
	}

	return ".. container:: " + css + "\n\n " + content, nil
}
