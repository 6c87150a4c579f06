// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemarst

package schemarst

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ScalarString is a plain or quoted text scalar.
	ScalarString ScalarKind = iota
	// ScalarBool is a true/false literal.
	ScalarBool
	// ScalarInt is an integer literal.
	ScalarInt
	// ScalarFloat is a floating point literal.
	ScalarFloat
	// ScalarNull is an explicit null value.
	ScalarNull
)

// maxAliasExpansions bounds YAML alias expansion per document.
const maxAliasExpansions = 10000

// ScalarKind classifies scalar document values.
type ScalarKind int

// Value is one decoded document fragment: Mapping, Sequence or Scalar.
type Value interface {
	isValue()
}

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value Value
}

// Mapping is an ordered key/value document fragment.
type Mapping struct {
	Entries []Entry
}

// Sequence is an ordered list document fragment.
type Sequence []Value

// Scalar is a leaf document value kept in its source text form.
type Scalar struct {
	Text string
	Kind ScalarKind
}

func (Mapping) isValue()  {}
func (Sequence) isValue() {}
func (Scalar) isValue()   {}

// Get returns value stored under key.
func (mapping Mapping) Get(key string) (Value, bool) {
	for _, entry := range mapping.Entries {
		if entry.Key == key {
			return entry.Value, true
		}
	}

	return nil, false
}

// Keys returns mapping keys in lexicographic order.
func (mapping Mapping) Keys() []string {
	keys := make([]string, 0, len(mapping.Entries))
	for _, entry := range mapping.Entries {
		keys = append(keys, entry.Key)
	}

	sort.Strings(keys)
	return keys
}

// set stores value under key, replacing a previous entry with the same key.
func (mapping *Mapping) set(key string, value Value) {
	for index := range mapping.Entries {
		if mapping.Entries[index].Key == key {
			mapping.Entries[index].Value = value
			return
		}
	}

	mapping.Entries = append(mapping.Entries, Entry{Key: key, Value: value})
}

// isEmptyValue reports whether document value carries nothing to build.
func isEmptyValue(value Value) bool {
	switch typed := value.(type) {
	case nil:
		return true
	case Mapping:
		return len(typed.Entries) == 0
	case Sequence:
		return len(typed) == 0
	case Scalar:
		return typed.Kind == ScalarNull
	default:
		return true
	}
}

// DecodeDocument decodes JSON or YAML schema bytes into a document value.
// Empty input and null documents decode to nil.
func DecodeDocument(data []byte) (Value, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '{' || trimmed[0] == '[' {
		value, err := decodeJSONDocument(trimmed)
		if err == nil {
			return value, nil
		}

		// Flow-style YAML also starts with a bracket.
		if yamlValue, yamlErr := decodeYAMLDocument(data); yamlErr == nil {
			return yamlValue, nil
		}

		return nil, err
	}

	return decodeYAMLDocument(data)
}

// decodeJSONDocument decodes JSON text keeping number literals intact.
func decodeJSONDocument(data []byte) (Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeDocument, err)
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after JSON value at offset %d", ErrDecodeDocument, decoder.InputOffset())
	}

	if raw == nil {
		return nil, nil
	}

	return valueFromJSON(raw), nil
}

// valueFromJSON converts generic JSON value into document value.
func valueFromJSON(raw any) Value {
	switch typed := raw.(type) {
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		mapping := Mapping{Entries: make([]Entry, 0, len(keys))}
		for _, key := range keys {
			mapping.Entries = append(mapping.Entries, Entry{Key: key, Value: valueFromJSON(typed[key])})
		}

		return mapping
	case []any:
		sequence := make(Sequence, 0, len(typed))
		for _, item := range typed {
			sequence = append(sequence, valueFromJSON(item))
		}

		return sequence
	case string:
		return Scalar{Kind: ScalarString, Text: typed}
	case bool:
		return Scalar{Kind: ScalarBool, Text: strconv.FormatBool(typed)}
	case json.Number:
		text := typed.String()
		if strings.ContainsAny(text, ".eE") {
			return Scalar{Kind: ScalarFloat, Text: text}
		}

		return Scalar{Kind: ScalarInt, Text: text}
	case nil:
		return Scalar{Kind: ScalarNull, Text: "null"}
	default:
		return Scalar{Kind: ScalarString, Text: fmt.Sprint(typed)}
	}
}

// decodeYAMLDocument decodes first YAML document into document value.
func decodeYAMLDocument(data []byte) (Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeDocument, err)
	}

	converter := yamlConverter{active: make(map[*yaml.Node]bool)}
	value, err := converter.value(&root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeDocument, err)
	}

	return value, nil
}

// yamlConverter turns a yaml.Node tree into document values, expanding aliases.
type yamlConverter struct {
	// active holds anchors whose expansion is in progress.
	active map[*yaml.Node]bool
	// expansions counts expanded aliases of the whole document.
	expansions int
}

// value converts yaml.Node tree into document value.
func (converter *yamlConverter) value(node *yaml.Node) (Value, error) {
	if node == nil || node.Kind == 0 {
		return nil, nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}

		value, err := converter.value(node.Content[0])
		if err != nil {
			return nil, err
		}

		if scalar, ok := value.(Scalar); ok && scalar.Kind == ScalarNull {
			return nil, nil
		}

		return value, nil

	case yaml.AliasNode:
		return converter.alias(node)

	case yaml.MappingNode:
		return converter.mapping(node)

	case yaml.SequenceNode:
		sequence := make(Sequence, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := converter.value(item)
			if err != nil {
				return nil, err
			}

			sequence = append(sequence, value)
		}

		return sequence, nil

	case yaml.ScalarNode:
		return scalarFromYAMLNode(node)

	default:
		return nil, fmt.Errorf("unsupported yaml node kind %d at line %d", node.Kind, node.Line)
	}
}

// alias expands an alias node, rejecting cycles and excessive expansion.
func (converter *yamlConverter) alias(node *yaml.Node) (Value, error) {
	target := node.Alias
	if target == nil {
		return nil, fmt.Errorf("unknown alias %q at line %d", node.Value, node.Line)
	}

	if converter.active[target] {
		return nil, fmt.Errorf("alias %q at line %d refers to itself", node.Value, node.Line)
	}

	converter.expansions++
	if converter.expansions > maxAliasExpansions {
		return nil, fmt.Errorf("document expands more than %d aliases", maxAliasExpansions)
	}

	converter.active[target] = true
	defer delete(converter.active, target)

	return converter.value(target)
}

// mapping converts YAML mapping and resolves "<<" merge keys.
func (converter *yamlConverter) mapping(node *yaml.Node) (Value, error) {
	mapping := Mapping{Entries: make([]Entry, 0, len(node.Content)/2)}
	merged := make([]Mapping, 0)

	for index := 0; index+1 < len(node.Content); index += 2 {
		keyNode := node.Content[index]
		valueNode := node.Content[index+1]

		value, err := converter.value(valueNode)
		if err != nil {
			return nil, err
		}

		if keyNode.ShortTag() == "!!merge" {
			merged = append(merged, mergeSources(value)...)
			continue
		}

		mapping.set(keyNode.Value, value)
	}

	for _, source := range merged {
		for _, entry := range source.Entries {
			if _, exists := mapping.Get(entry.Key); exists {
				continue
			}

			mapping.Entries = append(mapping.Entries, entry)
		}
	}

	return mapping, nil
}

// mergeSources returns mappings referenced by a YAML merge key value.
func mergeSources(value Value) []Mapping {
	switch typed := value.(type) {
	case Mapping:
		return []Mapping{typed}
	case Sequence:
		out := make([]Mapping, 0, len(typed))
		for _, item := range typed {
			if mapping, ok := item.(Mapping); ok {
				out = append(out, mapping)
			}
		}

		return out
	default:
		return nil
	}
}

// scalarFromYAMLNode classifies YAML scalar by its resolved tag.
func scalarFromYAMLNode(node *yaml.Node) (Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return Scalar{Kind: ScalarNull, Text: "null"}, nil
	case "!!bool":
		var value bool
		if err := node.Decode(&value); err != nil {
			return nil, err
		}

		return Scalar{Kind: ScalarBool, Text: strconv.FormatBool(value)}, nil
	case "!!int":
		return Scalar{Kind: ScalarInt, Text: node.Value}, nil
	case "!!float":
		return Scalar{Kind: ScalarFloat, Text: node.Value}, nil
	default:
		return Scalar{Kind: ScalarString, Text: node.Value}, nil
	}
}
