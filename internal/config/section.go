// Package config binds hierarchical YAML configuration onto typed values.
//
// Binding is driven by an explicit schema: every Field couples a key with a
// typed setter that validates the raw value. Missing keys keep the target's
// current value, failing keys are collected and reported together.
package config

import (
	"bytes"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/psychics/internal/errors"
)

// Section is one block of key-value configuration. Nested blocks are
// map[string]any, lists are []any, as decoded by yaml.v3. A null value
// counts as absent.
//
// Sections parsed from YAML also keep the mapping node they were decoded
// from, so Encode writes back the author's key order and comments.
type Section struct {
	values map[string]any
	node   *yaml.Node
	doc    *yaml.Node
}

// NewSection wraps values; a nil map gives an empty section
func NewSection(values map[string]any) *Section {
	if values == nil {
		values = make(map[string]any)
	}
	return &Section{values: values}
}

// ParseYAML decodes a YAML document whose root is a mapping
func ParseYAML(data []byte) (*Section, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse yaml")
	}
	if len(doc.Content) == 0 {
		return NewSection(nil), nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return NewSection(nil), nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.InvalidArgument("failed to parse yaml: document root must be a mapping")
	}

	var values map[string]any
	if err := root.Decode(&values); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse yaml")
	}

	section := NewSection(values)
	section.node = root
	section.doc = &doc
	return section, nil
}

// Get returns the raw value stored under key. A null value is reported as
// absent.
func (s *Section) Get(key string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Has reports whether key holds a non-null value
func (s *Section) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Set stores value under key, replacing a null placeholder in place
func (s *Section) Set(key string, value any) error {
	if s.node != nil {
		var v yaml.Node
		if err := v.Encode(value); err != nil {
			return errors.Wrapf(err, "failed to encode %s", key)
		}
		s.setNode(key, &v)
	}
	s.values[key] = value
	return nil
}

func (s *Section) setNode(key string, value *yaml.Node) {
	for i := 0; i+1 < len(s.node.Content); i += 2 {
		if s.node.Content[i].Value == key {
			s.node.Content[i+1] = value
			return
		}
	}
	s.node.Content = append(s.node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

func (s *Section) childNode(key string) *yaml.Node {
	if s.node == nil {
		return nil
	}
	for i := 0; i+1 < len(s.node.Content); i += 2 {
		if s.node.Content[i].Value == key {
			return s.node.Content[i+1]
		}
	}
	return nil
}

// Keys returns all keys, sorted
func (s *Section) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Sections returns the list of mappings stored under key, in order.
// A missing key yields no sections.
func (s *Section) Sections(key string) ([]*Section, error) {
	raw, ok := s.Get(key)
	if !ok {
		return nil, nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, errors.InvalidArgumentf("%s must be a list, got %T", key, raw)
	}

	var items []*yaml.Node
	if n := s.childNode(key); n != nil && n.Kind == yaml.SequenceNode && len(n.Content) == len(list) {
		items = n.Content
	}

	sections := make([]*Section, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, errors.InvalidArgumentf("%s[%d] must be a mapping, got %T", key, i, item)
		}
		sections[i] = NewSection(m)
		if items != nil && items[i].Kind == yaml.MappingNode {
			sections[i].node = items[i]
		}
	}
	return sections, nil
}

// ApplyDefaults writes every defaulted value of r into the section.
// It reports whether anything was written.
func (s *Section) ApplyDefaults(r *Result) (bool, error) {
	changed := false
	for _, key := range r.Defaulted {
		if s.Has(key) {
			continue
		}
		if v, ok := r.defaults[key]; ok {
			if err := s.Set(key, v); err != nil {
				return changed, err
			}
			changed = true
		}
	}
	return changed, nil
}

// Encode serializes the section back to YAML. Parsed documents keep their
// layout with new keys appended; sections built from a map are written with
// sorted keys.
func (s *Section) Encode() ([]byte, error) {
	var target any = s.values
	switch {
	case s.doc != nil:
		target = s.doc
	case s.node != nil:
		target = s.node
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(target); err != nil {
		return nil, errors.Wrap(err, "failed to encode yaml")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to encode yaml")
	}
	return buf.Bytes(), nil
}
