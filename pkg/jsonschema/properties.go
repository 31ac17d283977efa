package jsonschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Properties is an insertion-ordered map of property schemas. JSON encoding
// and decoding preserve key order, which the builder treats as field order.
type Properties struct {
	keys   []string
	values map[string]Property
}

// NewProperties returns an empty ordered property map.
func NewProperties() *Properties {
	return &Properties{values: make(map[string]Property)}
}

// Set stores p under name. A name that already exists keeps its original
// position and has its value replaced.
func (p *Properties) Set(name string, prop Property) {
	if p.values == nil {
		p.values = make(map[string]Property)
	}
	if _, exists := p.values[name]; !exists {
		p.keys = append(p.keys, name)
	}
	p.values[name] = prop
}

// Get returns the property stored under name.
func (p *Properties) Get(name string) (Property, bool) {
	if p == nil {
		return Property{}, false
	}
	prop, ok := p.values[name]
	return prop, ok
}

// Keys returns the property names in order.
func (p *Properties) Keys() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.keys...)
}

// Len returns the number of properties.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.keys)
}

// MarshalJSON writes properties in insertion order.
func (p *Properties) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyPayload, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		valuePayload, err := json.Marshal(p.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(keyPayload)
		buf.WriteByte(':')
		buf.Write(valuePayload)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object and records its keys in document order.
// Values are decoded with encoding/json; key order is recovered from the YAML
// node tree of the same payload, JSON being a subset of YAML.
func (p *Properties) UnmarshalJSON(data []byte) error {
	var values map[string]Property
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	if values == nil {
		return errors.New("properties must be an object")
	}

	keys, err := orderedKeys(data)
	if err != nil || !sameKeySet(dedupeKeys(keys), values) {
		keys, err = tokenKeys(data)
		if err != nil {
			return err
		}
	}
	keys = dedupeKeys(keys)
	if !sameKeySet(keys, values) {
		return errors.New("properties: key order does not match decoded values")
	}

	p.keys = keys
	p.values = values
	return nil
}

func orderedKeys(data []byte) ([]string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("read property order: %w", err)
	}
	mapping := &node
	if mapping.Kind == yaml.DocumentNode && len(mapping.Content) > 0 {
		mapping = mapping.Content[0]
	}
	if mapping.Kind != yaml.MappingNode {
		return nil, errors.New("properties must be an object")
	}
	keys := make([]string, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		keys = append(keys, mapping.Content[i].Value)
	}
	return keys, nil
}

// tokenKeys walks the top-level object with a streaming decoder. It covers
// payloads the YAML parser refuses, such as tab-indented JSON.
func tokenKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("properties must be an object")
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

func sameKeySet(keys []string, values map[string]Property) bool {
	if len(keys) != len(values) {
		return false
	}
	for _, key := range keys {
		if _, ok := values[key]; !ok {
			return false
		}
	}
	return true
}

// dedupeKeys keeps the first position of repeated keys; encoding/json keeps
// the last value, matching how browsers parse duplicate keys.
func dedupeKeys(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
