package url

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalText encodes u in its string form.
func (u *URL) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText parses text with Parse.
func (u *URL) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*u = *parsed
	return nil
}

func (u *URL) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON accepts either a URL string or a Descriptor object.
func (u *URL) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return u.UnmarshalText([]byte(s))
	}

	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return fmt.Errorf("url descriptor: %w", err)
	}
	parsed, err := FromDescriptor(d)
	if err != nil {
		return err
	}
	*u = *parsed
	return nil
}

func (u *URL) MarshalYAML() (any, error) {
	return u.String(), nil
}

// UnmarshalYAML accepts either a URL string or a Descriptor mapping.
func (u *URL) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		return u.UnmarshalText([]byte(s))
	case yaml.MappingNode:
		var d Descriptor
		if err := node.Decode(&d); err != nil {
			return fmt.Errorf("url descriptor: %w", err)
		}
		parsed, err := FromDescriptor(d)
		if err != nil {
			return err
		}
		*u = *parsed
		return nil
	}
	return fmt.Errorf("url: cannot decode YAML node of kind %d at line %d", node.Kind, node.Line)
}

// MarshalJSON encodes q as an object. Single values become strings and
// sequences become arrays; key order is preserved.
func (q Query) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range q.keyList() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var val []byte
		if vs, _ := q.lookup(k); len(vs) == 1 {
			val, err = json.Marshal(vs[0])
		} else {
			val, err = json.Marshal(append([]string{}, vs...))
		}
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object whose values are strings or arrays of strings,
// keeping the keys in document order.
func (q *Query) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("query: expected object, got %v", tok)
	}

	parsed := Query{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var single string
		if err := json.Unmarshal(raw, &single); err == nil {
			parsed.append(key, single)
			continue
		}
		var many []string
		if err := json.Unmarshal(raw, &many); err != nil {
			return fmt.Errorf("query %q: value must be a string or list of strings", key)
		}
		parsed.Set(key, many...)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*q = parsed
	return nil
}

func (q Query) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range q.keyList() {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: k}
		vs, _ := q.lookup(k)
		if len(vs) == 1 {
			node.Content = append(node.Content, keyNode, &yaml.Node{Kind: yaml.ScalarNode, Value: vs[0]})
			continue
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, v := range vs {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: v})
		}
		node.Content = append(node.Content, keyNode, seq)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping whose values are scalars or sequences of
// scalars, keeping the keys in document order.
func (q *Query) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("query: expected mapping at line %d", node.Line)
	}

	parsed := Query{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		switch val.Kind {
		case yaml.ScalarNode:
			parsed.append(key, val.Value)
		case yaml.SequenceNode:
			var many []string
			if err := val.Decode(&many); err != nil {
				return fmt.Errorf("query %q: %w", key, err)
			}
			parsed.Set(key, many...)
		default:
			return fmt.Errorf("query %q: value must be a scalar or sequence at line %d", key, val.Line)
		}
	}

	*q = parsed
	return nil
}
