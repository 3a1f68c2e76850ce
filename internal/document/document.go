// Package document converts between in-memory record fields and the two
// on-disk shapes used by the data directories: plain YAML documents and
// split documents (a --- delimited YAML header followed by a free-text body).
//
// The codec is lossless for field order: encoding preserves insertion order
// and decoding preserves document order, so read-modify-write cycles never
// reshuffle a record file.
package document

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/veleth/stagehand/internal/apperr"
)

const delimiter = "---"

// Field is a single named record value. Value is one of: string, bool,
// []string, or []Fields (a list of sub-records, e.g. performer entries).
type Field struct {
	Name  string
	Value any
}

// Fields is an ordered field mapping. The zero value is an empty record.
type Fields []Field

// Get returns the value for name and whether it is present.
func (f Fields) Get(name string) (any, bool) {
	for _, fld := range f {
		if fld.Name == name {
			return fld.Value, true
		}
	}
	return nil, false
}

// Has reports whether name is present.
func (f Fields) Has(name string) bool {
	_, ok := f.Get(name)
	return ok
}

// String returns the value for name if it is a string, otherwise "".
func (f Fields) String(name string) string {
	if v, ok := f.Get(name); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Strings returns the value for name if it is a string list, otherwise nil.
func (f Fields) Strings(name string) []string {
	if v, ok := f.Get(name); ok {
		if s, ok := v.([]string); ok {
			return s
		}
	}
	return nil
}

// Names returns the field names in order.
func (f Fields) Names() []string {
	names := make([]string, len(f))
	for i, fld := range f {
		names[i] = fld.Name
	}
	return names
}

// Set replaces the value for name in place, or appends the field if absent.
func (f *Fields) Set(name string, value any) {
	for i, fld := range *f {
		if fld.Name == name {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Name: name, Value: value})
}

// Delete removes name and reports whether it was present.
func (f *Fields) Delete(name string) bool {
	for i, fld := range *f {
		if fld.Name == name {
			*f = append((*f)[:i], (*f)[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for i, fld := range f {
		out[i] = Field{Name: fld.Name, Value: cloneValue(fld.Value)}
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...)
	case []Fields:
		out := make([]Fields, len(val))
		for i, sub := range val {
			out[i] = sub.Clone()
		}
		return out
	case Fields:
		return val.Clone()
	default:
		return v
	}
}

// DecodePlain parses a full YAML document into ordered fields.
func DecodePlain(data []byte) (Fields, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperr.NewFormat(fmt.Sprintf("invalid document: %v", err))
	}
	if len(doc.Content) == 0 {
		return Fields{}, nil
	}
	return fieldsFromNode(doc.Content[0])
}

// EncodePlain serializes fields as a block-style YAML document, preserving
// insertion order and non-ASCII characters.
func EncodePlain(fields Fields) ([]byte, error) {
	node := nodeFromFields(fields)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, fmt.Errorf("document: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("document: encode: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeSplit parses a split document: a --- delimited YAML header followed
// by a free-text body. Both delimiter lines are mandatory. The returned body
// has surrounding whitespace trimmed; see EncodeSplit for the inverse.
func DecodeSplit(data []byte) (Fields, string, error) {
	text := string(data)
	if !strings.HasPrefix(text, delimiter+"\n") {
		return nil, "", apperr.NewFormat("invalid frontmatter")
	}
	rest := text[len(delimiter)+1:]
	end := strings.Index(rest, "\n"+delimiter+"\n")
	if end < 0 {
		return nil, "", apperr.NewFormat("invalid frontmatter")
	}

	fields, err := DecodePlain([]byte(rest[:end+1]))
	if err != nil {
		return nil, "", err
	}
	body := strings.TrimSpace(rest[end+len(delimiter)+2:])
	return fields, body, nil
}

// EncodeSplit serializes fields as a frontmatter header followed by body.
// A non-empty body is separated from the closing delimiter by a blank line
// and terminated with a newline; an empty body produces a header-only file.
func EncodeSplit(fields Fields, body string) ([]byte, error) {
	header, err := EncodePlain(fields)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	buf.Write(header)
	buf.WriteString(delimiter + "\n")
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// fieldsFromNode converts a YAML mapping node into ordered fields.
func fieldsFromNode(n *yaml.Node) (Fields, error) {
	if n.Kind != yaml.MappingNode {
		return nil, apperr.NewFormat("document is not a mapping")
	}
	fields := make(Fields, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		value, err := valueFromNode(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: key.Value, Value: value})
	}
	return fields, nil
}

func valueFromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!bool" {
			var b bool
			if err := n.Decode(&b); err != nil {
				return nil, apperr.NewFormat(fmt.Sprintf("invalid bool value: %v", err))
			}
			return b, nil
		}
		// Everything else (strings, dates, numbers) is kept as its verbatim
		// scalar text. Record fields are strings at the data-model level.
		return n.Value, nil

	case yaml.SequenceNode:
		if len(n.Content) > 0 && n.Content[0].Kind == yaml.MappingNode {
			subs := make([]Fields, 0, len(n.Content))
			for _, item := range n.Content {
				sub, err := fieldsFromNode(item)
				if err != nil {
					return nil, err
				}
				subs = append(subs, sub)
			}
			return subs, nil
		}
		items := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, apperr.NewFormat("list items must be scalars or mappings")
			}
			items = append(items, item.Value)
		}
		return items, nil

	case yaml.MappingNode:
		return fieldsFromNode(n)

	default:
		return nil, apperr.NewFormat(fmt.Sprintf("unsupported value kind %d", n.Kind))
	}
}

// nodeFromFields builds a block-style mapping node from ordered fields.
func nodeFromFields(fields Fields) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, fld := range fields {
		node.Content = append(node.Content, scalarNode(fld.Name), nodeFromValue(fld.Value))
	}
	return node
}

func nodeFromValue(v any) *yaml.Node {
	switch val := v.(type) {
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprintf("%t", val)}
	case string:
		return scalarNode(val)
	case []string:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range val {
			seq.Content = append(seq.Content, scalarNode(item))
		}
		return seq
	case []Fields:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, sub := range val {
			seq.Content = append(seq.Content, nodeFromFields(sub))
		}
		return seq
	case Fields:
		return nodeFromFields(val)
	default:
		return scalarNode(fmt.Sprintf("%v", val))
	}
}

// scalarNode builds a string scalar. The explicit !!str tag makes the
// encoder quote values that would otherwise resolve to another type
// (e.g. "true" or "2025-10-11"), keeping the codec lossless.
func scalarNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
