// Package frontmatter reads document metadata given as a JSON object or a
// YAML mapping, keeping the key order of the input.
package frontmatter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	adrg "github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/mithrel/notion2md/pkg/api"
)

// ErrNotMapping is returned when metadata is not a key/value mapping.
var ErrNotMapping = errors.New("frontmatter is not a mapping")

// Parse reads s as a JSON object or YAML mapping. Scalar values are kept
// verbatim; lists and nested mappings are re-encoded in YAML flow style. A
// repeated key keeps its first position and takes the last value.
//
// Blank input yields nil. An empty mapping yields a non-nil empty
// Frontmatter, which still renders as an empty section.
func Parse(s string) (api.Frontmatter, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, nil
	}
	// JSON escapes such as \/ and surrogate pairs are not valid YAML.
	if strings.HasPrefix(trimmed, "{") && json.Valid([]byte(trimmed)) {
		return parseJSON(trimmed)
	}
	return parseYAML(s)
}

func parseYAML(s string) (api.Frontmatter, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(s), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotMapping, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrNotMapping
	}
	m := doc.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: got %s", ErrNotMapping, kindName(m.Kind))
	}
	return fromMapping(m)
}

func parseJSON(s string) (api.Frontmatter, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	m, err := jsonNode(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotMapping, err)
	}
	return fromMapping(m)
}

func fromMapping(m *yaml.Node) (api.Frontmatter, error) {
	out := make(api.Frontmatter, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		val, err := value(v)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %v", ErrNotMapping, k.Value, err)
		}
		out = set(out, k.Value, val)
	}
	return out, nil
}

// set overwrites the value of an existing key in place or appends a new one.
func set(fm api.Frontmatter, key, val string) api.Frontmatter {
	for i := range fm {
		if fm[i].Key == key {
			fm[i].Value = val
			return fm
		}
	}
	return append(fm, api.Meta{Key: key, Value: val})
}

// jsonNode reads the next JSON value from dec as a yaml node, keeping object
// key order. Strings stay double quoted when re-encoded.
func jsonNode(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if t == '{' {
			n.Kind, n.Tag = yaml.MappingNode, "!!map"
		}
		for dec.More() {
			if n.Kind == yaml.MappingNode {
				k, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := k.(string)
				n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key})
			}
			c, err := jsonNode(dec)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		// closing delimiter
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return n, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t, Style: yaml.DoubleQuotedStyle}, nil
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(t.String(), ".eE") {
			tag = "!!float"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: t.String()}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t)}, nil
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	}
}

// Load reads and parses a metadata file.
func Load(path string) (api.Frontmatter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// Merge returns base with override applied: existing keys take the
// override value in place and new keys are appended in override order.
// The result is nil only when both inputs are nil.
func Merge(base, override api.Frontmatter) api.Frontmatter {
	if base == nil && override == nil {
		return nil
	}
	out := make(api.Frontmatter, 0, len(base)+len(override))
	out = append(out, base...)
	for _, m := range override {
		replaced := false
		for i := range out {
			if out[i].Key == m.Key {
				out[i].Value = m.Value
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, m)
		}
	}
	return out
}

// Extract splits a Markdown document into its frontmatter fields and body.
// Documents without frontmatter return an empty map and the full input.
func Extract(markdown []byte) (map[string]any, []byte, error) {
	fields := map[string]any{}
	body, err := adrg.Parse(bytes.NewReader(markdown), &fields)
	if err != nil {
		return nil, nil, err
	}
	return fields, body, nil
}

func value(n *yaml.Node) (string, error) {
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n.Kind == yaml.ScalarNode {
		return n.Value, nil
	}
	flow := *n
	setFlow(&flow)
	b, err := yaml.Marshal(&flow)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func setFlow(n *yaml.Node) {
	n.Style |= yaml.FlowStyle
	n.HeadComment, n.LineComment, n.FootComment = "", "", ""
	for _, c := range n.Content {
		setFlow(c)
	}
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
