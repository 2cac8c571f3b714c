package journal

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type field struct {
	Key     string
	KeyNode *yaml.Node
	Value   *yaml.Node
}

// resolve follows alias nodes to their anchors.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// documentRoot returns the top-level mapping of doc.
func documentRoot(doc *yaml.Node) (*yaml.Node, error) {
	n := resolve(doc)
	if n != nil && n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			n = nil
		} else {
			n = resolve(n.Content[0])
		}
	}
	if n == nil || n.Kind == 0 || isNull(n) {
		return nil, loadErrorf(ErrStructural, nil, "config", "no config defined (the document is empty)")
	}
	if n.Kind != yaml.MappingNode {
		return nil, loadErrorf(ErrStructural, n, "", "the document must be a mapping with config and journal keys, got %s", describe(n))
	}
	return n, nil
}

// fields lists the key/value pairs of a mapping node in document order.
func fields(m *yaml.Node) []field {
	out := make([]field, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		k := resolve(m.Content[i])
		out = append(out, field{Key: k.Value, KeyNode: k, Value: resolve(m.Content[i+1])})
	}
	return out
}

// uniqueFields is fields for mappings whose keys must not repeat. yaml.v3
// keeps duplicate keys when decoding into a Node. what names the key in the
// error ("date", "exercise", "key").
func uniqueFields(m *yaml.Node, path, what string) ([]field, error) {
	out := fields(m)
	seen := make(map[string]bool, len(out))
	for _, f := range out {
		if seen[f.Key] {
			return nil, loadErrorf(ErrSchemaViolation, f.KeyNode, path+"."+f.Key, "%s %q appears more than once", what, f.Key)
		}
		seen[f.Key] = true
	}
	return out, nil
}

// lookup returns the value for key in mapping m, or nil if m has no such key.
func lookup(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if resolve(m.Content[i]).Value == key {
			return resolve(m.Content[i+1])
		}
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

func isMapping(n *yaml.Node) bool  { return n != nil && n.Kind == yaml.MappingNode }
func isSequence(n *yaml.Node) bool { return n != nil && n.Kind == yaml.SequenceNode }
func isScalar(n *yaml.Node) bool   { return n != nil && n.Kind == yaml.ScalarNode }

func isString(n *yaml.Node) bool {
	return isScalar(n) && n.ShortTag() == "!!str"
}

func isNumber(n *yaml.Node) bool {
	if !isScalar(n) {
		return false
	}
	tag := n.ShortTag()
	return tag == "!!int" || tag == "!!float"
}

func numberValue(n *yaml.Node) (float64, error) {
	var f float64
	if err := n.Decode(&f); err != nil {
		return 0, err
	}
	return f, nil
}

// describe names the YAML type of n for error messages.
func describe(n *yaml.Node) string {
	switch {
	case isNull(n):
		return "null"
	case isMapping(n):
		return "a mapping"
	case isSequence(n):
		return "a list"
	case isString(n):
		return fmt.Sprintf("the string %q", n.Value)
	case isNumber(n):
		return "the number " + n.Value
	case isScalar(n):
		return fmt.Sprintf("%s %s", strings.TrimPrefix(n.ShortTag(), "!!"), n.Value)
	default:
		return "an unsupported node"
	}
}

// listing renders key: value back as YAML with a line-number gutter, so the
// user can find and fix the exact lines in their journal.
func listing(key, value *yaml.Node) string {
	doc := &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: []*yaml.Node{withoutComments(key), withoutComments(value)},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return ""
	}
	if err := enc.Close(); err != nil {
		return ""
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	first := key.Line
	if first < 1 {
		first = 1
	}
	width := len(strconv.Itoa(first + len(lines) - 1))

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "    %*d | %s", width, first+i, line)
	}
	return b.String()
}

func withoutComments(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	c := *n
	c.HeadComment, c.LineComment, c.FootComment = "", "", ""
	if len(n.Content) > 0 {
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			c.Content[i] = withoutComments(child)
		}
	}
	return &c
}
