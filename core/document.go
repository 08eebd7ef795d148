// Package core defines the compose document model, a schema-less YAML tree
// with order-preserving accessors that all pipeline stages operate on, plus
// the shared value types the stages produce.
package core

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotMapping is returned when parsed input is not a mapping at root level.
var ErrNotMapping = errors.New("expected a YAML mapping at root level")

// Document is a parsed compose file. Root is always a mapping node.
type Document struct {
	Root *yaml.Node
}

// Parse decodes text into a Document. It fails on YAML syntax errors and on
// documents whose root is not a mapping (comments-only and scalar documents
// are rejected).
func Parse(text string) (*Document, error) {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(text), &node); err != nil {
		// Returned as-is so callers can surface the codec's own message.
		return nil, err
	}
	root := documentRoot(&node)
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}
	// Serialization must not fold repeated nodes into anchors/aliases, so
	// references are expanded up front.
	return &Document{Root: expandAliases(root, 0)}, nil
}

// maxExpandDepth bounds alias expansion so self-referencing documents cannot
// loop; compose files never nest anywhere near this deep.
const maxExpandDepth = 64

func expandAliases(n *yaml.Node, depth int) *yaml.Node {
	if n == nil || depth > maxExpandDepth {
		return n
	}
	if n.Kind == yaml.AliasNode {
		n = cloneNode(Resolve(n))
	}
	n.Anchor = ""
	for i, c := range n.Content {
		n.Content[i] = expandAliases(c, depth+1)
	}
	return n
}

// Serialize encodes the document back to YAML text: 2-space indent, no
// forced quoting of plain scalars, scalar styles preserved from the parse.
func (d *Document) Serialize() (string, error) {
	var sb strings.Builder
	enc := yaml.NewEncoder(&sb)
	enc.SetIndent(2)
	if err := enc.Encode(d.Root); err != nil {
		return "", fmt.Errorf("serialize yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("serialize yaml: %w", err)
	}
	return sb.String(), nil
}

// Clone returns a deep copy of the document. Stages that must not mutate
// their input operate on a clone.
func (d *Document) Clone() *Document {
	return &Document{Root: cloneNode(d.Root)}
}

func cloneNode(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	out := *n
	if len(n.Content) > 0 {
		out.Content = make([]*yaml.Node, len(n.Content))
		for i, c := range n.Content {
			out.Content[i] = cloneNode(c)
		}
	}
	return &out
}

func documentRoot(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil
		}
		return Resolve(n.Content[0])
	}
	return Resolve(n)
}

// Resolve follows alias nodes to their anchor. All accessors below resolve
// before inspecting, so callers never see an AliasNode.
func Resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// IsMapping reports whether n is a mapping node.
func IsMapping(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.MappingNode
}

// IsSequence reports whether n is a sequence node.
func IsSequence(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.SequenceNode
}

// IsScalar reports whether n is a scalar node (including null).
func IsScalar(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.ScalarNode
}

// IsNull reports whether n is absent or an explicit YAML null.
func IsNull(n *yaml.Node) bool {
	n = Resolve(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// ScalarString returns the string form of a scalar node. Null scalars and
// non-scalars return ("", false).
func ScalarString(n *yaml.Node) (string, bool) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return "", false
	}
	return n.Value, true
}

// Stringify renders a scalar as display text: null becomes the empty string,
// any other scalar its value. Non-scalars return ("", false).
func Stringify(n *yaml.Node) (string, bool) {
	n = Resolve(n)
	if n == nil {
		return "", false
	}
	if n.Kind != yaml.ScalarNode {
		return "", false
	}
	if n.Tag == "!!null" {
		return "", true
	}
	return n.Value, true
}

// MapEntry is one key/value pair of a mapping node, in source order.
type MapEntry struct {
	Key   *yaml.Node
	Value *yaml.Node
}

// MapEntries returns the entries of a mapping node in source order. Non-string
// keys are skipped. Returns nil for non-mappings.
func MapEntries(n *yaml.Node) []MapEntry {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	entries := make([]MapEntry, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Kind != yaml.ScalarNode {
			continue
		}
		entries = append(entries, MapEntry{Key: n.Content[i], Value: n.Content[i+1]})
	}
	return entries
}

// MapGet returns the value node for key, or nil when absent or when n is not
// a mapping.
func MapGet(n *yaml.Node, key string) *yaml.Node {
	for _, e := range MapEntries(n) {
		if e.Key.Value == key {
			return e.Value
		}
	}
	return nil
}

// MapDelete removes key from the mapping node in place. Deleting from a
// non-mapping or a missing key is a no-op.
func MapDelete(n *yaml.Node, key string) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Kind == yaml.ScalarNode && n.Content[i].Value == key {
			n.Content = append(n.Content[:i], n.Content[i+2:]...)
			return
		}
	}
}

// SequenceItems returns the element nodes of a sequence, or nil for
// non-sequences.
func SequenceItems(n *yaml.Node) []*yaml.Node {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	return n.Content
}

// IsEmptyValue reports whether n holds nothing worth keeping: null, the
// empty string, an empty sequence, or an empty mapping.
func IsEmptyValue(n *yaml.Node) bool {
	n = Resolve(n)
	if IsNull(n) {
		return true
	}
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Tag == "!!str" && n.Value == ""
	case yaml.SequenceNode, yaml.MappingNode:
		return len(n.Content) == 0
	}
	return false
}

// SetScalar rewrites n in place to a string scalar with the given value and
// style. Used by redaction to replace sensitive values.
func SetScalar(n *yaml.Node, value string, style yaml.Style) {
	n.Kind = yaml.ScalarNode
	n.Tag = "!!str"
	n.Value = value
	n.Style = style
	n.Content = nil
	n.Anchor = ""
	n.Alias = nil
}
