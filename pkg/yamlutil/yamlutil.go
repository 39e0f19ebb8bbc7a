// Package yamlutil loads and stores YAML documents. Decoding never
// instantiates anything beyond plain maps, sequences and scalars, and the
// encoder never emits anchors or aliases, so both directions are safe for
// untrusted data.
package yamlutil

import (
	"bytes"
	"io"
	"os"
	"sort"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// Options control how Store renders its output.
type Options struct {
	// Pretty emits an explicit document start marker and indents block
	// sequence items two spaces under their key.
	Pretty bool

	// SortKeys orders mapping keys lexicographically at every depth. This
	// matters for structs and node trees; plain maps are already emitted
	// sorted.
	SortKeys bool
}

// LoadBytes parses one YAML document into out.
func LoadBytes(data []byte, out any) error {
	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.Errorf("parsing YAML: %w", err)
	}
	return nil
}

// LoadFile parses the YAML document stored at path into out.
func LoadFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Errorf("reading %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.Errorf("parsing YAML from %q: %w", path, err)
	}
	return nil
}

// Store serializes value to w.
func Store(w io.Writer, value any, opts Options) error {
	if opts.SortKeys {
		node, err := sortedNode(value)
		if err != nil {
			return err
		}
		value = node
	}
	if opts.Pretty {
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return errors.Errorf("writing YAML: %w", err)
		}
	}
	enc := yaml.NewEncoder(w)
	if opts.Pretty {
		enc.SetIndent(2)
	}
	if err := enc.Encode(value); err != nil {
		enc.Close()
		return errors.Errorf("serializing YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return errors.Errorf("serializing YAML: %w", err)
	}
	return nil
}

// StoreBytes serializes value into a byte slice.
func StoreBytes(value any, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Store(&buf, value, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// StoreFile serializes value into the file at path.
func StoreFile(path string, value any, opts Options) error {
	data, err := StoreBytes(value, opts)
	if err != nil {
		return errors.Errorf("storing %q: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Errorf("writing %q: %w", path, err)
	}
	return nil
}

// sortedNode re-expresses value as a node tree with mapping keys ordered.
func sortedNode(value any) (*yaml.Node, error) {
	var node yaml.Node
	if err := node.Encode(value); err != nil {
		return nil, errors.Errorf("serializing YAML: %w", err)
	}
	sortMappings(&node)
	return &node, nil
}

// sortMappings orders mapping keys at every depth. Keys compare by their
// scalar value text.
func sortMappings(n *yaml.Node) {
	for _, child := range n.Content {
		sortMappings(child)
	}
	if n.Kind != yaml.MappingNode || len(n.Content) < 4 {
		return
	}
	pairs := make([][2]*yaml.Node, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		pairs = append(pairs, [2]*yaml.Node{n.Content[i], n.Content[i+1]})
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i][0].Value < pairs[j][0].Value
	})
	content := n.Content[:0]
	for _, pair := range pairs {
		content = append(content, pair[0], pair[1])
	}
	n.Content = content
}
