package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// catalogFormat describes one on-disk catalog encoding.
type catalogFormat struct {
	name   string
	exts   []string // first entry is the canonical extension
	decode func([]byte) (*Node, error)
}

var catalogFormats = map[string]catalogFormat{
	"json": {name: "json", exts: []string{".json"}, decode: decodeJSON},
	"yaml": {name: "yaml", exts: []string{".yaml", ".yml"}, decode: decodeYAML},
	"toml": {name: "toml", exts: []string{".toml"}, decode: decodeTOML},
}

func lookupFormat(name string) (catalogFormat, error) {
	f, ok := catalogFormats[strings.ToLower(name)]
	if !ok {
		return catalogFormat{}, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, name, strings.Join(formatNames(), ", "))
	}
	return f, nil
}

func formatNames() []string {
	names := make([]string, 0, len(catalogFormats))
	for name := range catalogFormats {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// hasExt reports whether a file name carries one of the format's extensions.
func (f catalogFormat) hasExt(name string) (string, bool) {
	for _, ext := range f.exts {
		if strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return ext, true
		}
	}
	return "", false
}

// decodeJSON walks the token stream so object keys stay in document order
// and numbers keep their source text.
func decodeJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root, err := decodeJSONValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected %v after top-level value", tok)
	}
	return root, nil
}

func decodeJSONValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return newLeaf(tok), nil
	}
	switch delim {
	case '{':
		node := newMapping()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}
			child, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			node.set(key, child)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return node, nil
	case '[':
		items := []any{}
		for dec.More() {
			child, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			items = append(items, child.plain())
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return newLeaf(items), nil
	}
	return nil, fmt.Errorf("unexpected delimiter %v", delim)
}

// maxAliasExpansion caps the nodes produced by expanding YAML aliases.
const maxAliasExpansion = 100000

func decodeYAML(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	d := &yamlDecoder{active: make(map[*yaml.Node]bool)}
	return d.toNode(&doc)
}

// yamlDecoder converts a yaml.Node tree, resolving aliases and merge keys.
// yaml.Unmarshal into a yaml.Node leaves aliases unexpanded, so cycles and
// expansion size are checked here.
type yamlDecoder struct {
	active   map[*yaml.Node]bool // alias targets on the current path
	depth    int                 // nesting of alias expansions
	expanded int
}

func (d *yamlDecoder) toNode(n *yaml.Node) (*Node, error) {
	if d.depth > 0 {
		d.expanded++
		if d.expanded > maxAliasExpansion {
			return nil, fmt.Errorf("line %d: aliases expand to more than %d nodes", n.Line, maxAliasExpansion)
		}
	}
	switch n.Kind {
	case 0:
		// Empty input.
		return newMapping(), nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return newMapping(), nil
		}
		return d.toNode(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("line %d: unknown anchor %q", n.Line, n.Value)
		}
		if d.active[n.Alias] {
			return nil, fmt.Errorf("line %d: anchor %q value contains itself", n.Line, n.Value)
		}
		d.active[n.Alias] = true
		d.depth++
		node, err := d.toNode(n.Alias)
		d.depth--
		delete(d.active, n.Alias)
		return node, err
	case yaml.MappingNode:
		node := newMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			valNode := n.Content[i+1]
			if isMergeKey(keyNode) {
				if err := d.merge(node, valNode); err != nil {
					return nil, err
				}
				continue
			}
			child, err := d.toNode(valNode)
			if err != nil {
				return nil, err
			}
			node.set(keyNode.Value, child)
		}
		return node, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return newLeaf(v), nil
}

func isMergeKey(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Value == "<<" &&
		(n.Tag == "" || n.Tag == "!" || n.ShortTag() == "!!merge")
}

// merge applies a "<<" merge key. Keys already present win.
func (d *yamlDecoder) merge(dst *Node, src *yaml.Node) error {
	if src.Kind == yaml.SequenceNode {
		for _, item := range src.Content {
			if err := d.merge(dst, item); err != nil {
				return err
			}
		}
		return nil
	}
	merged, err := d.toNode(src)
	if err != nil {
		return err
	}
	if merged.Kind != MappingNode {
		return fmt.Errorf("line %d: merge value is not a mapping", src.Line)
	}
	for _, k := range merged.Keys {
		if _, exists := dst.Children[k]; !exists {
			dst.set(k, merged.Children[k])
		}
	}
	return nil
}

func decodeTOML(data []byte) (*Node, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return newMapping(), nil
	}
	return plainToNode(raw), nil
}

// plainToNode converts decoded generic values. Map keys are sorted since Go
// maps carry no document order.
func plainToNode(v any) *Node {
	m, ok := v.(map[string]any)
	if !ok {
		return newLeaf(v)
	}
	node := newMapping()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		node.set(k, plainToNode(m[k]))
	}
	return node
}
