package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// NodeKind tells a mapping node apart from a leaf.
type NodeKind int

const (
	LeafNode NodeKind = iota
	MappingNode
)

// Node is one node of a parsed catalog. Mapping nodes keep their keys in
// document order; leaf nodes carry a scalar or a list in Value.
type Node struct {
	Kind     NodeKind
	Keys     []string
	Children map[string]*Node
	Value    any
}

func newMapping() *Node {
	return &Node{Kind: MappingNode, Children: make(map[string]*Node)}
}

func newLeaf(v any) *Node {
	return &Node{Kind: LeafNode, Value: v}
}

// set adds or replaces a child. A replaced key keeps its original position.
func (n *Node) set(key string, child *Node) {
	if _, exists := n.Children[key]; !exists {
		n.Keys = append(n.Keys, key)
	}
	n.Children[key] = child
}

// plain converts the subtree into the generic values encoding packages use.
func (n *Node) plain() any {
	if n.Kind != MappingNode {
		return n.Value
	}
	m := make(map[string]any, len(n.Keys))
	for _, k := range n.Keys {
		m[k] = n.Children[k].plain()
	}
	return m
}

// validateLocale rejects codes that would resolve outside the catalog directory.
func validateLocale(code string) error {
	if code == "" {
		return fmt.Errorf("%w: empty", ErrInvalidLocale)
	}
	if code == "." || code == ".." || strings.ContainsAny(code, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidLocale, code)
	}
	return nil
}

// resolveCatalogPath returns the absolute path of the catalog for a locale,
// trying each extension of the format in order. When no file exists the path
// for the first extension is returned together with ErrCatalogNotFound.
func resolveCatalogPath(dir, code string, f catalogFormat) (string, error) {
	if err := validateLocale(code); err != nil {
		return "", err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for _, ext := range f.exts {
		path := filepath.Join(absDir, code+ext)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return path, err
		}
	}
	path := filepath.Join(absDir, code+f.exts[0])
	return path, fmt.Errorf("%w: %s", ErrCatalogNotFound, path)
}

// loadCatalog locates <dir>/<code>.<ext> and parses it.
func loadCatalog(dir, code string, f catalogFormat) (*Node, string, error) {
	path, err := resolveCatalogPath(dir, code, f)
	if err != nil {
		return nil, path, err
	}
	root, err := loadCatalogFile(path, f)
	return root, path, err
}

// loadCatalogFile parses a single catalog file.
func loadCatalogFile(path string, f catalogFormat) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogNotFound, path)
		}
		return nil, err
	}
	root, err := f.decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrInvalidCatalog, path, err)
	}
	return root, nil
}
