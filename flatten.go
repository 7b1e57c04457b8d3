package main

import "sort"

// flattenCatalog flattens a catalog tree into dotted keys. A document whose
// top level is a leaf maps the empty path to that value.
func flattenCatalog(root *Node) map[string]any {
	type frame struct {
		path  string
		depth int
		node  *Node
	}
	result := make(map[string]any)
	if root == nil {
		return result
	}
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.node.Kind != MappingNode {
			result[f.path] = f.node.Value
			continue
		}
		// Push in reverse so siblings pop in document order and a later
		// key wins when dotted paths collide.
		for i := len(f.node.Keys) - 1; i >= 0; i-- {
			k := f.node.Keys[i]
			key := k
			if f.depth > 0 {
				key = f.path + "." + k
			}
			stack = append(stack, frame{path: key, depth: f.depth + 1, node: f.node.Children[k]})
		}
	}
	return result
}

// sortedKeys returns sorted keys of a flattened catalog.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
