// Package tree builds the directory hierarchy used by summary rendering.
package tree

import (
	"path/filepath"
	"strings"
)

// Node is one path segment. Children keep the order in which they were
// first added.
type Node struct {
	Name string

	children      map[string]*Node
	childrenOrder []string
}

// NewNode returns a node without children.
func NewNode(name string) *Node {
	return &Node{Name: name, children: make(map[string]*Node)}
}

// Child returns the child called name, creating it when it does not exist.
func (node *Node) Child(name string) *Node {
	if existing, found := node.children[name]; found {
		return existing
	}
	child := NewNode(name)
	node.children[name] = child
	node.childrenOrder = append(node.childrenOrder, name)
	return child
}

// Lookup returns the child called name if present.
func (node *Node) Lookup(name string) (*Node, bool) {
	child, found := node.children[name]
	return child, found
}

// Children returns the children in insertion order.
func (node *Node) Children() []*Node {
	children := make([]*Node, 0, len(node.childrenOrder))
	for _, name := range node.childrenOrder {
		children = append(children, node.children[name])
	}
	return children
}

// HasChildren reports whether the node has at least one child.
func (node *Node) HasChildren() bool {
	return len(node.childrenOrder) > 0
}

// Depth returns the length of the longest chain of descendants below node.
func (node *Node) Depth() int {
	deepest := 0
	for _, child := range node.children {
		if childDepth := child.Depth() + 1; childDepth > deepest {
			deepest = childDepth
		}
	}
	return deepest
}

// Build creates an unnamed root and inserts every key split on the path
// separator. A leading separator becomes a segment named after the separator.
func Build(keys []string) *Node {
	root := NewNode("")
	for _, key := range keys {
		current := root
		for _, segment := range Segments(key) {
			current = current.Child(segment)
		}
	}
	return root
}

// Segments splits key on the path separator, dropping empty segments except
// a leading one, which is reported as the separator itself.
func Segments(key string) []string {
	if key == "" {
		return nil
	}
	separator := string(filepath.Separator)
	var segments []string
	for index, part := range strings.Split(key, separator) {
		if part == "" {
			if index == 0 {
				segments = append(segments, separator)
			}
			continue
		}
		segments = append(segments, part)
	}
	return segments
}

// Join appends a segment to the path of its parent node. An empty parent path
// denotes the root level.
func Join(parentPath string, segment string) string {
	if parentPath == "" {
		return segment
	}
	separator := string(filepath.Separator)
	if strings.HasSuffix(parentPath, separator) {
		return parentPath + segment
	}
	return parentPath + separator + segment
}
