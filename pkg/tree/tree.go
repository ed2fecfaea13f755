// Package tree converts a hierarchy into a generic labelled tree and derives
// the visible part of it from collapse state.
package tree

import "github.com/matzehuels/conceptmap/pkg/hierarchy"

// Kind is the level of a node.
type Kind string

// Node kinds. Depth 0 is always a topic, 1 a subtopic, 2 a card.
const (
	KindTopic    Kind = "topic"
	KindSubtopic Kind = "subtopic"
	KindCard     Kind = "card"
)

// Node is one element of the built tree.
type Node struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Kind     Kind   `json:"kind"`
	Children []Node `json:"children,omitempty"`
}

// IsLeaf reports whether n has no children.
func (n Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Build converts h into topic → subtopic → card nodes, preserving input order.
func Build(h hierarchy.Hierarchy) []Node {
	roots := make([]Node, 0, len(h))
	for _, t := range h {
		topic := Node{ID: t.ID, Label: t.Title, Kind: KindTopic}
		for _, s := range t.Subtopics {
			sub := Node{ID: s.ID, Label: s.Title, Kind: KindSubtopic}
			for _, c := range s.Cards {
				sub.Children = append(sub.Children, Node{ID: c.ID, Label: c.Title, Kind: KindCard})
			}
			topic.Children = append(topic.Children, sub)
		}
		roots = append(roots, topic)
	}
	return roots
}

// CollapsedFunc reports whether a node's subtree is hidden.
type CollapsedFunc func(id string) bool

// Prune returns a copy of roots in which every collapsed node keeps its place
// but loses its children. Cards are never consulted. A nil isCollapsed
// returns a copy with nothing pruned.
func Prune(roots []Node, isCollapsed CollapsedFunc) []Node {
	out := make([]Node, 0, len(roots))
	for _, n := range roots {
		out = append(out, prune(n, isCollapsed))
	}
	return out
}

func prune(n Node, isCollapsed CollapsedFunc) Node {
	cp := Node{ID: n.ID, Label: n.Label, Kind: n.Kind}
	if n.Kind == KindCard || (isCollapsed != nil && isCollapsed(n.ID)) {
		return cp
	}
	for _, c := range n.Children {
		cp.Children = append(cp.Children, prune(c, isCollapsed))
	}
	return cp
}

// Walk visits every node depth-first in pre-order. fn receives the node, its
// depth and its parent id ("" for roots). Returning false skips the node's children.
func Walk(roots []Node, fn func(n Node, depth int, parentID string) bool) {
	var visit func(n Node, depth int, parentID string)
	visit = func(n Node, depth int, parentID string) {
		if !fn(n, depth, parentID) {
			return
		}
		for _, c := range n.Children {
			visit(c, depth+1, n.ID)
		}
	}
	for _, r := range roots {
		visit(r, 0, "")
	}
}

// Count returns the number of nodes in roots.
func Count(roots []Node) int {
	n := 0
	Walk(roots, func(Node, int, string) bool {
		n++
		return true
	})
	return n
}

// CollapsibleIDs lists every topic id followed by its subtopic ids, in input order.
func CollapsibleIDs(h hierarchy.Hierarchy) []string {
	return h.ContainerIDs()
}
