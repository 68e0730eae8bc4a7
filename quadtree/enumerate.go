package quadtree

import (
	"iter"
	"slices"
)

// NodeInfo is a read-only view of a node passed to Enumerate visitors.
type NodeInfo[T any] struct {
	ID       int
	Parent   int // -1 for the root
	Quadrant int // slot in the parent, -1 for the root
	Depth    int
	Kind     Kind
	Rect     Rect
	Points   []Point[T] // copy; empty for internal nodes
}

// Enumerate walks the tree depth-first in pre-order, visiting children in
// quadrant order 0..3. The walk stops when visit returns false. Visitors must
// not mutate the index.
func (ix *Index[T]) Enumerate(visit func(NodeInfo[T]) bool) {
	ix.enumerate(0, -1, visit)
}

func (ix *Index[T]) enumerate(id int32, quadrant int, visit func(NodeInfo[T]) bool) bool {
	n := &ix.nodes[id]
	info := NodeInfo[T]{
		ID:       int(id),
		Parent:   int(n.parent),
		Quadrant: quadrant,
		Depth:    n.depth,
		Kind:     n.kind,
		Rect:     n.rect,
		Points:   slices.Clone(n.points),
	}
	if !visit(info) {
		return false
	}
	if n.kind == Leaf {
		return true
	}
	children := n.children
	for q, c := range children {
		if !ix.enumerate(c, q, visit) {
			return false
		}
	}
	return true
}

// All returns an iterator over every stored point in depth-first leaf order.
func (ix *Index[T]) All() iter.Seq[Point[T]] {
	return func(yield func(Point[T]) bool) {
		stack := []int32{0}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			n := &ix.nodes[id]
			if n.kind == Internal {
				for q := 3; q >= 0; q-- {
					stack = append(stack, n.children[q])
				}
				continue
			}
			for _, p := range n.points {
				if !yield(p) {
					return
				}
			}
		}
	}
}

// Parent returns the parent id of node id, or false for the root or an
// unknown id.
func (ix *Index[T]) Parent(id int) (int, bool) {
	if id < 0 || id >= len(ix.nodes) || ix.nodes[id].parent == noParent {
		return -1, false
	}
	return int(ix.nodes[id].parent), true
}

// Stats describes the shape of the tree.
type Stats struct {
	Points      int
	Nodes       int
	Leaves      int
	Internal    int
	EmptyLeaves int
	MaxDepth    int
	MaxLeafLoad int
}

// Stats returns statistics about the tree.
func (ix *Index[T]) Stats() Stats {
	s := Stats{Points: ix.size, Nodes: len(ix.nodes)}
	for i := range ix.nodes {
		n := &ix.nodes[i]
		s.MaxDepth = max(s.MaxDepth, n.depth)
		if n.kind == Internal {
			s.Internal++
			continue
		}
		s.Leaves++
		if len(n.points) == 0 {
			s.EmptyLeaves++
		}
		s.MaxLeafLoad = max(s.MaxLeafLoad, len(n.points))
	}
	return s
}
