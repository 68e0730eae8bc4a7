package quadtree

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// DefaultCapacity is the number of points a leaf holds before it splits.
const DefaultCapacity = 4

var (
	// ErrInvalidExtent is returned when the index is constructed with a
	// non-positive width or height.
	ErrInvalidExtent = errors.New("quadtree: width and height must be positive")

	// ErrInvalidCapacity is returned when the leaf capacity is less than one.
	ErrInvalidCapacity = errors.New("quadtree: leaf capacity must be at least 1")

	// ErrOutOfExtent is returned when a coordinate lies outside the index extent.
	ErrOutOfExtent = errors.New("quadtree: coordinate out of extent")
)

// Options configures an Index.
type Options struct {
	// Capacity is the maximum number of points a leaf stores at rest.
	Capacity int
}

// DefaultOptions contains the default configuration for an Index.
var DefaultOptions = Options{
	Capacity: DefaultCapacity,
}

// Index is a sparse point index over the integer extent
// [x, x+width) × [y, y+height). It starts as a single leaf and subdivides a
// leaf into four quadrants when an insert would exceed its capacity.
// Quadrants are never merged back.
//
// Index is not safe for concurrent use; callers serialize mutations against
// queries.
type Index[T any] struct {
	nodes    []node[T]
	minX     int
	minY     int
	maxX     int // exclusive
	maxY     int // exclusive
	capacity int
	size     int
}

// New creates an empty index covering [x, x+width) × [y, y+height). The
// origin, the size and the far edges must all fit in int32.
func New[T any](x, y, width, height int, optFns ...func(o *Options)) (*Index[T], error) {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidExtent, width, height)
	}
	if !fitsInt32(x, y, width, height) ||
		int64(x)+int64(width) > math.MaxInt32 || int64(y)+int64(height) > math.MaxInt32 {
		return nil, fmt.Errorf("%w: [%d,%d %dx%d] exceeds int32 range", ErrInvalidExtent, x, y, width, height)
	}
	if opts.Capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, opts.Capacity)
	}

	root := node[T]{
		rect:   Rect{X: float64(x), Y: float64(y), Width: float64(width), Height: float64(height)},
		kind:   Leaf,
		parent: noParent,
		points: make([]Point[T], 0, opts.Capacity),
	}

	return &Index[T]{
		nodes:    []node[T]{root},
		minX:     x,
		minY:     y,
		maxX:     x + width,
		maxY:     y + height,
		capacity: opts.Capacity,
	}, nil
}

func fitsInt32(vs ...int) bool {
	for _, v := range vs {
		if int64(v) < math.MinInt32 || int64(v) > math.MaxInt32 {
			return false
		}
	}
	return true
}

// Bounds returns the extent of the index.
func (ix *Index[T]) Bounds() Rect { return ix.nodes[0].rect }

// Len returns the number of stored points.
func (ix *Index[T]) Len() int { return ix.size }

// Capacity returns the leaf capacity.
func (ix *Index[T]) Capacity() int { return ix.capacity }

// Contains reports whether (x, y) lies inside the extent.
func (ix *Index[T]) Contains(x, y int) bool {
	return x >= ix.minX && x < ix.maxX && y >= ix.minY && y < ix.maxY
}

func (ix *Index[T]) check(x, y int) error {
	if !ix.Contains(x, y) {
		return fmt.Errorf("%w: (%d, %d) not in %s", ErrOutOfExtent, x, y, ix.Bounds())
	}
	return nil
}

// Insert stores (x, y) with payload. Inserting a coordinate that is already
// present is a no-op and keeps the original payload.
func (ix *Index[T]) Insert(x, y int, payload T) error {
	if err := ix.check(x, y); err != nil {
		return err
	}

	leaf := ix.leafFor(0, x, y)
	if ix.nodes[leaf].find(x, y) >= 0 {
		return nil
	}

	ix.insertFrom(leaf, Point[T]{X: x, Y: y, Payload: payload})
	ix.size++
	return nil
}

// Query reports whether exactly (x, y) is stored.
func (ix *Index[T]) Query(x, y int) (bool, error) {
	if err := ix.check(x, y); err != nil {
		return false, err
	}
	leaf := ix.leafFor(0, x, y)
	return ix.nodes[leaf].find(x, y) >= 0, nil
}

// Get returns the payload stored at (x, y).
func (ix *Index[T]) Get(x, y int) (T, bool, error) {
	var zero T
	if err := ix.check(x, y); err != nil {
		return zero, false, err
	}
	n := &ix.nodes[ix.leafFor(0, x, y)]
	i := n.find(x, y)
	if i < 0 {
		return zero, false, nil
	}
	return n.points[i].Payload, true, nil
}

// Remove deletes (x, y) from its leaf and reports whether it was present.
// Other points in the leaf keep their relative order. The tree shape never
// shrinks.
func (ix *Index[T]) Remove(x, y int) (bool, error) {
	if err := ix.check(x, y); err != nil {
		return false, err
	}
	n := &ix.nodes[ix.leafFor(0, x, y)]
	i := n.find(x, y)
	if i < 0 {
		return false, nil
	}
	n.points = slices.Delete(n.points, i, i+1)
	ix.size--
	return true, nil
}

// Walkable reports whether (x, y) is stored. Coordinates outside the extent
// are not walkable.
func (ix *Index[T]) Walkable(x, y int) bool {
	if !ix.Contains(x, y) {
		return false
	}
	return ix.nodes[ix.leafFor(0, x, y)].find(x, y) >= 0
}

// leafFor descends from id to the leaf that owns (x, y).
func (ix *Index[T]) leafFor(id int32, x, y int) int32 {
	for ix.nodes[id].kind == Internal {
		n := &ix.nodes[id]
		id = n.children[n.rect.Quadrant(x, y)]
	}
	return id
}

// insertFrom places p in the subtree rooted at id, splitting full leaves on
// the way until a leaf with room is reached.
func (ix *Index[T]) insertFrom(id int32, p Point[T]) {
	for {
		id = ix.leafFor(id, p.X, p.Y)
		n := &ix.nodes[id]
		if len(n.points) < ix.capacity {
			n.points = append(n.points, p)
			return
		}
		ix.split(id)
	}
}

// split turns leaf id into an internal node with four empty leaf children
// and redistributes its points among them.
func (ix *Index[T]) split(id int32) {
	parent := ix.nodes[id]
	first := int32(len(ix.nodes))

	for q := 0; q < 4; q++ {
		ix.nodes = append(ix.nodes, node[T]{
			rect:   parent.rect.Child(q),
			kind:   Leaf,
			depth:  parent.depth + 1,
			parent: id,
			points: make([]Point[T], 0, ix.capacity),
		})
	}

	n := &ix.nodes[id]
	n.kind = Internal
	n.children = [4]int32{first, first + 1, first + 2, first + 3}
	n.points = nil

	// A full leaf holds at most capacity points, so no child overflows here.
	for _, p := range parent.points {
		c := &ix.nodes[n.children[n.rect.Quadrant(p.X, p.Y)]]
		c.points = append(c.points, p)
	}
}
