package quadtree

import "fmt"

// Kind distinguishes leaf nodes, which store points, from internal nodes,
// which route to exactly four children.
type Kind uint8

const (
	Leaf Kind = iota
	Internal
)

func (k Kind) String() string {
	switch k {
	case Leaf:
		return "Leaf"
	case Internal:
		return "Internal"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Rect is an axis-aligned rectangle. Halving an odd extent yields fractional
// sizes, so node rectangles use float64 while stored coordinates are integers.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g %gx%g]", r.X, r.Y, r.Width, r.Height)
}

// Quadrant returns the child slot (0..3) a coordinate descends into.
//
//	0: x <= midX, y <= midY    1: x > midX, y <= midY
//	2: x <= midX, y > midY     3: x > midX, y > midY
//
// A coordinate exactly on a midline belongs to the lower quadrant.
func (r Rect) Quadrant(x, y int) int {
	midX := r.X + r.Width/2
	midY := r.Y + r.Height/2

	q := 0
	if float64(x) > midX {
		q |= 1
	}
	if float64(y) > midY {
		q |= 2
	}
	return q
}

// Child returns the rectangle of quadrant q.
func (r Rect) Child(q int) Rect {
	hw, hh := r.Width/2, r.Height/2
	c := Rect{X: r.X, Y: r.Y, Width: hw, Height: hh}
	if q&1 != 0 {
		c.X += hw
	}
	if q&2 != 0 {
		c.Y += hh
	}
	return c
}

// Point is a stored coordinate with its payload.
type Point[T any] struct {
	X, Y    int
	Payload T
}

const noParent int32 = -1

// node is an arena slot. Children are arena ids allocated together when the
// node splits; parent is a non-owning back reference.
type node[T any] struct {
	rect     Rect
	kind     Kind
	depth    int
	parent   int32
	children [4]int32
	points   []Point[T]
}

func (n *node[T]) find(x, y int) int {
	for i, p := range n.points {
		if p.X == x && p.Y == y {
			return i
		}
	}
	return -1
}
