package quadtree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/quadnav/testutil"
)

type empty = struct{}

func newIndex(t *testing.T, x, y, w, h int) *Index[empty] {
	t.Helper()
	ix, err := New[empty](x, y, w, h)
	require.NoError(t, err)
	return ix
}

func coords(pts []Point[empty]) [][2]int {
	out := make([][2]int, len(pts))
	for i, p := range pts {
		out[i] = [2]int{p.X, p.Y}
	}
	return out
}

func TestNew_InvalidExtent(t *testing.T) {
	tests := []struct {
		name       string
		x, y, w, h int
	}{
		{"zero width", 0, 0, 0, 4},
		{"zero height", 0, 0, 4, 0},
		{"negative", 0, 0, -1, 4},
		{"far edge past int32", math.MaxInt32 - 1, 0, 2, 4},
		{"height past int32", 0, 1, 4, math.MaxInt32},
		{"origin at int32 max", math.MaxInt32, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New[empty](tt.x, tt.y, tt.w, tt.h)
			require.ErrorIs(t, err, ErrInvalidExtent)
		})
	}

	ix, err := New[empty](math.MinInt32, math.MaxInt32-4, 4, 4)
	require.NoError(t, err)
	require.NoError(t, ix.Insert(math.MinInt32, math.MaxInt32-1, empty{}))
	ok, err := ix.Query(math.MinInt32, math.MaxInt32-1)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err := New[empty](0, 0, 4, 4, func(o *Options) { o.Capacity = 0 })
	require.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestQuadrant(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 4, Height: 4}

	tests := []struct {
		x, y int
		want int
	}{
		{0, 0, 0},
		{2, 2, 0}, // on both midlines
		{3, 0, 1},
		{0, 3, 2},
		{3, 3, 3},
		{2, 3, 2},
		{3, 2, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Quadrant(tt.x, tt.y), "(%d,%d)", tt.x, tt.y)
	}

	assert.Equal(t, Rect{X: 2, Y: 0, Width: 2, Height: 2}, r.Child(1))
	assert.Equal(t, Rect{X: 0, Y: 2, Width: 2, Height: 2}, r.Child(2))
	assert.Equal(t, Rect{X: 2.5, Y: 1.5, Width: 2.5, Height: 1.5}, Rect{Width: 5, Height: 3}.Child(3))
}

func TestInsertQueryRemove(t *testing.T) {
	ix := newIndex(t, 0, 0, 16, 16)

	ok, err := ix.Query(3, 4)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, ix.Insert(3, 4, empty{}))
	ok, err = ix.Query(3, 4)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, ix.Walkable(3, 4))
	assert.Equal(t, 1, ix.Len())

	removed, err := ix.Remove(3, 4)
	require.NoError(t, err)
	assert.True(t, removed)

	ok, err = ix.Query(3, 4)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, ix.Len())

	removed, err = ix.Remove(3, 4)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestInsert_Idempotent(t *testing.T) {
	ix, err := New[string](0, 0, 8, 8)
	require.NoError(t, err)

	require.NoError(t, ix.Insert(1, 1, "first"))
	before := ix.Stats()
	require.NoError(t, ix.Insert(1, 1, "second"))

	assert.Equal(t, before, ix.Stats())
	assert.Equal(t, 1, ix.Len())

	v, ok, err := ix.Get(1, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "first", v)
}

func TestOutOfExtent(t *testing.T) {
	ix := newIndex(t, 0, 0, 4, 4)

	for _, c := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {100, 100}} {
		require.ErrorIs(t, ix.Insert(c[0], c[1], empty{}), ErrOutOfExtent)

		_, err := ix.Query(c[0], c[1])
		require.ErrorIs(t, err, ErrOutOfExtent)

		_, err = ix.Remove(c[0], c[1])
		require.ErrorIs(t, err, ErrOutOfExtent)

		_, _, err = ix.Get(c[0], c[1])
		require.ErrorIs(t, err, ErrOutOfExtent)

		assert.False(t, ix.Walkable(c[0], c[1]))
	}
	assert.Equal(t, 0, ix.Len())
}

func TestNegativeOrigin(t *testing.T) {
	ix := newIndex(t, -8, -8, 16, 16)

	for x := -8; x < 8; x += 3 {
		for y := -8; y < 8; y += 2 {
			require.NoError(t, ix.Insert(x, y, empty{}))
		}
	}
	for x := -8; x < 8; x++ {
		for y := -8; y < 8; y++ {
			ok, err := ix.Query(x, y)
			require.NoError(t, err)
			assert.Equal(t, (x+8)%3 == 0 && (y+8)%2 == 0, ok, "(%d,%d)", x, y)
		}
	}
}

func TestSplitScenario(t *testing.T) {
	ix := newIndex(t, 0, 0, 4, 4)

	for _, c := range [][2]int{{0, 0}, {0, 1}, {0, 2}, {3, 3}} {
		require.NoError(t, ix.Insert(c[0], c[1], empty{}))
	}
	assert.Equal(t, 1, ix.Stats().Nodes, "four points fit in the root leaf")

	require.NoError(t, ix.Insert(0, 3, empty{}))

	var nodes []NodeInfo[empty]
	ix.Enumerate(func(n NodeInfo[empty]) bool {
		nodes = append(nodes, n)
		return true
	})
	require.Len(t, nodes, 5)

	root := nodes[0]
	assert.Equal(t, Internal, root.Kind)
	assert.Empty(t, root.Points)
	assert.Equal(t, -1, root.Parent)

	want := [][][2]int{
		{{0, 0}, {0, 1}, {0, 2}},
		{},
		{{0, 3}},
		{{3, 3}},
	}
	for q, n := range nodes[1:] {
		assert.Equal(t, Leaf, n.Kind)
		assert.Equal(t, q, n.Quadrant)
		assert.Equal(t, root.ID, n.Parent)
		assert.Equal(t, 1, n.Depth)
		assert.Equal(t, Rect{X: float64(q&1) * 2, Y: float64(q>>1) * 2, Width: 2, Height: 2}, n.Rect)
		assert.Equal(t, want[q], coords(n.Points), "quadrant %d", q)
	}
}

func TestRemove_KeepsShapeAndOrder(t *testing.T) {
	ix := newIndex(t, 0, 0, 4, 4)
	for _, c := range [][2]int{{0, 0}, {0, 1}, {0, 2}, {3, 3}, {0, 3}} {
		require.NoError(t, ix.Insert(c[0], c[1], empty{}))
	}
	before := ix.Stats()

	removed, err := ix.Remove(0, 1)
	require.NoError(t, err)
	require.True(t, removed)

	for _, c := range [][2]int{{0, 3}, {3, 3}} {
		_, err := ix.Remove(c[0], c[1])
		require.NoError(t, err)
	}

	after := ix.Stats()
	assert.Equal(t, before.Nodes, after.Nodes, "quadrants are never merged")
	assert.Equal(t, before.Internal, after.Internal)
	assert.Equal(t, 2, after.Points)

	var q0 []Point[empty]
	ix.Enumerate(func(n NodeInfo[empty]) bool {
		if n.Depth == 1 && n.Quadrant == 0 {
			q0 = n.Points
			return false
		}
		return true
	})
	assert.Equal(t, [][2]int{{0, 0}, {0, 2}}, coords(q0))
}

func TestCapacityOption(t *testing.T) {
	ix, err := New[empty](0, 0, 8, 8, func(o *Options) { o.Capacity = 1 })
	require.NoError(t, err)
	assert.Equal(t, 1, ix.Capacity())

	for x := range 8 {
		require.NoError(t, ix.Insert(x, x, empty{}))
	}
	s := ix.Stats()
	assert.Equal(t, 8, s.Points)
	assert.LessOrEqual(t, s.MaxLeafLoad, 1)
}

// Random workloads check the structural invariants: leaf capacity, the
// four-child rule, parent links, and that every point lives in exactly the
// leaf reached by descent.
func TestRandomInvariants(t *testing.T) {
	for _, size := range [][2]int{{64, 64}, {37, 11}, {1, 100}, {5, 5}} {
		rng := testutil.NewRNG(4711)
		w, h := size[0], size[1]
		ix := newIndex(t, 0, 0, w, h)
		ref := map[[2]int]bool{}

		for range 2000 {
			x, y := rng.Intn(w), rng.Intn(h)
			if rng.Intn(4) == 0 {
				removed, err := ix.Remove(x, y)
				require.NoError(t, err)
				assert.Equal(t, ref[[2]int{x, y}], removed)
				delete(ref, [2]int{x, y})
				continue
			}
			require.NoError(t, ix.Insert(x, y, empty{}))
			ref[[2]int{x, y}] = true
		}

		require.Equal(t, len(ref), ix.Len())
		for x := range w {
			for y := range h {
				ok, err := ix.Query(x, y)
				require.NoError(t, err)
				require.Equal(t, ref[[2]int{x, y}], ok, "(%d,%d)", x, y)
			}
		}

		seen := map[[2]int]int{}
		children := map[int]int{}
		ix.Enumerate(func(n NodeInfo[empty]) bool {
			if n.Parent >= 0 {
				children[n.Parent]++
				p, ok := ix.Parent(n.ID)
				assert.True(t, ok)
				assert.Equal(t, n.Parent, p)
			}
			switch n.Kind {
			case Leaf:
				assert.LessOrEqual(t, len(n.Points), DefaultCapacity)
				for _, p := range n.Points {
					seen[[2]int{p.X, p.Y}]++
					assert.Equal(t, n.ID, int(ix.leafFor(0, p.X, p.Y)))
				}
			case Internal:
				assert.Empty(t, n.Points)
			}
			return true
		})

		for _, c := range children {
			assert.Equal(t, 4, c)
		}
		for c, n := range seen {
			assert.Equal(t, 1, n, "point %v stored once", c)
		}
		assert.Len(t, seen, len(ref))

		var all int
		for range ix.All() {
			all++
		}
		assert.Equal(t, len(ref), all)
	}
}

func TestEnumerate_Stop(t *testing.T) {
	ix := newIndex(t, 0, 0, 16, 16)
	for x := range 16 {
		require.NoError(t, ix.Insert(x, 0, empty{}))
	}

	visited := 0
	ix.Enumerate(func(NodeInfo[empty]) bool {
		visited++
		return visited < 3
	})
	assert.Equal(t, 3, visited)

	_, ok := ix.Parent(0)
	assert.False(t, ok)
	_, ok = ix.Parent(1 << 20)
	assert.False(t, ok)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "Leaf", Leaf.String())
	assert.Equal(t, "Internal", Internal.String())
	assert.Equal(t, "Unknown(9)", Kind(9).String())
}
