package testutil

import (
	"container/heap"
	"math"
	"math/rand"
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Field is a dense walkability mask over [0, Width) × [0, Height).
type Field struct {
	Width, Height int
	bits          *bitset.BitSet
}

// NewField returns an empty field.
func NewField(width, height int) *Field {
	return &Field{
		Width:  width,
		Height: height,
		bits:   bitset.New(uint(width * height)),
	}
}

// RandomField marks each cell walkable with probability density.
func (r *RNG) RandomField(width, height int, density float64) *Field {
	f := NewField(width, height)
	r.mu.Lock()
	defer r.mu.Unlock()
	for y := range height {
		for x := range width {
			if r.rand.Float64() < density {
				f.Set(x, y)
			}
		}
	}
	return f
}

func (f *Field) in(x, y int) bool {
	return x >= 0 && x < f.Width && y >= 0 && y < f.Height
}

// Set marks (x, y) walkable.
func (f *Field) Set(x, y int) {
	if f.in(x, y) {
		f.bits.Set(uint(y*f.Width + x))
	}
}

// Clear marks (x, y) blocked.
func (f *Field) Clear(x, y int) {
	if f.in(x, y) {
		f.bits.Clear(uint(y*f.Width + x))
	}
}

// Walkable reports whether (x, y) is walkable. Cells outside the field are not.
func (f *Field) Walkable(x, y int) bool {
	return f.in(x, y) && f.bits.Test(uint(y*f.Width+x))
}

// Count returns the number of walkable cells.
func (f *Field) Count() int {
	return int(f.bits.Count())
}

// Cells returns all walkable cells in row-major order.
func (f *Field) Cells() [][2]int {
	out := make([][2]int, 0, f.Count())
	for i, ok := f.bits.NextSet(0); ok; i, ok = f.bits.NextSet(i + 1) {
		out = append(out, [2]int{int(i) % f.Width, int(i) / f.Width})
	}
	return out
}

// Walkability is the predicate ShortestCost searches over.
type Walkability interface {
	Walkable(x, y int) bool
}

var (
	cardinal = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	diagonal = [][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
)

// ShortestCost computes the exact shortest path cost between two cells with
// Dijkstra's algorithm (cardinal cost 1, diagonal cost √2). It is the ground
// truth for path search tests. ok is false if goal is unreachable.
func ShortestCost(g Walkability, sx, sy, gx, gy int, eight, cornerCutting bool) (cost float64, ok bool) {
	if !g.Walkable(sx, sy) || !g.Walkable(gx, gy) {
		return 0, false
	}

	dist := map[[2]int]float64{{sx, sy}: 0}
	pq := &costQueue{{cell: [2]int{sx, sy}}}
	done := map[[2]int]bool{}

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(costItem)
		if done[cur.cell] {
			continue
		}
		done[cur.cell] = true
		if cur.cell == [2]int{gx, gy} {
			return cur.cost, true
		}

		relax := func(d [2]int, step float64) {
			n := [2]int{cur.cell[0] + d[0], cur.cell[1] + d[1]}
			if !g.Walkable(n[0], n[1]) || done[n] {
				return
			}
			c := cur.cost + step
			if old, seen := dist[n]; !seen || c < old {
				dist[n] = c
				heap.Push(pq, costItem{cell: n, cost: c})
			}
		}

		for _, d := range cardinal {
			relax(d, 1)
		}
		if !eight {
			continue
		}
		for _, d := range diagonal {
			if !cornerCutting && (!g.Walkable(cur.cell[0]+d[0], cur.cell[1]) || !g.Walkable(cur.cell[0], cur.cell[1]+d[1])) {
				continue
			}
			relax(d, math.Sqrt2)
		}
	}

	return 0, false
}

type costItem struct {
	cell [2]int
	cost float64
}

type costQueue []costItem

func (q costQueue) Len() int           { return len(q) }
func (q costQueue) Less(i, j int) bool { return q[i].cost < q[j].cost }
func (q costQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *costQueue) Push(x any)        { *q = append(*q, x.(costItem)) }
func (q *costQueue) Pop() any {
	old := *q
	it := old[len(old)-1]
	*q = old[:len(old)-1]
	return it
}
