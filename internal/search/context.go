package search

import (
	"sync"

	"github.com/hupe1980/quadnav/internal/queue"
	"github.com/hupe1980/quadnav/internal/visited"
)

const (
	// DefaultNodeCapacity is the initial capacity of the node table.
	DefaultNodeCapacity = 256

	// maxRetainedNodes bounds the node table kept by pooled searchers.
	maxRetainedNodes = 1 << 16
)

// NoParent marks the start node of a search.
const NoParent int32 = -1

// Node is a cell discovered during a search.
type Node struct {
	X, Y   int
	Parent int32 // slot of the predecessor, NoParent for the start
	G      float64
	H      float64
}

// F returns the estimated total cost through the node.
func (n *Node) F() float64 { return n.G + n.H }

// Searcher is a reusable execution context for path search.
// It owns all scratch memory required for a search, eliminating heap
// allocations in the steady state.
//
// Searcher is NOT thread-safe. It is intended to be owned by a single goroutine
// during a search operation.
type Searcher struct {
	// Open is the frontier, keyed by node slot and ordered by f.
	Open *queue.PriorityQueue

	// Closed holds the packed keys of expanded cells.
	Closed *visited.VisitedSet

	// Nodes is the node table; queue entries and parent links are slots in it.
	Nodes []Node

	// Expanded counts nodes popped from the frontier.
	Expanded int

	slots map[uint64]uint32
}

// NewSearcher creates a new Searcher with room for capacity nodes.
func NewSearcher(capacity int) *Searcher {
	return &Searcher{
		Open:   queue.NewMin(capacity),
		Closed: visited.New(),
		Nodes:  make([]Node, 0, capacity),
		slots:  make(map[uint64]uint32, capacity),
	}
}

// Lookup returns the slot of the node at (x, y), if it was discovered.
func (s *Searcher) Lookup(x, y int) (uint32, bool) {
	slot, ok := s.slots[visited.Key(x, y)]
	return slot, ok
}

// Add appends a node to the table and returns its slot.
func (s *Searcher) Add(n Node) uint32 {
	slot := uint32(len(s.Nodes))
	s.Nodes = append(s.Nodes, n)
	s.slots[visited.Key(n.X, n.Y)] = slot
	return slot
}

// Reset clears the searcher state for reuse without freeing memory.
func (s *Searcher) Reset() {
	s.Open.Reset()
	s.Closed.Reset()
	s.Nodes = s.Nodes[:0]
	clear(s.slots)
	s.Expanded = 0
}

// Pool hands out Searchers for concurrent searches over the same grid.
type Pool struct {
	p sync.Pool
}

// NewPool creates an empty Pool.
func NewPool() *Pool {
	return &Pool{
		p: sync.Pool{
			New: func() any { return NewSearcher(DefaultNodeCapacity) },
		},
	}
}

// Get retrieves a reset Searcher from the pool.
func (p *Pool) Get() *Searcher {
	s := p.p.Get().(*Searcher)
	s.Reset()
	return s
}

// Put returns a Searcher to the pool for reuse. Searchers that grew very
// large are dropped so a single huge search does not pin memory.
func (p *Pool) Put(s *Searcher) {
	if cap(s.Nodes) > maxRetainedNodes {
		return
	}
	p.p.Put(s)
}
