package queue

import "container/heap"

// Compile time check to ensure PriorityQueue satisfies the heap interface.
var _ heap.Interface = (*PriorityQueue)(nil)

const absent = -1

// PriorityQueueItem represents an entry of the priority queue.
type PriorityQueueItem struct {
	Node     uint32  // Node is a dense slot id owned by the caller.
	Priority float64 // Priority orders the queue (smallest first).
	Seq      uint64  // Seq is the insertion order, used to break ties (FIFO).
}

// PriorityQueue is an indexed binary min-heap.
//
// Every node id can be present at most once. The queue keeps a position
// index per node so that the priority of a queued node can be changed in
// place (decrease-key) without a linear scan.
type PriorityQueue struct {
	items []PriorityQueueItem
	pos   []int32 // pos[node] = heap slot, or absent
	seq   uint64
}

// NewMin initializes a new min priority queue.
func NewMin(capacity int) *PriorityQueue {
	return &PriorityQueue{
		items: make([]PriorityQueueItem, 0, capacity),
		pos:   make([]int32, 0, capacity),
	}
}

// TopItem returns the top element of the heap.
func (pq *PriorityQueue) TopItem() (PriorityQueueItem, bool) {
	if len(pq.items) == 0 {
		return PriorityQueueItem{}, false
	}
	return pq.items[0], true
}

// PushItem inserts node with the given priority. The insertion sequence is
// assigned by the queue. If node is already queued, PushItem behaves like
// Update.
func (pq *PriorityQueue) PushItem(node uint32, priority float64) {
	if pq.Contains(node) {
		pq.Update(node, priority)
		return
	}
	pq.ensure(node)
	pq.seq++
	pq.items = append(pq.items, PriorityQueueItem{Node: node, Priority: priority, Seq: pq.seq})
	i := len(pq.items) - 1
	pq.pos[node] = int32(i)
	pq.siftUp(i)
}

// PopItem removes and returns the top element while maintaining the heap invariant.
func (pq *PriorityQueue) PopItem() (PriorityQueueItem, bool) {
	n := len(pq.items)
	if n == 0 {
		return PriorityQueueItem{}, false
	}
	root := pq.items[0]
	pq.swap(0, n-1)
	pq.items[n-1] = PriorityQueueItem{}
	pq.items = pq.items[:n-1]
	pq.pos[root.Node] = absent
	if n-1 > 0 {
		pq.siftDown(0)
	}
	return root, true
}

// Update changes the priority of a queued node and restores the heap
// invariant. The original insertion sequence is kept, so a node whose
// priority is lowered keeps its place among equal priorities. It reports
// false if node is not queued.
func (pq *PriorityQueue) Update(node uint32, priority float64) bool {
	if !pq.Contains(node) {
		return false
	}
	i := int(pq.pos[node])
	pq.items[i].Priority = priority
	heap.Fix(pq, i)
	return true
}

// Contains reports whether node is currently queued.
func (pq *PriorityQueue) Contains(node uint32) bool {
	return int(node) < len(pq.pos) && pq.pos[node] != absent
}

// Priority returns the current priority of a queued node.
func (pq *PriorityQueue) Priority(node uint32) (float64, bool) {
	if !pq.Contains(node) {
		return 0, false
	}
	return pq.items[pq.pos[node]].Priority, true
}

// Reset clears the queue for reuse without freeing memory.
func (pq *PriorityQueue) Reset() {
	for _, it := range pq.items {
		pq.pos[it.Node] = absent
	}
	pq.items = pq.items[:0]
	pq.seq = 0
}

func (pq *PriorityQueue) ensure(node uint32) {
	for int(node) >= len(pq.pos) {
		pq.pos = append(pq.pos, absent)
	}
}

func (pq *PriorityQueue) less(i, j int) bool {
	a, b := pq.items[i], pq.items[j]
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.Seq < b.Seq
}

func (pq *PriorityQueue) swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
	pq.pos[pq.items[i].Node] = int32(i)
	pq.pos[pq.items[j].Node] = int32(j)
}

func (pq *PriorityQueue) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !pq.less(i, p) {
			return
		}
		pq.swap(i, p)
		i = p
	}
}

func (pq *PriorityQueue) siftDown(i int) {
	n := len(pq.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && pq.less(r, l) {
			best = r
		}
		if !pq.less(best, i) {
			return
		}
		pq.swap(i, best)
		i = best
	}
}

// Len returns the number of elements in the priority queue.
func (pq *PriorityQueue) Len() int { return len(pq.items) }

// Less reports whether the element with index i should sort before the element with index j.
func (pq *PriorityQueue) Less(i, j int) bool { return pq.less(i, j) }

// Swap swaps the elements with indexes i and j.
func (pq *PriorityQueue) Swap(i, j int) { pq.swap(i, j) }

// Push adds x to the priority queue. It is used by container/heap only;
// callers should use PushItem.
func (pq *PriorityQueue) Push(x any) {
	item := x.(PriorityQueueItem)
	pq.ensure(item.Node)
	pq.pos[item.Node] = int32(len(pq.items))
	pq.items = append(pq.items, item)
}

// Pop removes and returns the last element of the backing slice. It is used
// by container/heap only; callers should use PopItem.
func (pq *PriorityQueue) Pop() any {
	n := len(pq.items)
	item := pq.items[n-1]
	pq.items[n-1] = PriorityQueueItem{}
	pq.items = pq.items[:n-1]
	pq.pos[item.Node] = absent
	return item
}
