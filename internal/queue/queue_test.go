package queue

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityQueue_PopOrder(t *testing.T) {
	pq := NewMin(4)
	pq.PushItem(1, 3.0)
	pq.PushItem(2, 1.0)
	pq.PushItem(3, 2.0)
	pq.PushItem(4, 0.5)

	var got []uint32
	for pq.Len() > 0 {
		it, ok := pq.PopItem()
		require.True(t, ok)
		got = append(got, it.Node)
	}
	assert.Equal(t, []uint32{4, 2, 3, 1}, got)

	_, ok := pq.PopItem()
	assert.False(t, ok)
}

func TestPriorityQueue_TiesAreFIFO(t *testing.T) {
	pq := NewMin(8)
	for n := uint32(0); n < 6; n++ {
		pq.PushItem(n, 1.0)
	}

	for want := uint32(0); want < 6; want++ {
		it, ok := pq.PopItem()
		require.True(t, ok)
		assert.Equal(t, want, it.Node)
	}
}

func TestPriorityQueue_Update(t *testing.T) {
	pq := NewMin(4)
	pq.PushItem(10, 5.0)
	pq.PushItem(11, 4.0)
	pq.PushItem(12, 3.0)

	assert.True(t, pq.Update(10, 1.0))
	p, ok := pq.Priority(10)
	require.True(t, ok)
	assert.InDelta(t, 1.0, p, 1e-12)

	top, ok := pq.TopItem()
	require.True(t, ok)
	assert.Equal(t, uint32(10), top.Node)

	// Raising a priority moves the node down.
	assert.True(t, pq.Update(10, 9.0))
	top, _ = pq.TopItem()
	assert.Equal(t, uint32(12), top.Node)

	assert.False(t, pq.Update(99, 1.0))
}

func TestPriorityQueue_UpdateKeepsSequence(t *testing.T) {
	pq := NewMin(4)
	pq.PushItem(0, 2.0)
	pq.PushItem(1, 5.0)

	// Node 1 drops to the same priority as node 0 but was inserted later.
	pq.Update(1, 2.0)

	it, _ := pq.PopItem()
	assert.Equal(t, uint32(0), it.Node)
	it, _ = pq.PopItem()
	assert.Equal(t, uint32(1), it.Node)
}

func TestPriorityQueue_PushExistingUpdates(t *testing.T) {
	pq := NewMin(2)
	pq.PushItem(7, 4.0)
	pq.PushItem(7, 2.0)

	assert.Equal(t, 1, pq.Len())
	p, _ := pq.Priority(7)
	assert.InDelta(t, 2.0, p, 1e-12)
}

func TestPriorityQueue_ContainsAndReset(t *testing.T) {
	pq := NewMin(2)
	pq.PushItem(3, 1.0)
	assert.True(t, pq.Contains(3))
	assert.False(t, pq.Contains(4))

	pq.PopItem()
	assert.False(t, pq.Contains(3))

	pq.PushItem(1, 1.0)
	pq.PushItem(2, 1.0)
	pq.Reset()
	assert.Equal(t, 0, pq.Len())
	assert.False(t, pq.Contains(1))
	assert.False(t, pq.Contains(2))

	pq.PushItem(2, 1.0)
	it, _ := pq.TopItem()
	assert.Equal(t, uint64(1), it.Seq)
}

func TestPriorityQueue_HeapInterface(t *testing.T) {
	pq := NewMin(4)
	heap.Push(pq, PriorityQueueItem{Node: 0, Priority: 3, Seq: 1})
	heap.Push(pq, PriorityQueueItem{Node: 1, Priority: 1, Seq: 2})
	heap.Push(pq, PriorityQueueItem{Node: 2, Priority: 2, Seq: 3})

	it := heap.Pop(pq).(PriorityQueueItem)
	assert.Equal(t, uint32(1), it.Node)
	assert.False(t, pq.Contains(1))
	assert.True(t, pq.Contains(0))
}
