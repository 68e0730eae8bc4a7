package quadnav

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/quadnav/astar"
	"github.com/hupe1980/quadnav/quadtree"
)

// Point is a grid coordinate.
type Point = astar.Cell

// NodeInfo is a read-only view of a quadtree node passed to Enumerate.
type NodeInfo = quadtree.NodeInfo[struct{}]

// Path is the result of a path query.
type Path struct {
	// Points runs from start to goal, both inclusive. It is empty when the
	// goal is unreachable.
	Points []Point

	// Cost is the sum of the Euclidean step costs.
	Cost float64

	// Expanded is the number of nodes the search expanded.
	Expanded int
}

// Found reports whether the goal was reached.
func (p Path) Found() bool { return len(p.Points) > 0 }

// Navigator is a sparse walkability map with path queries.
//
// Mutations take an exclusive lock; path queries share a read lock, so any
// number of searches run concurrently between mutations.
type Navigator struct {
	mu     sync.RWMutex
	index  *quadtree.Index[struct{}]
	search *astar.Search
	opts   options
}

// New creates a Navigator over the width×height extent whose top-left
// corner is the origin (0, 0 unless WithOrigin is given). Every cell starts
// unwalkable.
func New(width, height int, optFns ...Option) (*Navigator, error) {
	o := applyOptions(optFns)

	index, search, err := build(o, o.originX, o.originY, width, height, o.capacity)
	if err != nil {
		return nil, err
	}

	return &Navigator{
		index:  index,
		search: search,
		opts:   o,
	}, nil
}

func build(o options, x, y, width, height, capacity int) (*quadtree.Index[struct{}], *astar.Search, error) {
	if capacity > maxSnapshotCapacity {
		return nil, nil, fmt.Errorf("%w: %d exceeds %d", ErrInvalidCapacity, capacity, maxSnapshotCapacity)
	}

	index, err := quadtree.New[struct{}](x, y, width, height, func(qo *quadtree.Options) {
		qo.Capacity = capacity
	})
	if err != nil {
		return nil, nil, translateError(err)
	}

	search, err := astar.New(index, func(ao *astar.Options) {
		*ao = o.search
	})
	if err != nil {
		return nil, nil, translateError(err)
	}
	return index, search, nil
}

// SetWalkable marks (x, y) walkable or unwalkable. Repeating a call is a
// no-op.
func (n *Navigator) SetWalkable(x, y int, walkable bool) (err error) {
	start := time.Now()
	defer func() {
		n.opts.metricsCollector.RecordSetWalkable(walkable, time.Since(start), err)
		n.opts.logger.LogSetWalkable(context.Background(), x, y, walkable, err)
	}()

	n.mu.Lock()
	defer n.mu.Unlock()

	if walkable {
		return translateError(n.index.Insert(x, y, struct{}{}))
	}
	_, err = n.index.Remove(x, y)
	return translateError(err)
}

// IsWalkable reports whether (x, y) is walkable. Coordinates outside the
// extent return ErrOutOfExtent.
func (n *Navigator) IsWalkable(x, y int) (bool, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	ok, err := n.index.Query(x, y)
	return ok, translateError(err)
}

// Walkable reports whether (x, y) is walkable; out-of-extent cells are not.
// It lets a Navigator serve as an astar.Grid.
func (n *Navigator) Walkable(x, y int) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.index.Walkable(x, y)
}

// FindPath returns the cheapest path from one cell to another.
//
// An unreachable goal yields an empty Path and a nil error. A start or goal
// that is not walkable yields *ErrUnwalkableEndpoint.
func (n *Navigator) FindPath(ctx context.Context, from, to Point) (Path, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.findPath(ctx, from, to)
}

// findPath requires n.mu to be held.
func (n *Navigator) findPath(ctx context.Context, from, to Point) (Path, error) {
	start := time.Now()

	res, err := n.search.Find(ctx, from, to)
	err = translateError(err)
	path := Path{Points: res.Cells, Cost: res.Cost, Expanded: res.Expanded}

	n.opts.metricsCollector.RecordFindPath(path.Found(), path.Expanded, time.Since(start), err)
	n.opts.logger.LogFindPath(ctx, from, to, path, err)
	return path, err
}

// Enumerate walks the underlying quadtree depth-first in pre-order. The walk
// stops when visit returns false. visit must not call mutating methods.
func (n *Navigator) Enumerate(visit func(NodeInfo) bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	n.index.Enumerate(visit)
}

// Cells returns every walkable cell in quadtree order.
func (n *Navigator) Cells() []Point {
	n.mu.RLock()
	defer n.mu.RUnlock()

	cells := make([]Point, 0, n.index.Len())
	for p := range n.index.All() {
		cells = append(cells, Point{X: p.X, Y: p.Y})
	}
	return cells
}

// Stats returns statistics about the underlying quadtree.
func (n *Navigator) Stats() quadtree.Stats {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.index.Stats()
}

// Len returns the number of walkable cells.
func (n *Navigator) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.index.Len()
}

// Bounds returns the extent.
func (n *Navigator) Bounds() quadtree.Rect {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.index.Bounds()
}

// SearchOptions returns the effective path search configuration.
func (n *Navigator) SearchOptions() astar.Options {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.search.Options()
}
