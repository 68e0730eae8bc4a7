// Package astar implements A* shortest-path search on an integer grid.
//
// The grid is any value with a Walkable(x, y) predicate, typically a
// quadtree.Index. Steps cost their Euclidean length (1 for cardinal moves,
// √2 for diagonal moves) and the default heuristic is the Euclidean distance
// to the goal, which is admissible and consistent for both movement modes.
//
// The frontier is an indexed binary min-heap with decrease-key. Entries with
// equal f are taken in insertion order, so results are deterministic for a
// given grid. Expanded cells are kept in a closed set and never reopened.
//
// # Usage
//
//	s, err := astar.New(index, func(o *astar.Options) {
//		o.Movement = astar.FourDirectional
//	})
//	if err != nil {
//		return err
//	}
//	path, err := s.FindPath(ctx, 0, 0, 7, 3)
package astar
