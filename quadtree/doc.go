// Package quadtree implements a sparse point index over an integer grid.
//
// The index is a region quadtree whose leaves hold up to Capacity points
// (4 by default). When an insert would overflow a leaf, the leaf is replaced
// by four half-size quadrants and its points are redistributed. Quadrants are
// never merged, so the tree only grows.
//
// Nodes are stored in an arena owned by the Index. Children reference their
// parent by arena id, which keeps the structure free of ownership cycles.
//
// # Usage
//
//	ix, err := quadtree.New[struct{}](0, 0, 64, 64)
//	if err != nil {
//		return err
//	}
//	_ = ix.Insert(3, 5, struct{}{})
//	ok, _ := ix.Query(3, 5) // true
package quadtree
