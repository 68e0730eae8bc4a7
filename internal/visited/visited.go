package visited

import "github.com/RoaringBitmap/roaring/v2/roaring64"

// VisitedSet tracks visited cells by their packed 64-bit key.
//
// Grid keys are sparse (the walkable set is a small fraction of a large
// extent), so a compressed bitmap is used instead of a dense bit array.
type VisitedSet struct {
	rb *roaring64.Bitmap
}

// New creates a new visited set.
func New() *VisitedSet {
	return &VisitedSet{rb: roaring64.New()}
}

// Visit marks a key as visited. It reports whether the key was newly added.
func (v *VisitedSet) Visit(key uint64) bool {
	return v.rb.CheckedAdd(key)
}

// Visited returns true if the key has been visited.
func (v *VisitedSet) Visited(key uint64) bool {
	return v.rb.Contains(key)
}

// Len returns the number of visited keys.
func (v *VisitedSet) Len() int {
	return int(v.rb.GetCardinality())
}

// Reset clears the set for reuse.
func (v *VisitedSet) Reset() {
	v.rb.Clear()
}

// Key packs a cell coordinate into a visited-set key. Negative coordinates
// are supported; the mapping is a bijection over int32 pairs. Coordinates
// outside int32 are truncated and alias other cells.
func Key(x, y int) uint64 {
	return uint64(uint32(int32(x)))<<32 | uint64(uint32(int32(y)))
}
