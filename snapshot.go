package quadnav

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/hupe1980/quadnav/astar"
	"github.com/hupe1980/quadnav/blobstore"
	"github.com/hupe1980/quadnav/manifest"
	"github.com/hupe1980/quadnav/persistence"
	"github.com/hupe1980/quadnav/quadtree"
	"github.com/hupe1980/quadnav/resource"
)

// maxSnapshotCapacity is the largest leaf capacity the snapshot header holds.
const maxSnapshotCapacity = math.MaxUint16

var (
	_ io.WriterTo   = (*Navigator)(nil)
	_ io.ReaderFrom = (*Navigator)(nil)
)

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// snapshot requires n.mu to be held.
func (n *Navigator) snapshot() *persistence.Snapshot {
	b := n.index.Bounds()
	snap := &persistence.Snapshot{
		OriginX:  int32(b.X),
		OriginY:  int32(b.Y),
		Width:    int32(b.Width),
		Height:   int32(b.Height),
		Capacity: uint16(n.index.Capacity()),
		Cells:    make([]persistence.Cell, 0, n.index.Len()),
	}
	for p := range n.index.All() {
		snap.Cells = append(snap.Cells, persistence.Cell{X: int32(p.X), Y: int32(p.Y)})
	}
	return snap
}

// WriteTo writes a snapshot of the walkable cells to w, compressed with the
// configured compression. It implements io.WriterTo.
func (n *Navigator) WriteTo(w io.Writer) (int64, error) {
	n.mu.RLock()
	snap := n.snapshot()
	n.mu.RUnlock()

	cw := &countingWriter{w: resource.NewRateLimitedWriter(context.Background(), w, n.opts.resourceController)}
	err := persistence.Write(cw, snap, n.opts.compression)
	return cw.n, translateError(err)
}

// ReadFrom replaces the navigator's extent, capacity and walkable cells with
// a snapshot read from r. It implements io.ReaderFrom. On error the
// navigator is unchanged.
func (n *Navigator) ReadFrom(r io.Reader) (int64, error) {
	cr := &countingReader{r: resource.NewRateLimitedReader(context.Background(), r, n.opts.resourceController)}
	snap, err := persistence.Read(cr)
	if err != nil {
		return cr.n, translateError(err)
	}

	index, search, err := restore(n.opts, snap)
	if err != nil {
		return cr.n, err
	}

	n.mu.Lock()
	n.index, n.search = index, search
	n.mu.Unlock()
	return cr.n, nil
}

func restore(o options, snap *persistence.Snapshot) (*quadtree.Index[struct{}], *astar.Search, error) {
	index, search, err := build(o, int(snap.OriginX), int(snap.OriginY), int(snap.Width), int(snap.Height), int(snap.Capacity))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	for _, c := range snap.Cells {
		if err := index.Insert(int(c.X), int(c.Y), struct{}{}); err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrCorrupt, translateError(err))
		}
	}
	return index, search, nil
}

// Commit writes a snapshot to store under a fresh name, records it in a
// manifest and points CURRENT at the manifest.
func (n *Navigator) Commit(ctx context.Context, store blobstore.BlobStore) (m *manifest.Manifest, err error) {
	start := time.Now()
	var size int64
	name := ""
	cells := 0
	defer func() {
		n.opts.metricsCollector.RecordCommit(size, time.Since(start), err)
		n.opts.logger.LogCommit(ctx, name, cells, err)
	}()

	n.mu.RLock()
	snap := n.snapshot()
	n.mu.RUnlock()
	cells = len(snap.Cells)

	var buf bytes.Buffer
	if err := persistence.Write(&buf, snap, n.opts.compression); err != nil {
		return nil, translateError(err)
	}
	data := buf.Bytes()
	size = int64(len(data))

	if err := n.opts.resourceController.AcquireIO(ctx, len(data)); err != nil {
		return nil, err
	}

	id := manifest.NewID()
	m = &manifest.Manifest{
		ID:          id,
		Snapshot:    manifest.SnapshotName(id),
		OriginX:     snap.OriginX,
		OriginY:     snap.OriginY,
		Width:       snap.Width,
		Height:      snap.Height,
		Capacity:    int(snap.Capacity),
		Cells:       uint64(len(snap.Cells)),
		Compression: n.opts.compression.String(),
		Checksum:    persistence.CalculateChecksum(data),
		SizeBytes:   size,
	}
	if err := store.Put(ctx, m.Snapshot, data); err != nil {
		return nil, fmt.Errorf("write snapshot: %w", err)
	}

	name, err = manifest.NewStore(store, n.opts.codec).Save(ctx, m)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Open restores the navigator last committed to store. Search, logging,
// metrics and resource options apply; the extent and capacity come from the
// snapshot.
func Open(ctx context.Context, store blobstore.BlobStore, optFns ...Option) (nav *Navigator, err error) {
	o := applyOptions(optFns)

	start := time.Now()
	var size int64
	name := ""
	defer func() {
		o.metricsCollector.RecordOpen(size, time.Since(start), err)
		cells := 0
		if nav != nil {
			cells = nav.index.Len()
		}
		o.logger.LogOpen(ctx, name, cells, err)
	}()

	ms := manifest.NewStore(store, o.codec)
	name, err = ms.Current(ctx)
	if err != nil {
		if errors.Is(err, manifest.ErrNoManifest) {
			return nil, fmt.Errorf("%w: no commit in store", ErrNotFound)
		}
		return nil, err
	}
	m, err := ms.Get(ctx, name)
	if err != nil {
		return nil, translateError(err)
	}

	data, err := blobstore.ReadAll(ctx, store, m.Snapshot)
	if err != nil {
		return nil, translateError(err)
	}
	size = int64(len(data))

	if err := o.resourceController.AcquireIO(ctx, len(data)); err != nil {
		return nil, err
	}
	if sum := persistence.CalculateChecksum(data); sum != m.Checksum {
		return nil, fmt.Errorf("%w: %s checksum 0x%08x, manifest has 0x%08x", ErrCorrupt, m.Snapshot, sum, m.Checksum)
	}

	snap, err := persistence.Read(bytes.NewReader(data))
	if err != nil {
		return nil, translateError(err)
	}
	if uint64(len(snap.Cells)) != m.Cells {
		return nil, fmt.Errorf("%w: %d cells, manifest has %d", ErrCorrupt, len(snap.Cells), m.Cells)
	}

	index, search, err := restore(o, snap)
	if err != nil {
		return nil, err
	}

	o.originX, o.originY = int(snap.OriginX), int(snap.OriginY)
	o.capacity = int(snap.Capacity)
	return &Navigator{
		index:  index,
		search: search,
		opts:   o,
	}, nil
}
