// Package manifest records which snapshot is current in a blob store.
//
// A commit writes the snapshot blob, then a manifest describing it, then
// rewrites CURRENT to name the manifest. Readers follow CURRENT, so a crash
// between steps leaves the previous commit visible.
package manifest

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/quadnav/blobstore"
	"github.com/hupe1980/quadnav/codec"
)

const (
	CurrentName    = "CURRENT"
	ManifestPrefix = "manifests/"
	SnapshotPrefix = "snapshots/"
	CurrentVersion = 1
)

// ErrNoManifest is returned by Load when nothing has been committed yet.
var ErrNoManifest = fmt.Errorf("manifest: nothing committed: %w", blobstore.ErrNotFound)

// Manifest describes one committed snapshot.
type Manifest struct {
	Version     int       `json:"version"`
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Snapshot    string    `json:"snapshot"`
	OriginX     int32     `json:"origin_x"`
	OriginY     int32     `json:"origin_y"`
	Width       int32     `json:"width"`
	Height      int32     `json:"height"`
	Capacity    int       `json:"capacity"`
	Cells       uint64    `json:"cells"`
	Compression string    `json:"compression"`
	Checksum    uint32    `json:"checksum"`
	SizeBytes   int64     `json:"size_bytes"`
}

// NewID returns a fresh commit identifier.
func NewID() string { return uuid.NewString() }

// SnapshotName returns the blob name for a snapshot of commit id.
func SnapshotName(id string) string { return SnapshotPrefix + id + ".qnv" }

// Name returns the blob name for the manifest of commit id written with c.
// The codec name is the extension so Load can pick the decoder.
func Name(id string, c codec.Codec) string { return ManifestPrefix + id + "." + c.Name() }

func codecOf(name string) (codec.Codec, error) {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	c, ok := codec.ByName(ext)
	if !ok {
		return nil, fmt.Errorf("manifest: unknown codec %q in %s", ext, name)
	}
	return c, nil
}

// Store manages manifests and the CURRENT pointer in a blob store.
type Store struct {
	blobs blobstore.BlobStore
	codec codec.Codec
	mu    sync.Mutex
}

// NewStore creates a new manifest store. A nil codec selects codec.Default.
func NewStore(blobs blobstore.BlobStore, c codec.Codec) *Store {
	if c == nil {
		c = codec.Default
	}
	return &Store{
		blobs: blobs,
		codec: c,
	}
}

// Current returns the manifest name CURRENT points to.
func (s *Store) Current(ctx context.Context) (string, error) {
	data, err := blobstore.ReadAll(ctx, s.blobs, CurrentName)
	if errors.Is(err, blobstore.ErrNotFound) {
		return "", ErrNoManifest
	}
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(string(data))
	if name == "" {
		return "", fmt.Errorf("manifest: empty %s", CurrentName)
	}
	return name, nil
}

// Load loads the current manifest.
func (s *Store) Load(ctx context.Context) (*Manifest, error) {
	name, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, name)
}

// Get loads the manifest stored under name.
func (s *Store) Get(ctx context.Context, name string) (*Manifest, error) {
	c, err := codecOf(name)
	if err != nil {
		return nil, err
	}
	data, err := blobstore.ReadAll(ctx, s.blobs, name)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", name, err)
	}

	var m Manifest
	if err := c.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: decode %s: %w", name, err)
	}
	if m.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported manifest version: %d (expected %d)", m.Version, CurrentVersion)
	}
	return &m, nil
}

// Save writes m and points CURRENT at it. It returns the manifest name.
func (s *Store) Save(ctx context.Context, m *Manifest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.Version = CurrentVersion
	if m.ID == "" {
		m.ID = NewID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	data, err := s.codec.Marshal(m)
	if err != nil {
		return "", err
	}

	name := Name(m.ID, s.codec)
	if err := s.blobs.Put(ctx, name, data); err != nil {
		return "", fmt.Errorf("manifest: write %s: %w", name, err)
	}
	if err := s.blobs.Put(ctx, CurrentName, []byte(name)); err != nil {
		return "", fmt.Errorf("manifest: update %s: %w", CurrentName, err)
	}
	return name, nil
}

// List returns all manifest names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	return s.blobs.List(ctx, ManifestPrefix)
}

// Prune deletes every manifest and snapshot except the current commit.
// It returns the number of deleted blobs.
func (s *Store) Prune(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	currentName, err := s.Current(ctx)
	if err != nil {
		return 0, err
	}
	current, err := s.Get(ctx, currentName)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, prefix := range []string{ManifestPrefix, SnapshotPrefix} {
		names, err := s.blobs.List(ctx, prefix)
		if err != nil {
			return deleted, err
		}
		for _, name := range names {
			if name == currentName || name == current.Snapshot {
				continue
			}
			if err := s.blobs.Delete(ctx, name); err != nil {
				return deleted, err
			}
			deleted++
		}
	}
	return deleted, nil
}
