package persistence

import (
	"errors"
	"fmt"
)

const (
	// MagicNumber identifies walkability snapshots (ASCII: "QNV0")
	MagicNumber = 0x514E5630
	// Version is the current snapshot format version (v1.0.0)
	Version = 0x00010000

	// cellSize is the encoded size of one cell: two little-endian int32.
	cellSize = 8

	// maxCells bounds CellCount so the raw body fits a uint32 length.
	maxCells = (1<<32 - 1 - blockHeaderSize) / cellSize
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrUnknownCompression = errors.New("unknown compression type")
	ErrCorrupt            = errors.New("corrupt snapshot")
)

// FileHeader is the fixed-size header at the start of every snapshot.
type FileHeader struct {
	Magic       uint32 // 0x514E5630 ("QNV0")
	Version     uint32 // Snapshot format version
	Compression uint8  // CompressionNone, CompressionLZ4 or CompressionZSTD
	Padding1    uint8
	Capacity    uint16 // Leaf capacity of the index
	OriginX     int32
	OriginY     int32
	Width       int32
	Height      int32
	CellCount   uint64 // Number of stored cells
	BodySize    uint32 // Size of the body as stored (after compression)
	Checksum    uint32 // CRC32 of the uncompressed body
	Reserved    [16]byte
}

// Cell is an encoded walkable coordinate.
type Cell struct {
	X, Y int32
}

// Snapshot is the persistent form of a walkability index: its extent, leaf
// capacity and the set of stored cells.
type Snapshot struct {
	OriginX, OriginY int32
	Width, Height    int32
	Capacity         uint16
	Cells            []Cell
}

func (h *FileHeader) validate() error {
	if h.Magic != MagicNumber {
		return fmt.Errorf("%w: 0x%08x", ErrInvalidMagic, h.Magic)
	}
	if h.Version != Version {
		return fmt.Errorf("%w: 0x%08x", ErrInvalidVersion, h.Version)
	}
	if _, err := Compression(h.Compression).check(); err != nil {
		return err
	}
	if h.Width <= 0 || h.Height <= 0 {
		return fmt.Errorf("%w: extent %dx%d", ErrCorrupt, h.Width, h.Height)
	}
	if h.CellCount > maxCells {
		return fmt.Errorf("%w: %d cells", ErrCorrupt, h.CellCount)
	}
	return nil
}

// checkBodySize bounds the stored body by the raw size implied by CellCount.
// Uncompressed bodies are stored as is; framed bodies fall back to raw
// payloads when compression does not pay off, so they never exceed the raw
// size plus the frame header.
func (h *FileHeader) checkBodySize(raw uint64) error {
	limit := raw
	if Compression(h.Compression) != CompressionNone {
		limit += blockHeaderSize
	}
	if uint64(h.BodySize) > limit {
		return fmt.Errorf("%w: body of %d bytes exceeds %d", ErrCorrupt, h.BodySize, limit)
	}
	if Compression(h.Compression) == CompressionNone && uint64(h.BodySize) != raw {
		return fmt.Errorf("%w: body of %d bytes, want %d", ErrCorrupt, h.BodySize, raw)
	}
	return nil
}
