package persistence

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Write encodes snap to w using compression c.
//
// Layout: FileHeader, then BodySize bytes of body. The uncompressed body is
// CellCount pairs of little-endian int32 (x, y) in snapshot order.
func Write(w io.Writer, snap *Snapshot, c Compression) error {
	if _, err := c.check(); err != nil {
		return err
	}
	if uint64(len(snap.Cells)) > maxCells {
		return fmt.Errorf("%w: %d cells", ErrCorrupt, len(snap.Cells))
	}

	body := make([]byte, len(snap.Cells)*cellSize)
	for i, cell := range snap.Cells {
		binary.LittleEndian.PutUint32(body[i*cellSize:], uint32(cell.X))
		binary.LittleEndian.PutUint32(body[i*cellSize+4:], uint32(cell.Y))
	}

	stored, err := compressBlock(body, c)
	if err != nil {
		return err
	}

	header := FileHeader{
		Magic:       MagicNumber,
		Version:     Version,
		Compression: uint8(c),
		Capacity:    snap.Capacity,
		OriginX:     snap.OriginX,
		OriginY:     snap.OriginY,
		Width:       snap.Width,
		Height:      snap.Height,
		CellCount:   uint64(len(snap.Cells)),
		BodySize:    uint32(len(stored)),
		Checksum:    CalculateChecksum(body),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	_, err = w.Write(stored)
	return err
}

// Read decodes a snapshot written by Write and verifies its checksum.
func Read(r io.Reader) (*Snapshot, error) {
	var header FileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}
	if err := header.validate(); err != nil {
		return nil, err
	}

	want := header.CellCount * cellSize
	if err := header.checkBodySize(want); err != nil {
		return nil, err
	}

	// The buffer grows with the bytes actually read, so a header claiming a
	// large body cannot force a large allocation on a short input.
	var stored bytes.Buffer
	if _, err := io.CopyN(&stored, r, int64(header.BodySize)); err != nil {
		return nil, fmt.Errorf("%w: body: %w", ErrCorrupt, err)
	}

	body, err := decompressBlock(stored.Bytes(), Compression(header.Compression), want)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if uint64(len(body)) != want {
		return nil, fmt.Errorf("%w: body has %d bytes, want %d", ErrCorrupt, len(body), want)
	}
	if err := verifyChecksum(body, header.Checksum); err != nil {
		return nil, err
	}

	snap := &Snapshot{
		OriginX:  header.OriginX,
		OriginY:  header.OriginY,
		Width:    header.Width,
		Height:   header.Height,
		Capacity: header.Capacity,
		Cells:    make([]Cell, header.CellCount),
	}
	for i := range snap.Cells {
		snap.Cells[i] = Cell{
			X: int32(binary.LittleEndian.Uint32(body[i*cellSize:])),
			Y: int32(binary.LittleEndian.Uint32(body[i*cellSize+4:])),
		}
	}
	return snap, nil
}

// SaveToFile atomically writes snap to filename: the data goes to a temp
// file in the same directory which is synced and renamed over the target.
func SaveToFile(filename string, snap *Snapshot, c Compression) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	_ = tmp.Chmod(0644)

	buf := bufio.NewWriterSize(tmp, 256*1024)
	if err := Write(buf, snap, c); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}
	tmpName = ""

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}

// LoadFromFile reads a snapshot from filename.
func LoadFromFile(filename string) (*Snapshot, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(bufio.NewReaderSize(f, 256*1024))
}
