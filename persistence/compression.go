package persistence

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression defines the algorithm used for the snapshot body.
type Compression uint8

const (
	// CompressionNone stores the body as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio).
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

func (c Compression) check() (Compression, error) {
	switch c {
	case CompressionNone, CompressionLZ4, CompressionZSTD:
		return c, nil
	default:
		return c, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}
}

// ParseCompression maps a name ("none", "lz4", "zstd") to a Compression.
func ParseCompression(name string) (Compression, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Compressed bodies are framed as [UncompressedSize uint32][CompressedSize uint32][Data...].
// CompressedSize == 0 means the data is stored raw.
const blockHeaderSize = 8

// compressBlock compresses data with c. CompressionNone returns data unframed.
// Data that does not shrink below 90% is stored raw inside the frame.
func compressBlock(data []byte, c Compression) ([]byte, error) {
	if c == CompressionNone {
		return data, nil
	}

	var compressed []byte
	switch c {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n]
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}

	raw := len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9
	payload := compressed
	if raw {
		payload = data
	}

	out := make([]byte, blockHeaderSize+len(payload))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
	if !raw {
		binary.LittleEndian.PutUint32(out[4:], uint32(len(compressed)))
	}
	copy(out[blockHeaderSize:], payload)
	return out, nil
}

// decompressBlock reverses compressBlock. want is the exact decompressed
// size; a frame announcing any other size is rejected before allocating.
func decompressBlock(data []byte, c Compression, want uint64) ([]byte, error) {
	if c == CompressionNone {
		return data, nil
	}
	if len(data) < blockHeaderSize {
		return nil, errors.New("block too small for header")
	}

	uncompressedSize := binary.LittleEndian.Uint32(data[0:])
	compressedSize := binary.LittleEndian.Uint32(data[4:])
	if uint64(uncompressedSize) != want {
		return nil, fmt.Errorf("block announces %d bytes, want %d", uncompressedSize, want)
	}

	if compressedSize == 0 {
		if uint64(len(data)) < blockHeaderSize+uint64(uncompressedSize) {
			return nil, errors.New("block data too small")
		}
		return data[blockHeaderSize : blockHeaderSize+uncompressedSize], nil
	}

	if uint64(len(data)) < blockHeaderSize+uint64(compressedSize) {
		return nil, errors.New("compressed block data too small")
	}
	src := data[blockHeaderSize : blockHeaderSize+compressedSize]
	result := make([]byte, uncompressedSize)

	switch c {
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(src, result)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return result, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)

		decoded, err := dec.DecodeAll(src, result[:0])
		if err != nil {
			return nil, err
		}
		if uint32(len(decoded)) != uncompressedSize {
			return nil, errors.New("decompressed size mismatch")
		}
		return decoded, nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}
}
