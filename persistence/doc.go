// Package persistence provides the binary snapshot format for walkability
// indexes.
//
// A snapshot is a fixed-size little-endian FileHeader followed by the cell
// body. The body may be LZ4 or ZSTD block compressed and is protected by a
// CRC32 checksum of its uncompressed bytes.
//
// # Usage
//
//	err := persistence.SaveToFile("farm.qnv", snap, persistence.CompressionZSTD)
//	snap, err := persistence.LoadFromFile("farm.qnv")
package persistence
