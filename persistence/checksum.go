package persistence

import (
	"errors"
	"fmt"
	"hash/crc32"
)

// CalculateChecksum calculates the CRC32 (IEEE) checksum of data.
//
// CRC32 detects accidental corruption only; it is not a tamper check.
func CalculateChecksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// ChecksumMismatchError is returned when checksum verification fails.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}

// Unwrap reports checksum mismatches as ErrCorrupt.
func (e *ChecksumMismatchError) Unwrap() error { return ErrCorrupt }

// IsChecksumMismatch returns true if err is or wraps a checksum mismatch error.
func IsChecksumMismatch(err error) bool {
	var cm *ChecksumMismatchError
	return errors.As(err, &cm)
}

func verifyChecksum(data []byte, expected uint32) error {
	if actual := CalculateChecksum(data); actual != expected {
		return &ChecksumMismatchError{Expected: expected, Actual: actual}
	}
	return nil
}
