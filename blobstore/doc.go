// Package blobstore provides storage abstraction for quadnav snapshots.
//
// BlobStore is the interface for reading and writing immutable blobs
// (snapshots, manifests and the CURRENT pointer). Implementations must be
// safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-memory, for tests
//   - LocalStore: local filesystem with mmap reads
//   - minio.Store: MinIO and S3-compatible storage
//   - s3.Store: Amazon S3, with s3.DDBCommitStore for atomic CURRENT updates
package blobstore
