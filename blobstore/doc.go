// Package blobstore provides storage abstraction for vecgraph snapshots.
//
// BlobStore is the interface for reading and writing named immutable
// blobs. The snapshot manager stores versioned snapshot files plus a
// small CURRENT pointer blob through it.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem with atomic rename writes
//   - MemoryStore: in-memory store for tests
//   - s3.Store: Amazon S3 with range reads and streaming uploads
//   - minio.Store: MinIO and other S3-compatible storage
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)            // Open for reading
//	    Create(ctx, name) (WritableBlob, error)  // Create for writing
//	    Put(ctx, name, data) error               // Atomic write
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
