// Package snapshot persists adjacency state.
//
// A snapshot is a self-describing binary file: a fixed header naming the
// codec and compression used, the compressed codec payload, and a CRC32
// trailer. Files written by any supported codec/compression combination
// can be read back without prior configuration.
//
// The Manager stores versioned snapshots in a blobstore.BlobStore and
// maintains a CURRENT pointer blob naming the latest one. On S3 the
// pointer update can be made an atomic compare-and-swap by using the
// s3.CommitStore wrapper.
package snapshot
