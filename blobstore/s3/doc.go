// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	client, err := s3.NewClient(ctx)
//	store := s3.NewStore(client, "my-bucket", "graphs/")
//
//	mgr := snapshot.NewManager(store)
//
// # Features
//
//   - Range reads for efficient partial fetches
//   - Streaming uploads via the S3 upload manager
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
//
// S3 Put is last-writer-wins; for safe concurrent writers wrap the store
// in a CommitStore, which CASes the CURRENT pointer through DynamoDB.
package s3
