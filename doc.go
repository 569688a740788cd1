// Package vecgraph provides the undirected adjacency structure backing an
// HNSW index layer, with snapshot persistence to local disk or object
// storage.
//
// The core invariant is edge symmetry: whenever a is in b's neighbor set,
// b is in a's. Every mutation (AddNode, SetNode, RemoveNode, AddEdge)
// restores that property before returning.
//
// The root Graph type wraps graph.UndirectedGraph with a read-write lock
// and a dirty-node bitmap for checkpoint scheduling. Snapshots are
// self-describing binary files (see the snapshot package) that can be
// written to any blobstore.BlobStore implementation, including S3 and
// MinIO.
//
// Basic usage:
//
//	g := vecgraph.New(16)
//	g.AddNode(1, []core.ElementID{2, 3})
//	neighbors, ok := g.Edges(2) // contains 1
package vecgraph
