// Package graph implements the undirected adjacency structure backing
// HNSW index layers.
//
// The index layer decides which edges a node should have; UndirectedGraph
// materializes those decisions while keeping every edge bidirectional.
// Adding, replacing, or removing a node's neighbor set automatically
// updates the reverse edge on every affected neighbor, so the adjacency
// map can never be observed with a one-directional edge.
//
// The structure is synchronous and unsynchronized. Callers that need
// concurrent access should use the root package's Graph wrapper, which
// guards the whole map with a single reader/writer lock — per-node
// locking is unsound here because one mutation can touch several nodes'
// sets.
package graph
