package graph

import (
	"iter"

	"github.com/vecgraph/vecgraph/core"
)

// UndirectedGraph is the adjacency map backing one layer of an HNSW
// index. Every edge is recorded in both endpoints' neighbor sets, and
// every mutation restores that symmetry before returning.
//
// The structure performs no locking and assumes a single writer; wrap it
// (see the root package) when concurrent access is needed. It also does
// not enforce a degree bound: mMax is a capacity hint for newly created
// neighbor sets, nothing more. Deciding which edges exist — and keeping
// their number under mMax — is the index layer's job.
type UndirectedGraph struct {
	mMax  int
	nodes map[core.ElementID]EdgeSet
}

// New creates an empty graph. mMax sizes newly allocated neighbor sets.
func New(mMax int) *UndirectedGraph {
	return &UndirectedGraph{
		mMax:  mMax,
		nodes: make(map[core.ElementID]EdgeSet),
	}
}

// MMax returns the configured capacity hint.
func (g *UndirectedGraph) MMax() int {
	return g.mMax
}

// Len returns the number of registered nodes.
func (g *UndirectedGraph) Len() int {
	return len(g.nodes)
}

// Edges returns the neighbor set of node, or ok=false if the node is not
// registered. The returned set is the live internal one and must not be
// mutated or retained across mutations by the caller.
func (g *UndirectedGraph) Edges(node core.ElementID) (EdgeSet, bool) {
	edges, ok := g.nodes[node]
	return edges, ok
}

// AddEmptyNode registers node with an empty neighbor set if it is not
// already present. It returns true if the node was created and false if
// it already existed (in which case nothing changes).
func (g *UndirectedGraph) AddEmptyNode(node core.ElementID) bool {
	if _, ok := g.nodes[node]; ok {
		return false
	}
	g.nodes[node] = make(EdgeSet, g.mMax)
	return true
}

// AddNode registers node with the given neighbor set and installs the
// reverse edge on every neighbor, creating missing neighbor entries.
//
// If node already exists the call is rejected atomically: nothing is
// mutated and ok is false. On success it returns the neighbors that were
// linked (the members of edges, order unspecified) and ok=true.
//
// The graph takes ownership of edges; a nil set registers the node
// isolated.
func (g *UndirectedGraph) AddNode(node core.ElementID, edges EdgeSet) ([]core.ElementID, bool) {
	if _, ok := g.nodes[node]; ok {
		return nil, false
	}
	if edges == nil {
		edges = make(EdgeSet, g.mMax)
	}
	g.nodes[node] = edges

	linked := make([]core.ElementID, 0, len(edges))
	for e := range edges {
		g.edgesOrCreate(e).Insert(node)
		linked = append(linked, e)
	}
	return linked, true
}

// SetNode replaces the neighbor set of node, inserting the node first if
// it was not registered. It never fails.
//
// For an existing node the update is delta-minimal: the old and new sets
// are diffed, and only neighbors that actually gained or lost the edge
// are touched. Gained neighbors get node inserted into their set
// (created if missing); lost neighbors get node removed from theirs if
// they are still registered.
//
// The graph takes ownership of edges. The set is stored as given: a
// self-referential member is not filtered out here, unlike AddEdge.
func (g *UndirectedGraph) SetNode(node core.ElementID, edges EdgeSet) {
	if edges == nil {
		edges = make(EdgeSet, g.mMax)
	}

	old, ok := g.nodes[node]
	if !ok {
		g.nodes[node] = edges
		for e := range edges {
			g.edgesOrCreate(e).Insert(node)
		}
		return
	}

	var toAdd, toRemove []core.ElementID
	for e := range old {
		if !edges.Contains(e) {
			toRemove = append(toRemove, e)
		}
	}
	for e := range edges {
		if !old.Contains(e) {
			toAdd = append(toAdd, e)
		}
	}
	g.nodes[node] = edges

	for _, e := range toAdd {
		g.edgesOrCreate(e).Insert(node)
	}
	for _, e := range toRemove {
		if s, ok := g.nodes[e]; ok {
			s.Remove(node)
		}
	}
}

// RemoveNode deletes node and removes it from every surviving neighbor's
// set. Neighbor entries are kept even when their set becomes empty.
//
// It returns the former neighbor set so the caller can re-link the nodes
// it orphaned, or ok=false (no mutation) if the node was not registered.
func (g *UndirectedGraph) RemoveNode(node core.ElementID) (EdgeSet, bool) {
	edges, ok := g.nodes[node]
	if !ok {
		return nil, false
	}
	delete(g.nodes, node)
	for e := range edges {
		if s, ok := g.nodes[e]; ok {
			s.Remove(node)
		}
	}
	return edges, true
}

// AddEdge inserts the single symmetric edge (a, b), creating either
// endpoint's entry if missing. Self-edges (a == b) are silently ignored.
//
// It exists for tests and graph bootstrapping; regular index updates go
// through AddNode/SetNode.
func (g *UndirectedGraph) AddEdge(a, b core.ElementID) {
	if a == b {
		return
	}
	g.edgesOrCreate(a).Insert(b)
	g.edgesOrCreate(b).Insert(a)
}

// Nodes iterates over all registered nodes and their live neighbor sets
// in unspecified order. The yielded sets must not be mutated.
func (g *UndirectedGraph) Nodes() iter.Seq2[core.ElementID, EdgeSet] {
	return func(yield func(core.ElementID, EdgeSet) bool) {
		for node, edges := range g.nodes {
			if !yield(node, edges) {
				return
			}
		}
	}
}

// Export copies the adjacency state into a plain map for serialization.
func (g *UndirectedGraph) Export() map[core.ElementID][]core.ElementID {
	out := make(map[core.ElementID][]core.ElementID, len(g.nodes))
	for node, edges := range g.nodes {
		out[node] = edges.Values()
	}
	return out
}

// Import rebuilds a graph from state previously produced by Export.
// The input is trusted to be symmetric; no reconciliation is performed.
func Import(mMax int, nodes map[core.ElementID][]core.ElementID) *UndirectedGraph {
	g := New(mMax)
	for node, edges := range nodes {
		s := make(EdgeSet, max(len(edges), mMax))
		for _, e := range edges {
			s[e] = struct{}{}
		}
		g.nodes[node] = s
	}
	return g
}

// edgesOrCreate returns the neighbor set of id, registering id with a
// fresh set if it was absent.
func (g *UndirectedGraph) edgesOrCreate(id core.ElementID) EdgeSet {
	s, ok := g.nodes[id]
	if !ok {
		s = make(EdgeSet, g.mMax)
		g.nodes[id] = s
	}
	return s
}
