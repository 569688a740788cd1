package testutil

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/vecgraph/vecgraph/core"
	"github.com/vecgraph/vecgraph/graph"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// ElementID returns a pseudo-random id in [0, idSpace).
func (r *RNG) ElementID(idSpace int) core.ElementID {
	return core.ElementID(r.Intn(idSpace))
}

// RandomEdgeSet builds an edge set of up to maxDegree distinct ids drawn
// from [0, idSpace).
func RandomEdgeSet(rng *RNG, idSpace, maxDegree int) graph.EdgeSet {
	s := make(graph.EdgeSet, maxDegree)
	n := rng.Intn(maxDegree + 1)
	for i := 0; i < n; i++ {
		s.Insert(rng.ElementID(idSpace))
	}
	return s
}

// RandomGraph builds a graph of numNodes nodes with roughly degree edges
// per node, inserted through AddEdge so the result is always symmetric.
func RandomGraph(rng *RNG, numNodes, degree int) *graph.UndirectedGraph {
	g := graph.New(degree)
	for i := 0; i < numNodes; i++ {
		g.AddEmptyNode(core.ElementID(i))
	}
	for i := 0; i < numNodes*degree/2; i++ {
		g.AddEdge(rng.ElementID(numNodes), rng.ElementID(numNodes))
	}
	return g
}

// CheckSymmetry fails the test if any node's neighbor is unregistered or
// does not hold the reverse edge.
func CheckSymmetry(tb testing.TB, g *graph.UndirectedGraph) {
	tb.Helper()
	for node, edges := range g.Nodes() {
		for neighbor := range edges {
			reverse, ok := g.Edges(neighbor)
			if !ok {
				tb.Fatalf("node %d references unregistered neighbor %d", node, neighbor)
			}
			if !reverse.Contains(node) {
				tb.Fatalf("edge %d->%d has no reverse edge", node, neighbor)
			}
		}
	}
}
