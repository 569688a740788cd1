package vecgraph

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/vecgraph/vecgraph/codec"
	"github.com/vecgraph/vecgraph/core"
	"github.com/vecgraph/vecgraph/graph"
	"github.com/vecgraph/vecgraph/snapshot"
)

// Graph is the concurrency-safe facade over an undirected adjacency graph.
// All mutations take a write lock, all reads a read lock, so the symmetry
// guarantee of the underlying structure extends to concurrent callers.
//
// Nodes touched since the last successful snapshot are tracked in a dirty
// bitmap, which Stats exposes for checkpoint scheduling.
type Graph struct {
	mu    sync.RWMutex
	inner *graph.UndirectedGraph
	dirty *roaring64.Bitmap

	logger      *Logger
	codec       codec.Codec
	compression snapshot.CompressionType
}

// Stats is a point-in-time summary of the graph.
type Stats struct {
	Nodes int
	Edges int
	Dirty uint64
	MMax  int
}

// New creates an empty graph. mMax sizes newly allocated neighbor sets.
func New(mMax int, optFns ...Option) *Graph {
	o := applyOptions(optFns)
	return &Graph{
		inner:       graph.New(mMax),
		dirty:       roaring64.New(),
		logger:      o.logger,
		codec:       o.codec,
		compression: o.compression,
	}
}

// Len returns the number of registered nodes.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.inner.Len()
}

// MMax returns the configured capacity hint. Load replaces the inner
// graph, so even this read takes the lock.
func (g *Graph) MMax() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.inner.MMax()
}

// Edges returns a copy of the neighbor set of node, or ok=false if the
// node is not registered.
func (g *Graph) Edges(node core.ElementID) ([]core.ElementID, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	edges, ok := g.inner.Edges(node)
	if !ok {
		return nil, false
	}
	return edges.Values(), true
}

// Contains reports whether node is registered.
func (g *Graph) Contains(node core.ElementID) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.inner.Edges(node)
	return ok
}

// AddEmptyNode registers node with no neighbors. It returns false if the
// node already existed.
func (g *Graph) AddEmptyNode(node core.ElementID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	created := g.inner.AddEmptyNode(node)
	g.logger.LogAddEmptyNode(context.Background(), node, created)
	if !created {
		return false
	}
	g.dirty.Add(uint64(node))
	return true
}

// AddNode registers node with the given neighbors and installs the
// reverse edges. It returns false, leaving the graph unchanged, if the
// node already exists.
func (g *Graph) AddNode(node core.ElementID, neighbors []core.ElementID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	linked, ok := g.inner.AddNode(node, graph.NewEdgeSet(neighbors...))
	g.logger.LogAddNode(context.Background(), node, len(linked), ok)
	if !ok {
		return false
	}
	g.dirty.Add(uint64(node))
	for _, e := range linked {
		g.dirty.Add(uint64(e))
	}
	return true
}

// SetNode replaces the neighbor set of node, inserting the node first if
// it was not registered. Reverse edges are reconciled to match.
func (g *Graph) SetNode(node core.ElementID, neighbors []core.ElementID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.dirty.Add(uint64(node))
	// Both the evicted and the newly linked neighbors change, so mark the
	// union of the old and new sets rather than computing the exact delta.
	if old, ok := g.inner.Edges(node); ok {
		for e := range old {
			g.dirty.Add(uint64(e))
		}
	}
	for _, e := range neighbors {
		g.dirty.Add(uint64(e))
	}

	g.inner.SetNode(node, graph.NewEdgeSet(neighbors...))
	g.logger.LogSetNode(context.Background(), node, len(neighbors))
}

// RemoveNode deletes node and unlinks it from every surviving neighbor.
// It returns the former neighbors so the caller can re-link the nodes it
// orphaned, or ok=false if the node was not registered.
func (g *Graph) RemoveNode(node core.ElementID) ([]core.ElementID, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	edges, ok := g.inner.RemoveNode(node)
	g.logger.LogRemoveNode(context.Background(), node, ok)
	if !ok {
		return nil, false
	}
	g.dirty.Add(uint64(node))
	for e := range edges {
		g.dirty.Add(uint64(e))
	}
	return edges.Values(), true
}

// AddEdge inserts the single symmetric edge (a, b), creating either
// endpoint if missing. Self-edges are ignored.
func (g *Graph) AddEdge(a, b core.ElementID) {
	if a == b {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.inner.AddEdge(a, b)
	g.logger.LogAddEdge(context.Background(), a, b)
	g.dirty.Add(uint64(a))
	g.dirty.Add(uint64(b))
}

// Stats returns a point-in-time summary of the graph.
func (g *Graph) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var sum, selfLoops int
	for node, edges := range g.inner.Nodes() {
		sum += edges.Len()
		if edges.Contains(node) {
			selfLoops++
		}
	}
	return Stats{
		Nodes: g.inner.Len(),
		// Symmetric edges appear in two sets, self-loops in one.
		Edges: (sum + selfLoops) / 2,
		Dirty: g.dirty.GetCardinality(),
		MMax:  g.inner.MMax(),
	}
}

// Save writes a snapshot of the graph to w. On success the nodes captured
// by the snapshot are cleared from the dirty bitmap; nodes mutated while
// the snapshot is being written stay dirty.
func (g *Graph) Save(ctx context.Context, w io.Writer) error {
	g.mu.RLock()
	state := &snapshot.State{
		MMax:  g.inner.MMax(),
		Nodes: g.inner.Export(),
	}
	captured := g.dirty.Clone()
	g.mu.RUnlock()

	err := snapshot.Write(w, state, snapshot.Options{
		Codec:       g.codec,
		Compression: g.compression,
	})
	g.logger.LogSnapshot(ctx, len(state.Nodes), err)
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.dirty.AndNot(captured)
	g.mu.Unlock()
	return nil
}

// Load replaces the graph's state with a snapshot read from r and clears
// the dirty bitmap.
func (g *Graph) Load(ctx context.Context, r io.Reader) error {
	state, err := snapshot.Read(r)
	g.logger.LogRestore(ctx, stateLen(state), err)
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.inner = graph.Import(state.MMax, state.Nodes)
	g.dirty = roaring64.New()
	g.mu.Unlock()
	return nil
}

// SaveFile writes a snapshot to path atomically.
func (g *Graph) SaveFile(ctx context.Context, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if tmp != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := g.Save(ctx, tmp); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	name := tmp.Name()
	if err := tmp.Close(); err != nil {
		return err
	}
	tmp = nil
	return os.Rename(name, path)
}

// LoadFile reads a snapshot from path.
func (g *Graph) LoadFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return g.Load(ctx, f)
}

func stateLen(state *snapshot.State) int {
	if state == nil {
		return 0
	}
	return len(state.Nodes)
}
