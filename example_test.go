package vecgraph_test

import (
	"context"
	"fmt"
	"sort"

	"github.com/vecgraph/vecgraph"
	"github.com/vecgraph/vecgraph/blobstore"
	"github.com/vecgraph/vecgraph/core"
	"github.com/vecgraph/vecgraph/snapshot"
)

func Example() {
	g := vecgraph.New(16)

	g.AddNode(1, []core.ElementID{2, 3})
	g.SetNode(2, []core.ElementID{1, 3})

	edges, _ := g.Edges(3)
	sort.Slice(edges, func(i, j int) bool { return edges[i] < edges[j] })
	fmt.Println(edges)

	stats := g.Stats()
	fmt.Println(stats.Nodes, stats.Edges)
	// Output:
	// [1 2]
	// 3 3
}

func Example_snapshots() {
	ctx := context.Background()

	g := vecgraph.New(16)
	g.AddEdge(1, 2)

	mgr := snapshot.NewManager(blobstore.NewMemoryStore())
	name, _ := mgr.Save(ctx, g)
	fmt.Println(name)

	restored := vecgraph.New(16)
	_ = mgr.Restore(ctx, restored)
	fmt.Println(restored.Stats().Nodes)
	// Output:
	// snapshot-0000000000000001.vgr
	// 2
}
