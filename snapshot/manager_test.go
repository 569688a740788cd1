package snapshot_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecgraph/vecgraph/blobstore"
	"github.com/vecgraph/vecgraph/core"
	"github.com/vecgraph/vecgraph/resource"
	"github.com/vecgraph/vecgraph/snapshot"
)

// stateHolder adapts a bare State to the manager's save/load interfaces.
type stateHolder struct {
	state *snapshot.State
}

func (h *stateHolder) Save(_ context.Context, w io.Writer) error {
	return snapshot.Write(w, h.state, snapshot.Options{})
}

func (h *stateHolder) Load(_ context.Context, r io.Reader) error {
	state, err := snapshot.Read(r)
	if err != nil {
		return err
	}
	h.state = state
	return nil
}

func TestSnapshotNameRoundTrip(t *testing.T) {
	name := snapshot.SnapshotName(42)
	assert.Equal(t, "snapshot-0000000000000042.vgr", name)

	version, err := snapshot.ParseSnapshotName(name)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), version)

	_, err = snapshot.ParseSnapshotName("snapshot-x.vgr")
	require.Error(t, err)
	_, err = snapshot.ParseSnapshotName("backup-0000000000000001.vgr")
	require.Error(t, err)
}

func TestManagerSaveRestore(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	mgr := snapshot.NewManager(store)

	// Nothing saved yet.
	name, version, err := mgr.Latest(ctx)
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Zero(t, version)
	require.ErrorIs(t, mgr.Restore(ctx, &stateHolder{}), snapshot.ErrNoSnapshot)

	src := &stateHolder{state: testState()}
	name, err = mgr.Save(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, snapshot.SnapshotName(1), name)

	name, version, err = mgr.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot.SnapshotName(1), name)
	assert.Equal(t, uint64(1), version)

	dst := &stateHolder{}
	require.NoError(t, mgr.Restore(ctx, dst))
	assert.Equal(t, 4, dst.state.MMax)
	assert.Len(t, dst.state.Nodes, 5)
}

func TestManagerVersionsAdvance(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	mgr := snapshot.NewManager(store)

	first := &stateHolder{state: testState()}
	_, err := mgr.Save(ctx, first)
	require.NoError(t, err)

	second := &stateHolder{state: &snapshot.State{
		MMax:  4,
		Nodes: map[core.ElementID][]core.ElementID{9: {}},
	}}
	name, err := mgr.Save(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, snapshot.SnapshotName(2), name)

	// Latest restore sees the second state, the first stays addressable.
	dst := &stateHolder{}
	require.NoError(t, mgr.Restore(ctx, dst))
	assert.Len(t, dst.state.Nodes, 1)

	require.NoError(t, mgr.RestoreVersion(ctx, snapshot.SnapshotName(1), dst))
	assert.Len(t, dst.state.Nodes, 5)

	names, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{snapshot.SnapshotName(1), snapshot.SnapshotName(2)}, names)
}

func TestManagerPrune(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	mgr := snapshot.NewManager(store, func(o *snapshot.ManagerOptions) {
		o.Controller = resource.NewController(resource.Config{MaxBackgroundWorkers: 2})
	})

	holder := &stateHolder{state: testState()}
	for i := 0; i < 5; i++ {
		_, err := mgr.Save(ctx, holder)
		require.NoError(t, err)
	}

	require.NoError(t, mgr.Prune(ctx, 2))

	names, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{snapshot.SnapshotName(4), snapshot.SnapshotName(5)}, names)

	// Pruning below one snapshot keeps the current one.
	require.NoError(t, mgr.Prune(ctx, 0))
	names, err = mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{snapshot.SnapshotName(5)}, names)

	dst := &stateHolder{}
	require.NoError(t, mgr.Restore(ctx, dst))
	assert.Len(t, dst.state.Nodes, 5)
}
