package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vecgraph/vecgraph/blobstore"
	"github.com/vecgraph/vecgraph/resource"
)

// CurrentPointer is the blob holding the name of the latest snapshot.
const CurrentPointer = "CURRENT"

const (
	snapshotPrefix = "snapshot-"
	snapshotSuffix = ".vgr"
)

// ErrNoSnapshot is returned by Restore when no snapshot has been saved yet.
var ErrNoSnapshot = errors.New("snapshot: no snapshot available")

// Snapshotable is implemented by anything that can serialize itself into a
// snapshot stream.
type Snapshotable interface {
	Save(ctx context.Context, w io.Writer) error
}

// SnapshotLoader is implemented by anything that can restore its state from
// a snapshot stream.
type SnapshotLoader interface {
	Load(ctx context.Context, r io.Reader) error
}

// ManagerOptions configures a Manager.
type ManagerOptions struct {
	// Controller throttles snapshot IO and bounds prune concurrency.
	// Nil means unlimited.
	Controller *resource.Controller
}

// Manager stores versioned snapshots in a BlobStore. Every successful Save
// writes a new immutable blob and then updates the CURRENT pointer, so a
// reader always sees either the previous snapshot or the new one.
type Manager struct {
	store blobstore.BlobStore
	rc    *resource.Controller
}

// NewManager creates a snapshot manager on top of the given store.
func NewManager(store blobstore.BlobStore, optFns ...func(o *ManagerOptions)) *Manager {
	opts := ManagerOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Manager{
		store: store,
		rc:    opts.Controller,
	}
}

// SnapshotName formats the blob name for a snapshot version.
func SnapshotName(version uint64) string {
	return fmt.Sprintf("%s%016d%s", snapshotPrefix, version, snapshotSuffix)
}

// ParseSnapshotName extracts the version from a snapshot blob name.
func ParseSnapshotName(name string) (uint64, error) {
	if !strings.HasPrefix(name, snapshotPrefix) || !strings.HasSuffix(name, snapshotSuffix) {
		return 0, fmt.Errorf("snapshot: malformed snapshot name %q", name)
	}
	digits := strings.TrimSuffix(strings.TrimPrefix(name, snapshotPrefix), snapshotSuffix)
	version, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("snapshot: malformed snapshot name %q: %w", name, err)
	}
	return version, nil
}

// Latest returns the name and version of the snapshot the CURRENT pointer
// refers to. It returns ("", 0, nil) when no snapshot exists yet.
func (m *Manager) Latest(ctx context.Context) (string, uint64, error) {
	data, err := blobstore.ReadAll(ctx, m.store, CurrentPointer)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return "", 0, nil
		}
		return "", 0, err
	}
	name := strings.TrimSpace(string(data))
	version, err := ParseSnapshotName(name)
	if err != nil {
		return "", 0, err
	}
	return name, version, nil
}

// Save writes src as the next snapshot version and advances the CURRENT
// pointer. It returns the name of the new snapshot blob.
func (m *Manager) Save(ctx context.Context, src Snapshotable) (string, error) {
	_, latest, err := m.Latest(ctx)
	if err != nil {
		return "", err
	}
	name := SnapshotName(latest + 1)

	blob, err := m.store.Create(ctx, name)
	if err != nil {
		return "", err
	}
	w := resource.NewRateLimitedWriter(ctx, blob, m.rc)
	if err := src.Save(ctx, w); err != nil {
		_ = blob.Close()
		_ = m.store.Delete(ctx, name)
		return "", err
	}
	if err := blob.Sync(); err != nil {
		_ = blob.Close()
		return "", err
	}
	if err := blob.Close(); err != nil {
		return "", err
	}

	if err := m.store.Put(ctx, CurrentPointer, []byte(name)); err != nil {
		return "", err
	}
	return name, nil
}

// Restore loads the latest snapshot into dst. It returns ErrNoSnapshot when
// no snapshot has been saved yet.
func (m *Manager) Restore(ctx context.Context, dst SnapshotLoader) error {
	name, _, err := m.Latest(ctx)
	if err != nil {
		return err
	}
	if name == "" {
		return ErrNoSnapshot
	}
	return m.RestoreVersion(ctx, name, dst)
}

// RestoreVersion loads the named snapshot into dst.
func (m *Manager) RestoreVersion(ctx context.Context, name string, dst SnapshotLoader) error {
	blob, err := m.store.Open(ctx, name)
	if err != nil {
		return err
	}
	defer func() { _ = blob.Close() }()

	rc, err := blob.ReadRange(ctx, 0, blob.Size())
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	return dst.Load(ctx, resource.NewRateLimitedReader(ctx, rc, m.rc))
}

// List returns all snapshot names in the store, oldest first.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	names, err := m.store.List(ctx, snapshotPrefix)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Prune deletes all but the newest keep snapshots. The snapshot the CURRENT
// pointer refers to is never deleted. Deletes run in parallel, bounded by
// the controller's worker limit.
func (m *Manager) Prune(ctx context.Context, keep int) error {
	if keep < 1 {
		keep = 1
	}
	names, err := m.List(ctx)
	if err != nil {
		return err
	}
	if len(names) <= keep {
		return nil
	}
	current, _, err := m.Latest(ctx)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.rc.MaxBackgroundWorkers())
	for _, name := range names[:len(names)-keep] {
		if name == current {
			continue
		}
		g.Go(func() error {
			return m.store.Delete(ctx, name)
		})
	}
	return g.Wait()
}
