package server

import (
	"context"
	"sync"
	"time"

	"github.com/axsim/sim-cli/internal/model"
	"github.com/axsim/sim-cli/internal/platform"
)

// cacheKey identifies a unique snapshot scope.
type cacheKey struct {
	UDID          string
	MaxDepth      int
	IncludeChrome bool
}

// cacheEntry holds a cached snapshot with its timestamp.
type cacheEntry struct {
	snapshot  *model.Snapshot
	timestamp time.Time
}

// snapshotCache provides a TTL-based cache for accessibility snapshots.
// Tree reads dominate MCP tool latency, and agents often issue several
// queries against the same screen.
type snapshotCache struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
}

// newSnapshotCache creates a new cache. A ttl of 0 disables caching.
func newSnapshotCache(ttl time.Duration) *snapshotCache {
	return &snapshotCache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
	}
}

// capture returns a cached snapshot if within TTL, otherwise reads fresh.
func (c *snapshotCache) capture(ctx context.Context, tree platform.TreeCapturer, opts platform.SnapshotOptions) (*model.Snapshot, error) {
	if c.ttl == 0 {
		return tree.CaptureTree(ctx, opts)
	}

	key := cacheKey{
		UDID:          opts.UDID,
		MaxDepth:      opts.MaxDepth,
		IncludeChrome: opts.IncludeChrome,
	}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && time.Since(entry.timestamp) < c.ttl {
		snap := entry.snapshot
		c.mu.Unlock()
		return snap, nil
	}
	c.mu.Unlock()

	snap, err := tree.CaptureTree(ctx, opts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{snapshot: snap, timestamp: time.Now()}
	c.mu.Unlock()

	return snap, nil
}

// invalidateAll clears the cache. Called after any input dispatch, since
// a gesture can change every screen.
func (c *snapshotCache) invalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}

// cachingTree wraps a TreeCapturer with the snapshot cache so the
// operations layer transparently benefits from it.
type cachingTree struct {
	tree  platform.TreeCapturer
	cache *snapshotCache
}

func (t *cachingTree) CaptureTree(ctx context.Context, opts platform.SnapshotOptions) (*model.Snapshot, error) {
	return t.cache.capture(ctx, t.tree, opts)
}
