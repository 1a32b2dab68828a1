package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/eventhawk-lab/eventhawk/internal/core/dataset"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL matches the dashboard's historical 10 minute staleness window.
const DefaultCacheTTL = 600 * time.Second

// slot holds one whole-dataset snapshot plus its load time. Both fields are
// written together under the cache lock; a reader never observes a snapshot
// paired with another write's load time.
type slot struct {
	snapshot *dataset.Dataset
	loadedAt time.Time
}

// Cache is a TTL cache of whole-dataset snapshots, one slot per Kind.
// Staleness is checked lazily on access; a refresh replaces the slot
// wholesale and a failed refresh leaves the prior state intact.
type Cache struct {
	source DataSource
	ttl    time.Duration

	mu    sync.RWMutex
	slots map[Kind]slot

	refreshGroup singleflight.Group // dedupe concurrent refreshes per kind

	nowFn func() time.Time
}

// NewCache creates a cache over the given source. Each instance owns its own
// slots; independent instances never interfere.
func NewCache(source DataSource, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		source: source,
		ttl:    ttl,
		slots:  make(map[Kind]slot),
		nowFn: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// TTL returns the process-wide slot time-to-live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// GetOrRefresh returns the slot's snapshot, refreshing it from the source
// first if the slot is absent or stale. Concurrent refreshes of the same
// slot are collapsed into a single source load.
func (c *Cache) GetOrRefresh(ctx context.Context, kind Kind) (*dataset.Dataset, error) {
	if snapshot, ok := c.freshSnapshot(kind); ok {
		return snapshot, nil
	}

	result, err, _ := c.refreshGroup.Do(string(kind), func() (interface{}, error) {
		// Another caller may have refreshed while we waited on the group.
		if snapshot, ok := c.freshSnapshot(kind); ok {
			return snapshot, nil
		}

		snapshot, err := c.source.Load(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("%w: refresh slot %q: %v", ErrSourceUnavailable, kind, err)
		}

		loadedAt := c.nowFn()
		c.mu.Lock()
		c.slots[kind] = slot{snapshot: snapshot, loadedAt: loadedAt}
		c.mu.Unlock()

		slog.Info("Refreshed dataset slot", "kind", kind, "rows", snapshot.NumRows(), "loaded_at", loadedAt)
		return snapshot, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*dataset.Dataset), nil
}

func (c *Cache) freshSnapshot(kind Kind) (*dataset.Dataset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.slots[kind]
	if !ok || !c.isFresh(s.loadedAt) {
		return nil, false
	}
	return s.snapshot, true
}

// isFresh implements the staleness policy: a slot is fresh iff its age is
// strictly below the TTL. A slot that never loaded is never fresh.
func (c *Cache) isFresh(loadedAt time.Time) bool {
	if loadedAt.IsZero() {
		return false
	}
	return c.nowFn().Sub(loadedAt) < c.ttl
}

// Invalidate clears one slot back to absent. It never triggers a reload;
// the next GetOrRefresh will.
func (c *Cache) Invalidate(kind Kind) {
	c.mu.Lock()
	delete(c.slots, kind)
	c.mu.Unlock()
}

// InvalidateAll clears every slot. Idempotent.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.slots = make(map[Kind]slot)
	c.mu.Unlock()
	slog.Info("Dataset cache cleared")
}

// SlotStatus describes one slot's freshness. Pure read: it never refreshes
// and never touches the data source.
type SlotStatus struct {
	Fresh    bool
	Loaded   bool
	LoadedAt time.Time
	Age      time.Duration
}

// Status reports the named slot's freshness and age.
func (c *Cache) Status(kind Kind) SlotStatus {
	c.mu.RLock()
	s, ok := c.slots[kind]
	c.mu.RUnlock()

	if !ok || s.loadedAt.IsZero() {
		return SlotStatus{}
	}

	return SlotStatus{
		Fresh:    c.isFresh(s.loadedAt),
		Loaded:   true,
		LoadedAt: s.loadedAt,
		Age:      c.nowFn().Sub(s.loadedAt),
	}
}
