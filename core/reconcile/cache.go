package reconcile

import (
	"context"
	"sync"
	"time"

	"locale-manager/core/record"

	"golang.org/x/sync/singleflight"
)

// Snapshot holds a loaded copy of a slice of the stored set.
type Snapshot struct {
	// Filter is the selection the snapshot was loaded with.
	Filter Filter

	// Records is the loaded set.
	Records []record.Record

	// Built is the timestamp when this snapshot was loaded.
	Built time.Time

	// TTL is the time-to-live for this snapshot.
	TTL time.Duration
}

// IsExpired returns true if this snapshot has expired based on its TTL.
func (s *Snapshot) IsExpired() bool {
	if s.TTL == 0 {
		return true // No caching
	}
	return time.Since(s.Built) > s.TTL
}

// SnapshotCache keeps read-only snapshots keyed by filter.
// It is only meant for listing; reconciliation always loads a fresh set.
type SnapshotCache struct {
	mu        sync.RWMutex
	snapshots map[string]*Snapshot
	sf        singleflight.Group
	ttl       time.Duration
}

// NewSnapshotCache creates a cache whose snapshots live for ttl.
// A zero ttl disables caching.
func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{
		snapshots: make(map[string]*Snapshot),
		ttl:       ttl,
	}
}

// GetOrLoad returns a fresh snapshot for filter, loading it through l when
// missing or expired. Uses singleflight to prevent cache stampedes.
func (c *SnapshotCache) GetOrLoad(ctx context.Context, l Loader, filter Filter) (*Snapshot, error) {
	cacheKey := filter.CacheKey()

	// Fast path: check if snapshot exists and is fresh
	c.mu.RLock()
	snap, exists := c.snapshots[cacheKey]
	c.mu.RUnlock()

	if exists && !snap.IsExpired() {
		return snap, nil
	}

	result, err, _ := c.sf.Do(cacheKey, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		c.mu.RLock()
		snap, exists := c.snapshots[cacheKey]
		c.mu.RUnlock()

		if exists && !snap.IsExpired() {
			return snap, nil
		}

		records, err := l.Load(ctx, filter)
		if err != nil {
			return nil, err
		}

		fresh := &Snapshot{
			Filter:  filter,
			Records: records,
			Built:   time.Now(),
			TTL:     c.ttl,
		}

		c.mu.Lock()
		c.snapshots[cacheKey] = fresh
		c.mu.Unlock()

		return fresh, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*Snapshot), nil
}

// Invalidate drops every snapshot of an application.
// Call it after each write to that application.
func (c *SnapshotCache) Invalidate(appID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, snap := range c.snapshots {
		if snap.Filter.AppID == appID {
			delete(c.snapshots, key)
		}
	}
}
