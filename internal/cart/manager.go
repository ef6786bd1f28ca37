package cart

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	// maxIdle is how long a session's in-memory store survives without a
	// request before it is evicted. The KV snapshot outlives the eviction,
	// so the next request simply re-hydrates.
	maxIdle = time.Hour

	sweepInterval = 10 * time.Minute
)

type managedStore struct {
	store    *Store
	lastSeen time.Time
}

// Manager hands out one hydrated Store per visitor session. Concurrent
// requests for the same session share a single hydration via singleflight.
// Idle sessions are evicted so the registry stays bounded; RunEviction must
// be running for that to happen.
type Manager struct {
	mu     sync.RWMutex
	kv     KeyValueStore
	stores map[string]*managedStore
	sfg    singleflight.Group

	now func() time.Time
}

func NewManager(kv KeyValueStore) *Manager {
	return &Manager{
		kv:     kv,
		stores: make(map[string]*managedStore),
		now:    time.Now,
	}
}

// Cart returns the hydrated store for the session, creating it on first use.
func (m *Manager) Cart(ctx context.Context, sessionID string) (*Store, error) {
	store := m.store(sessionID)

	if store.Hydrated() {
		return store, nil
	}

	_, err, _ := m.sfg.Do(sessionID, func() (interface{}, error) {
		return nil, store.Hydrate(ctx)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Drop forgets the in-memory store for a session. The persisted snapshot is
// untouched; the next request hydrates a fresh store.
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stores, sessionID)
}

// EvictIdle drops every store not touched within maxIdle and reports how many
// went. Safe to call while requests are in flight: an evicted session's next
// request re-hydrates from the KV snapshot.
func (m *Manager) EvictIdle(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()
	evicted := 0
	for sessionID, entry := range m.stores {
		if entry.lastSeen.Before(cutoff) {
			delete(m.stores, sessionID)
			evicted++
		}
	}
	return evicted
}

// RunEviction sweeps idle stores until ctx is cancelled. Run it in its own
// goroutine next to the HTTP server.
func (m *Manager) RunEviction(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.EvictIdle(maxIdle); n > 0 {
				log.Printf("evicted %d idle cart store(s)", n)
			}
		}
	}
}

func (m *Manager) store(sessionID string) *Store {
	now := m.now()

	m.mu.RLock()
	entry, ok := m.stores[sessionID]
	m.mu.RUnlock()
	if ok {
		m.touch(sessionID, now)
		return entry.store
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok = m.stores[sessionID]; ok {
		entry.lastSeen = now
		return entry.store
	}
	store := NewStore(m.kv, cartKey(sessionID))
	m.stores[sessionID] = &managedStore{store: store, lastSeen: now}
	return store
}

func (m *Manager) touch(sessionID string, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry, ok := m.stores[sessionID]; ok {
		entry.lastSeen = now
	}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}
