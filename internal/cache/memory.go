package cache

import (
	"context"
	"sync"
	"time"

	"github.com/gito/internal/prayer"
)

type memoryItem struct {
	schedule  prayer.Schedule
	expiresAt time.Time
}

const (
	// DefaultMemoryCapacity bounds the number of schedules a MemoryStore holds.
	DefaultMemoryCapacity = 10000
	memorySweepInterval   = time.Minute
)

// MemoryStore is a process-local Store. Expired items are dropped on read and
// swept during Set; past capacity the entry closest to expiry is evicted.
type MemoryStore struct {
	mu        sync.RWMutex
	items     map[string]memoryItem
	capacity  int
	lastSweep time.Time
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithCapacity(DefaultMemoryCapacity)
}

// NewMemoryStoreWithCapacity caps the store at capacity items, minimum 1.
func NewMemoryStoreWithCapacity(capacity int) *MemoryStore {
	if capacity < 1 {
		capacity = 1
	}
	return &MemoryStore{items: make(map[string]memoryItem), capacity: capacity, now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, key string) (prayer.Schedule, bool, error) {
	m.mu.RLock()
	item, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return prayer.Schedule{}, false, nil
	}

	if !item.expiresAt.IsZero() && !m.now().Before(item.expiresAt) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return prayer.Schedule{}, false, nil
	}
	return item.schedule, true, nil
}

// Set stores s; a non-positive ttl never expires.
func (m *MemoryStore) Set(_ context.Context, key string, s prayer.Schedule, ttl time.Duration) error {
	now := m.now()
	item := memoryItem{schedule: s}
	if ttl > 0 {
		item.expiresAt = now.Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	_, exists := m.items[key]
	full := !exists && len(m.items) >= m.capacity
	if full || now.Sub(m.lastSweep) >= memorySweepInterval {
		m.sweepLocked(now)
	}
	if !exists && len(m.items) >= m.capacity {
		m.evictOneLocked()
	}
	m.items[key] = item
	return nil
}

func (m *MemoryStore) sweepLocked(now time.Time) {
	for k, it := range m.items {
		if !it.expiresAt.IsZero() && !now.Before(it.expiresAt) {
			delete(m.items, k)
		}
	}
	m.lastSweep = now
}

// evictOneLocked drops the item expiring soonest; items without expiry go last.
func (m *MemoryStore) evictOneLocked() {
	victim, found := "", false
	var soonest time.Time
	for k, it := range m.items {
		if !found || (!it.expiresAt.IsZero() && (soonest.IsZero() || it.expiresAt.Before(soonest))) {
			victim, soonest, found = k, it.expiresAt, true
		}
	}
	if found {
		delete(m.items, victim)
	}
}

// Len reports the number of stored items, including expired ones not yet swept.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
