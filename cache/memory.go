package cache

import (
	"context"
	"sync"
	"time"
)

const defaultMaxSize = 4096

// Memory is an in-process Cache. A janitor goroutine sweeps expired entries
// once a minute; reads also evict lazily, so the sweep is purely hygiene.
type Memory struct {
	mu      sync.RWMutex
	items   map[string]memoryItem
	maxSize int
	done    chan struct{}
}

type memoryItem struct {
	value     []byte
	expiresAt time.Time
}

// NewMemory creates a memory cache holding at most maxSize entries.
func NewMemory(maxSize int) *Memory {
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}
	m := &Memory{
		items:   make(map[string]memoryItem),
		maxSize: maxSize,
		done:    make(chan struct{}),
	}
	go m.janitor()
	return m
}

func (m *Memory) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for k, it := range m.items {
				if now.After(it.expiresAt) {
					delete(m.items, k)
				}
			}
			m.mu.Unlock()
		}
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	it, ok := m.items[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrMiss
	}
	if time.Now().After(it.expiresAt) {
		m.mu.Lock()
		delete(m.items, key)
		m.mu.Unlock()
		return nil, ErrMiss
	}
	return it.value, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) >= m.maxSize {
		m.evictSoonest()
	}
	m.items[key] = memoryItem{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

// evictSoonest drops the entry closest to expiry. Called with the lock held.
func (m *Memory) evictSoonest() {
	var victim string
	var soonest time.Time
	for k, it := range m.items {
		if victim == "" || it.expiresAt.Before(soonest) {
			victim = k
			soonest = it.expiresAt
		}
	}
	if victim != "" {
		delete(m.items, victim)
	}
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *Memory) Close() error {
	close(m.done)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[string]memoryItem)
	return nil
}
