// Package memcache provides an in-memory, size-bounded VersionCache.
package memcache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/bust/internal/core/domain"
	"go.trai.ch/bust/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.VersionCache = (*Cache)(nil)

// Cache keeps version tokens in an LRU and drops an entry as soon as its
// change token fires. Every entry unregisters its callback exactly once,
// whether it leaves through a change, a replacement or eviction.
type Cache struct {
	mu  sync.Mutex // serializes Set and evict against each other
	lru *lru.Cache[string, *entry]
}

// New creates a Cache holding at most maxEntries tokens.
func New(maxEntries int) (*Cache, error) {
	if maxEntries <= 0 {
		return nil, zerr.With(domain.ErrInvalidCacheSize, "max_entries", maxEntries)
	}
	l, err := lru.NewWithEvict(maxEntries, func(_ string, e *entry) {
		e.release()
	})
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create lru cache")
	}
	return &Cache{lru: l}, nil
}

// Get returns the token stored for key if its trigger has not fired.
func (c *Cache) Get(key string) (string, bool) {
	e, ok := c.lru.Get(key)
	if !ok || e.trigger.HasChanged() {
		return "", false
	}
	return e.token, true
}

// Set stores token for key until trigger fires.
func (c *Cache) Set(key, token string, trigger ports.ChangeToken) {
	e := &entry{token: token, trigger: trigger}

	// Registering may run the callback right away, so it happens before c.mu is taken.
	e.bind(trigger.RegisterChangeCallback(func() {
		c.evict(key, e)
	}))

	c.mu.Lock()
	defer c.mu.Unlock()

	if trigger.HasChanged() {
		e.release()
		return
	}
	// Remove first so the replaced entry goes through the eviction callback.
	c.lru.Remove(key)
	c.lru.Add(key, e)
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// evict drops e if it is still the entry stored under key.
func (c *Cache) evict(key string, e *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if current, ok := c.lru.Peek(key); ok && current == e {
		c.lru.Remove(key)
		return
	}
	e.release()
}

type entry struct {
	token   string
	trigger ports.ChangeToken

	mu         sync.Mutex
	released   bool
	unregister func()
}

// bind attaches the unregister func of the entry's callback.
// If the entry was released in the meantime it unregisters immediately.
func (e *entry) bind(unregister func()) {
	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		unregister()
		return
	}
	e.unregister = unregister
	e.mu.Unlock()
}

func (e *entry) release() {
	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return
	}
	e.released = true
	unregister := e.unregister
	e.unregister = nil
	e.mu.Unlock()

	if unregister != nil {
		unregister()
	}
}
