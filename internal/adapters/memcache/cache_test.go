package memcache_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bust/internal/adapters/memcache"
	"go.trai.ch/bust/internal/core/domain"
	"go.trai.ch/bust/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// fakeToken is a ChangeToken that counts live registrations.
type fakeToken struct {
	mu        sync.Mutex
	changed   bool
	next      int
	callbacks map[int]func()
}

func newFakeToken() *fakeToken {
	return &fakeToken{callbacks: make(map[int]func())}
}

func (t *fakeToken) HasChanged() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.changed
}

func (t *fakeToken) RegisterChangeCallback(fn func()) func() {
	t.mu.Lock()
	if t.changed {
		t.mu.Unlock()
		fn()
		return func() {}
	}
	id := t.next
	t.next++
	t.callbacks[id] = fn
	t.mu.Unlock()
	return func() {
		t.mu.Lock()
		delete(t.callbacks, id)
		t.mu.Unlock()
	}
}

func (t *fakeToken) fire() {
	t.mu.Lock()
	if t.changed {
		t.mu.Unlock()
		return
	}
	t.changed = true
	callbacks := t.callbacks
	t.callbacks = make(map[int]func())
	t.mu.Unlock()
	for _, fn := range callbacks {
		fn()
	}
}

func (t *fakeToken) registrations() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.callbacks)
}

func newCache(t *testing.T, size int) *memcache.Cache {
	t.Helper()
	cache, err := memcache.New(size)
	require.NoError(t, err)
	return cache
}

func TestNew_InvalidSize(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, -1} {
		_, err := memcache.New(size)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrInvalidCacheSize.Error())
	}
}

func TestCache_GetSet(t *testing.T) {
	t.Parallel()
	cache := newCache(t, 8)

	_, ok := cache.Get("/a.css")
	assert.False(t, ok)

	cache.Set("/a.css", "tok-a", newFakeToken())

	token, ok := cache.Get("/a.css")
	assert.True(t, ok)
	assert.Equal(t, "tok-a", token)
	assert.Equal(t, 1, cache.Len())
}

func TestCache_TriggerFiredRemovesEntry(t *testing.T) {
	t.Parallel()
	cache := newCache(t, 8)
	trigger := newFakeToken()

	cache.Set("/a.css", "tok-a", trigger)
	assert.Equal(t, 1, trigger.registrations())

	trigger.fire()

	_, ok := cache.Get("/a.css")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestCache_AlreadyFiredTriggerIsNotStored(t *testing.T) {
	t.Parallel()
	cache := newCache(t, 8)
	trigger := newFakeToken()
	trigger.fire()

	cache.Set("/a.css", "tok-a", trigger)

	_, ok := cache.Get("/a.css")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
	assert.Equal(t, 0, trigger.registrations())
}

func TestCache_ReplaceReleasesPreviousEntry(t *testing.T) {
	t.Parallel()
	cache := newCache(t, 8)
	oldTrigger, newTrigger := newFakeToken(), newFakeToken()

	cache.Set("/a.css", "old", oldTrigger)
	cache.Set("/a.css", "new", newTrigger)

	assert.Equal(t, 0, oldTrigger.registrations())
	assert.Equal(t, 1, newTrigger.registrations())

	// The stale trigger must not remove the replacement.
	oldTrigger.fire()
	token, ok := cache.Get("/a.css")
	assert.True(t, ok)
	assert.Equal(t, "new", token)
}

func TestCache_SharedTriggerAcrossKeys(t *testing.T) {
	t.Parallel()
	cache := newCache(t, 8)
	trigger := newFakeToken()

	cache.Set("/a.css", "tok-a", trigger)
	cache.Set("/b.css", "tok-b", trigger)
	assert.Equal(t, 2, trigger.registrations())

	trigger.fire()
	assert.Equal(t, 0, cache.Len())
}

func TestCache_CapacityEvictsOldest(t *testing.T) {
	t.Parallel()
	cache := newCache(t, 2)
	triggers := []*fakeToken{newFakeToken(), newFakeToken(), newFakeToken()}

	for i, trigger := range triggers {
		cache.Set(fmt.Sprintf("/%d.css", i), fmt.Sprintf("tok-%d", i), trigger)
	}

	assert.Equal(t, 2, cache.Len())
	_, ok := cache.Get("/0.css")
	assert.False(t, ok)
	assert.Equal(t, 0, triggers[0].registrations())

	_, ok = cache.Get("/2.css")
	assert.True(t, ok)
}

func TestCache_PurgeReleasesEverything(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	cache := newCache(t, 8)

	unregistered := 0
	trigger := mocks.NewMockChangeToken(ctrl)
	trigger.EXPECT().RegisterChangeCallback(gomock.Any()).Return(func() { unregistered++ })
	trigger.EXPECT().HasChanged().Return(false)

	cache.Set("/a.css", "tok-a", trigger)
	cache.Purge()
	cache.Purge()

	assert.Equal(t, 0, cache.Len())
	assert.Equal(t, 1, unregistered)
}

func TestCache_ConcurrentSetAndFire(t *testing.T) {
	t.Parallel()
	cache := newCache(t, 16)

	const workers = 32
	triggers := make([]*fakeToken, workers)
	for i := range triggers {
		triggers[i] = newFakeToken()
	}

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(2)
		key := fmt.Sprintf("/%d.css", i%4)
		go func() {
			defer wg.Done()
			cache.Set(key, fmt.Sprintf("tok-%d", i), triggers[i])
			cache.Get(key)
		}()
		go func() {
			defer wg.Done()
			triggers[i].fire()
		}()
	}
	wg.Wait()

	for _, trigger := range triggers {
		assert.Equal(t, 0, trigger.registrations())
	}
	assert.Equal(t, 0, cache.Len())
}
