package fs

import (
	"sync"

	"go.trai.ch/bust/internal/core/ports"
)

var _ ports.ChangeToken = (*changeToken)(nil)

// changeToken fires at most once. Callbacks run outside the lock,
// so a callback may unregister itself or register on other tokens.
type changeToken struct {
	mu        sync.Mutex
	changed   bool
	nextID    uint64
	callbacks map[uint64]func()
}

func newChangeToken() *changeToken {
	return &changeToken{callbacks: make(map[uint64]func())}
}

// HasChanged reports whether the token has fired.
func (t *changeToken) HasChanged() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.changed
}

// RegisterChangeCallback registers fn, or runs it right away if the token already fired.
func (t *changeToken) RegisterChangeCallback(fn func()) func() {
	t.mu.Lock()
	if t.changed {
		t.mu.Unlock()
		fn()
		return func() {}
	}
	id := t.nextID
	t.nextID++
	t.callbacks[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.callbacks, id)
		t.mu.Unlock()
	}
}

// fire marks the token as changed and runs every registered callback once.
func (t *changeToken) fire() {
	t.mu.Lock()
	if t.changed {
		t.mu.Unlock()
		return
	}
	t.changed = true
	callbacks := t.callbacks
	t.callbacks = nil
	t.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}
