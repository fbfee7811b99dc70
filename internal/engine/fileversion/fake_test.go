package fileversion_test

import (
	"bytes"
	"fmt"
	"io"
	iofs "io/fs"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/bust/internal/core/ports"
)

// memFiles is an in-memory FileProvider that counts content reads.
type memFiles struct {
	mu     sync.Mutex
	files  map[string][]byte
	tokens map[string]*memToken

	reads  atomic.Int32
	delay  time.Duration
	onOpen func(key string)
}

func newMemFiles(files map[string]string) *memFiles {
	m := &memFiles{
		files:  make(map[string][]byte, len(files)),
		tokens: make(map[string]*memToken),
	}
	for key, content := range files {
		m.files[key] = []byte(content)
	}
	return m
}

func (m *memFiles) GetFile(key string) (ports.FileHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	content, ok := m.files[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, iofs.ErrNotExist)
	}
	return &memHandle{files: m, key: key, content: content}, nil
}

// write replaces the content of key and fires its pending token.
func (m *memFiles) write(key, content string) {
	m.mu.Lock()
	m.files[key] = []byte(content)
	token := m.tokens[key]
	delete(m.tokens, key)
	m.mu.Unlock()

	if token != nil {
		token.fire()
	}
}

func (m *memFiles) watch(key string) *memToken {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, ok := m.tokens[key]
	if !ok {
		token = &memToken{callbacks: make(map[int]func())}
		m.tokens[key] = token
	}
	return token
}

type memHandle struct {
	files   *memFiles
	key     string
	content []byte
}

func (h *memHandle) Key() string {
	return h.key
}

func (h *memHandle) Size() int64 {
	return int64(len(h.content))
}

func (h *memHandle) Open() (io.ReadCloser, error) {
	h.files.reads.Add(1)
	if h.files.onOpen != nil {
		h.files.onOpen(h.key)
	}
	if h.files.delay > 0 {
		time.Sleep(h.files.delay)
	}
	return io.NopCloser(bytes.NewReader(h.content)), nil
}

func (h *memHandle) Watch() ports.ChangeToken {
	return h.files.watch(h.key)
}

type memToken struct {
	mu        sync.Mutex
	changed   bool
	next      int
	callbacks map[int]func()
}

func (t *memToken) HasChanged() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.changed
}

func (t *memToken) RegisterChangeCallback(fn func()) func() {
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

func (t *memToken) fire() {
	t.mu.Lock()
	t.changed = true
	callbacks := t.callbacks
	t.callbacks = nil
	t.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}
