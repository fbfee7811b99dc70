// Package fs provides file system adapters for reading, hashing and watching web assets.
package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"go.trai.ch/bust/internal/core/domain"
	"go.trai.ch/bust/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileProvider = (*Provider)(nil)

// Provider serves files below a web root directory.
// Change tokens are handed out per file and fire when Invalidate is called
// with the file's path or one of its parent directories.
type Provider struct {
	root   string
	mu     sync.Mutex
	tokens map[string]*changeToken // absolute path -> unfired token
}

// NewProvider creates a Provider for the given web root.
func NewProvider(root string) (*Provider, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve web root"), "root", root)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, zerr.With(domain.ErrWebRootNotFound, "root", abs)
	}
	return &Provider{
		root:   abs,
		tokens: make(map[string]*changeToken),
	}, nil
}

// Root returns the absolute web root.
func (p *Provider) Root() string {
	return p.root
}

// GetFile returns a handle for the regular file stored under key.
func (p *Provider) GetFile(key string) (ports.FileHandle, error) {
	path := filepath.Join(p.root, filepath.FromSlash(key))

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, notFound(key)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to stat asset"), "key", key)
	}
	if !info.Mode().IsRegular() {
		return nil, notFound(key)
	}

	return &fileHandle{
		provider: p,
		key:      key,
		path:     path,
		size:     info.Size(),
	}, nil
}

// Invalidate fires the tokens of every file at or below the given absolute paths.
// It returns the number of tokens fired.
func (p *Provider) Invalidate(paths []string) int {
	var fired []*changeToken

	p.mu.Lock()
	for _, changed := range paths {
		changed = filepath.Clean(changed)
		for path, token := range p.tokens {
			if path == changed || isWithin(changed, path) {
				fired = append(fired, token)
				delete(p.tokens, path)
			}
		}
	}
	p.mu.Unlock()

	for _, token := range fired {
		token.fire()
	}
	return len(fired)
}

// watch returns the pending token for path, creating one if needed.
func (p *Provider) watch(path string) *changeToken {
	p.mu.Lock()
	defer p.mu.Unlock()

	if token, ok := p.tokens[path]; ok {
		return token
	}
	token := newChangeToken()
	p.tokens[path] = token
	return token
}

func isWithin(dir, path string) bool {
	return strings.HasPrefix(path, strings.TrimSuffix(dir, string(filepath.Separator))+string(filepath.Separator))
}

func notFound(key string) error {
	return zerr.With(zerr.Wrap(iofs.ErrNotExist, "asset not found"), "key", key)
}

// fileHandle is a ports.FileHandle for one file below the web root.
type fileHandle struct {
	provider *Provider
	key      string
	path     string
	size     int64
}

func (f *fileHandle) Key() string {
	return f.key
}

func (f *fileHandle) Size() int64 {
	return f.size
}

func (f *fileHandle) Open() (io.ReadCloser, error) {
	file, err := os.Open(f.path) //nolint:gosec // Path is confined to the web root by key normalization
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open asset"), "key", f.key)
	}
	return file, nil
}

func (f *fileHandle) Watch() ports.ChangeToken {
	return f.provider.watch(f.path)
}
