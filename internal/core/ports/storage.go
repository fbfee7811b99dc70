// Package ports defines the core interfaces for the application.
package ports

import "io"

// FileProvider resolves storage keys to file handles.
//
//go:generate go run go.uber.org/mock/mockgen -source=storage.go -destination=mocks/mock_storage.go -package=mocks
type FileProvider interface {
	// GetFile returns a handle for the file stored under key.
	// Keys are normalized, slash-separated and rooted at "/".
	// When no regular file exists under key the returned error matches fs.ErrNotExist.
	GetFile(key string) (FileHandle, error)
}

// FileHandle gives read access to one file and notifies about changes to it.
// A handle is only valid for the lookup that obtained it.
type FileHandle interface {
	// Key returns the storage key the handle was obtained for.
	Key() string
	// Size returns the file size in bytes at the time the handle was obtained.
	Size() int64
	// Open opens the current content of the file for reading.
	Open() (io.ReadCloser, error)
	// Watch returns a token that fires once the file changes or is removed.
	Watch() ChangeToken
}

// ChangeToken signals a single change. Once fired it stays fired.
type ChangeToken interface {
	// HasChanged reports whether the change has happened.
	HasChanged() bool
	// RegisterChangeCallback registers fn to run when the token fires.
	// If the token has already fired, fn runs before RegisterChangeCallback returns.
	// The returned func unregisters fn; it is safe to call more than once.
	RegisterChangeCallback(fn func()) (unregister func())
}
