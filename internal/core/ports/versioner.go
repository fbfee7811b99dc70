package ports

import (
	"context"
	"io"
)

// AssetVersioner appends content versions to asset paths.
//
//go:generate go run go.uber.org/mock/mockgen -source=versioner.go -destination=mocks/mock_versioner.go -package=mocks
type AssetVersioner interface {
	// Resolve returns path with the version of the file it points to appended.
	// Paths that do not point to an existing file are returned unchanged.
	Resolve(ctx context.Context, path, pathBase string) (string, error)
	// Lookup returns the current version token for path.
	// found is false when no file exists for path.
	Lookup(ctx context.Context, path, pathBase string) (token string, found bool, err error)
	// LookupKey is Lookup for a storage key that is already normalized,
	// such as FileHandle.Key. The key is not decoded or split again.
	LookupKey(ctx context.Context, key string) (token string, found bool, err error)
}

// MarkupRewriter rewrites asset references in HTML documents.
type MarkupRewriter interface {
	// Rewrite copies the document from src to dst, versioning marked asset references.
	Rewrite(ctx context.Context, dst io.Writer, src io.Reader, pathBase string) error
}
