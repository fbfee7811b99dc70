package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidPath is returned when an asset path, or its combination with a path base,
	// cannot be normalized into a storage key.
	ErrInvalidPath = zerr.New("invalid asset path")

	// ErrAssetReadFailed is returned when an existing asset cannot be read.
	ErrAssetReadFailed = zerr.New("failed to read asset")

	// ErrWebRootNotFound is returned when the configured web root does not exist or is not a directory.
	ErrWebRootNotFound = zerr.New("web root not found")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidQueryKey is returned when the configured query key contains characters
	// that are not safe in a query string.
	ErrInvalidQueryKey = zerr.New("query key may only contain letters, digits, '_', '.' and '-'")

	// ErrInvalidDuration is returned when a duration setting cannot be parsed.
	ErrInvalidDuration = zerr.New("invalid duration")

	// ErrInvalidCacheSize is returned when the cache capacity is not positive.
	ErrInvalidCacheSize = zerr.New("cache.max_entries must be greater than zero")

	// ErrNoPathsSpecified is returned when a command that needs paths receives none.
	ErrNoPathsSpecified = zerr.New("no paths specified")
)
