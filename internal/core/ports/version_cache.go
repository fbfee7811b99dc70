package ports

// VersionCache stores version tokens keyed by normalized asset key.
// Implementations must be safe for concurrent use.
//
//go:generate go run go.uber.org/mock/mockgen -source=version_cache.go -destination=mocks/mock_version_cache.go -package=mocks
type VersionCache interface {
	// Get returns the cached token for key.
	Get(key string) (string, bool)
	// Set stores token for key until trigger fires. Setting a key that is
	// already present replaces the previous entry.
	Set(key, token string, trigger ChangeToken)
}
