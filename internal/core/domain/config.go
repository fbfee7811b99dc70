package domain

import (
	"path/filepath"
	"time"
)

const (
	// ConfigFileName is the name of the optional configuration file.
	ConfigFileName = "bust.yaml"

	// DefaultWebRoot is the web root used when none is configured, relative to the config directory.
	DefaultWebRoot = "public"

	// DefaultListenAddr is the address the static server listens on by default.
	DefaultListenAddr = ":8080"

	// DefaultMaxAge is the Cache-Control max-age for requests that carry the current version.
	DefaultMaxAge = 365 * 24 * time.Hour

	// DefaultCacheMaxEntries bounds the number of cached version tokens.
	DefaultCacheMaxEntries = 4096

	// DefaultWatchDebounce is the window used to coalesce file system events.
	DefaultWatchDebounce = 50 * time.Millisecond
)

// Config is the resolved configuration of bust.
type Config struct {
	// WebRoot is the absolute directory assets are served from.
	WebRoot string
	// PathBase is the URL prefix the application is mounted under, e.g. "/app".
	PathBase string
	// QueryKey is the query parameter the version token is stored in.
	QueryKey string
	// Listen is the address of the static server.
	Listen string
	// MaxAge is sent as Cache-Control max-age for versioned responses.
	MaxAge time.Duration
	// CacheMaxEntries bounds the in-memory version cache.
	CacheMaxEntries int
	// WatchEnabled turns on file system watching in serve mode.
	WatchEnabled bool
	// WatchDebounce coalesces bursts of file events.
	WatchDebounce time.Duration
}

// DefaultConfig returns the configuration used when no config file exists.
// The web root is dir/public.
func DefaultConfig(dir string) *Config {
	return &Config{
		WebRoot:         filepath.Join(dir, DefaultWebRoot),
		QueryKey:        DefaultQueryKey,
		Listen:          DefaultListenAddr,
		MaxAge:          DefaultMaxAge,
		CacheMaxEntries: DefaultCacheMaxEntries,
		WatchEnabled:    true,
		WatchDebounce:   DefaultWatchDebounce,
	}
}
