package config

// Bustfile represents the structure of the bust.yaml configuration file.
// Unset fields keep their defaults.
type Bustfile struct {
	Version  string   `yaml:"version"`
	WebRoot  string   `yaml:"web_root"`
	PathBase string   `yaml:"path_base"`
	QueryKey string   `yaml:"query_key"`
	Listen   string   `yaml:"listen"`
	MaxAge   string   `yaml:"max_age"`
	Cache    CacheDTO `yaml:"cache"`
	Watch    WatchDTO `yaml:"watch"`
}

// CacheDTO configures the in-memory version cache.
type CacheDTO struct {
	MaxEntries *int `yaml:"max_entries"`
}

// WatchDTO configures file watching in serve mode.
type WatchDTO struct {
	Enabled  *bool  `yaml:"enabled"`
	Debounce string `yaml:"debounce"`
}
