// Package config loads bust.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.trai.ch/bust/internal/core/domain"
	"go.trai.ch/bust/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// supportedVersion is the only bust.yaml schema version.
const supportedVersion = "1"

var validQueryKeyRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds bust.yaml in cwd or one of its parents and resolves it.
// Without a config file the defaults for cwd are returned.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, ok := findConfiguration(cwd)
	if !ok {
		return domain.DefaultConfig(cwd), nil
	}

	var bustfile Bustfile
	if err := readAndUnmarshalYAML(configPath, &bustfile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	if bustfile.Version != "" && bustfile.Version != supportedVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, reading it as version %s",
			domain.ConfigFileName, bustfile.Version, supportedVersion))
	}

	cfg, err := resolve(filepath.Dir(configPath), &bustfile)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return cfg, nil
}

// findConfiguration walks from cwd to the file system root looking for bust.yaml.
func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

// resolve applies the values of bustfile on top of the defaults for configDir.
func resolve(configDir string, bustfile *Bustfile) (*domain.Config, error) {
	cfg := domain.DefaultConfig(configDir)
	cfg.WebRoot = resolveRoot(configDir, bustfile.WebRoot)

	pathBase, err := normalizePathBase(bustfile.PathBase)
	if err != nil {
		return nil, err
	}
	cfg.PathBase = pathBase

	if bustfile.QueryKey != "" {
		if !validQueryKeyRegex.MatchString(bustfile.QueryKey) {
			return nil, zerr.With(domain.ErrInvalidQueryKey, "query_key", bustfile.QueryKey)
		}
		cfg.QueryKey = bustfile.QueryKey
	}
	if bustfile.Listen != "" {
		cfg.Listen = bustfile.Listen
	}
	if cfg.MaxAge, err = parseDuration("max_age", bustfile.MaxAge, cfg.MaxAge); err != nil {
		return nil, err
	}
	if bustfile.Cache.MaxEntries != nil {
		if *bustfile.Cache.MaxEntries <= 0 {
			return nil, zerr.With(domain.ErrInvalidCacheSize, "max_entries", *bustfile.Cache.MaxEntries)
		}
		cfg.CacheMaxEntries = *bustfile.Cache.MaxEntries
	}
	if bustfile.Watch.Enabled != nil {
		cfg.WatchEnabled = *bustfile.Watch.Enabled
	}
	if cfg.WatchDebounce, err = parseDuration("watch.debounce", bustfile.Watch.Debounce, cfg.WatchDebounce); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveRoot(configDir, configuredRoot string) string {
	if configuredRoot == "" {
		configuredRoot = domain.DefaultWebRoot
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Join(configDir, configuredRoot)
}

// normalizePathBase trims trailing slashes; "/" and "" both mean no base.
func normalizePathBase(pathBase string) (string, error) {
	if pathBase == "" {
		return "", nil
	}
	if !strings.HasPrefix(pathBase, "/") {
		return "", zerr.With(domain.ErrInvalidPath, "path_base", pathBase)
	}
	return strings.TrimRight(pathBase, "/"), nil
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, zerr.With(zerr.With(domain.ErrInvalidDuration, "field", field), "value", value)
	}
	return d, nil
}

// readAndUnmarshalYAML reads a YAML file into target, rejecting unknown keys.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by walking up from the working directory
	content, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}
