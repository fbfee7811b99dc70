// Package app implements the application layer for bust.
package app

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/bust/internal/adapters/fs"
	"go.trai.ch/bust/internal/adapters/manifest"
	"go.trai.ch/bust/internal/adapters/memcache"
	"go.trai.ch/bust/internal/adapters/telemetry"
	"go.trai.ch/bust/internal/core/domain"
	"go.trai.ch/bust/internal/core/ports"
	"go.trai.ch/bust/internal/engine/fileversion"
	"go.trai.ch/bust/internal/ui/style"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	computer     ports.TokenComputer
	walker       *fs.Walker
	watcher      ports.Watcher
	stdout       io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	computer ports.TokenComputer,
	walker *fs.Walker,
	watcher ports.Watcher,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		computer:     computer,
		walker:       walker,
		watcher:      watcher,
		stdout:       os.Stdout,
	}
}

// WithStdout redirects command output, which otherwise goes to os.Stdout.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// Options are the settings shared by every command. Non-empty values
// override bust.yaml.
type Options struct {
	// Root overrides the web root.
	Root string
	// Base overrides the path base.
	Base string
	// Trace logs every version computation.
	Trace bool
}

// session holds the per-command components built from the resolved configuration.
type session struct {
	cfg       *domain.Config
	files     *fs.Provider
	versioner *fileversion.Provider
	close     func(context.Context) error
}

func (a *App) open(opts Options) (*session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, zerr.Wrap(err, "failed to get working directory")
	}
	cfg, err := a.configLoader.Load(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if opts.Root != "" {
		cfg.WebRoot = opts.Root
		if !filepath.IsAbs(cfg.WebRoot) {
			cfg.WebRoot = filepath.Join(cwd, cfg.WebRoot)
		}
	}
	if opts.Base != "" {
		cfg.PathBase = opts.Base
	}

	files, err := fs.NewProvider(cfg.WebRoot)
	if err != nil {
		return nil, err
	}
	cache, err := memcache.New(cfg.CacheMaxEntries)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:   cfg,
		files: files,
		close: func(context.Context) error { return nil },
	}
	versionerOpts := []fileversion.Option{fileversion.WithQueryKey(cfg.QueryKey)}
	if opts.Trace {
		tp := telemetry.NewTracerProvider(telemetry.NewLogBridge(a.logger))
		versionerOpts = append(versionerOpts, fileversion.WithTracer(tp.Tracer(fileversion.TracerName)))
		s.close = tp.Shutdown
	}
	s.versioner = fileversion.New(files, cache, a.computer, versionerOpts...)
	return s, nil
}

// StampOptions configures Stamp.
type StampOptions struct {
	Options
	// All stamps every file below the web root instead of the given paths.
	All bool
	// Manifest, if set, is a JSON file that records each versioned path.
	Manifest string
}

// Stamp prints the versioned form of each path, one per line.
func (a *App) Stamp(ctx context.Context, paths []string, opts StampOptions) error {
	if len(paths) == 0 && !opts.All {
		return domain.ErrNoPathsSpecified
	}

	s, err := a.open(opts.Options)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.close(ctx)
	}()

	if opts.All {
		for key := range a.walker.WalkKeys(s.cfg.WebRoot) {
			paths = append(paths, path.Join("/", s.cfg.PathBase, escapeKey(key)))
		}
	}

	var store *manifest.Store
	if opts.Manifest != "" {
		if store, err = manifest.NewStore(opts.Manifest); err != nil {
			return err
		}
	}

	for _, p := range paths {
		versioned, err := s.versioner.Resolve(ctx, p, s.cfg.PathBase)
		if err != nil {
			return zerr.With(err, "path", p)
		}
		if _, err := fmt.Fprintln(a.stdout, versioned); err != nil {
			return zerr.Wrap(err, "failed to write output")
		}
		// Missing and external paths come back unchanged and are not recorded.
		if store != nil && versioned != p {
			store.Put(p, versioned)
		}
	}

	if store == nil {
		return nil
	}
	if err := store.Save(); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("%s wrote %s (%d asset(s))", style.Check, opts.Manifest, len(store.Entries())))
	return nil
}

// escapeKey turns a storage key into a URL path, so names containing
// '%', '?' or '#' survive normalization.
func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return strings.Join(segments, "/")
}
