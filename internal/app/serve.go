package app

import (
	"context"
	"fmt"

	"go.trai.ch/bust/internal/adapters/markup"
	"go.trai.ch/bust/internal/adapters/watcher"
	"go.trai.ch/bust/internal/adapters/web"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// ServeOptions configures Serve.
type ServeOptions struct {
	Options
	// Addr overrides the listen address.
	Addr string
	// NoWatch disables file watching even if bust.yaml enables it.
	NoWatch bool
}

// Serve runs the static server until ctx is done.
// With watching enabled, changes below the web root invalidate cached versions.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	s, err := a.open(opts.Options)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.close(context.WithoutCancel(ctx))
	}()

	addr := s.cfg.Listen
	if opts.Addr != "" {
		addr = opts.Addr
	}

	server := web.NewServer(s.files, s.versioner, markup.NewRewriter(s.versioner, a.logger), a.logger, web.Options{
		PathBase: s.cfg.PathBase,
		QueryKey: s.cfg.QueryKey,
		MaxAge:   s.cfg.MaxAge,
	})

	g, ctx := errgroup.WithContext(ctx)

	if s.cfg.WatchEnabled && !opts.NoWatch {
		if err := a.watcher.Start(ctx, s.files.Root()); err != nil {
			return zerr.Wrap(err, "failed to start file watcher")
		}
		defer func() {
			_ = a.watcher.Stop()
		}()

		debouncer := watcher.NewDebouncer(s.cfg.WatchDebounce, func(paths []string) {
			if n := s.files.Invalidate(paths); n > 0 {
				a.logger.Info(fmt.Sprintf("invalidated %d cached version(s)", n))
			}
		})
		g.Go(func() error {
			defer debouncer.Stop()
			for event := range a.watcher.Events() {
				debouncer.Add(event.Path)
			}
			// Changes seen before shutdown still reach the cache.
			debouncer.Flush()
			return nil
		})
	}

	g.Go(func() error {
		return server.Listen(ctx, addr)
	})

	a.logger.Info(fmt.Sprintf("serving %s on %s", s.files.Root(), addr))
	return g.Wait()
}
