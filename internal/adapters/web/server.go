// Package web serves the web root over HTTP with content-versioned caching.
package web

import (
	"bytes"
	"context"
	"errors"
	iofs "io/fs"
	"mime"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"go.trai.ch/bust/internal/core/domain"
	"go.trai.ch/bust/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	indexFile       = "index.html"
	cacheNoCache    = "no-cache"
	shutdownTimeout = 5 * time.Second
)

// Options configures the Server.
type Options struct {
	// PathBase is the URL prefix the web root is mounted under.
	PathBase string
	// QueryKey is the query parameter carrying the version token.
	QueryKey string
	// MaxAge is sent for requests carrying the current version.
	MaxAge time.Duration
}

// Server serves files from a FileProvider.
//
// Assets get a strong ETag derived from their version token and are marked
// immutable when the request already names the current version. HTML pages
// are run through the markup rewriter so they always reference current versions.
type Server struct {
	app       *fiber.App
	files     ports.FileProvider
	versioner ports.AssetVersioner
	rewriter  ports.MarkupRewriter
	logger    ports.Logger
	opts      Options
}

// NewServer creates a Server and registers its routes.
func NewServer(
	files ports.FileProvider,
	versioner ports.AssetVersioner,
	rewriter ports.MarkupRewriter,
	logger ports.Logger,
	opts Options,
) *Server {
	if opts.QueryKey == "" {
		opts.QueryKey = domain.DefaultQueryKey
	}
	opts.PathBase = strings.TrimRight(opts.PathBase, "/")

	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:       "bust",
			CaseSensitive: true,
		}),
		files:     files,
		versioner: versioner,
		rewriter:  rewriter,
		logger:    logger,
		opts:      opts,
	}

	s.app.Use(recover.New())
	s.app.Get("/*", s.handle)
	s.app.Head("/*", s.handle)
	return s
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Listen(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to listen"), "addr", addr)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			return zerr.Wrap(err, "failed to shut down server")
		}
		return <-errCh
	}
}

func (s *Server) handle(c fiber.Ctx) error {
	rawPath := string(c.Request().URI().PathOriginal())
	if !s.underPathBase(rawPath) {
		return c.SendStatus(fiber.StatusNotFound)
	}

	ref, err := domain.NormalizeAssetPath(rawPath, s.opts.PathBase)
	if err != nil || ref.External {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	file, err := s.open(ref.Key)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return s.fail(c, err)
	}

	if path.Ext(file.Key()) == ".html" {
		return s.serveHTML(c, file)
	}
	return s.serveAsset(c, file)
}

// open returns the file for key, falling back to its index.html.
func (s *Server) open(key string) (ports.FileHandle, error) {
	file, err := s.files.GetFile(key)
	if err == nil || !errors.Is(err, iofs.ErrNotExist) {
		return file, err
	}
	return s.files.GetFile(path.Join(key, indexFile))
}

func (s *Server) serveAsset(c fiber.Ctx, file ports.FileHandle) error {
	token, found, err := s.versioner.LookupKey(c.Context(), file.Key())
	if err != nil {
		return s.fail(c, err)
	}
	if !found {
		// Removed between GetFile and Lookup.
		return c.SendStatus(fiber.StatusNotFound)
	}

	if c.Query(s.opts.QueryKey) == token {
		c.Set(fiber.HeaderCacheControl, "public, max-age="+strconv.FormatInt(int64(s.opts.MaxAge/time.Second), 10)+", immutable")
	} else {
		c.Set(fiber.HeaderCacheControl, cacheNoCache)
	}

	etag := `"` + token + `"`
	c.Set(fiber.HeaderETag, etag)
	if etagMatches(c.Get(fiber.HeaderIfNoneMatch), etag) {
		return c.SendStatus(fiber.StatusNotModified)
	}

	rc, err := file.Open()
	if err != nil {
		return s.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType(file.Key()))
	return c.SendStream(rc, int(file.Size()))
}

func (s *Server) serveHTML(c fiber.Ctx, file ports.FileHandle) error {
	rc, err := file.Open()
	if err != nil {
		return s.fail(c, err)
	}
	defer func() {
		_ = rc.Close()
	}()

	var body bytes.Buffer
	if err := s.rewriter.Rewrite(c.Context(), &body, rc, s.opts.PathBase); err != nil {
		return s.fail(c, zerr.With(err, "page", file.Key()))
	}

	etag := `W/"` + strconv.FormatUint(xxhash.Sum64(body.Bytes()), 16) + `"`
	c.Set(fiber.HeaderCacheControl, cacheNoCache)
	c.Set(fiber.HeaderETag, etag)
	if etagMatches(c.Get(fiber.HeaderIfNoneMatch), etag) {
		return c.SendStatus(fiber.StatusNotModified)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(body.Bytes())
}

func (s *Server) fail(c fiber.Ctx, err error) error {
	s.logger.Error(zerr.With(err, "request", c.OriginalURL()))
	return c.SendStatus(fiber.StatusInternalServerError)
}

// underPathBase reports whether rawPath lies below the configured base.
// Both sides are compared decoded, as NormalizeAssetPath does.
func (s *Server) underPathBase(rawPath string) bool {
	base := s.opts.PathBase
	if base == "" {
		return true
	}
	base = unescapeOr(base)
	rawPath = unescapeOr(rawPath)
	if len(rawPath) < len(base) || !strings.EqualFold(rawPath[:len(base)], base) {
		return false
	}
	return len(rawPath) == len(base) || rawPath[len(base)] == '/'
}

// etagMatches implements the weak comparison used for If-None-Match.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	want := strings.TrimPrefix(etag, "W/")
	for candidate := range strings.SplitSeq(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == want {
			return true
		}
	}
	return false
}

// unescapeOr percent-decodes p, returning it unchanged when it is malformed.
// Malformed request paths are rejected later by NormalizeAssetPath.
func unescapeOr(p string) string {
	if decoded, err := url.PathUnescape(p); err == nil {
		return decoded
	}
	return p
}

func contentType(key string) string {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return fiber.MIMEOctetStream
}
