package app_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	iofs "io/fs"
	"iter"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bust/internal/adapters/fs"
	"go.trai.ch/bust/internal/adapters/manifest"
	"go.trai.ch/bust/internal/app"
	"go.trai.ch/bust/internal/core/domain"
	"go.trai.ch/bust/internal/core/ports"
	"go.trai.ch/bust/internal/core/ports/mocks"
	"go.trai.ch/bust/internal/ui/style"
	"go.uber.org/mock/gomock"
)

const siteCSS = "body{}"

var cssToken = fs.NewHasher().Compute([]byte(siteCSS))

type fixture struct {
	root    string
	cfg     *domain.Config
	loader  *mocks.MockConfigLoader
	logger  *mocks.MockLogger
	watcher *mocks.MockWatcher
	out     *bytes.Buffer
	app     *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	root := t.TempDir()
	writeFile(t, root, "css/site.css", siteCSS)
	writeFile(t, root, "index.html", `<link href="/css/site.css" append-version>`)

	cfg := domain.DefaultConfig(t.TempDir())
	cfg.WebRoot = root

	f := &fixture{
		root:    root,
		cfg:     cfg,
		loader:  mocks.NewMockConfigLoader(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
		watcher: mocks.NewMockWatcher(ctrl),
		out:     &bytes.Buffer{},
	}
	f.loader.EXPECT().Load(gomock.Any()).DoAndReturn(func(string) (*domain.Config, error) {
		c := *f.cfg
		return &c, nil
	}).AnyTimes()
	f.app = app.New(f.loader, f.logger, fs.NewHasher(), fs.NewWalker(), f.watcher).WithStdout(f.out)
	return f
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestApp_Stamp(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	err := f.app.Stamp(context.Background(), []string{"/css/site.css?theme=dark", "/missing.png", "https://cdn.example.com/x.js"}, app.StampOptions{})

	require.NoError(t, err)
	assert.Equal(t,
		"/css/site.css?theme=dark&v="+cssToken+"\n/missing.png\nhttps://cdn.example.com/x.js\n",
		f.out.String())
}

func TestApp_Stamp_NoPaths(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	err := f.app.Stamp(context.Background(), nil, app.StampOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoPathsSpecified)
}

func TestApp_Stamp_AllWithBase(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	err := f.app.Stamp(context.Background(), nil, app.StampOptions{
		Options: app.Options{Base: "/app"},
		All:     true,
	})

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(f.out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "/app/css/site.css?v="+cssToken, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "/app/index.html?v="))
}

func TestApp_Stamp_AllEscapesFileNames(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	other := t.TempDir()
	writeFile(t, other, "100%.css", "pct")
	writeFile(t, other, "a#b.css", "hash")
	writeFile(t, other, "q?x.css", "query")

	err := f.app.Stamp(context.Background(), nil, app.StampOptions{
		Options: app.Options{Root: other},
		All:     true,
	})

	require.NoError(t, err)
	h := fs.NewHasher()
	assert.Equal(t, []string{
		"/100%25.css?v=" + h.Compute([]byte("pct")),
		"/a%23b.css?v=" + h.Compute([]byte("hash")),
		"/q%3Fx.css?v=" + h.Compute([]byte("query")),
	}, strings.Split(strings.TrimSpace(f.out.String()), "\n"))
}

func TestApp_Stamp_Manifest(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	path := filepath.Join(t.TempDir(), "manifest.json")
	f.logger.EXPECT().Info(style.Check + " wrote " + path + " (1 asset(s))").Times(1)

	err := f.app.Stamp(context.Background(), []string{"/css/site.css", "/missing.png"}, app.StampOptions{Manifest: path})

	require.NoError(t, err)
	store, err := manifest.NewStore(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"/css/site.css": "/css/site.css?v=" + cssToken}, store.Entries())
}

func TestApp_Stamp_RootOverride(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	other := t.TempDir()
	writeFile(t, other, "a.js", "js")

	err := f.app.Stamp(context.Background(), []string{"/a.js"}, app.StampOptions{Options: app.Options{Root: other}})

	require.NoError(t, err)
	assert.Equal(t, "/a.js?v="+fs.NewHasher().Compute([]byte("js"))+"\n", f.out.String())
}

func TestApp_Stamp_InvalidPath(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	err := f.app.Stamp(context.Background(), []string{"/../etc/passwd"}, app.StampOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPath)
}

func TestApp_Stamp_MissingWebRoot(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.cfg.WebRoot = filepath.Join(f.root, "nope")

	err := f.app.Stamp(context.Background(), []string{"/a.css"}, app.StampOptions{})

	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrWebRootNotFound.Error())
}

func TestApp_Stamp_ConfigError(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	loadErr := errors.New("broken yaml")
	loader.EXPECT().Load(gomock.Any()).Return(nil, loadErr)

	a := app.New(loader, mocks.NewMockLogger(ctrl), fs.NewHasher(), fs.NewWalker(), mocks.NewMockWatcher(ctrl))
	err := a.Stamp(context.Background(), []string{"/a.css"}, app.StampOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, loadErr)
}

func TestApp_Stamp_Trace(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	var mu sync.Mutex
	var logged []string
	f.logger.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		mu.Lock()
		defer mu.Unlock()
		logged = append(logged, msg)
	}).AnyTimes()

	err := f.app.Stamp(context.Background(), []string{"/css/site.css", "/css/site.css"}, app.StampOptions{
		Options: app.Options{Trace: true},
	})

	require.NoError(t, err)
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, logged, 1, "only the miss is traced")
	assert.True(t, strings.HasPrefix(logged[0], "/css/site.css versioned in "))
}

func TestApp_Rewrite_ToStdout(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	err := f.app.Rewrite(context.Background(), []string{filepath.Join(f.root, "index.html")}, app.RewriteOptions{})

	require.NoError(t, err)
	assert.Equal(t, `<link href="/css/site.css?v=`+cssToken+`">`, f.out.String())
}

func TestApp_Rewrite_InPlace(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.logger.EXPECT().Info(gomock.Any()).Times(1)
	page := filepath.Join(f.root, "index.html")

	err := f.app.Rewrite(context.Background(), []string{page}, app.RewriteOptions{Write: true})

	require.NoError(t, err)
	content, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Equal(t, `<link href="/css/site.css?v=`+cssToken+`">`, string(content))
	assert.Empty(t, f.out.String())

	// A second pass finds nothing left to rewrite.
	require.NoError(t, f.app.Rewrite(context.Background(), []string{page}, app.RewriteOptions{Write: true}))
}

func TestApp_Rewrite_Errors(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	err := f.app.Rewrite(context.Background(), nil, app.RewriteOptions{})
	assert.ErrorIs(t, err, domain.ErrNoPathsSpecified)

	err = f.app.Rewrite(context.Background(), []string{filepath.Join(f.root, "missing.html")}, app.RewriteOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, iofs.ErrNotExist)
}

func TestApp_Serve_StartFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.watcher.EXPECT().Start(gomock.Any(), gomock.Any()).Return(errors.New("too many open files"))

	err := f.app.Serve(context.Background(), app.ServeOptions{})

	require.Error(t, err)
	assert.ErrorContains(t, err, "too many open files")
}

func TestApp_Serve_NoWatchSkipsWatcher(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	addr := freeAddr(t)

	// The mock watcher has no expectations, so any call fails the test.
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- f.app.Serve(ctx, app.ServeOptions{Addr: addr, NoWatch: true})
	}()

	status, _ := get(t, "http://"+addr+"/css/site.css")
	assert.Equal(t, http.StatusOK, status)

	cancel()
	requireStopped(t, errCh)
}

func TestApp_Serve_InvalidatesOnChange(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	addr := freeAddr(t)
	f.cfg.WatchDebounce = 10 * time.Millisecond
	f.cfg.Listen = addr

	invalidated := make(chan string, 4)
	f.logger.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		if strings.HasPrefix(msg, "invalidated") {
			invalidated <- msg
		}
	}).AnyTimes()

	events := make(chan ports.WatchEvent)
	var watchCtx context.Context
	f.watcher.EXPECT().Start(gomock.Any(), f.root).DoAndReturn(func(ctx context.Context, _ string) error {
		watchCtx = ctx
		return nil
	})
	f.watcher.EXPECT().Events().DoAndReturn(func() iter.Seq[ports.WatchEvent] {
		return func(yield func(ports.WatchEvent) bool) {
			for {
				select {
				case <-watchCtx.Done():
					return
				case ev := <-events:
					if !yield(ev) {
						return
					}
				}
			}
		}
	})
	f.watcher.EXPECT().Stop().Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- f.app.Serve(ctx, app.ServeOptions{})
	}()

	_, before := get(t, "http://"+addr+"/css/site.css")
	assert.Equal(t, `"`+cssToken+`"`, before)

	writeFile(t, f.root, "css/site.css", "body{color:red}")
	events <- ports.WatchEvent{Path: filepath.Join(f.root, "css", "site.css"), Operation: ports.OpWrite}

	select {
	case msg := <-invalidated:
		assert.Equal(t, "invalidated 1 cached version(s)", msg)
	case <-time.After(5 * time.Second):
		t.Fatal("cached version was not invalidated")
	}

	_, after := get(t, "http://"+addr+"/css/site.css")
	assert.Equal(t, `"`+fs.NewHasher().Compute([]byte("body{color:red}"))+`"`, after)

	cancel()
	requireStopped(t, errCh)
}

func TestApp_Serve_FlushesPendingChangesOnShutdown(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	addr := freeAddr(t)
	f.cfg.WatchDebounce = time.Hour
	f.cfg.Listen = addr

	invalidated := make(chan string, 4)
	f.logger.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		if strings.HasPrefix(msg, "invalidated") {
			invalidated <- msg
		}
	}).AnyTimes()

	events := make(chan ports.WatchEvent)
	var watchCtx context.Context
	f.watcher.EXPECT().Start(gomock.Any(), f.root).DoAndReturn(func(ctx context.Context, _ string) error {
		watchCtx = ctx
		return nil
	})
	f.watcher.EXPECT().Events().DoAndReturn(func() iter.Seq[ports.WatchEvent] {
		return func(yield func(ports.WatchEvent) bool) {
			for {
				select {
				case <-watchCtx.Done():
					return
				case ev := <-events:
					if !yield(ev) {
						return
					}
				}
			}
		}
	})
	f.watcher.EXPECT().Stop().Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- f.app.Serve(ctx, app.ServeOptions{})
	}()

	_, etag := get(t, "http://"+addr+"/css/site.css")
	assert.Equal(t, `"`+cssToken+`"`, etag)

	events <- ports.WatchEvent{Path: filepath.Join(f.root, "css", "site.css"), Operation: ports.OpWrite}
	cancel()
	requireStopped(t, errCh)

	select {
	case msg := <-invalidated:
		assert.Equal(t, "invalidated 1 cached version(s)", msg)
	default:
		t.Fatal("pending change was dropped on shutdown")
	}
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

// get retries until the server accepts connections and returns the status and ETag.
func get(t *testing.T, url string) (int, string) {
	t.Helper()
	var resp *http.Response
	require.Eventually(t, func() bool {
		var err error
		resp, err = http.Get(url) //nolint:noctx // Test helper
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, resp.Header.Get("ETag")
}

func requireStopped(t *testing.T, errCh <-chan error) {
	t.Helper()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
