// Package fileversion appends content-derived version tokens to asset paths.
package fileversion

import (
	"context"
	"errors"
	iofs "io/fs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/bust/internal/core/domain"
	"go.trai.ch/bust/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

const (
	// TracerName is the instrumentation name of the default tracer.
	TracerName = "go.trai.ch/bust/internal/engine/fileversion"
	// SpanCompute is the name of the span recorded for every cache miss.
	SpanCompute = "fileversion.compute"

	attrKey   = "asset.key"
	attrFound = "asset.found"
)

var _ ports.AssetVersioner = (*Provider)(nil)

// Provider resolves asset paths to versioned paths.
// Tokens are computed from file content on first use and cached until the
// file's change token fires. Provider is safe for concurrent use.
type Provider struct {
	files    ports.FileProvider
	cache    ports.VersionCache
	computer ports.TokenComputer
	queryKey string
	tracer   trace.Tracer

	group singleflight.Group
}

// Option configures a Provider.
type Option func(*Provider)

// WithQueryKey sets the query parameter the token is appended under.
func WithQueryKey(key string) Option {
	return func(p *Provider) {
		p.queryKey = key
	}
}

// WithTracer sets the tracer used for cache misses.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Provider) {
		p.tracer = tracer
	}
}

// New creates a Provider reading files from files and caching tokens in cache.
func New(
	files ports.FileProvider,
	cache ports.VersionCache,
	computer ports.TokenComputer,
	opts ...Option,
) *Provider {
	p := &Provider{
		files:    files,
		cache:    cache,
		computer: computer,
		queryKey: domain.DefaultQueryKey,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.tracer == nil {
		p.tracer = otel.Tracer(TracerName)
	}
	return p
}

// Resolve returns path with the version of the file it names appended as a query parameter.
// External URLs and paths without a backing file are returned unchanged.
func (p *Provider) Resolve(ctx context.Context, path, pathBase string) (string, error) {
	ref, err := domain.NormalizeAssetPath(path, pathBase)
	if err != nil {
		return "", err
	}
	if ref.External {
		return path, nil
	}

	token, found, err := p.lookupOrCompute(ctx, ref.Key)
	if err != nil {
		return "", err
	}
	if !found {
		return path, nil
	}
	return domain.AppendVersion(path, p.queryKey, token), nil
}

// Lookup returns the current token of the file path names.
func (p *Provider) Lookup(ctx context.Context, path, pathBase string) (string, bool, error) {
	ref, err := domain.NormalizeAssetPath(path, pathBase)
	if err != nil {
		return "", false, err
	}
	if ref.External {
		return "", false, nil
	}
	return p.lookupOrCompute(ctx, ref.Key)
}

// LookupKey returns the current token of the file stored under key.
// key must already be normalized; it is used as is.
func (p *Provider) LookupKey(ctx context.Context, key string) (string, bool, error) {
	return p.lookupOrCompute(ctx, key)
}

type lookupResult struct {
	token string
	found bool
}

func (p *Provider) lookupOrCompute(ctx context.Context, key string) (string, bool, error) {
	if token, ok := p.cache.Get(key); ok {
		return token, true, nil
	}

	v, err, _ := p.group.Do(key, func() (any, error) {
		// A flight that finished just before this one may have filled the cache.
		if token, ok := p.cache.Get(key); ok {
			return lookupResult{token: token, found: true}, nil
		}
		return p.compute(ctx, key)
	})
	if err != nil {
		return "", false, err
	}
	res := v.(lookupResult) //nolint:errcheck,forcetypeassert // The flight only returns lookupResult
	return res.token, res.found, nil
}

func (p *Provider) compute(ctx context.Context, key string) (lookupResult, error) {
	_, span := p.tracer.Start(ctx, SpanCompute, trace.WithAttributes(attribute.String(attrKey, key)))
	defer span.End()

	file, err := p.files.GetFile(key)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			span.SetAttributes(attribute.Bool(attrFound, false))
			return lookupResult{}, nil
		}
		return lookupResult{}, failSpan(span, zerr.With(zerr.Wrap(err, domain.ErrAssetReadFailed.Error()), "key", key))
	}
	span.SetAttributes(attribute.Bool(attrFound, true))

	// Watch before reading: a write that lands during the read fires the trigger
	// and drops the entry instead of leaving a stale token behind.
	trigger := file.Watch()

	token, err := p.readToken(file)
	if err != nil {
		return lookupResult{}, failSpan(span, zerr.With(zerr.Wrap(err, domain.ErrAssetReadFailed.Error()), "key", key))
	}

	p.cache.Set(key, token, trigger)
	return lookupResult{token: token, found: true}, nil
}

func (p *Provider) readToken(file ports.FileHandle) (string, error) {
	rc, err := file.Open()
	if err != nil {
		return "", err
	}
	defer func() {
		_ = rc.Close()
	}()
	return p.computer.ComputeReader(rc)
}

func failSpan(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
