// Package telemetry reports OpenTelemetry spans of version computations to the logger.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/bust/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*LogBridge)(nil)

// Attribute keys read from finished spans.
const (
	AttrAssetKey   attribute.Key = "asset.key"
	AttrAssetFound attribute.Key = "asset.found"
)

// LogBridge is a SpanProcessor that writes one log line per finished span.
type LogBridge struct {
	logger ports.Logger
}

// NewLogBridge returns a new LogBridge.
func NewLogBridge(logger ports.Logger) *LogBridge {
	return &LogBridge{logger: logger}
}

// OnStart does nothing; spans are reported once they end.
func (b *LogBridge) OnStart(context.Context, sdktrace.ReadWriteSpan) {}

// OnEnd logs the outcome of s.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	subject := s.Name()
	found := true
	for _, attr := range s.Attributes() {
		switch attr.Key {
		case AttrAssetKey:
			subject = attr.Value.AsString()
		case AttrAssetFound:
			found = attr.Value.AsBool()
		}
	}
	took := s.EndTime().Sub(s.StartTime()).Round(time.Microsecond)

	switch {
	case s.Status().Code == codes.Error:
		b.logger.Warn(fmt.Sprintf("%s failed after %s: %s", subject, took, s.Status().Description))
	case !found:
		b.logger.Info(fmt.Sprintf("%s not found, left unversioned", subject))
	default:
		b.logger.Info(fmt.Sprintf("%s versioned in %s", subject, took))
	}
}

// Shutdown does nothing.
func (b *LogBridge) Shutdown(context.Context) error {
	return nil
}

// ForceFlush does nothing.
func (b *LogBridge) ForceFlush(context.Context) error {
	return nil
}
