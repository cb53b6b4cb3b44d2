package observability

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// AttrFilePath is the span attribute carrying the analysed file's path.
const AttrFilePath = "file.path"

// allowedPrefixes are attribute key prefixes that pass through the filter.
var allowedPrefixes = []string{
	"indentsniff.",
	"indent.",
	"file.",
	"error.",
}

// blockedKeys never leave the process: they would carry file contents.
var blockedKeys = map[string]bool{
	"file.content": true,
	"file.line":    true,
}

// attributeFilter is a SpanProcessor that drops attributes outside the
// allow-list and optionally shortens file paths to their base name before
// forwarding to a delegate processor.
type attributeFilter struct {
	delegate    sdktrace.SpanProcessor
	logger      *slog.Logger
	redactPaths bool
}

// NewAttributeFilter returns a SpanProcessor that filters span attributes.
// When redactPaths is set, [AttrFilePath] is reduced to the file's base name.
// When logger is non-nil, dropped keys are logged at debug level.
func NewAttributeFilter(delegate sdktrace.SpanProcessor, logger *slog.Logger, redactPaths bool) sdktrace.SpanProcessor {
	return &attributeFilter{delegate: delegate, logger: logger, redactPaths: redactPaths}
}

// OnStart delegates to the wrapped processor.
func (f *attributeFilter) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	f.delegate.OnStart(parent, s)
}

// OnEnd filters attributes, then delegates to the wrapped processor.
func (f *attributeFilter) OnEnd(s sdktrace.ReadOnlySpan) {
	// ReadOnlySpan attributes cannot be mutated; wrap with filtered view.
	f.delegate.OnEnd(&filteredSpan{ReadOnlySpan: s, filter: f})
}

// Shutdown delegates to the wrapped processor.
func (f *attributeFilter) Shutdown(ctx context.Context) error {
	err := f.delegate.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("attribute filter shutdown: %w", err)
	}

	return nil
}

// ForceFlush delegates to the wrapped processor.
func (f *attributeFilter) ForceFlush(ctx context.Context) error {
	err := f.delegate.ForceFlush(ctx)
	if err != nil {
		return fmt.Errorf("attribute filter flush: %w", err)
	}

	return nil
}

func (f *attributeFilter) isAllowed(key string) bool {
	if blockedKeys[key] {
		f.dropped(key)

		return false
	}

	for _, prefix := range allowedPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}

	f.dropped(key)

	return false
}

func (f *attributeFilter) rewrite(kv attribute.KeyValue) attribute.KeyValue {
	if f.redactPaths && kv.Key == AttrFilePath {
		return attribute.String(AttrFilePath, filepath.Base(kv.Value.AsString()))
	}

	return kv
}

func (f *attributeFilter) dropped(key string) {
	if f.logger != nil {
		f.logger.Debug("attribute dropped by filter", "key", key)
	}
}

// filteredSpan wraps a ReadOnlySpan and returns only allowed attributes.
type filteredSpan struct {
	sdktrace.ReadOnlySpan

	filter *attributeFilter
}

// Attributes returns the allowed attributes, rewritten by the filter.
func (s *filteredSpan) Attributes() []attribute.KeyValue {
	orig := s.ReadOnlySpan.Attributes()
	filtered := make([]attribute.KeyValue, 0, len(orig))

	for _, kv := range orig {
		if s.filter.isAllowed(string(kv.Key)) {
			filtered = append(filtered, s.filter.rewrite(kv))
		}
	}

	return filtered
}
