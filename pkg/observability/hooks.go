// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on a specific backend to the core packages. Components accept
// hook implementations through their options and fall back to no-ops.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Inject implementations where components are constructed
//
// There is no process-wide registry: two layouters in the same process can
// report to different backends. [Prometheus] implements every interface.
//
// # Usage
//
//	hooks, err := observability.NewPrometheus(prometheus.NewRegistry())
//	l := layouter.New(t, layouter.WithHooks(hooks))
//
// Components call hooks to emit events:
//
//	hooks.OnLayoutStart(ctx, t.Len())
//	result := layout.Compute(t, cfg)
//	hooks.OnLayoutComplete(ctx, result.Len(), time.Since(start))
package observability

import (
	"context"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the layout and drawing stages.
type RenderHooks interface {
	// Layout events
	OnLayoutStart(ctx context.Context, nodeCount int)
	OnLayoutComplete(ctx context.Context, nodeCount int, duration time.Duration)

	// Render events cover drawing, finalizing and persisting
	OnRenderStart(ctx context.Context, drawer string)
	OnRenderComplete(ctx context.Context, drawer string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the render service.
type HTTPHooks interface {
	// OnRequest records an incoming request before it is routed, so route
	// is the raw URL path.
	OnRequest(ctx context.Context, method, route string)

	// OnResponse records a completed response; route is the matched pattern.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnLayoutStart(context.Context, int)                                   {}
func (NoopRenderHooks) OnLayoutComplete(context.Context, int, time.Duration)                 {}
func (NoopRenderHooks) OnRenderStart(context.Context, string)                                {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// RenderOrNoop returns h, or [NoopRenderHooks] if h is nil.
func RenderOrNoop(h RenderHooks) RenderHooks {
	if h == nil {
		return NoopRenderHooks{}
	}
	return h
}

// CacheOrNoop returns h, or [NoopCacheHooks] if h is nil.
func CacheOrNoop(h CacheHooks) CacheHooks {
	if h == nil {
		return NoopCacheHooks{}
	}
	return h
}

// HTTPOrNoop returns h, or [NoopHTTPHooks] if h is nil.
func HTTPOrNoop(h HTTPHooks) HTTPHooks {
	if h == nil {
		return NoopHTTPHooks{}
	}
	return h
}
