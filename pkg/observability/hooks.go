// Package observability lets callers watch the pipeline, the caches and the
// HTTP server without those packages depending on a metrics backend.
//
// The layout engine is not instrumented. Events fire around it: in
// [pipeline.Runner], in the instrumented cache wrapper and in the server's
// request middleware. Implementations are registered once at startup:
//
//	observability.SetPipelineHooks(myHooks)
//	observability.SetCacheHooks(myHooks)
//
// and emitters fetch whatever is current:
//
//	observability.Pipeline().OnLayoutStart(ctx, nodeCount)
//
// [LogHooks] writes every event to a charmbracelet logger. The serve command
// installs it.
//
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/boxflow/pkg/pipeline#Runner
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives events from the document pipeline: decoding a
// document, laying out its tree and rendering artifacts.
type PipelineHooks interface {
	OnDecodeStart(ctx context.Context, format string)
	OnDecodeComplete(ctx context.Context, format string, nodeCount int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, nodeCount int)
	OnLayoutComplete(ctx context.Context, nodeCount int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives events from the layout and artifact caches. keyType
// is "layout" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	// OnRequest is called before the handler runs.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse is called after the handler. route is the matched route
	// pattern, not the raw path.
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)

	OnError(ctx context.Context, method, route string, err error)
}

// NoopPipelineHooks ignores every pipeline event.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnDecodeStart(context.Context, string)                               {}
func (NoopPipelineHooks) OnDecodeComplete(context.Context, string, int, time.Duration, error) {}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                                  {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, time.Duration, error)         {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                             {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error)    {}

// NoopCacheHooks ignores every cache event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every HTTP event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// registry is replaced as a whole on every Set call, so readers never lock.
type registry struct {
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var current atomic.Pointer[registry]

func init() { Reset() }

func update(fn func(r *registry)) {
	for {
		old := current.Load()
		next := *old
		fn(&next)
		if current.CompareAndSwap(old, &next) {
			return
		}
	}
}

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		update(func(r *registry) { r.pipeline = h })
	}
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(r *registry) { r.cache = h })
	}
}

// SetHTTPHooks registers HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(r *registry) { r.http = h })
	}
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().pipeline }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current.Load().cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return current.Load().http }

// Reset restores the no-op hooks. Tests and the serve command call it on
// exit.
func Reset() {
	current.Store(&registry{
		pipeline: NoopPipelineHooks{},
		cache:    NoopCacheHooks{},
		http:     NoopHTTPHooks{},
	})
}
