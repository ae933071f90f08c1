package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level. It implements
// [PipelineHooks], [CacheHooks] and [HTTPHooks].
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

// Install registers h for all hook categories.
func (h *LogHooks) Install() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnDecodeStart(_ context.Context, format string) {
	h.Logger.Debug("decode started", "format", format)
}

func (h *LogHooks) OnDecodeComplete(_ context.Context, format string, nodeCount int, d time.Duration, err error) {
	h.done("decode", d, err, "format", format, "nodes", nodeCount)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, nodeCount int) {
	h.Logger.Debug("layout started", "nodes", nodeCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, nodeCount int, d time.Duration, err error) {
	h.done("layout", d, err, "nodes", nodeCount)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render started", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("render", d, err, "formats", formats)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.Logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.Logger.Info("response", "method", method, "route", route, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, route string, err error) {
	h.Logger.Error("request failed", "method", method, "route", route, "err", err)
}

func (h *LogHooks) done(stage string, d time.Duration, err error, kv ...any) {
	kv = append(kv, "duration", d)
	if err != nil {
		h.Logger.Warn(stage+" failed", append(kv, "err", err)...)
		return
	}
	h.Logger.Debug(stage+" complete", kv...)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
