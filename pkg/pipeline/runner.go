package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boxflow/pkg/cache"
	"github.com/matzehuels/boxflow/pkg/document"
	"github.com/matzehuels/boxflow/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete decode → layout → render pipeline on the
// document at path.
func (r *Runner) Execute(ctx context.Context, path string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	decodeStart := time.Now()
	doc, err := r.Decode(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	decodeTime := time.Since(decodeStart)
	opts.Logger.Info("decoded document",
		"path", path,
		"nodes", doc.Count(),
		"duration", decodeTime)

	result, err := r.ExecuteDocument(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.DecodeTime = decodeTime
	return result, nil
}

// ExecuteDocument runs the layout and render stages on a decoded document.
func (r *Runner) ExecuteDocument(ctx context.Context, doc *document.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Document:     doc,
		DocumentHash: doc.Hash(),
		Artifacts:    make(map[string][]byte),
	}
	result.Stats.NodeCount = doc.Count()

	// Stage 1: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.LayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	opts.Logger.Info("computed layout",
		"nodes", len(l.Snapshot.Nodes),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Decode imports the document at path.
func (r *Runner) Decode(ctx context.Context, path string) (*document.Document, error) {
	format, err := document.FormatOf(path)
	if err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, string(format))
	start := time.Now()

	doc, err := document.Import(path)
	hooks.OnDecodeComplete(ctx, string(format), countOf(doc), time.Since(start), err)
	return doc, err
}

// DecodeReader decodes a document in format f from rd. Image paths in the
// document are not resolved.
func (r *Runner) DecodeReader(ctx context.Context, rd io.Reader, f document.Format) (*document.Document, error) {
	hooks := observability.Pipeline()
	hooks.OnDecodeStart(ctx, string(f))
	start := time.Now()

	doc, err := document.Read(rd, f)
	if err == nil {
		err = doc.Validate()
	}
	hooks.OnDecodeComplete(ctx, string(f), countOf(doc), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func countOf(doc *document.Document) int {
	if doc == nil {
		return 0
	}
	return doc.Count()
}

// LayoutWithCacheInfo lays out doc with caching and returns cache hit info.
// The tree is always built because image bytes are needed for rendering;
// only the layout passes are skipped on a hit.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, doc *document.Document, opts Options) (*Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}

	root, err := Tree(doc)
	if err != nil {
		return nil, false, err
	}
	images := Images(root)
	cacheKey := r.Keyer.LayoutKey(documentHash(doc, images), opts.LayoutKeyOpts(doc))

	hooks := observability.Pipeline()
	count := root.Count()
	hooks.OnLayoutStart(ctx, count)
	start := time.Now()

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			snap, err := document.UnmarshalSnapshot(data)
			if err == nil {
				hooks.OnLayoutComplete(ctx, count, time.Since(start), nil)
				return newLayout(snap, images), true, nil
			}
			// If deserialization fails, fall through to recompute
			opts.Logger.Debug("discarding unreadable cached layout", "err", err)
		}
	}

	l := layoutTree(doc, root, opts)
	hooks.OnLayoutComplete(ctx, count, time.Since(start), nil)

	if data, err := l.Snapshot.Marshal(); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			opts.Logger.Warn("cache layout", "err", err)
		}
	}
	return l, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, doc *document.Document, opts Options) (*Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, doc, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l *Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(l.Hash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			artifacts[format] = data
		} else {
			missing = append(missing, format)
		}
	}
	if len(missing) == 0 {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil // All artifacts from cache
	}

	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := RenderLayout(ctx, l, renderOpts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(l.Hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache artifact", "format", format, "err", err)
		}
		artifacts[format] = data
	}
	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l *Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// documentHash identifies a document together with the images it loaded.
func documentHash(doc *document.Document, images map[string][]byte) string {
	if len(images) == 0 {
		return doc.Hash()
	}
	return hashWithImages([]byte(doc.Hash()), images)
}
