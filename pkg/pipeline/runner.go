package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treelayout/pkg/cache"
	treeio "github.com/matzehuels/treelayout/pkg/io"
	"github.com/matzehuels/treelayout/pkg/layouter"
	"github.com/matzehuels/treelayout/pkg/observability"
	"github.com/matzehuels/treelayout/pkg/render"
	"github.com/matzehuels/treelayout/pkg/tree"
)

// cacheKeyType labels artifact entries in cache hooks.
const cacheKeyType = "artifact"

// Runner renders trees with artifact caching.
// Both CLI and server use it to avoid duplicating caching logic.
//
// The Runner holds no per-call state, so multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Cache       cache.Cache
	Keyer       cache.Keyer
	Logger      *log.Logger
	RenderHooks observability.RenderHooks
	CacheHooks  observability.CacheHooks
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
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		RenderHooks: observability.NoopRenderHooks{},
		CacheHooks:  observability.NoopCacheHooks{},
	}
}

// Result is the outcome of one render.
type Result struct {
	// Artifact is the rendered output.
	Artifact render.Artifact

	// TreeHash is the content hash of the tree's canonical JSON encoding.
	TreeHash string

	// CacheHit reports whether Artifact came from the cache.
	CacheHit bool

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains render statistics.
type Stats struct {
	NodeCount int
	EdgeCount int
	Duration  time.Duration
}

// Render lays out and draws t, serving the artifact from the cache when an
// identical tree was rendered with identical options before. When
// opts.Output is set the artifact is also written there atomically.
func (r *Runner) Render(ctx context.Context, t *tree.Tree[tree.Label], opts Options) (*Result, error) {
	if t == nil {
		t = tree.New[tree.Label]()
	}
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	treeHash, err := HashTree(t)
	if err != nil {
		return nil, err
	}
	res := &Result{
		TreeHash: treeHash,
		Stats:    Stats{NodeCount: t.Len(), EdgeCount: max(t.Len()-1, 0)},
	}

	cacheKey := r.Keyer.ArtifactKey(treeHash, opts.ArtifactKeyOpts())
	cacheHooks := observability.CacheOrNoop(r.CacheHooks)

	if a, ok := r.lookup(ctx, cacheKey, opts); ok {
		cacheHooks.OnCacheHit(ctx, cacheKeyType)
		res.Artifact, res.CacheHit = a, true
	} else {
		cacheHooks.OnCacheMiss(ctx, cacheKeyType)
		a, err := Render(ctx, t, opts, r.RenderHooks)
		if err != nil {
			return nil, err
		}
		if err := r.Cache.Set(ctx, cacheKey, a.Data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			cacheHooks.OnCacheSet(ctx, cacheKeyType, a.Len())
		}
		res.Artifact = a
	}

	if opts.Output != "" {
		if err := layouter.WriteFile(opts.Output, res.Artifact.Data); err != nil {
			return nil, err
		}
		r.Logger.Info("wrote file", "path", opts.Output, "bytes", res.Artifact.Len())
	}

	res.Stats.Duration = time.Since(start)
	r.Logger.Debug("rendered tree",
		"nodes", res.Stats.NodeCount,
		"drawer", opts.Drawer,
		"format", opts.Format,
		"cached", res.CacheHit,
		"duration", res.Stats.Duration)
	return res, nil
}

func (r *Runner) lookup(ctx context.Context, key string, opts Options) (render.Artifact, bool) {
	if opts.Refresh {
		return render.Artifact{}, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		return render.Artifact{}, false
	}
	if !hit {
		return render.Artifact{}, false
	}
	return render.Artifact{
		Format:    opts.Format,
		MediaType: render.MediaType(opts.Format),
		Data:      data,
	}, true
}

// HashTree returns the content hash of t's canonical JSON encoding.
func HashTree(t *tree.Tree[tree.Label]) (string, error) {
	var buf bytes.Buffer
	if err := treeio.WriteJSON(&buf, t); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
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
