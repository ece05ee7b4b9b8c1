package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treelayout/internal/server"
	"github.com/matzehuels/treelayout/pkg/buildinfo"
	"github.com/matzehuels/treelayout/pkg/cache"
	"github.com/matzehuels/treelayout/pkg/errors"
	"github.com/matzehuels/treelayout/pkg/observability"
	"github.com/matzehuels/treelayout/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr         string
	redisURL     string
	mongoURI     string
	mongoDB      string
	cachePrefix  string
	noCache      bool
	maxBodyBytes int64
}

// serveCommand creates the serve command, which runs the HTTP render service.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080", maxBodyBytes: server.DefaultMaxBodyBytes}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Run the HTTP render service.

Routes:
  POST /v1/render   {"tree": {...}, "options": {...}} -> artifact
  GET  /v1/drawers  available drawers, formats and styles
  GET  /healthz     liveness probe
  GET  /metrics     Prometheus metrics

Artifacts are cached in Redis (--redis), MongoDB (--mongo) or, by default,
the local cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for the artifact cache (redis://host:6379/0)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for the artifact cache")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "", "MongoDB database (default treelayout)")
	cmd.Flags().StringVar(&opts.cachePrefix, "cache-prefix", "", "prefix for cache keys shared with other deployments")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().Int64Var(&opts.maxBodyBytes, "max-body", opts.maxBodyBytes, "maximum request body size in bytes")
	cmd.MarkFlagsMutuallyExclusive("redis", "mongo", "no-cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	store, err := c.serveCache(ctx, opts)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewPrometheus(reg)
	if err != nil {
		_ = store.Close()
		return fmt.Errorf("register metrics: %w", err)
	}

	var keyer cache.Keyer
	if opts.cachePrefix != "" {
		keyer = cache.NewScopedKeyer(nil, opts.cachePrefix)
	}
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	runner.RenderHooks = metrics
	runner.CacheHooks = metrics
	defer runner.Close()

	srv := server.New(server.Config{
		Runner:       runner,
		Log:          c.Logger,
		Hooks:        metrics,
		Metrics:      promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		MaxBodyBytes: opts.maxBodyBytes,
	})

	c.Logger.Info("starting render service", "version", buildinfo.Get().Version)
	return srv.ListenAndServe(ctx, opts.addr)
}

// serveCache picks the artifact cache: Redis, then MongoDB, then the local
// cache directory.
func (c *CLI) serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	switch {
	case opts.noCache:
		return cache.NewNullCache(), nil
	case opts.redisURL != "":
		if err := errors.ValidateURL(opts.redisURL, "redis", "rediss"); err != nil {
			return nil, err
		}
		rc, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Logger.Info("using redis cache")
		return rc, nil
	case opts.mongoURI != "":
		if err := errors.ValidateURL(opts.mongoURI, "mongodb", "mongodb+srv"); err != nil {
			return nil, err
		}
		mc, err := cache.NewMongoCache(ctx, opts.mongoURI, opts.mongoDB, "")
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		c.Logger.Info("using mongo cache")
		return mc, nil
	}
	return c.localCache(false), nil
}
