// Package cli implements the treelayout command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treelayout/pkg/buildinfo"
	"github.com/matzehuels/treelayout/pkg/cache"
	"github.com/matzehuels/treelayout/pkg/pipeline"
)

// appName names the binary, the cache directory and the metrics namespace.
const appName = cache.AppName

// Log levels for main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds the state shared by all commands.
type CLI struct {
	Logger *log.Logger

	// CacheDir overrides the per-user artifact cache directory.
	CacheDir string
}

// New returns a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel changes the level once flags are parsed.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand builds the command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "treelayout draws ordered trees",
		Long: `treelayout lays out rooted, ordered trees (parse trees, org charts,
file hierarchies) and draws them as SVG, PNG, PDF, JSON, DOT or plain text.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(buildinfo.Template())

	for _, sub := range []*cobra.Command{
		c.renderCommand(),
		c.layoutCommand(),
		c.previewCommand(),
		c.serveCommand(),
		c.cacheCommand(),
		c.completionCommand(),
	} {
		root.AddCommand(sub)
	}
	return root
}

// cacheDir returns CacheDir or the per-user default.
func (c *CLI) cacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	return cache.DefaultDir()
}

// newRunner returns a pipeline runner backed by the local file cache, or by
// no cache at all when noCache is set or the cache cannot be opened.
func (c *CLI) newRunner(noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(c.localCache(noCache), nil, c.Logger)
}

func (c *CLI) localCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "dir", dir, "error", err)
		return cache.NewNullCache()
	}
	return fc
}
