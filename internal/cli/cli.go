// Package cli implements the graphscape command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphscape/pkg/buildinfo"
	"github.com/matzehuels/graphscape/pkg/cache"
	"github.com/matzehuels/graphscape/pkg/config"
	"github.com/matzehuels/graphscape/pkg/device"
	"github.com/matzehuels/graphscape/pkg/engine"
	"github.com/matzehuels/graphscape/pkg/observability"
	"github.com/matzehuels/graphscape/pkg/render"
)

// appName is used for cache and config directory names.
const appName = "graphscape"

// Log level constants for CLI configuration.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds the command-line interface state.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is an explicit config file location; empty uses the
	// default XDG path.
	ConfigPath string

	// seedOverride, when set, wins over the configured random seed.
	seedOverride *int64

	// cacheActivity counts cache hits during a command run so the final
	// stats line can show cached vs fresh.
	cacheActivity *cacheActivity
}

// New creates a CLI with a logger writing to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	c := &CLI{
		Logger:        newLogger(w, level),
		cacheActivity: &cacheActivity{},
	}
	observability.SetCacheHooks(c.cacheActivity)
	return c
}

// SetLogLevel changes the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Graph layout, clustering, and analytics for knowledge graphs",
		Long: `graphscape computes layouts, clusters, analytics, and render
optimizations for node-link knowledge graphs.

A typical session starts from a graph.json document:

  graphscape layout graph.json            position nodes (force-directed)
  graphscape cluster graph.json           label communities
  graphscape analyze graph.json           structural analytics report
  graphscape optimize graph.json          viewport culling and aggregation
  graphscape serve                        run the HTTP API

Layout and clustering results are cached locally for faster reruns.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default: $XDG_CONFIG_HOME/graphscape/config.toml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.clusterCommand())
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.filterCommand())
	root.AddCommand(c.optimizeCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newEngine builds an engine from the loaded configuration. The caller owns
// the engine and must Close it.
func (c *CLI) newEngine(ctx context.Context, noCache bool) (*engine.Engine, config.Config, error) {
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return nil, config.Config{}, err
	}

	backend, err := c.newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, config.Config{}, err
	}

	seed := cfg.Layout.Seed
	if c.seedOverride != nil {
		seed = *c.seedOverride
	}

	opts := []engine.Option{
		engine.WithCache(backend),
		engine.WithSeed(seed),
		engine.WithLogger(c.Logger),
		engine.WithOptimizer(c.newOptimizer(cfg.Optimizer)),
	}
	if cfg.Cache.TTLSeconds > 0 {
		opts = append(opts, engine.WithCacheTTL(time.Duration(cfg.Cache.TTLSeconds)*time.Second))
	}

	c.cacheActivity.reset()
	return engine.New(opts...), cfg, nil
}

// newCache selects the cache backend from configuration. The noCache flag
// overrides any configured backend.
func (c *CLI) newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	switch cfg.Backend {
	case "", "memory":
		return cache.NewMemoryCache(), nil
	case "none":
		return cache.NewNullCache(), nil
	case "file":
		dir := cfg.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return nil, fmt.Errorf("get cache dir: %w", err)
			}
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, cfg.RedisURL)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// newOptimizer builds a render optimizer from configuration.
func (c *CLI) newOptimizer(cfg config.OptimizerConfig) *render.Optimizer {
	opts := []render.Option{render.WithLogger(c.Logger)}
	if cfg.BaseRadius > 0 {
		opts = append(opts, render.WithBaseRadius(cfg.BaseRadius))
	}
	if tier := device.Tier(cfg.DeviceTier); device.ValidTiers[tier] {
		opts = append(opts, render.WithProvider(device.StaticProvider{P: profileForTier(tier)}))
	}
	return render.NewOptimizer(opts...)
}

// profileForTier returns a representative device profile for a configured
// tier override.
func profileForTier(t device.Tier) device.Profile {
	switch t {
	case device.TierMobile:
		return device.Profile{Tier: device.TierMobile, MemoryGB: 4, CPUCores: 6, GPU: device.GPULow, ScreenWidth: 390, ScreenHeight: 844, PixelRatio: 3}
	case device.TierTablet:
		return device.Profile{Tier: device.TierTablet, MemoryGB: 6, CPUCores: 8, GPU: device.GPUMedium, ScreenWidth: 820, ScreenHeight: 1180, PixelRatio: 2}
	default:
		return device.Default()
	}
}

// cacheDir returns the cache directory, honoring XDG_CACHE_HOME.
func cacheDir() (string, error) {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// cacheActivity records cache hits via the observability hooks so commands
// can report cached vs fresh results.
type cacheActivity struct {
	observability.NoopCacheHooks
	hits atomic.Int64
}

func (a *cacheActivity) OnCacheHit(context.Context, string) { a.hits.Add(1) }

func (a *cacheActivity) reset() { a.hits.Store(0) }

func (a *cacheActivity) hit() bool { return a.hits.Load() > 0 }
