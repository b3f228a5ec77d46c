package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/karyoview/karyoview/pkg/buildinfo"
	"github.com/karyoview/karyoview/pkg/cache"
	"github.com/karyoview/karyoview/pkg/config"
	"github.com/karyoview/karyoview/pkg/errors"
	kio "github.com/karyoview/karyoview/pkg/io"
	"github.com/karyoview/karyoview/pkg/observability"
	"github.com/karyoview/karyoview/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "karyoview"

	// cacheGeneration prefixes every cache key. Bump it when rendered output
	// changes shape so old entries are never served.
	cacheGeneration = "v1:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is set by the persistent --config flag.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level the pipeline,
// cache and view hooks log through it as well.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetViewHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Karyoview draws genome hit clusters as karyotype SVGs",
		Long: `Karyoview renders karyotype diagrams: one rounded glyph per contig, with hit
clusters or Giesma staining bands drawn along it and a legend for the counts.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/karyoview/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config
// =============================================================================

// loadConfig reads --config, or the default path when it exists.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath != "" {
		return config.Load(c.configPath)
	}
	path, err := config.DefaultPath(appName)
	if err != nil {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		c.Logger.Debug("no config file", "path", path)
		return config.Default(), nil
	}
	return cfg, err
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner from cfg. The returned function
// releases the cache and the dataset source.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, func(), error) {
	store, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, nil, err
	}
	src, closeSrc, err := newSource(ctx, cfg)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	runner := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, cacheGeneration), c.Logger).WithSource(src)
	return runner, func() {
		if err := runner.Close(); err != nil {
			c.Logger.Warn("close cache", "error", err)
		}
		closeSrc()
	}, nil
}

func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache(), nil
		}
	}
	return cache.NewFileCache(dir)
}

// newSource returns MongoDB when a URI is configured and the data directory
// otherwise.
func newSource(ctx context.Context, cfg config.Config) (kio.Source, func(), error) {
	if cfg.Source.MongoURI == "" {
		return kio.NewDirSource(cfg.Server.DataDir), func() {}, nil
	}
	src, err := kio.ConnectMongo(ctx, cfg.Source.MongoURI, cfg.Source.MongoDatabase, cfg.Source.MongoCollection)
	if err != nil {
		return nil, nil, err
	}
	return src, func() { _ = src.Close(context.Background()) }, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/karyoview/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// optionsFromConfig seeds pipeline options with the config's drawing settings.
func optionsFromConfig(cfg config.Config) pipeline.Options {
	return pipeline.Options{
		Geometry: cfg.KaryotypeGeometry(),
		Colors:   cfg.Legend.Colors,
		Title:    cfg.Legend.Title,
		TTL:      cfg.Cache.TTL.Duration,
	}
}
