package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/karyoview/karyoview/pkg/cache"
	"github.com/karyoview/karyoview/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return runCacheClear(cmd.Context(), cfg)
		},
	}
}

func runCacheClear(ctx context.Context, cfg config.Config) error {
	if cfg.Cache.Backend == config.CacheNone {
		printInfo("Caching is disabled")
		return nil
	}
	store, err := newCache(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer store.Close()

	clearer, ok := store.(cache.Clearer)
	if !ok {
		printInfo("Cache backend %s cannot be cleared", cfg.Cache.Backend)
		return nil
	}
	count, err := clearer.Clear(ctx)
	if err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	printSuccess("Cleared %d cached entries", count)
	printDetail("Backend: %s", describeCache(cfg))
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the cache lives",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, describeCache(cfg))
			return nil
		},
	}
}

// describeCache names the cache location of cfg: a directory, a Redis URL,
// or "none".
func describeCache(cfg config.Config) string {
	switch cfg.Cache.Backend {
	case config.CacheNone:
		return config.CacheNone
	case config.CacheRedis:
		return cfg.Cache.RedisURL
	}
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir
	}
	dir, err := cacheDir()
	if err != nil {
		return "unavailable: " + err.Error()
	}
	return dir
}
