package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netchart/pkg/cache"
	"github.com/matzehuels/netchart/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout and chart cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts and charts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend == config.BackendNone {
				printInfo("Caching is disabled")
				return nil
			}

			cc, err := cfg.OpenCache(cmd.Context())
			if err != nil {
				return fmt.Errorf("open %s cache: %w", cfg.Cache.Backend, err)
			}
			defer cc.Close()

			count, err := cc.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("%s", cacheName(cfg, false))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Println(cacheName(cfg, false))
			return nil
		},
	}
}

// cacheName describes where the configured cache lives.
func cacheName(cfg *config.Config, noCache bool) string {
	if noCache {
		return config.BackendNone
	}
	switch cfg.Cache.Backend {
	case config.BackendRedis:
		prefix := cfg.Cache.Redis.Prefix
		if prefix == "" {
			prefix = cache.DefaultRedisPrefix
		}
		return "redis://" + cfg.Cache.Redis.Addr + "/" + prefix
	case config.BackendNone:
		return config.BackendNone
	}
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		return cfg.Cache.Backend
	}
	return dir
}
