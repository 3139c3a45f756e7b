package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcraft-dev/jcraft/internal/cache"
	"github.com/jcraft-dev/jcraft/internal/config"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the view cache",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show how many view snapshots are cached",
	RunE:  runCacheInfo,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached view snapshots",
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheInfoCmd, cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func openProjectCache() (*cache.Cache, error) {
	dir, err := config.EnsureConfigDir(".")
	if err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	c, err := cache.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return c, nil
}

func runCacheInfo(cmd *cobra.Command, args []string) error {
	c, err := openProjectCache()
	if err != nil {
		return err
	}
	defer c.Close()

	stats, err := c.GetStats()
	if err != nil {
		return fmt.Errorf("get cache stats: %w", err)
	}

	fmt.Printf("path: %s\n", c.Path())
	fmt.Printf("cached views: %d\n", stats.IndexCount)
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	c, err := openProjectCache()
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	fmt.Println("cache cleared")
	return nil
}
