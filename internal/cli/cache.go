package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/douessay/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the grammar result cache",
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove expired grammar results from disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		disk, dir, err := diskCache()
		if err != nil {
			return err
		}
		removed, err := disk.Prune()
		if err != nil {
			return err
		}
		fmt.Printf("✓ Pruned %d expired entries from %s\n", removed, dir)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached grammar result from disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		disk, dir, err := diskCache()
		if err != nil {
			return err
		}
		if err := disk.Clear(); err != nil {
			return err
		}
		fmt.Printf("✓ Cleared %s\n", dir)
		return nil
	},
}

func diskCache() (*cache.DiskCache, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", err
	}
	if cfg.Cache.Dir == "" {
		return nil, "", fmt.Errorf("cache.dir is not set")
	}
	return cache.NewDiskCache(cfg.Cache.Dir, cfg.Cache.DiskTTL), cfg.Cache.Dir, nil
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cachePruneCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
