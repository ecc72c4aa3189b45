package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	xtlog "github.com/msto63/xentpl/foundation/core/log"
	"github.com/msto63/xentpl/internal/compiler"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the compiled template cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	Args:  cobra.NoArgs,
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all compiled templates from the cache",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

// openCache opens the service with its store; nil when the cache is disabled
func openCache(cmd *cobra.Command) (*compiler.Service, error) {
	if !current.cfg.Cache.Enabled {
		fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render(phrase("cache_disabled", nil)))
		return nil, nil
	}
	return compiler.Open(current.cfg, current.logger, true)
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	svc, err := openCache(cmd)
	if err != nil || svc == nil {
		return err
	}
	defer svc.Close()

	stats, err := svc.Stats(context.Background())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("xentpl cache"))
	fmt.Fprintln(out, row(phrase("cache_path", nil), stats.Store.Location))
	fmt.Fprintln(out, row(phrase("cache_entries", nil), stats.Store.Entries))
	fmt.Fprintln(out, row(phrase("cache_titles", nil), stats.Store.Titles))
	fmt.Fprintln(out, row(phrase("cache_bytes", nil), stats.Store.TreeBytes))
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	svc, err := openCache(cmd)
	if err != nil || svc == nil {
		return err
	}
	defer svc.Close()

	n, err := svc.Purge(context.Background())
	if err != nil {
		return err
	}

	current.logger.Info("template cache cleared", xtlog.Fields{"count": n})
	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(phrase("cache_cleared", map[string]interface{}{"count": n})))
	return nil
}
