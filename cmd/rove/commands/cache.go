package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/rove/internal/app"
)

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache [specifiers...]",
		Short: "Resolve and download packages without running anything",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cachedOnly, _ := cmd.Flags().GetBool("cached-only")
			reload, _ := cmd.Flags().GetBool("reload")
			lockPath, _ := cmd.Flags().GetString("lock")
			lockWrite, _ := cmd.Flags().GetBool("lock-write")

			return c.app.Cache(cmd.Context(), args, app.CacheOptions{
				CachedOnly: cachedOnly,
				Reload:     reload,
				LockPath:   lockPath,
				LockWrite:  lockWrite,
			})
		},
	}
	cmd.Flags().Bool("cached-only", false, "Verify the cache instead of downloading")
	cmd.Flags().BoolP("reload", "r", false, "Re-resolve all specifiers against the registry")
	cmd.Flags().String("lock", "", "Path to the lockfile")
	cmd.Flags().Bool("lock-write", false, "Recreate the lockfile from scratch")
	return cmd
}
