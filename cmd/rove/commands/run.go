package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/rove/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [entry]",
		Short: "Run an entry module, resolving its npm dependencies first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry := ""
			if len(args) > 0 {
				entry = args[0]
			}

			watch, _ := cmd.Flags().GetBool("watch")
			noNpm, _ := cmd.Flags().GetBool("no-npm")
			cachedOnly, _ := cmd.Flags().GetBool("cached-only")
			reload, _ := cmd.Flags().GetBool("reload")
			lockPath, _ := cmd.Flags().GetString("lock")
			lockWrite, _ := cmd.Flags().GetBool("lock-write")
			nodeModules, _ := cmd.Flags().GetBool("node-modules-dir")

			return c.app.Run(cmd.Context(), entry, app.RunOptions{
				Watch:          watch,
				NoNpm:          noNpm,
				CachedOnly:     cachedOnly,
				Reload:         reload,
				LockPath:       lockPath,
				LockWrite:      lockWrite,
				NodeModulesDir: nodeModules,
			})
		},
	}
	cmd.Flags().BoolP("watch", "w", false, "Restart the process on file changes")
	cmd.Flags().Bool("no-npm", false, "Skip npm dependency resolution")
	cmd.Flags().Bool("cached-only", false, "Require all packages to already be cached, never touch the network")
	cmd.Flags().BoolP("reload", "r", false, "Re-resolve all specifiers against the registry")
	cmd.Flags().String("lock", "", "Path to the lockfile")
	cmd.Flags().Bool("lock-write", false, "Recreate the lockfile from scratch")
	cmd.Flags().Bool("node-modules-dir", false, "Materialize a local node_modules directory")
	return cmd
}
