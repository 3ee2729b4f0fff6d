package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/rove/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the package cache and optionally the lockfile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			packages, _ := cmd.Flags().GetBool("packages")
			lock, _ := cmd.Flags().GetBool("lock")

			opts := app.CleanOptions{
				Packages: packages,
				Lock:     lock,
			}
			// Bare clean removes the package cache.
			if !packages && !lock {
				opts.Packages = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("packages", "p", false, "Remove the package cache")
	cmd.Flags().BoolP("lock", "l", false, "Remove the lockfile")

	return cmd
}
