package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/msandoval/grepo/internal/git"
	"github.com/msandoval/grepo/internal/log"
	"github.com/msandoval/grepo/internal/ui"
	"github.com/msandoval/grepo/internal/watch"
)

func newScanCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "scan",
		Short:   "Replace the watch list with repos found in the base directory",
		Aliases: []string{"sbd"},
		GroupID: GroupWatch,
		Args:    cobra.NoArgs,
		Long: `Scan the base directory for git repositories and replace the watch
list with what was found.

This is destructive: repos added manually from outside the base
directory are dropped. An interactive confirmation guards the
replacement; pass --yes to skip it (it is also skipped when stdin
is not a terminal).`,
		Example: `  grepo scan           # Confirm, then rebuild the watch list
  grepo scan --yes     # Rebuild without asking`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			if cfg.BaseDir == "" {
				return watch.ErrBaseDirNotSet
			}

			if !yes && isatty.IsTerminal(os.Stdin.Fd()) {
				prompt := fmt.Sprintf(
					"This will replace the current watch list with repositories found in %s. Are you sure?",
					cfg.BaseDir,
				)
				result, err := ui.Confirm(prompt)
				if err != nil {
					return err
				}
				if result.Cancelled || !result.Confirmed {
					l.Println("Aborted")
					return nil
				}
			}

			mgr := watch.NewManager(git.Client{}, git.Client{})
			repos, err := mgr.ReplaceFromScan(ctx, cfg)
			if err != nil {
				return err
			}

			for _, repo := range repos {
				l.Printf("Found repo: %s\n", repo.Name)
			}

			if err := saveConfig(); err != nil {
				return err
			}

			l.Printf("Watch list now has %d repos\n", len(cfg.Repos))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
