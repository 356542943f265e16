package main

import (
	"github.com/spf13/cobra"

	"github.com/msandoval/grepo/internal/git"
	"github.com/msandoval/grepo/internal/log"
	"github.com/msandoval/grepo/internal/output"
	"github.com/msandoval/grepo/internal/watch"
)

func newBaseDirCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "basedir [PATH]",
		Short:   "Show or set the base directory of watched repos",
		GroupID: GroupConfig,
		Args:    cobra.MaximumNArgs(1),
		Long: `Show the base directory under which watched repositories live.

With PATH, validate that the directory exists and save it as the new
base directory. The watch list itself is left untouched; run
'grepo scan' to rebuild it from the new location.`,
		Example: `  grepo basedir             # Print the current base directory
  grepo basedir ~/repos     # Set a new base directory`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			if len(args) == 0 {
				if cfg.BaseDir == "" {
					out.Println("(not set)")
					return nil
				}
				out.Println(cfg.BaseDir)
				return nil
			}

			old := cfg.BaseDir
			if old == "" {
				old = "(not set)"
			}

			mgr := watch.NewManager(git.Client{}, git.Client{})
			if err := mgr.SetBaseDir(cfg, args[0]); err != nil {
				return err
			}

			if err := saveConfig(); err != nil {
				return err
			}

			log.FromContext(ctx).Printf("Updated base directory from %s to %s\n", old, cfg.BaseDir)
			return nil
		},
	}

	return cmd
}
