package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msandoval/grepo/internal/config"
	"github.com/msandoval/grepo/internal/git"
	"github.com/msandoval/grepo/internal/log"
	"github.com/msandoval/grepo/internal/output"
	"github.com/msandoval/grepo/internal/ui"
	"github.com/msandoval/grepo/internal/watch"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "watch",
		Short:   "Manage the watched repository list",
		Aliases: []string{"w"},
		GroupID: GroupWatch,
	}

	cmd.AddCommand(newWatchAddCmd())
	cmd.AddCommand(newWatchRemoveCmd())
	cmd.AddCommand(newWatchListCmd())

	return cmd
}

// splitNames splits a comma-separated repo argument, trimming whitespace.
func splitNames(arg string) []string {
	var names []string
	for _, name := range strings.Split(arg, ",") {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

func newWatchAddCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "add NAME[,NAME...]",
		Short: "Add repos to the watch list",
		Args:  cobra.ExactArgs(1),
		Long: `Add one or more repos to the watch list.

Names resolve against the configured base directory; absolute paths
are accepted as-is. Each candidate must be a git working tree.

With a comma-separated list, invalid entries are skipped with a
warning and the valid ones are added.`,
		Example: `  grepo watch add my-service           # Resolve against base dir
  grepo watch add /opt/src/tooling     # Watch a repo outside the base dir
  grepo watch add api,web,worker       # Add several at once
  grepo watch add api --reset          # Clear the list first`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			if reset {
				cfg.Repos = nil
			}

			mgr := watch.NewManager(git.Client{}, git.Client{})
			names := splitNames(args[0])

			added := 0
			var firstErr error
			for _, name := range names {
				repo, err := mgr.Add(cfg, name)
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					l.Printf("Skipping %s: %v\n", name, err)
					continue
				}
				added++
				l.Printf("Watching %s (%s)\n", repo.Name, repo.Path)
			}

			if added == 0 && !reset {
				return firstErr
			}

			if err := saveConfig(); err != nil {
				return err
			}

			l.Printf("Watch list now has %d repos\n", len(cfg.Repos))
			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Clear the watch list before adding")

	return cmd
}

func newWatchRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove NAME[,NAME...]",
		Short:   "Remove repos from the watch list",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		Example: `  grepo watch remove my-service
  grepo watch remove api,web`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			mgr := watch.NewManager(git.Client{}, git.Client{})
			names := splitNames(args[0])

			removed := 0
			var firstErr error
			for _, name := range names {
				repo, err := mgr.Remove(cfg, name)
				if err != nil {
					if firstErr == nil {
						firstErr = err
					}
					l.Printf("Skipping %s: %v\n", name, err)
					continue
				}
				removed++
				l.Printf("No longer watching %s\n", repo.Name)
			}

			if removed == 0 {
				return firstErr
			}

			if err := saveConfig(); err != nil {
				return err
			}

			l.Printf("Watch list now has %d repos\n", len(cfg.Repos))
			return nil
		},
	}

	return cmd
}

func newWatchListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List watched repos",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				repos := cfg.Repos
				if repos == nil {
					repos = []config.Repo{}
				}
				return enc.Encode(repos)
			}

			if len(cfg.Repos) == 0 {
				out.Println("No repositories watched")
				return nil
			}

			var rows [][]string
			for _, repo := range cfg.Repos {
				rows = append(rows, []string{repo.Name, repo.Path})
			}
			out.Print(ui.RenderTable([]string{"NAME", "PATH"}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
