package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msandoval/grepo/internal/dispatch"
	"github.com/msandoval/grepo/internal/git"
	"github.com/msandoval/grepo/internal/report"
)

func newCommitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "commit",
		Short:   "Commit reports across watched repos",
		Aliases: []string{"c"},
		GroupID: GroupReport,
	}

	cmd.AddCommand(newCommitSearchCmd())

	return cmd
}

func newCommitSearchCmd() *cobra.Command {
	var (
		jsonOutput bool
		byAuthor   bool
	)

	cmd := &cobra.Command{
		Use:   "search PATTERN",
		Short: "Search commit messages or authors across watched repos",
		Args:  cobra.ExactArgs(1),
		Long: `Search every watched repo's commit log for commits whose message
contains PATTERN (case-sensitive substring). With --author, match
the author name instead of the message.`,
		Example: `  grepo commit search "broke build"    # Search commit messages
  grepo commit search alice --author   # Search commit authors`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pattern := args[0]

			repos, err := watchedRefs()
			if err != nil {
				return err
			}

			scope := report.ScopeMessage
			if byAuthor {
				scope = report.ScopeAuthor
			}

			outcomes := dispatch.Run(ctx, git.Client{}, repos, dispatch.Commits)
			rep := report.CommitSearch(outcomes, pattern, scope)

			cells := func(row report.Row) []string {
				if row.Error != "" {
					return []string{row.Repo, "error: " + row.Error, ""}
				}
				return []string{row.Repo, row.Item, row.Detail}
			}
			emptyMsg := fmt.Sprintf("No commits matched %q", pattern)
			return printReport(ctx, rep, []string{"REPO", "COMMIT", "MESSAGE"}, cells, jsonOutput, emptyMsg)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&byAuthor, "author", false, "Match the commit author instead of the message")

	return cmd
}
