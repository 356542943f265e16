package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msandoval/grepo/internal/dispatch"
	"github.com/msandoval/grepo/internal/git"
	"github.com/msandoval/grepo/internal/report"
)

func newBranchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "branch",
		Short:   "Branch reports across watched repos",
		Aliases: []string{"b"},
		GroupID: GroupReport,
	}

	cmd.AddCommand(newBranchCurrCmd())
	cmd.AddCommand(newBranchListCmd())
	cmd.AddCommand(newBranchSearchCmd())

	return cmd
}

func newBranchCurrCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "curr",
		Short: "Show the current branch of every watched repo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			repos, err := watchedRefs()
			if err != nil {
				return err
			}

			outcomes := dispatch.Run(ctx, git.Client{}, repos, dispatch.CurrentBranch)
			rep := report.CurrentBranch(outcomes)

			cells := func(row report.Row) []string {
				return []string{row.Repo, branchCell(row)}
			}
			return printReport(ctx, rep, []string{"REPO", "BRANCH"}, cells, jsonOutput, "No repositories watched")
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newBranchListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List all branches of every watched repo",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			repos, err := watchedRefs()
			if err != nil {
				return err
			}

			outcomes := dispatch.Run(ctx, git.Client{}, repos, dispatch.Branches)
			rep := report.BranchSearch(outcomes, "", false)

			cells := func(row report.Row) []string {
				return []string{row.Repo, branchCell(row)}
			}
			return printReport(ctx, rep, []string{"REPO", "BRANCH"}, cells, jsonOutput, "No branches found")
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newBranchSearchCmd() *cobra.Command {
	var (
		jsonOutput bool
		fuzzyMatch bool
	)

	cmd := &cobra.Command{
		Use:   "search PATTERN",
		Short: "Search branch names across watched repos",
		Args:  cobra.ExactArgs(1),
		Long: `Search every watched repo for branches whose name contains PATTERN.

The match is a case-sensitive literal substring. With --fuzzy,
branches are ranked by fuzzy relevance instead.`,
		Example: `  grepo branch search ma           # Matches "main", "feature/ma-fix", ...
  grepo branch search rel --fuzzy  # Fuzzy-ranked matches`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pattern := args[0]

			repos, err := watchedRefs()
			if err != nil {
				return err
			}

			outcomes := dispatch.Run(ctx, git.Client{}, repos, dispatch.Branches)
			rep := report.BranchSearch(outcomes, pattern, fuzzyMatch)

			cells := func(row report.Row) []string {
				return []string{row.Repo, branchCell(row)}
			}
			emptyMsg := fmt.Sprintf("No branches matched %q", pattern)
			return printReport(ctx, rep, []string{"REPO", "BRANCH"}, cells, jsonOutput, emptyMsg)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&fuzzyMatch, "fuzzy", false, "Rank branches by fuzzy relevance")

	return cmd
}
