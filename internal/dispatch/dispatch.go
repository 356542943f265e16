// Package dispatch fans one inspection operation out over the watch list.
//
// Each repository is inspected independently: a failure in one repo
// becomes data on its Outcome and never aborts the batch. Outcomes
// come back in watch-list order regardless of completion order, so
// repeated runs over an unchanged watch list produce identical
// reports.
package dispatch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/msandoval/grepo/internal/git"
)

// Kind selects which inspection call runs per repository.
type Kind int

const (
	// CurrentBranch reads the branch each working tree is on.
	CurrentBranch Kind = iota
	// Branches lists each repository's local branches.
	Branches
	// Commits reads each repository's commit log.
	Commits
)

// Inspector is the read-only repository access collaborator.
// Satisfied by git.Client.
type Inspector interface {
	CurrentBranch(ctx context.Context, path string) (string, error)
	ListBranches(ctx context.Context, path string) ([]string, error)
	ListCommits(ctx context.Context, path string) ([]git.Commit, error)
}

// Outcome is the per-repository result of one inspection call.
// Exactly one payload field is set, matching the request kind;
// Err is set instead when the call failed.
type Outcome struct {
	Repo     git.RepoRef
	Branch   string
	Branches []string
	Commits  []git.Commit
	Err      error
}

// Run inspects every repo concurrently and returns one Outcome per
// repo, in input order. Outcomes are never dropped: failed repos
// carry their error so the caller can report a complete picture.
func Run(ctx context.Context, ins Inspector, repos []git.RepoRef, kind Kind) []Outcome {
	outcomes := make([]Outcome, len(repos))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8) // Bound concurrent git operations

	for i, repo := range repos {
		i, repo := i, repo
		g.Go(func() error {
			outcomes[i] = inspect(ctx, ins, repo, kind)
			return nil // never fails, errors are per-repo data
		})
	}

	_ = g.Wait() // always nil, goroutines collect errors in outcomes

	return outcomes
}

// inspect runs one inspection call against one repo.
func inspect(ctx context.Context, ins Inspector, repo git.RepoRef, kind Kind) Outcome {
	out := Outcome{Repo: repo}

	switch kind {
	case CurrentBranch:
		out.Branch, out.Err = ins.CurrentBranch(ctx, repo.Path)
	case Branches:
		out.Branches, out.Err = ins.ListBranches(ctx, repo.Path)
	case Commits:
		out.Commits, out.Err = ins.ListCommits(ctx, repo.Path)
	}

	return out
}
