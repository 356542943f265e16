package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RepoRef identifies a repository for inspection.
// Keeps the git package independent of the config package.
type RepoRef struct {
	Name string
	Path string
}

// Commit is one entry of a repository's commit log.
type Commit struct {
	Hash    string
	Author  string
	Message string
}

// ShortHash returns the abbreviated commit hash.
func (c Commit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// IsWorkingTree checks if a path is a git working tree (has .git dir or file)
func IsWorkingTree(path string) bool {
	gitPath := filepath.Join(path, ".git")
	info, err := os.Stat(gitPath)
	if err != nil {
		return false
	}
	// .git can be a directory (regular repo) or file (worktree)
	return info.IsDir() || info.Mode().IsRegular()
}

// CurrentBranch returns the current branch name
// Returns "(detached)" for detached HEAD state
func CurrentBranch(ctx context.Context, path string) (string, error) {
	output, err := outputGit(ctx, path, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to get branch: %v", err)
	}
	branch := strings.TrimSpace(string(output))
	if branch == "" {
		return "(detached)", nil
	}
	return branch, nil
}

// ListBranches returns the local branch names of the repo at path.
// Order is git's refname order (alphabetical).
func ListBranches(ctx context.Context, path string) ([]string, error) {
	output, err := outputGit(ctx, path, "for-each-ref", "--format=%(refname:short)", "refs/heads/")
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %v", err)
	}

	var branches []string
	for _, line := range strings.Split(string(output), "\n") {
		if b := strings.TrimSpace(line); b != "" {
			branches = append(branches, b)
		}
	}
	return branches, nil
}

// logFieldSep separates hash, author, and subject in git log output.
// Unit separator can't appear in author names or subjects.
const logFieldSep = "\x1f"

// ListCommits returns the commit log of the repo at path, newest first.
func ListCommits(ctx context.Context, path string) ([]Commit, error) {
	output, err := outputGit(ctx, path, "log", "--format=%H"+logFieldSep+"%an"+logFieldSep+"%s")
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %v", err)
	}

	var commits []Commit
	for _, line := range strings.Split(string(output), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, logFieldSep, 3)
		if len(parts) != 3 {
			continue
		}
		commits = append(commits, Commit{
			Hash:    parts[0],
			Author:  parts[1],
			Message: parts[2],
		})
	}
	return commits, nil
}

// Client implements repository inspection by shelling out to the git CLI.
// It satisfies the prober and inspector interfaces of the watch and
// dispatch packages.
type Client struct{}

func (Client) IsWorkingTree(path string) bool {
	return IsWorkingTree(path)
}

func (Client) CurrentBranch(ctx context.Context, path string) (string, error) {
	return CurrentBranch(ctx, path)
}

func (Client) ListBranches(ctx context.Context, path string) ([]string, error) {
	return ListBranches(ctx, path)
}

func (Client) ListCommits(ctx context.Context, path string) ([]Commit, error) {
	return ListCommits(ctx, path)
}

func (Client) Scan(ctx context.Context, baseDir string) ([]RepoRef, error) {
	return Scan(ctx, baseDir)
}
