package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrBaseDirNotFound indicates the scan base directory is missing or not a directory.
var ErrBaseDirNotFound = fmt.Errorf("base directory not found")

// Scan returns the git working trees that are direct children of baseDir,
// sorted alphabetically by name. Directory-listing order is not stable
// across filesystems, so the sort keeps scan results deterministic.
func Scan(ctx context.Context, baseDir string) ([]RepoRef, error) {
	info, err := os.Stat(baseDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrBaseDirNotFound, baseDir)
	}

	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("read base directory %s: %w", baseDir, err)
	}

	var repos []RepoRef
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}

		repoPath := filepath.Join(baseDir, entry.Name())
		if !IsWorkingTree(repoPath) {
			continue
		}

		repos = append(repos, RepoRef{Name: entry.Name(), Path: repoPath})
	}

	slices.SortFunc(repos, func(a, b RepoRef) int {
		return strings.Compare(a.Name, b.Name)
	})

	return repos, nil
}
