// Package watch mutates the watched-repository list of a config.
//
// All operations take the loaded Config, validate, and either mutate
// it in place or fail without partial changes. Persistence stays with
// the config package; inspection stays with the git package.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/msandoval/grepo/internal/config"
	"github.com/msandoval/grepo/internal/git"
)

var (
	// ErrAlreadyWatched indicates the repo is already on the watch list.
	ErrAlreadyWatched = errors.New("repo already watched")
	// ErrNotWatched indicates the repo is not on the watch list.
	ErrNotWatched = errors.New("repo not watched")
	// ErrRepoNotFound indicates the path is not a git working tree.
	ErrRepoNotFound = errors.New("not a git repository")
	// ErrBaseDirNotSet indicates an operation needs base_dir but none is configured.
	ErrBaseDirNotSet = errors.New("base directory not set (run 'grepo basedir PATH' first)")
	// ErrPathNotFound indicates a base dir candidate does not exist.
	ErrPathNotFound = errors.New("path not found")
)

// Prober checks whether a path is a git working tree.
// Satisfied by git.Client.
type Prober interface {
	IsWorkingTree(path string) bool
}

// Scanner discovers working trees under a base directory.
// Satisfied by git.Client.
type Scanner interface {
	Scan(ctx context.Context, baseDir string) ([]git.RepoRef, error)
}

// Manager applies watch-list mutations to a Config.
type Manager struct {
	probe Prober
	scan  Scanner
}

// NewManager creates a Manager using the given collaborators.
func NewManager(probe Prober, scan Scanner) *Manager {
	return &Manager{probe: probe, scan: scan}
}

// Resolve turns a name-or-path into an absolute repo path.
// Relative names resolve against the configured base dir and
// require one to be set.
func (m *Manager) Resolve(cfg *config.Config, nameOrPath string) (string, error) {
	if filepath.IsAbs(nameOrPath) {
		return filepath.Clean(nameOrPath), nil
	}
	if cfg.BaseDir == "" {
		return "", ErrBaseDirNotSet
	}
	return filepath.Join(cfg.BaseDir, nameOrPath), nil
}

// Add appends a repo to the watch list, preserving existing order.
// The identifier resolves against base_dir when relative. Rejects
// paths that are not working trees and exact duplicates.
func (m *Manager) Add(cfg *config.Config, nameOrPath string) (config.Repo, error) {
	path, err := m.Resolve(cfg, nameOrPath)
	if err != nil {
		return config.Repo{}, err
	}

	if !m.probe.IsWorkingTree(path) {
		return config.Repo{}, fmt.Errorf("%w: %s", ErrRepoNotFound, path)
	}

	if cfg.Contains(path) {
		return config.Repo{}, fmt.Errorf("%w: %s", ErrAlreadyWatched, path)
	}

	repo := config.Repo{Name: filepath.Base(path), Path: path}
	cfg.Repos = append(cfg.Repos, repo)
	return repo, nil
}

// Remove deletes a repo from the watch list by name or path.
// A failed lookup leaves the list untouched.
func (m *Manager) Remove(cfg *config.Config, nameOrPath string) (config.Repo, error) {
	for i, repo := range cfg.Repos {
		if repo.Name == nameOrPath || repo.Path == nameOrPath {
			cfg.Repos = append(cfg.Repos[:i], cfg.Repos[i+1:]...)
			return repo, nil
		}
	}
	return config.Repo{}, fmt.Errorf("%w: %s", ErrNotWatched, nameOrPath)
}

// ReplaceFromScan replaces the whole watch list with the repos found
// under base_dir. Destructive: entries outside the base dir are lost.
// Callers must confirm with the user before saving the result.
func (m *Manager) ReplaceFromScan(ctx context.Context, cfg *config.Config) ([]config.Repo, error) {
	if cfg.BaseDir == "" {
		return nil, ErrBaseDirNotSet
	}

	found, err := m.scan.Scan(ctx, cfg.BaseDir)
	if err != nil {
		return nil, err
	}

	repos := make([]config.Repo, 0, len(found))
	for _, ref := range found {
		repos = append(repos, config.Repo{Name: ref.Name, Path: ref.Path})
	}

	cfg.Repos = repos
	return repos, nil
}

// SetBaseDir validates that path is an existing directory and sets it
// as the base dir. The watch list is left untouched.
func (m *Manager) SetBaseDir(cfg *config.Config, path string) error {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrPathNotFound, abs)
	}

	cfg.BaseDir = abs
	return nil
}

// Refs converts the watch list into dispatchable repo references.
func Refs(cfg *config.Config) []git.RepoRef {
	refs := make([]git.RepoRef, 0, len(cfg.Repos))
	for _, repo := range cfg.Repos {
		refs = append(refs, git.RepoRef{Name: repo.Name, Path: repo.Path})
	}
	return refs
}
