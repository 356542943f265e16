//go:build integration

package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/msandoval/grepo/internal/config"
	"github.com/msandoval/grepo/internal/log"
	"github.com/msandoval/grepo/internal/output"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// testContext returns a context with logger and printer writing to buffers.
// The returned buffer captures primary (stdout) output.
func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()
	var stdout bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&bytes.Buffer{}, false, false))
	ctx = output.WithPrinter(ctx, &stdout)
	return ctx, &stdout
}

// setTestConfig installs a fresh config as the command-global config
// and points HOME at a temp dir so saves land in the sandbox.
func setTestConfig(t *testing.T, c config.Config) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg = &c
	t.Cleanup(func() { cfg = nil })
}

// setupTestRepo creates a git repo with initial commit in dir/name.
// Returns the absolute path to the created repo (with symlinks resolved).
func setupTestRepo(t *testing.T, dir, name string) string {
	t.Helper()

	dir = resolvePath(t, dir)

	repoPath := filepath.Join(dir, name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		t.Fatalf("failed to create repo dir: %v", err)
	}

	cmds := [][]string{
		{"git", "init", "-b", "main"},
		{"git", "config", "user.email", "test@test.com"},
		{"git", "config", "user.name", "Test User"},
		{"git", "config", "commit.gpgsign", "false"},
	}

	for _, args := range cmds {
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Dir = repoPath
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("failed to run %v: %v\n%s", args, err, out)
		}
	}

	readmePath := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readmePath, []byte("# "+name+"\n"), 0644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}

	cmds = [][]string{
		{"git", "add", "README.md"},
		{"git", "commit", "-m", "Initial commit"},
	}

	for _, args := range cmds {
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Dir = repoPath
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("failed to run %v: %v\n%s", args, err, out)
		}
	}

	return repoPath
}

// gitIn runs a git command inside repoPath.
func gitIn(t *testing.T, repoPath string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = repoPath
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to run git %v: %v\n%s", args, err, out)
	}
}
