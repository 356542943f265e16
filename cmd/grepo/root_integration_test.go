//go:build integration

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/msandoval/grepo/internal/config"
	"github.com/msandoval/grepo/internal/log"
	"github.com/msandoval/grepo/internal/output"
)

// runRoot executes the full command tree so persistent flags and
// hooks apply, resetting flag globals afterwards.
func runRoot(t *testing.T, ctx context.Context, args ...string) error {
	t.Helper()
	rootCmd.SetContext(ctx)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		verbose = false
		quiet = false
	})
	return rootCmd.Execute()
}

// TestVerboseFlag_EchoesGitCommands tests the --verbose flag end to end.
//
// Scenario: User runs `grepo branch curr --verbose` with one watched repo
// Expected: Each git invocation is echoed to the log as "$ git ..."
func TestVerboseFlag_EchoesGitCommands(t *testing.T) {
	// Not parallel - modifies HOME and the command-global config

	baseDir := resolvePath(t, t.TempDir())
	repoPath := setupTestRepo(t, baseDir, "repo1")
	setTestConfig(t, config.Config{
		BaseDir: baseDir,
		Repos:   []config.Repo{{Name: "repo1", Path: repoPath}},
	})

	var logBuf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&logBuf, false, false))
	ctx = output.WithPrinter(ctx, &bytes.Buffer{})

	if err := runRoot(t, ctx, "branch", "curr", "--verbose"); err != nil {
		t.Fatalf("branch curr --verbose failed: %v", err)
	}

	want := "$ git -C " + repoPath + " branch --show-current"
	if got := logBuf.String(); !strings.Contains(got, want) {
		t.Errorf("verbose log = %q, want it to contain %q", got, want)
	}
}

// TestQuietFlag_SuppressesLog tests the --quiet flag end to end.
//
// Scenario: User runs `grepo watch add repo1 --quiet`
// Expected: The repo is added but nothing is logged
func TestQuietFlag_SuppressesLog(t *testing.T) {
	// Not parallel - modifies HOME and the command-global config

	baseDir := resolvePath(t, t.TempDir())
	setupTestRepo(t, baseDir, "repo1")
	setTestConfig(t, config.Config{BaseDir: baseDir})

	var logBuf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(&logBuf, false, false))
	ctx = output.WithPrinter(ctx, &bytes.Buffer{})

	if err := runRoot(t, ctx, "watch", "add", "repo1", "--quiet"); err != nil {
		t.Fatalf("watch add --quiet failed: %v", err)
	}

	if len(cfg.Repos) != 1 {
		t.Fatalf("watch list has %d entries, want 1", len(cfg.Repos))
	}
	if logBuf.Len() != 0 {
		t.Errorf("quiet run logged %q, want no output", logBuf.String())
	}
}
