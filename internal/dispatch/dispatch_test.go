package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/msandoval/grepo/internal/git"
)

// fakeInspector serves canned per-path results and records call order.
type fakeInspector struct {
	mu       sync.Mutex
	calls    []string
	branches map[string]string
	lists    map[string][]string
	commits  map[string][]git.Commit
	errs     map[string]error
	delays   map[string]time.Duration
}

func (f *fakeInspector) record(path string) {
	f.mu.Lock()
	f.calls = append(f.calls, path)
	f.mu.Unlock()
	if d := f.delays[path]; d > 0 {
		time.Sleep(d)
	}
}

func (f *fakeInspector) CurrentBranch(ctx context.Context, path string) (string, error) {
	f.record(path)
	if err := f.errs[path]; err != nil {
		return "", err
	}
	return f.branches[path], nil
}

func (f *fakeInspector) ListBranches(ctx context.Context, path string) ([]string, error) {
	f.record(path)
	if err := f.errs[path]; err != nil {
		return nil, err
	}
	return f.lists[path], nil
}

func (f *fakeInspector) ListCommits(ctx context.Context, path string) ([]git.Commit, error) {
	f.record(path)
	if err := f.errs[path]; err != nil {
		return nil, err
	}
	return f.commits[path], nil
}

func testRepos(n int) []git.RepoRef {
	repos := make([]git.RepoRef, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("repo%d", i+1)
		repos = append(repos, git.RepoRef{Name: name, Path: "/repos/" + name})
	}
	return repos
}

func TestRun_CurrentBranch(t *testing.T) {
	t.Parallel()

	repos := testRepos(3)
	ins := &fakeInspector{branches: map[string]string{
		"/repos/repo1": "main",
		"/repos/repo2": "develop",
		"/repos/repo3": "(detached)",
	}}

	outcomes := Run(context.Background(), ins, repos, CurrentBranch)
	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(outcomes))
	}
	want := []string{"main", "develop", "(detached)"}
	for i, o := range outcomes {
		if o.Err != nil {
			t.Errorf("outcomes[%d].Err = %v, want nil", i, o.Err)
		}
		if o.Branch != want[i] {
			t.Errorf("outcomes[%d].Branch = %q, want %q", i, o.Branch, want[i])
		}
		if o.Repo != repos[i] {
			t.Errorf("outcomes[%d].Repo = %+v, want %+v", i, o.Repo, repos[i])
		}
	}
}

func TestRun_OrderStableUnderConcurrency(t *testing.T) {
	t.Parallel()

	// First repo is slowest: completion order is the reverse of the
	// input order, but outcomes must still come back in input order.
	repos := testRepos(3)
	ins := &fakeInspector{
		branches: map[string]string{
			"/repos/repo1": "b1",
			"/repos/repo2": "b2",
			"/repos/repo3": "b3",
		},
		delays: map[string]time.Duration{
			"/repos/repo1": 60 * time.Millisecond,
			"/repos/repo2": 30 * time.Millisecond,
		},
	}

	outcomes := Run(context.Background(), ins, repos, CurrentBranch)
	for i, want := range []string{"b1", "b2", "b3"} {
		if outcomes[i].Branch != want {
			t.Errorf("outcomes[%d].Branch = %q, want %q", i, outcomes[i].Branch, want)
		}
	}
}

func TestRun_Deterministic(t *testing.T) {
	t.Parallel()

	repos := testRepos(3)
	ins := &fakeInspector{branches: map[string]string{
		"/repos/repo1": "main", "/repos/repo2": "main", "/repos/repo3": "main",
	}}

	first := Run(context.Background(), ins, repos, CurrentBranch)
	second := Run(context.Background(), ins, repos, CurrentBranch)
	for i := range first {
		if first[i].Repo != second[i].Repo || first[i].Branch != second[i].Branch {
			t.Errorf("run %d differs between invocations: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestRun_PartialFailureContained(t *testing.T) {
	t.Parallel()

	repos := testRepos(3)
	boom := errors.New("working tree deleted")
	ins := &fakeInspector{
		branches: map[string]string{
			"/repos/repo1": "main",
			"/repos/repo3": "main",
		},
		errs: map[string]error{"/repos/repo2": boom},
	}

	outcomes := Run(context.Background(), ins, repos, CurrentBranch)
	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3 (failures must not drop repos)", len(outcomes))
	}
	if outcomes[0].Err != nil || outcomes[2].Err != nil {
		t.Error("healthy repos must not inherit the failure")
	}
	if !errors.Is(outcomes[1].Err, boom) {
		t.Errorf("outcomes[1].Err = %v, want the repo's own error", outcomes[1].Err)
	}
	// All three repos were attempted
	if len(ins.calls) != 3 {
		t.Errorf("made %d calls, want 3", len(ins.calls))
	}
}

func TestRun_Branches(t *testing.T) {
	t.Parallel()

	repos := testRepos(1)
	ins := &fakeInspector{lists: map[string][]string{
		"/repos/repo1": {"develop", "feature/ma-fix", "main"},
	}}

	outcomes := Run(context.Background(), ins, repos, Branches)
	if len(outcomes[0].Branches) != 3 {
		t.Fatalf("Branches = %v", outcomes[0].Branches)
	}
	// Collaborator order preserved
	if outcomes[0].Branches[0] != "develop" {
		t.Errorf("Branches[0] = %q, want %q", outcomes[0].Branches[0], "develop")
	}
}

func TestRun_Commits(t *testing.T) {
	t.Parallel()

	repos := testRepos(1)
	ins := &fakeInspector{commits: map[string][]git.Commit{
		"/repos/repo1": {
			{Hash: "aaa", Author: "alice", Message: "fix: broke build"},
			{Hash: "bbb", Author: "bob", Message: "add feature"},
		},
	}}

	outcomes := Run(context.Background(), ins, repos, Commits)
	commits := outcomes[0].Commits
	if len(commits) != 2 {
		t.Fatalf("got %d commits, want 2", len(commits))
	}
	if commits[0].Message != "fix: broke build" {
		t.Errorf("commit order not preserved: %+v", commits)
	}
}

func TestRun_EmptyWatchList(t *testing.T) {
	t.Parallel()

	outcomes := Run(context.Background(), &fakeInspector{}, nil, CurrentBranch)
	if len(outcomes) != 0 {
		t.Errorf("got %d outcomes for empty watch list, want 0", len(outcomes))
	}
}
