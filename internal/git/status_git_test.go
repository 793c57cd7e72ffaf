package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestCLIRunner(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()

	out, ok := CLIRunner{}.Run(ctx, repo, "rev-parse", "--abbrev-ref", "HEAD")
	if !ok || out != "main" {
		t.Errorf("Run(rev-parse) = (%q, %v), want (main, true)", out, ok)
	}

	out, ok = CLIRunner{}.Run(ctx, repo, "rev-parse", "--abbrev-ref", "main@{upstream}")
	if ok || out != "" {
		t.Errorf("Run(no upstream) = (%q, %v), want absent", out, ok)
	}
}

func TestStatus_RealRepository(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepoWithOrigin(t)
	ctx := context.Background()
	agg := NewAggregator(CLIRunner{})

	st := agg.Status(ctx, repo)
	if st == nil {
		t.Fatal("Status() = nil")
	}
	if st.Name != "repo" || st.Branch != "main" || !st.IsClean || st.StashCount != 0 {
		t.Errorf("Status() = %+v, want clean main", *st)
	}
	if len(st.Commit) < 7 {
		t.Errorf("Commit = %q, want short hash", st.Commit)
	}
	if st.Tracking == nil || *st.Tracking != (Tracking{}) {
		t.Errorf("Tracking = %+v, want 0/0", st.Tracking)
	}
	if st.UnsyncedBranches != 0 {
		t.Errorf("UnsyncedBranches = %d, want 0", st.UnsyncedBranches)
	}

	// One local commit, one local-only branch, one stash, one dirty file.
	commitFile(t, repo, "a.txt", "a\n")
	mustGit(t, repo, "branch", "local-only")
	if err := os.WriteFile(filepath.Join(repo, "README.md"), []byte("changed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	mustGit(t, repo, "stash")
	if err := os.WriteFile(filepath.Join(repo, "untracked.txt"), []byte("x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	st = agg.Status(ctx, repo)
	if st == nil {
		t.Fatal("Status() = nil after changes")
	}
	if st.IsClean {
		t.Error("IsClean = true, want false")
	}
	if st.StashCount != 1 {
		t.Errorf("StashCount = %d, want 1", st.StashCount)
	}
	if st.Tracking == nil || *st.Tracking != (Tracking{Ahead: 1}) {
		t.Errorf("Tracking = %+v, want ahead 1", st.Tracking)
	}
	if st.UnsyncedBranches != 2 {
		t.Errorf("UnsyncedBranches = %d, want 2 (main ahead, local-only without upstream)", st.UnsyncedBranches)
	}
}

func TestStatus_BehindAfterFetch(t *testing.T) {
	t.Parallel()
	repo, origin := setupTestRepoWithOrigin(t)

	other := filepath.Join(filepath.Dir(origin), "other")
	mustGit(t, "", "clone", origin, other)
	configureTestRepo(t, other)
	commitFile(t, other, "b.txt", "b\n")
	mustGit(t, other, "push", "origin", "main")

	st := NewAggregator(CLIRunner{}).Status(context.Background(), repo)
	if st == nil {
		t.Fatal("Status() = nil")
	}
	if st.Tracking == nil || *st.Tracking != (Tracking{Behind: 1}) {
		t.Errorf("Tracking = %+v, want behind 1 after fetch", st.Tracking)
	}
}

func TestSync_Real(t *testing.T) {
	t.Parallel()
	repo, _ := setupTestRepoWithOrigin(t)
	ctx := context.Background()

	commitFile(t, repo, "c.txt", "c\n")
	if err := Sync(ctx, CLIRunner{}, repo, Push); err != nil {
		t.Fatalf("Sync(push) = %v", err)
	}
	if err := Sync(ctx, CLIRunner{}, repo, Pull); err != nil {
		t.Fatalf("Sync(pull) = %v", err)
	}

	st := NewAggregator(CLIRunner{}).Status(ctx, repo)
	if st == nil || st.Tracking == nil || *st.Tracking != (Tracking{}) {
		t.Errorf("after push Tracking = %+v, want 0/0", st)
	}
}
