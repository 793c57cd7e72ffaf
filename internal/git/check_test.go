package git

import (
	"context"
	"path/filepath"
	"testing"
)

func TestCheckGit(t *testing.T) {
	t.Parallel()
	if err := CheckGit(); err != nil {
		t.Fatalf("CheckGit() = %v, want nil (git must be installed for tests)", err)
	}
}

func TestIsInsideRepoPath(t *testing.T) {
	t.Parallel()

	repo := setupTestRepo(t)
	ctx := context.Background()

	if !IsInsideRepoPath(ctx, repo) {
		t.Errorf("IsInsideRepoPath(%q) = false, want true", repo)
	}
	if IsInsideRepoPath(ctx, filepath.Dir(repo)) {
		t.Errorf("IsInsideRepoPath(%q) = true, want false", filepath.Dir(repo))
	}
}
