package static

import (
	"strings"
	"testing"

	"github.com/raphi011/repodash/internal/git"
	"github.com/raphi011/repodash/internal/ui/styles"
)

func TestStatusTableRow(t *testing.T) {
	styles.Init("none", true)
	defer styles.Init("default", true)

	st := &git.Status{
		Name:             "api",
		Branch:           "main",
		IsClean:          false,
		Commit:           "abc1234",
		StashCount:       2,
		Tracking:         &git.Tracking{Ahead: 1},
		UnsyncedBranches: 3,
	}

	row := StatusTableRow("work/api", st)

	want := []string{"work/api", "main", "abc1234", "● dirty", "↑1", "2", "3"}
	if len(row) != len(StatusHeaders) {
		t.Fatalf("expected %d columns, got %d", len(StatusHeaders), len(row))
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("column %d (%s) = %q, want %q", i, StatusHeaders[i], row[i], want[i])
		}
	}
}

func TestStatusTableRowNotRepository(t *testing.T) {
	styles.Init("none", true)
	defer styles.Init("default", true)

	row := StatusTableRow("plainDir", nil)

	if len(row) != len(StatusHeaders) {
		t.Fatalf("expected %d columns, got %d", len(StatusHeaders), len(row))
	}
	if row[0] != "plainDir" {
		t.Errorf("column 0 = %q, want %q", row[0], "plainDir")
	}
	if row[3] != "not a repository" {
		t.Errorf("column 3 = %q, want %q", row[3], "not a repository")
	}
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	if got := RenderTable(StatusHeaders, nil); got != "" {
		t.Errorf("RenderTable with no rows = %q, want empty", got)
	}

	out := RenderTable([]string{"PATH", "BRANCH"}, [][]string{
		{"repoA", "main"},
		{"work/longer-name", "feature"},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), out)
	}
	for _, want := range []string{"repoA", "work/longer-name", "feature"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	// columns are aligned: BRANCH values start at the same offset
	if strings.Index(lines[1], "main") != strings.Index(lines[2], "feature") {
		t.Errorf("columns not aligned:\n%s", out)
	}
}
