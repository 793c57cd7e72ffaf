package doctor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/repodash/internal/git"
)

type fakeService struct {
	paths    []string
	statuses map[string]*git.Status
}

func (f *fakeService) ListRepositories(context.Context) []string { return f.paths }

func (f *fakeService) Status(_ context.Context, path string) (*git.Status, error) {
	return f.statuses[path], nil
}

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(d)), 0755); err != nil {
			t.Fatal(err)
		}
	}
}

func gitOK() error { return nil }

func TestRun_Healthy(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkdirs(t, root, "api/.git", "notes", "start.app")
	static := filepath.Join(root, "start.app")
	if err := os.WriteFile(filepath.Join(static, "index.html"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	svc := &fakeService{
		paths: []string{"api", "notes"},
		statuses: map[string]*git.Status{
			"api": {Name: "api", Branch: "main", Tracking: &git.Tracking{}},
		},
	}

	report := Run(context.Background(), Options{Root: root, StaticDir: static, Service: svc, CheckGit: gitOK})

	if len(report.Issues) != 0 {
		t.Errorf("unexpected issues: %+v", report.Issues)
	}
	want := Stats{Listed: 2, Repositories: 1, Healthy: 1}
	if report.Stats != want {
		t.Errorf("Stats = %+v, want %+v", report.Stats, want)
	}
}

func TestRun_RepositoryIssues(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	mkdirs(t, root, "broken/.git", "local/.git")

	svc := &fakeService{
		paths: []string{"broken", "local"},
		statuses: map[string]*git.Status{
			"local": {Name: "local", Branch: "feature"},
		},
	}

	report := Run(context.Background(), Options{Root: root, Service: svc, CheckGit: gitOK})

	byKey := map[string]Issue{}
	for _, issue := range report.Issues {
		byKey[issue.Key] = issue
	}

	if issue, ok := byKey["broken"]; !ok || issue.Severity != SeverityError || issue.Category != CategoryRepo {
		t.Errorf("broken issue = %+v, want repo error", issue)
	}
	if issue, ok := byKey["local"]; !ok || issue.Severity != SeverityWarning || !strings.Contains(issue.Description, "feature") {
		t.Errorf("local issue = %+v, want no-upstream warning", issue)
	}
	if issue, ok := byKey["static_dir"]; !ok || issue.Category != CategoryStatic {
		t.Errorf("static_dir issue = %+v, want static warning", issue)
	}
	if !report.HasErrors() {
		t.Error("HasErrors() = false")
	}
	if report.Stats.Repositories != 2 || report.Stats.Healthy != 0 {
		t.Errorf("Stats = %+v", report.Stats)
	}
}

func TestRun_MissingIndex(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	static := t.TempDir()

	report := Run(context.Background(), Options{Root: root, StaticDir: static, Service: &fakeService{}, CheckGit: gitOK})

	if len(report.Issues) != 1 || report.Issues[0].Category != CategoryStatic || report.Issues[0].Severity != SeverityError {
		t.Errorf("issues = %+v, want missing index.html error", report.Issues)
	}
}

func TestRun_StopsWithoutGit(t *testing.T) {
	t.Parallel()

	svc := &fakeService{paths: []string{"api"}}
	report := Run(context.Background(), Options{
		Root:     t.TempDir(),
		Service:  svc,
		CheckGit: func() error { return errors.New("git not found") },
	})

	if len(report.Issues) == 0 || report.Issues[0].Category != CategoryEnvironment {
		t.Fatalf("issues = %+v, want environment error first", report.Issues)
	}
	if report.Stats.Listed != 0 {
		t.Errorf("repository checks ran without git: %+v", report.Stats)
	}
}

func TestRun_MissingRoot(t *testing.T) {
	t.Parallel()

	report := Run(context.Background(), Options{
		Root:     filepath.Join(t.TempDir(), "missing"),
		Service:  &fakeService{paths: []string{"api"}},
		CheckGit: gitOK,
	})

	if !report.HasErrors() {
		t.Fatal("HasErrors() = false for missing root")
	}
	if report.Stats.Listed != 0 {
		t.Errorf("repository checks ran without root: %+v", report.Stats)
	}
}

func TestPrint(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	Print(&buf, Report{
		Stats: Stats{Listed: 3, Repositories: 2, Healthy: 1},
		Issues: []Issue{
			{Key: "local", Description: "branch feature has no upstream", Hint: "git push -u", Category: CategoryRepo, Severity: SeverityWarning},
		},
	})

	got := buf.String()
	for _, want := range []string{"3 paths listed, 2 repositories, 1 healthy", "Found 1 issues", "Repositories:", "⚠ local: branch feature has no upstream", "git push -u"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	buf.Reset()
	Print(&buf, Report{})
	if !strings.Contains(buf.String(), "No issues found") {
		t.Errorf("empty report output = %q", buf.String())
	}
}
