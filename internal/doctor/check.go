package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/raphi011/repodash/internal/git"
)

// maxConcurrentChecks bounds parallel repository status checks.
const maxConcurrentChecks = 8

func checkGit(lookup func() error) []Issue {
	if err := lookup(); err != nil {
		return []Issue{{
			Key:         "git",
			Description: err.Error(),
			Hint:        "install git and make sure it is in PATH",
			Severity:    SeverityError,
		}}
	}
	return nil
}

func checkRoot(ctx context.Context, root string) []Issue {
	info, err := os.Stat(root)
	if err != nil {
		return []Issue{{Key: root, Description: err.Error(), Hint: "set root_dir or pass --root", Severity: SeverityError}}
	}
	if !info.IsDir() {
		return []Issue{{Key: root, Description: "not a directory", Hint: "set root_dir or pass --root", Severity: SeverityError}}
	}
	if !git.HasMarker(root) && git.IsInsideRepoPath(ctx, root) {
		return []Issue{{
			Key:         root,
			Description: "inside a git work tree; the enclosing repository is not listed",
			Hint:        "use the repository root or its parent as root",
			Severity:    SeverityWarning,
		}}
	}
	return nil
}

func checkStatic(dir string) []Issue {
	if dir == "" {
		return []Issue{{
			Key:         "static_dir",
			Description: "not configured; only the JSON endpoints are served",
			Hint:        "set static_dir or create start.app below the root",
			Severity:    SeverityWarning,
		}}
	}
	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		return []Issue{{
			Key:         index,
			Description: "missing; / redirects to a page that does not exist",
			Hint:        "point static_dir at the directory containing index.html",
			Severity:    SeverityError,
		}}
	}
	return nil
}

// checkRepos queries the status of every listed repository in parallel.
func checkRepos(ctx context.Context, svc Service, root string) ([]Issue, Stats) {
	paths := svc.ListRepositories(ctx)
	issues := make([][]Issue, len(paths))
	isRepo := make([]bool, len(paths))
	healthy := make([]bool, len(paths))

	var g errgroup.Group
	g.SetLimit(maxConcurrentChecks)

	for i, p := range paths {
		dir, ok := git.ResolvePath(root, p)
		if !ok || !git.HasMarker(dir) {
			continue
		}
		isRepo[i] = true

		g.Go(func() error {
			st, err := svc.Status(ctx, p)
			switch {
			case err != nil:
				issues[i] = []Issue{{Key: p, Description: err.Error(), Severity: SeverityError}}
			case st == nil:
				issues[i] = []Issue{{
					Key:         p,
					Description: "status could not be determined",
					Hint:        fmt.Sprintf("run 'git -C %s status' to see the error", dir),
					Severity:    SeverityError,
				}}
			case st.Tracking == nil:
				issues[i] = []Issue{{
					Key:         p,
					Description: fmt.Sprintf("branch %s has no upstream; push and pull will fail", st.Branch),
					Hint:        fmt.Sprintf("git -C %s push -u origin %s", dir, st.Branch),
					Severity:    SeverityWarning,
				}}
			default:
				healthy[i] = true
			}
			return nil
		})
	}
	_ = g.Wait()

	stats := Stats{Listed: len(paths)}
	var all []Issue
	for i := range paths {
		if isRepo[i] {
			stats.Repositories++
		}
		if healthy[i] {
			stats.Healthy++
		}
		for _, issue := range issues[i] {
			issue.Category = CategoryRepo
			all = append(all, issue)
		}
	}
	return all, stats
}
