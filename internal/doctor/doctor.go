package doctor

import (
	"context"
	"fmt"
	"io"

	"github.com/raphi011/repodash/internal/git"
)

// Service is the part of the dashboard service doctor needs.
type Service interface {
	ListRepositories(ctx context.Context) []string
	Status(ctx context.Context, path string) (*git.Status, error)
}

// Options configures [Run].
type Options struct {
	Root      string
	StaticDir string
	Service   Service

	// CheckGit overrides the git lookup; nil uses [git.CheckGit].
	CheckGit func() error
}

// Run performs all diagnostic checks. Repository checks are skipped when
// git or the root is unusable.
func Run(ctx context.Context, opts Options) Report {
	lookup := opts.CheckGit
	if lookup == nil {
		lookup = git.CheckGit
	}

	var report Report
	add := func(cat IssueCategory, issues []Issue) {
		for _, issue := range issues {
			issue.Category = cat
			report.Issues = append(report.Issues, issue)
		}
	}

	gitIssues := checkGit(lookup)
	add(CategoryEnvironment, gitIssues)

	rootIssues := checkRoot(ctx, opts.Root)
	add(CategoryRoot, rootIssues)

	add(CategoryStatic, checkStatic(opts.StaticDir))

	if len(gitIssues) > 0 || (len(rootIssues) > 0 && rootIssues[0].Severity == SeverityError) {
		return report
	}

	repoIssues, stats := checkRepos(ctx, opts.Service, opts.Root)
	report.Issues = append(report.Issues, repoIssues...)
	report.Stats = stats
	return report
}

var categoryNames = map[IssueCategory]string{
	CategoryEnvironment: "Environment",
	CategoryRoot:        "Root directory",
	CategoryStatic:      "Dashboard page",
	CategoryRepo:        "Repositories",
}

// Print writes a summary followed by issues grouped by category.
func Print(w io.Writer, r Report) {
	fmt.Fprintf(w, "  ✓ %d paths listed, %d repositories, %d healthy\n",
		r.Stats.Listed, r.Stats.Repositories, r.Stats.Healthy)

	if len(r.Issues) == 0 {
		fmt.Fprintln(w, "\n✓ No issues found")
		return
	}

	byCategory := make(map[IssueCategory][]Issue)
	for _, issue := range r.Issues {
		byCategory[issue.Category] = append(byCategory[issue.Category], issue)
	}

	fmt.Fprintf(w, "\nFound %d issues:\n", len(r.Issues))
	for _, cat := range []IssueCategory{CategoryEnvironment, CategoryRoot, CategoryStatic, CategoryRepo} {
		issues := byCategory[cat]
		if len(issues) == 0 {
			continue
		}

		fmt.Fprintf(w, "\n%s:\n", categoryNames[cat])
		for _, issue := range issues {
			mark := "⚠"
			if issue.Severity == SeverityError {
				mark = "✗"
			}
			fmt.Fprintf(w, "  %s %s: %s\n", mark, issue.Key, issue.Description)
			if issue.Hint != "" {
				fmt.Fprintf(w, "      %s\n", issue.Hint)
			}
		}
	}
}
