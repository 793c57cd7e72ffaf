package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/raphi011/repodash/internal/config"
	"github.com/raphi011/repodash/internal/dashboard"
	"github.com/raphi011/repodash/internal/git"
	"github.com/raphi011/repodash/internal/output"
	"github.com/raphi011/repodash/internal/ui/static"
)

// maxConcurrentRepos bounds parallel status queries across repositories.
const maxConcurrentRepos = 8

// repoStatus is one entry of "status --json".
type repoStatus struct {
	Path string      `json:"path"`
	Git  *git.Status `json:"git"`
}

func newStatusCmd() *cobra.Command {
	var (
		root       string
		noFetch    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "status [PATH...]",
		Short:   "Show repository status",
		Aliases: []string{"st"},
		GroupID: GroupCore,
		Long: `Show branch, commit, cleanliness, stashes, upstream divergence and
unsynced branches for repositories below the root.

Without arguments every listed path is shown. Paths are relative to the root;
use '~' (quoted, so the shell does not expand it) for the root itself.`,
		Example: `  repodash status                  # All repositories
  repodash status api web          # Selected repositories
  repodash status --no-fetch       # Skip git fetch (offline)
  repodash status --json           # JSON, one object per path`,
		ValidArgsFunction: completeRepoPaths,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := *config.FromContext(ctx)
			out := output.FromContext(ctx)

			if noFetch {
				cfg.Fetch = false
			}

			rootDir, err := resolveRoot(&cfg, root)
			if err != nil {
				return err
			}

			svc := newService(&cfg, rootDir, nil)
			paths := args
			if len(paths) == 0 {
				paths = svc.ListRepositories(ctx)
			}

			results, err := loadStatuses(ctx, svc, paths)
			var unknown *unknownPathError
			if errors.As(err, &unknown) {
				return notFoundError(unknown.Path, svc.ListRepositories(ctx))
			}
			if err != nil {
				return err
			}

			if jsonOutput {
				if results == nil {
					results = []repoStatus{}
				}
				return out.PrintJSON(results)
			}

			rows := make([][]string, len(results))
			for i, r := range results {
				rows[i] = static.StatusTableRow(r.Path, r.Git)
			}
			out.PrintStyled(static.RenderTable(static.StatusHeaders, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&root, "root", "r", "", "Directory to scan (default: config root_dir or working directory)")
	cmd.Flags().BoolVar(&noFetch, "no-fetch", false, "Do not fetch remotes before status queries")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.MarkFlagDirname("root")

	return cmd
}

// unknownPathError names the first requested path that does not exist.
type unknownPathError struct {
	Path string
}

func (e *unknownPathError) Error() string {
	return "unknown path " + e.Path
}

// loadStatuses queries paths in parallel, keeping their order.
func loadStatuses(ctx context.Context, svc *dashboard.Service, paths []string) ([]repoStatus, error) {
	results := make([]repoStatus, len(paths))
	missing := make([]bool, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRepos)

	for i, p := range paths {
		g.Go(func() error {
			st, err := svc.Status(gctx, p)
			if errors.Is(err, dashboard.ErrNotFound) {
				missing[i] = true
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = repoStatus{Path: p, Git: st}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, m := range missing {
		if m {
			return nil, &unknownPathError{Path: paths[i]}
		}
	}
	return results, nil
}
