package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/raphi011/repodash/internal/config"
	"github.com/raphi011/repodash/internal/dashboard"
	"github.com/raphi011/repodash/internal/git"
	"github.com/raphi011/repodash/internal/log"
)

// maxSuggestions limits "did you mean" candidates for unknown paths.
const maxSuggestions = 3

// resolveRoot returns the absolute directory to scan: the override if set,
// else cfg.RootDir, else the working directory.
func resolveRoot(cfg *config.Config, override string) (string, error) {
	root := override
	if root == "" {
		root = cfg.RootDir
	}
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		root = wd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("root directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("root %s is not a directory", abs)
	}
	return abs, nil
}

// warnNestedRoot notes when root sits inside a work tree it will not report on.
func warnNestedRoot(ctx context.Context, root string) {
	if git.HasMarker(root) || !git.IsInsideRepoPath(ctx, root) {
		return
	}
	log.FromContext(ctx).Printf("Warning: %s is inside a git work tree; only repositories below it are listed\n", root)
}

// newService builds a dashboard service for root from cfg.
func newService(cfg *config.Config, root string, liveness dashboard.Toucher) *dashboard.Service {
	return dashboard.New(root, git.CLIRunner{}, dashboard.Options{
		Exclude:           cfg.Exclude,
		Fetch:             cfg.Fetch,
		BranchConcurrency: cfg.BranchConcurrency,
		Liveness:          liveness,
	})
}

// suggest returns up to maxSuggestions candidates that fuzzy-match target,
// best match first.
func suggest(target string, candidates []string) []string {
	matches := fuzzy.Find(target, candidates)
	var out []string
	for i := 0; i < len(matches) && i < maxSuggestions; i++ {
		out = append(out, matches[i].Str)
	}
	return out
}

// notFoundError reports an unknown path with suggestions from the listing.
func notFoundError(path string, candidates []string) error {
	if s := suggest(path, candidates); len(s) > 0 {
		return fmt.Errorf("directory %q not found (did you mean: %s?)", path, strings.Join(s, ", "))
	}
	return fmt.Errorf("directory %q not found", path)
}

// completeRepoPaths completes listed paths for positional arguments.
func completeRepoPaths(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	root, err := resolveRoot(cfg, "")
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var out []string
	for _, p := range newService(cfg, root, nil).ListRepositories(ctx) {
		if strings.HasPrefix(p, toComplete) {
			out = append(out, p)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
