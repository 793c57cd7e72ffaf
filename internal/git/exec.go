package git

import (
	"context"
	"strings"

	"github.com/raphi011/repodash/internal/cmd"
)

// Runner executes a single git invocation scoped to dir.
// It returns the trimmed stdout and true on exit status 0, or false on any
// failure. Failures are not distinguishable from each other on purpose.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, bool)
}

// CLIRunner runs the git executable found on PATH.
type CLIRunner struct{}

// Run implements [Runner].
func (CLIRunner) Run(ctx context.Context, dir string, args ...string) (string, bool) {
	out, err := outputGit(ctx, dir, args...)
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(string(out)), true
}

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// runGit executes a git command with context support and verbose logging.
func runGit(ctx context.Context, dir string, args ...string) error {
	return cmd.RunContext(ctx, "", "git", gitArgs(dir, args)...)
}

// outputGit executes a git command with context support and verbose logging,
// returning stdout.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, "", "git", gitArgs(dir, args)...)
}
