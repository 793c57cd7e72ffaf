package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/raphi011/repodash/internal/log"
)

// DefaultBranchConcurrency bounds concurrent per-branch upstream queries.
const DefaultBranchConcurrency = 8

// Tracking is the divergence between a branch and its upstream.
type Tracking struct {
	Ahead  int `json:"ahead"`
	Behind int `json:"behind"`
}

// Status is the synchronization state of one repository.
type Status struct {
	Name             string    `json:"name"`
	Branch           string    `json:"branch"`
	IsClean          bool      `json:"is_clean"`
	Commit           string    `json:"commit"`
	StashCount       int       `json:"stash_count"`
	Tracking         *Tracking `json:"tracking"`
	UnsyncedBranches int       `json:"unsynced_branches"`
}

// BranchSync is the outcome of comparing one local branch with its upstream.
// Tracking is nil when the branch has no upstream or the comparison failed.
type BranchSync struct {
	Branch   string
	Tracking *Tracking
}

// Synced reports whether the branch has an upstream and matches it exactly.
// The same rule decides the current branch's tracking and the unsynced count.
func (b BranchSync) Synced() bool {
	return b.Tracking != nil && b.Tracking.Ahead == 0 && b.Tracking.Behind == 0
}

// CountUnsynced returns how many branches are not [BranchSync.Synced].
func CountUnsynced(branches []BranchSync) int {
	n := 0
	for _, b := range branches {
		if !b.Synced() {
			n++
		}
	}
	return n
}

// Aggregator assembles a [Status] from a series of git queries.
type Aggregator struct {
	Runner Runner

	// Fetch refreshes remote-tracking refs before querying.
	Fetch bool

	// Concurrency bounds per-branch queries; values below 1 mean unbounded.
	Concurrency int
}

// NewAggregator returns an Aggregator that fetches before each status and
// uses [DefaultBranchConcurrency].
func NewAggregator(r Runner) *Aggregator {
	return &Aggregator{Runner: r, Fetch: true, Concurrency: DefaultBranchConcurrency}
}

// Status returns the state of the repository at dir, or nil when dir is not a
// repository root, a required query fails, or anything unexpected happens.
// Optional queries degrade to zero values or a nil Tracking.
func (a *Aggregator) Status(ctx context.Context, dir string) (st *Status) {
	l := log.FromContext(ctx)
	defer func() {
		if r := recover(); r != nil {
			l.Debug("status aborted", "dir", dir, "panic", r)
			st = nil
		}
	}()

	if !HasMarker(dir) {
		return nil
	}

	if a.Fetch {
		// best effort: offline remotes still leave local refs usable
		a.Runner.Run(ctx, dir, "fetch", "--all", "--quiet", "--prune")
	}

	branch, ok := a.Runner.Run(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if !ok || branch == "" {
		return nil
	}

	porcelain, _ := a.Runner.Run(ctx, dir, "status", "--porcelain")

	commit, ok := a.Runner.Run(ctx, dir, "rev-parse", "--short", "HEAD")
	if !ok || commit == "" {
		return nil
	}

	stashes, _ := a.Runner.Run(ctx, dir, "stash", "list")

	tracking := a.tracking(ctx, dir, branch, "HEAD")

	branches, err := a.BranchSyncs(ctx, dir)
	if err != nil {
		l.Debug("status aborted", "dir", dir, "error", err)
		return nil
	}

	return &Status{
		Name:             filepath.Base(dir),
		Branch:           branch,
		IsClean:          porcelain == "",
		Commit:           commit,
		StashCount:       CountLines(stashes),
		Tracking:         tracking,
		UnsyncedBranches: CountUnsynced(branches),
	}
}

// BranchSyncs compares every local branch with its upstream, issuing the
// per-branch queries concurrently. Results keep the order of "git branch".
// Individual query failures are recorded as a nil Tracking; only a panic in
// a worker is returned as an error.
func (a *Aggregator) BranchSyncs(ctx context.Context, dir string) ([]BranchSync, error) {
	out, ok := a.Runner.Run(ctx, dir, "branch")
	if !ok {
		return nil, nil
	}
	names := ParseBranches(out)
	results := make([]BranchSync, len(names))

	var g errgroup.Group
	if a.Concurrency > 0 {
		g.SetLimit(a.Concurrency)
	}

	for i, name := range names {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("branch %s: %v", name, r)
				}
			}()
			results[i] = BranchSync{Branch: name, Tracking: a.tracking(ctx, dir, name, name)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// tracking compares ref with the upstream of branch.
func (a *Aggregator) tracking(ctx context.Context, dir, branch, ref string) *Tracking {
	upstream, ok := a.Runner.Run(ctx, dir, "rev-parse", "--abbrev-ref", branch+"@{upstream}")
	if !ok || upstream == "" {
		return nil
	}

	counts, ok := a.Runner.Run(ctx, dir, "rev-list", "--left-right", "--count", upstream+"..."+ref)
	if !ok {
		return nil
	}

	behind, ahead, ok := ParseLeftRight(counts)
	if !ok {
		return nil
	}
	return &Tracking{Ahead: ahead, Behind: behind}
}

// ParseBranches extracts branch names from "git branch" output, dropping the
// current-branch and worktree markers. Detached HEAD pseudo entries such as
// "(HEAD detached at 1a2b3c4)" are not branches and are skipped.
func ParseBranches(output string) []string {
	var names []string
	for _, line := range strings.Split(output, "\n") {
		name := strings.TrimSpace(line)
		name = strings.TrimPrefix(name, "* ")
		name = strings.TrimPrefix(name, "+ ")
		name = strings.TrimSpace(name)
		if name == "" || strings.HasPrefix(name, "(") {
			continue
		}
		names = append(names, name)
	}
	return names
}

// ParseLeftRight parses "rev-list --left-right --count" output ("<left>\t<right>").
func ParseLeftRight(output string) (left, right int, ok bool) {
	fields := strings.Fields(output)
	if len(fields) != 2 {
		return 0, 0, false
	}
	left, errL := strconv.Atoi(fields[0])
	right, errR := strconv.Atoi(fields[1])
	if errL != nil || errR != nil || left < 0 || right < 0 {
		return 0, 0, false
	}
	return left, right, true
}

// CountLines returns the number of non-empty lines in output.
func CountLines(output string) int {
	n := 0
	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
