// Package dashboard exposes the operations behind the dashboard page:
// listing repositories, reporting status, synchronizing, and keepalive.
//
// Every operation records a liveness touch before doing any work.
package dashboard

import (
	"context"
	"errors"
	"os"
	"slices"

	"github.com/raphi011/repodash/internal/git"
	"github.com/raphi011/repodash/internal/log"
)

// ErrNotFound is returned when a requested directory does not exist below
// the root.
var ErrNotFound = errors.New("directory not found")

// Toucher records client activity.
type Toucher interface {
	Touch()
}

type noopToucher struct{}

func (noopToucher) Touch() {}

// Service implements the dashboard operations for one root directory.
type Service struct {
	root       string
	exclude    []string
	runner     git.Runner
	aggregator *git.Aggregator
	liveness   Toucher
}

// Options configures a [Service].
type Options struct {
	// Exclude lists directory names hidden from listings.
	Exclude []string
	// Fetch refreshes remotes before each status query.
	Fetch bool
	// BranchConcurrency bounds per-branch upstream queries.
	BranchConcurrency int
	// Liveness receives a touch for every operation; nil disables it.
	Liveness Toucher
}

// New creates a service rooted at root that runs git through runner.
func New(root string, runner git.Runner, opts Options) *Service {
	toucher := opts.Liveness
	if toucher == nil {
		toucher = noopToucher{}
	}
	return &Service{
		root:    root,
		exclude: slices.Clone(opts.Exclude),
		runner:  runner,
		aggregator: &git.Aggregator{
			Runner:      runner,
			Fetch:       opts.Fetch,
			Concurrency: opts.BranchConcurrency,
		},
		liveness: toucher,
	}
}

// Root returns the directory the service scans.
func (s *Service) Root() string {
	return s.root
}

// Touch refreshes liveness and does nothing else.
func (s *Service) Touch() {
	s.liveness.Touch()
}

// ListRepositories returns repository roots and collapsed non-repository
// regions below the root, in traversal order.
func (s *Service) ListRepositories(ctx context.Context) []string {
	s.Touch()
	paths := git.Classify(s.root, git.ClassifyOptions{Exclude: s.exclude})
	log.FromContext(ctx).Debug("listed repositories", "root", s.root, "count", len(paths))
	return paths
}

// Status returns the status of the repository at path, or nil when path is
// not a repository or its status could not be determined. ErrNotFound is
// returned when path does not name a directory below the root.
func (s *Service) Status(ctx context.Context, path string) (*git.Status, error) {
	s.Touch()
	dir, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	return s.aggregator.Status(ctx, dir), nil
}

// Sync pushes or pulls the repository at path. Failures of the git command
// are returned as [*git.SyncError].
func (s *Service) Sync(ctx context.Context, path string, op git.Operation) error {
	s.Touch()
	dir, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := git.Sync(ctx, s.runner, dir, op); err != nil {
		log.FromContext(ctx).Debug("sync failed", "dir", dir, "op", op)
		return err
	}
	return nil
}

// resolve maps a root-relative path to an existing directory.
func (s *Service) resolve(path string) (string, error) {
	dir, ok := git.ResolvePath(s.root, path)
	if !ok {
		return "", ErrNotFound
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", ErrNotFound
	}
	return dir, nil
}
