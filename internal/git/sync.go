package git

import (
	"context"
	"fmt"
)

// Operation is a remote synchronization command.
type Operation string

const (
	Push Operation = "push"
	Pull Operation = "pull"
)

// ParseOperation validates an operation name.
func ParseOperation(s string) (Operation, error) {
	switch op := Operation(s); op {
	case Push, Pull:
		return op, nil
	default:
		return "", fmt.Errorf("unknown sync operation %q: must be \"push\" or \"pull\"", s)
	}
}

// SyncError reports a failed push or pull.
type SyncError struct {
	Op Operation
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("failed to %s changes", e.Op)
}

// Sync runs op in the repository at dir. There is no retry and no conflict
// handling; any failure of the git command is reported as a [*SyncError].
func Sync(ctx context.Context, r Runner, dir string, op Operation) error {
	if _, ok := r.Run(ctx, dir, string(op)); !ok {
		return &SyncError{Op: op}
	}
	return nil
}
