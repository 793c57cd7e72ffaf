// Package git discovers repositories below a root directory and reports
// their synchronization state via the git CLI.
//
// All queries go through a [Runner], which invokes "git -C <dir> ..." and
// reports failure as an absent result instead of an error: a single failed
// query means "unknown", never a fatal condition.
//
// # Discovery
//
//   - [HasMarker]: whether a directory is a repository root (.git dir or file)
//   - [Classify]: walk a tree and return repository roots plus collapsed
//     regions that contain no repository anywhere below them
//
// # Status
//
//   - [Aggregator.Status]: branch, cleanliness, commit, stashes, upstream
//     divergence and the number of unsynced local branches
//   - [CountUnsynced]: pure reduction over per-branch results
//
// # Synchronization
//
//   - [Sync]: run "git push" or "git pull" in a repository
package git
