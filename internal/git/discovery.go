package git

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// MarkerName is the metadata entry that identifies a repository root.
const MarkerName = ".git"

// RootToken denotes the traversal root in relative paths. The empty string
// cannot appear as a URL path segment, so the root gets an explicit token.
const RootToken = "~"

// ClassifyOptions configures [Classify].
type ClassifyOptions struct {
	// Exclude lists directory names that are skipped at every level.
	Exclude []string
}

// HasMarker reports whether path is a repository root.
// .git can be a directory (regular repo) or file (worktree, submodule).
func HasMarker(path string) bool {
	info, err := os.Stat(filepath.Join(path, MarkerName))
	if err != nil {
		return false
	}
	return info.IsDir() || info.Mode().IsRegular()
}

// Classify walks root depth-first and returns root-relative, slash separated
// paths. Every returned path is either a repository root or the highest
// directory on its branch with no repository anywhere below it; a region is
// never split when it contains no repository.
//
// Siblings are visited in lexicographic order. Unreadable directories are
// treated as leaves and symlinked directories are not followed.
func Classify(root string, opts ClassifyOptions) []string {
	paths, _ := classify(root, "", opts)
	return paths
}

// classify returns the result set for the subtree at root/rel and whether it
// contains a repository.
func classify(root, rel string, opts ClassifyOptions) ([]string, bool) {
	abs := filepath.Join(root, filepath.FromSlash(rel))
	self := []string{displayPath(rel)}

	if HasMarker(abs) {
		return self, true
	}

	children := subdirectories(abs, opts.Exclude)
	if len(children) == 0 {
		return self, false
	}

	var (
		paths    []string
		foundAny bool
	)
	for _, name := range children {
		childPaths, found := classify(root, joinRel(rel, name), opts)
		paths = append(paths, childPaths...)
		foundAny = foundAny || found
	}

	if !foundAny {
		return self, false
	}
	return paths, true
}

// subdirectories snapshots the immediate subdirectories of dir, sorted by name.
// Errors yield no entries, which makes the directory a leaf.
func subdirectories(dir string, exclude []string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || slices.Contains(exclude, entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	slices.Sort(names)
	return names
}

func joinRel(rel, name string) string {
	if rel == "" {
		return name
	}
	return rel + "/" + name
}

func displayPath(rel string) string {
	if rel == "" {
		return RootToken
	}
	return rel
}

// ResolvePath maps a root-relative path (or [RootToken]) to an absolute path
// below root. It returns false when the path would escape root.
func ResolvePath(root, rel string) (string, bool) {
	if rel == "" || rel == RootToken {
		return filepath.Clean(root), true
	}

	cleaned := filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.Join(root, cleaned), true
}
