package doctor

// IssueCategory groups issues by type.
type IssueCategory string

const (
	// CategoryEnvironment represents problems with required tools.
	CategoryEnvironment IssueCategory = "environment"
	// CategoryRoot represents problems with the root directory.
	CategoryRoot IssueCategory = "root"
	// CategoryStatic represents problems with the dashboard page files.
	CategoryStatic IssueCategory = "static"
	// CategoryRepo represents problems with individual repositories.
	CategoryRepo IssueCategory = "repo"
)

// Severity tells whether an issue breaks the dashboard.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue represents a problem detected by doctor.
type Issue struct {
	Key         string        // path or tool name
	Description string        // human-readable description
	Hint        string        // what the user can do
	Category    IssueCategory // issue category
	Severity    Severity
}

// Stats tracks repository counts.
type Stats struct {
	Listed       int // paths returned by the listing
	Repositories int // listed paths that are repositories
	Healthy      int // repositories with status and upstream
}

// Report is the outcome of [Run].
type Report struct {
	Issues []Issue
	Stats  Stats
}

// HasErrors reports whether any issue has error severity.
func (r Report) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
