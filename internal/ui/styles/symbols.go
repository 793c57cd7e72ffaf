package styles

import (
	"fmt"
	"strings"

	"github.com/raphi011/repodash/internal/git"
)

// Status symbols
const (
	CleanSymbol  = "✓"
	DirtySymbol  = "●"
	AheadSymbol  = "↑"
	BehindSymbol = "↓"
)

// FormatClean renders the working tree state.
func FormatClean(clean bool) string {
	if clean {
		return SuccessStyle.Render(CleanSymbol + " clean")
	}
	return ErrorStyle.Render(DirtySymbol + " dirty")
}

// FormatTracking renders divergence from upstream as "↑2 ↓1".
// Returns a muted dash when there is no upstream.
func FormatTracking(t *git.Tracking) string {
	if t == nil {
		return MutedStyle.Render("-")
	}
	if t.Ahead == 0 && t.Behind == 0 {
		return SuccessStyle.Render("=")
	}

	var parts []string
	if t.Ahead > 0 {
		parts = append(parts, fmt.Sprintf("%s%d", AheadSymbol, t.Ahead))
	}
	if t.Behind > 0 {
		parts = append(parts, fmt.Sprintf("%s%d", BehindSymbol, t.Behind))
	}
	return WarningStyle.Render(strings.Join(parts, " "))
}

// FormatCount renders n, highlighted when non-zero.
func FormatCount(n int) string {
	if n == 0 {
		return MutedStyle.Render("0")
	}
	return WarningStyle.Render(fmt.Sprint(n))
}
