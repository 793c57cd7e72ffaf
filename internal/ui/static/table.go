// Package static provides non-interactive terminal output components.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/repodash/internal/git"
	"github.com/raphi011/repodash/internal/ui/styles"
)

// StatusHeaders are the columns of [StatusTableRow].
var StatusHeaders = []string{"PATH", "BRANCH", "COMMIT", "STATE", "UPSTREAM", "STASH", "UNSYNCED"}

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// StatusTableRow formats one repository for the status table.
// A nil status (not a repository) leaves every column but PATH muted.
func StatusTableRow(path string, st *git.Status) []string {
	name := styles.PrimaryStyle.Render(path)
	if st == nil {
		dash := styles.MutedStyle.Render("-")
		return []string{name, dash, dash, styles.MutedStyle.Render("not a repository"), dash, dash, dash}
	}
	return []string{
		name,
		st.Branch,
		st.Commit,
		styles.FormatClean(st.IsClean),
		styles.FormatTracking(st.Tracking),
		styles.FormatCount(st.StashCount),
		styles.FormatCount(st.UnsyncedBranches),
	}
}
