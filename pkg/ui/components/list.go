package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// List is a scrollable row list with a selection cursor. It reports when
// the cursor nears the end so the owner can load the next page.
type List struct {
	rows     []string
	cursor   int
	offset   int
	viewport int
}

// NewList creates a list rendering viewport rows at a time.
func NewList(viewport int) *List {
	if viewport <= 0 {
		viewport = 15
	}
	return &List{viewport: viewport}
}

// SetRows replaces the rows, clamping the cursor.
func (l *List) SetRows(rows []string) {
	l.rows = rows
	if l.cursor >= len(rows) {
		l.cursor = len(rows) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.clampOffset()
}

// Cursor returns the selected row index.
func (l *List) Cursor() int { return l.cursor }

// Len returns the number of rows.
func (l *List) Len() int { return len(l.rows) }

// Up moves the cursor up one row.
func (l *List) Up() {
	if l.cursor > 0 {
		l.cursor--
	}
	l.clampOffset()
}

// Down moves the cursor down one row. It returns true when the cursor is
// within one viewport of the end, the signal to load the next page.
func (l *List) Down() bool {
	if l.cursor < len(l.rows)-1 {
		l.cursor++
	}
	l.clampOffset()
	return len(l.rows)-l.cursor <= l.viewport
}

// Reset moves the cursor back to the top.
func (l *List) Reset() {
	l.cursor = 0
	l.offset = 0
}

func (l *List) clampOffset() {
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.viewport {
		l.offset = l.cursor - l.viewport + 1
	}
}

// View renders the visible window with the selected row highlighted.
func (l *List) View() string {
	selected := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#374151"))

	var sb strings.Builder
	end := l.offset + l.viewport
	if end > len(l.rows) {
		end = len(l.rows)
	}
	for i := l.offset; i < end; i++ {
		if i == l.cursor {
			sb.WriteString(selected.Render("▸ " + l.rows[i]))
		} else {
			sb.WriteString("  " + l.rows[i])
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
