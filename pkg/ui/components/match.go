package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agentarena/arena-terminal/business/arena/domain"
	"github.com/agentarena/arena-terminal/internal/token"
)

// MatchComponent renders the current match panel.
type MatchComponent struct {
	match   *domain.MatchResponse
	loading bool
}

// NewMatchComponent creates the current match panel.
func NewMatchComponent() *MatchComponent {
	return &MatchComponent{loading: true}
}

// Update replaces the displayed match. A nil match means the arena is idle.
func (c *MatchComponent) Update(match *domain.MatchResponse, loading bool) {
	c.match = match
	c.loading = loading
}

// View renders the panel.
func (c *MatchComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	phaseStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("CURRENT MATCH"))
	sb.WriteString("\n\n")

	if c.match == nil {
		if c.loading {
			sb.WriteString(mutedStyle.Render("  Loading..."))
		} else {
			sb.WriteString(mutedStyle.Render("  No match in progress"))
		}
		return sb.String()
	}

	m := c.match
	sb.WriteString(fmt.Sprintf("  %s %s  %s\n",
		valueStyle.Render(fmt.Sprintf("Match #%d", m.MatchID)),
		phaseStyle.Render(strings.ToUpper(m.Phase)),
		mutedStyle.Render(m.Category),
	))

	if m.QuestionText != "" {
		sb.WriteString("\n")
		sb.WriteString("  " + wrapText(m.QuestionText, 70, "  ") + "\n")
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s %s   %s %s   %s %d\n",
		mutedStyle.Render("Pool:"),
		valueStyle.Render(token.FmtWei(m.PoolTotal)+" MON"),
		mutedStyle.Render("Entry:"),
		valueStyle.Render(token.FmtWei(m.EntryFee)+" MON"),
		mutedStyle.Render("Players:"),
		m.PlayerCount,
	))

	return sb.String()
}

// wrapText folds text at width, indenting continuation lines.
func wrapText(s string, width int, indent string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n"+indent)
}
