// Package components provides reusable TUI components.
package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/agentarena/arena-terminal/business/arena/domain"
	"github.com/agentarena/arena-terminal/internal/token"
)

// StatsBarComponent renders the global arena statistics row.
type StatsBarComponent struct {
	stats   *domain.GlobalStats
	loading bool
}

// NewStatsBarComponent creates a new stats bar.
func NewStatsBarComponent() *StatsBarComponent {
	return &StatsBarComponent{loading: true}
}

// Update replaces the displayed stats.
func (s *StatsBarComponent) Update(stats *domain.GlobalStats, loading bool) {
	s.stats = stats
	s.loading = loading
}

// View renders the stats bar.
func (s *StatsBarComponent) View() string {
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	burnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)

	if s.stats == nil {
		if s.loading {
			return labelStyle.Render("Loading arena stats...")
		}
		return labelStyle.Render("Arena stats unavailable")
	}

	st := s.stats
	return fmt.Sprintf("%s %s  │  %s %s  │  %s %s  │  %s %s  │  %s %s",
		labelStyle.Render("Matches:"),
		valueStyle.Render(fmt.Sprintf("%d", st.TotalMatches)),
		labelStyle.Render("Active:"),
		valueStyle.Render(fmt.Sprintf("%d", st.ActiveMatches)),
		labelStyle.Render("Agents:"),
		valueStyle.Render(fmt.Sprintf("%d", st.TotalAgents)),
		labelStyle.Render("Burned:"),
		burnStyle.Render(token.FmtWei(st.TotalBurned)+" NEURON"),
		labelStyle.Render("Pool:"),
		valueStyle.Render(token.FmtWei(st.TotalPoolVolume)+" MON"),
	)
}
