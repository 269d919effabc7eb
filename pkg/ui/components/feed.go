package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agentarena/arena-terminal/business/feed/domain"
	"github.com/agentarena/arena-terminal/internal/token"
)

// FeedComponent renders the live event feed, newest first.
type FeedComponent struct {
	events    []domain.Event
	connected bool
	maxRows   int
}

// NewFeedComponent creates a feed view showing at most maxRows events.
func NewFeedComponent(maxRows int) *FeedComponent {
	if maxRows <= 0 {
		maxRows = 12
	}
	return &FeedComponent{maxRows: maxRows}
}

// Update replaces the displayed events and connection flag.
func (f *FeedComponent) Update(events []domain.Event, connected bool) {
	f.events = events
	f.connected = connected
}

// View renders the feed panel.
func (f *FeedComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	liveStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	deadStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("LIVE FEED"))
	if f.connected {
		sb.WriteString(liveStyle.Render("  ● live"))
	} else {
		sb.WriteString(deadStyle.Render("  ○ offline"))
	}
	sb.WriteString("\n\n")

	if len(f.events) == 0 {
		sb.WriteString(mutedStyle.Render("  Waiting for events..."))
		return sb.String()
	}

	rows := f.events
	if len(rows) > f.maxRows {
		rows = rows[:f.maxRows]
	}
	for _, ev := range rows {
		ts := mutedStyle.Render(ev.ReceivedAt.Format("15:04:05"))
		sb.WriteString(fmt.Sprintf("  %s %s\n", ts, formatEvent(ev)))
	}

	return sb.String()
}

// formatEvent renders one event line with per-kind coloring.
func formatEvent(ev domain.Event) string {
	agentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA"))
	burnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	winStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	commentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	agent := shortAddr(ev.Agent)

	switch ev.Kind {
	case domain.KindAnswer:
		line := fmt.Sprintf("%s answered", agentStyle.Render(agent))
		if ev.NeuronBurned != "" {
			line += burnStyle.Render(fmt.Sprintf(" (-%s NEURON)", token.FmtWei(ev.NeuronBurned)))
		}
		return line
	case domain.KindAnswerJudged:
		return fmt.Sprintf("%s judged", agentStyle.Render(agent))
	case domain.KindCommentary:
		return commentStyle.Render(fmt.Sprintf("%s: %s", ev.Persona, truncateText(ev.Commentary, 60)))
	case domain.KindMatchStart:
		return winStyle.Render(fmt.Sprintf("Match #%d started", ev.MatchID))
	case domain.KindMatchEnd:
		return winStyle.Render(fmt.Sprintf("Match #%d won by %s (+%s MON)",
			ev.MatchID, shortAddr(ev.Winner), token.FmtWei(ev.Prize)))
	case domain.KindAgentRegistered:
		return fmt.Sprintf("%s joined match #%d", agentStyle.Render(agent), ev.MatchID)
	case domain.KindPersonalitiesAssigned:
		return mutedStyle.Render(fmt.Sprintf("Personalities assigned for match #%d", ev.MatchID))
	case domain.KindQuestionPosted:
		return fmt.Sprintf("Q: %s", truncateText(ev.Question, 60))
	case domain.KindAnswerRevealed:
		return fmt.Sprintf("Answer revealed: %s", truncateText(ev.Answer, 40))
	case domain.KindMatchCancelled:
		return mutedStyle.Render(fmt.Sprintf("Match #%d cancelled: %s", ev.MatchID, ev.Reason))
	case domain.KindBurn:
		return burnStyle.Render(fmt.Sprintf("%s burned %s NEURON", agent, token.FmtWei(ev.NeuronBurned)))
	case domain.KindBountyCreated:
		return fmt.Sprintf("Bounty #%d posted (%s NEURON)", ev.BountyID, token.FmtWei(ev.Reward))
	case domain.KindBountyAgentJoined:
		return fmt.Sprintf("%s joined bounty #%d", agentStyle.Render(agent), ev.BountyID)
	case domain.KindBountyAnswerSubmitted:
		return fmt.Sprintf("%s answered bounty #%d", agentStyle.Render(agent), ev.BountyID)
	case domain.KindBountyAnswerEvaluated:
		return fmt.Sprintf("%s scored %.1f on bounty #%d", agentStyle.Render(agent), ev.Score, ev.BountyID)
	case domain.KindBountySettled:
		return winStyle.Render(fmt.Sprintf("Bounty #%d won by %s", ev.BountyID, shortAddr(ev.Winner)))
	case domain.KindWinnerRewardClaimed, domain.KindProportionalClaimed, domain.KindRefundClaimed:
		return fmt.Sprintf("%s claimed %s NEURON", agentStyle.Render(agent), token.FmtWei(ev.Reward))
	case domain.KindReputationUpdated:
		return mutedStyle.Render(fmt.Sprintf("%s reputation → %.1f", agent, ev.Score))
	default:
		return string(ev.Kind)
	}
}

// shortAddr truncates a 0x address for display.
func shortAddr(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
