package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	bountyDomain "github.com/agentarena/arena-terminal/business/bounty/domain"
	chainApp "github.com/agentarena/arena-terminal/business/chain/app"
)

// Post-bounty form fields, in focus order.
const (
	fieldQuestion = iota
	fieldReward
	fieldMinRating
	fieldDuration
	fieldCategory
	fieldDifficulty
	fieldCount
)

// postForm collects the createBounty arguments. The text fields are
// bubbles text inputs; category and difficulty are cycled with ←/→.
type postForm struct {
	inputs     [4]textinput.Model
	focus      int
	category   int
	difficulty int
}

func newPostForm() *postForm {
	f := &postForm{difficulty: 3}

	question := textinput.New()
	question.Placeholder = "What question should the agents answer?"
	question.CharLimit = 280
	question.Width = 64
	question.Focus()

	reward := textinput.New()
	reward.Placeholder = "100"
	reward.CharLimit = 24
	reward.Width = 16

	minRating := textinput.New()
	minRating.Placeholder = "0"
	minRating.CharLimit = 6
	minRating.Width = 8

	duration := textinput.New()
	duration.Placeholder = "24"
	duration.CharLimit = 6
	duration.Width = 8

	f.inputs = [4]textinput.Model{question, reward, minRating, duration}
	return f
}

func (f *postForm) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		f.setFocus((f.focus + 1) % fieldCount)
		return nil
	case "shift+tab", "up":
		f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		return nil
	case "left", "right":
		delta := 1
		if msg.String() == "left" {
			delta = -1
		}
		switch f.focus {
		case fieldCategory:
			n := len(bountyDomain.Categories)
			f.category = (f.category + delta + n) % n
			return nil
		case fieldDifficulty:
			f.difficulty += delta
			if f.difficulty < 1 {
				f.difficulty = 1
			}
			if f.difficulty > 5 {
				f.difficulty = 5
			}
			return nil
		}
	}

	if f.focus < len(f.inputs) {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return cmd
	}
	return nil
}

func (f *postForm) setFocus(idx int) {
	f.focus = idx
	for i := range f.inputs {
		if i == idx {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// input converts the form state into a createBounty request. Validation
// here covers only what the form itself can get wrong; amount and
// question checks live in the chain service.
func (f *postForm) input() (chainApp.CreateBountyInput, error) {
	var in chainApp.CreateBountyInput

	minRating := int64(0)
	if raw := strings.TrimSpace(f.inputs[fieldMinRating].Value()); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			return in, fmt.Errorf("invalid min rating: %q", raw)
		}
		minRating = v
	}

	hours := 24.0
	if raw := strings.TrimSpace(f.inputs[fieldDuration].Value()); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			return in, fmt.Errorf("invalid duration: %q", raw)
		}
		hours = v
	}

	in = chainApp.CreateBountyInput{
		Question:   strings.TrimSpace(f.inputs[fieldQuestion].Value()),
		Category:   bountyDomain.Categories[f.category],
		Difficulty: uint8(f.difficulty),
		Reward:     strings.TrimSpace(f.inputs[fieldReward].Value()),
		MinRating:  minRating,
		Duration:   time.Duration(hours * float64(time.Hour)),
	}
	return in, nil
}

func (f *postForm) View() string {
	label := lipgloss.NewStyle().Foreground(ColorMuted).Width(14)
	focused := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("POST BOUNTY"))
	b.WriteString("\n\n")

	rows := []struct {
		name string
		idx  int
	}{
		{"Question", fieldQuestion},
		{"Reward", fieldReward},
		{"Min rating", fieldMinRating},
		{"Hours", fieldDuration},
	}
	for _, row := range rows {
		b.WriteString("  " + label.Render(row.name) + f.inputs[row.idx].View())
		if row.idx == fieldReward {
			b.WriteString(MutedValue.Render(" NEURON"))
		}
		b.WriteString("\n")
	}

	category := bountyDomain.Categories[f.category]
	if f.focus == fieldCategory {
		category = focused.Render("◂ " + category + " ▸")
	}
	b.WriteString("  " + label.Render("Category") + category + "\n")

	difficulty := strings.Repeat("★", f.difficulty) + strings.Repeat("☆", 5-f.difficulty)
	if f.focus == fieldDifficulty {
		difficulty = focused.Render("◂ " + difficulty + " ▸")
	}
	b.WriteString("  " + label.Render("Difficulty") + difficulty + "\n\n")

	b.WriteString(HelpStyle.Render("  tab/↑↓: fields • ←→: adjust • ctrl+s: submit • esc: cancel"))
	return b.String()
}
