package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestPostForm_InputDefaults(t *testing.T) {
	f := newPostForm()
	f.inputs[fieldQuestion].SetValue("What is the capital of France?")
	f.inputs[fieldReward].SetValue("100")

	in, err := f.input()
	if err != nil {
		t.Fatalf("input() error: %v", err)
	}
	if in.Question != "What is the capital of France?" {
		t.Errorf("question = %q", in.Question)
	}
	if in.Reward != "100" {
		t.Errorf("reward = %q", in.Reward)
	}
	if in.MinRating != 0 {
		t.Errorf("minRating = %d, want 0", in.MinRating)
	}
	if in.Duration != 24*time.Hour {
		t.Errorf("duration = %v, want 24h", in.Duration)
	}
	if in.Category != "Science" {
		t.Errorf("category = %q, want default Science", in.Category)
	}
	if in.Difficulty != 3 {
		t.Errorf("difficulty = %d, want 3", in.Difficulty)
	}
}

func TestPostForm_InputParses(t *testing.T) {
	f := newPostForm()
	f.inputs[fieldQuestion].SetValue("q")
	f.inputs[fieldReward].SetValue("2.5")
	f.inputs[fieldMinRating].SetValue("40")
	f.inputs[fieldDuration].SetValue("1.5")

	in, err := f.input()
	if err != nil {
		t.Fatalf("input() error: %v", err)
	}
	if in.MinRating != 40 {
		t.Errorf("minRating = %d, want 40", in.MinRating)
	}
	if in.Duration != 90*time.Minute {
		t.Errorf("duration = %v, want 90m", in.Duration)
	}
}

func TestPostForm_InputRejectsBadNumbers(t *testing.T) {
	f := newPostForm()
	f.inputs[fieldMinRating].SetValue("abc")
	if _, err := f.input(); err == nil {
		t.Fatal("expected error for bad min rating")
	}

	f = newPostForm()
	f.inputs[fieldDuration].SetValue("-3")
	if _, err := f.input(); err == nil {
		t.Fatal("expected error for negative duration")
	}
}

func TestPostForm_CycleBounds(t *testing.T) {
	f := newPostForm()
	f.setFocus(fieldDifficulty)

	left := tea.KeyMsg{Type: tea.KeyLeft}
	for i := 0; i < 10; i++ {
		f.handleKey(left)
	}
	if f.difficulty != 1 {
		t.Errorf("difficulty = %d, want clamp at 1", f.difficulty)
	}

	right := tea.KeyMsg{Type: tea.KeyRight}
	for i := 0; i < 10; i++ {
		f.handleKey(right)
	}
	if f.difficulty != 5 {
		t.Errorf("difficulty = %d, want clamp at 5", f.difficulty)
	}

	f.setFocus(fieldCategory)
	start := f.category
	for i := 0; i < 8; i++ {
		f.handleKey(right)
	}
	if f.category != start {
		t.Errorf("category = %d, want full cycle back to %d", f.category, start)
	}
}
