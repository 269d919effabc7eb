package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStore_DefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")

	s, err := OpenAt(path)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}

	if s.DisclaimerAccepted() {
		t.Error("expected disclaimer not accepted by default")
	}
	if s.OnboardingCompleted() {
		t.Error("expected onboarding not completed by default")
	}
}

func TestStore_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")

	s, err := OpenAt(path)
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	if err := s.SetDisclaimerAccepted(true); err != nil {
		t.Fatalf("SetDisclaimerAccepted failed: %v", err)
	}

	reopened, err := OpenAt(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if !reopened.DisclaimerAccepted() {
		t.Error("disclaimer acceptance did not survive reopen")
	}
	if reopened.OnboardingCompleted() {
		t.Error("onboarding flag set without being written")
	}
}

func TestStore_CorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := OpenAt(path)
	if err != nil {
		t.Fatalf("OpenAt failed on corrupt file: %v", err)
	}
	if s.DisclaimerAccepted() || s.OnboardingCompleted() {
		t.Error("corrupt file must yield defaults")
	}

	// Writing repairs the file.
	if err := s.SetOnboardingCompleted(true); err != nil {
		t.Fatalf("SetOnboardingCompleted failed: %v", err)
	}
	reopened, err := OpenAt(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if !reopened.OnboardingCompleted() {
		t.Error("expected repaired file to persist flag")
	}
}
